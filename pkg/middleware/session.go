package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/churninsights/churn-insights-api/internal/domain"
	"github.com/churninsights/churn-insights-api/pkg/apiErrors"
	"github.com/churninsights/churn-insights-api/pkg/log"
)

type contextKey string

const (
	ContextKeySession contextKey = "session"
)

type SessionValidator interface {
	Validate(token string) (*domain.SessionContext, error)
}

// SessionMiddleware injeta o SessionContext quando há um Bearer token.
// Sem token a requisição segue sem sessão; token inválido responde 401.
func SessionMiddleware(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Bearer token is required", nil)
				return
			}

			session, err := validator.Validate(tokenString)
			if err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("session: token inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidSession, "Invalid or expired session", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func WithSession(ctx context.Context, session *domain.SessionContext) context.Context {
	return context.WithValue(ctx, ContextKeySession, session)
}

// SessionFromContext devolve a sessão da requisição; ok é falso quando não há token
func SessionFromContext(ctx context.Context) (*domain.SessionContext, bool) {
	session, ok := ctx.Value(ContextKeySession).(*domain.SessionContext)
	return session, ok && session != nil
}
