package explaining

import "context"

// Narrator gera o texto do relatório a partir do prompt de sistema
type Narrator interface {
	GenerateNarrative(ctx context.Context, systemPrompt string) (string, error)
	Model() string
}
