package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/churninsights/churn-insights-api/infrastructure/database/postgres"
	"github.com/churninsights/churn-insights-api/internal/config"
)

const (
	idLength   = 12
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type migration struct {
	Name       string
	Statements []string
}

var migrations = []migration{
	{
		Name: "001_create_narrative_reports",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS narrative_reports (
				id                VARCHAR(32)      PRIMARY KEY,
				customer_id       VARCHAR(64)      NOT NULL,
				churn_probability DOUBLE PRECISION NOT NULL,
				predicted_class   SMALLINT         NOT NULL,
				narrative         TEXT             NOT NULL,
				fallback          BOOLEAN          NOT NULL DEFAULT FALSE,
				failure_reason    TEXT,
				top_attributions  TEXT             NOT NULL,
				model_version     VARCHAR(64)      NOT NULL,
				created_at        TIMESTAMPTZ      NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_narrative_reports_customer_created
				ON narrative_reports (customer_id, created_at DESC)`,
		},
	},
}

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func generateID() string {
	id, err := gonanoid.Generate(characters, idLength)
	if err != nil {
		log.Fatalf("ERRO ao gerar id da migração: %v", err)
	}
	return id
}

func createMigrationsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		id         VARCHAR(32)  PRIMARY KEY,
		name       VARCHAR(128) NOT NULL UNIQUE,
		applied_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`)
	return err
}

func applied(ctx context.Context, tx *sql.Tx, name string) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&exists)
	return exists, err
}

func apply(ctx context.Context, tx *sql.Tx, m migration) error {
	for _, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (id, name) VALUES ($1, $2)`, generateID(), m.Name)
	return err
}

// runMigrations aplica as migrações pendentes numa única transação
func runMigrations(ctx context.Context, conn postgres.Conn) (int, error) {
	appliedCount := 0

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := createMigrationsTable(ctx, tx); err != nil {
			return err
		}

		for _, m := range migrations {
			done, err := applied(ctx, tx, m.Name)
			if err != nil {
				return err
			}
			if done {
				log.Printf("Migração %s já aplicada, ignorando", m.Name)
				continue
			}

			log.Printf("Aplicando migração %s...", m.Name)
			if err := apply(ctx, tx, m); err != nil {
				log.Printf("ERRO na migração %s: %v", m.Name, err)
				return err
			}
			appliedCount++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return appliedCount, nil
}

func main() {
	setupLogger()
	startTime := time.Now()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()
	log.Println("Conexão com o banco de dados estabelecida")

	appliedCount, err := runMigrations(ctx, conn)
	if err != nil {
		log.Fatalf("ERRO ao executar migrações, transação revertida: %v", err)
	}

	log.Printf("Migração concluída em %v. Aplicadas: %d", time.Since(startTime), appliedCount)
}
