package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"ares-site-service/internal/assessment"
	"ares-site-service/internal/config"
	pgmigrations "ares-site-service/internal/infra/postgres/migrations"
)

// NewMigrateCmd applies database migrations and seeds the built-in
// assessment catalog.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runMigrationsWithConfig(cmd.Context(), cfg, log)
		},
	}
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)

	if err := migrator.Init(ctx); err != nil {
		return err
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}

	if err := seedDefaultCatalog(ctx, db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

// seedDefaultCatalog makes the built-in questionnaire available without
// overwriting any operator-edited copy.
func seedDefaultCatalog(ctx context.Context, db *bun.DB) error {
	catalog := assessment.DefaultCatalog()
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("marshal default catalog: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO assessment_catalogs (id, data) VALUES (?, ?::jsonb) ON CONFLICT (id) DO NOTHING`,
		catalog.ID, string(data),
	)
	return err
}
