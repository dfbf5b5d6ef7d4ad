package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the schema steps in the order they run.
var Migrations = []Migration{
	{Name: "create_kv_store", Up: createKVStore},
	{Name: "add_kv_store_updated_at_index", Up: addUpdatedAtIndex},
}

// RunMigrations executes every migration on startup. Each step is safe to
// rerun.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("starting database migrations", zap.Int("count", len(Migrations)))

	for _, m := range Migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.Error("migration failed", zap.String("name", m.Name), zap.Error(err))
			return err
		}
		log.Info("migration completed", zap.String("name", m.Name))
	}

	log.Info("all migrations completed")
	return nil
}

func createKVStore(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

func addUpdatedAtIndex(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS kv_store_updated_at_idx ON kv_store (updated_at);`)
	return err
}
