package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/usecase"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// NewPool connects to postgres and runs the migrations.
func NewPool(ctx context.Context, dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := migration.RunMigrations(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenSQLite opens (or creates) a sqlite database file.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewRedisClient connects and pings redis.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// OpenStore builds the key-value store selected by cfg. The returned close
// function releases its connections.
func OpenStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (usecase.KeyValueStore, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.BackendMemory:
		return repository.NewMemoryStore(), noop, nil
	case config.BackendFile, "":
		s, err := repository.NewFileStore(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	case config.BackendSQLite:
		db, err := OpenSQLite(filepath.Join(cfg.Path, "resumes.db"))
		if err != nil {
			return nil, noop, err
		}
		s, err := repository.NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return s, func() { _ = db.Close() }, nil
	case config.BackendPostgres:
		pool, err := NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewPostgresStore(pool), pool.Close, nil
	case config.BackendRedis:
		client, err := NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewRedisStore(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
