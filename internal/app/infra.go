package app

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VanVu13/simpleauth/internal/config"
	"github.com/VanVu13/simpleauth/internal/redis"
	"github.com/VanVu13/simpleauth/internal/user"
)

type Infra struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if err := user.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "database ready")

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		pool.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "redis ready")

	return &Infra{
		Pool:  pool,
		Redis: redisClient,
	}, nil
}
