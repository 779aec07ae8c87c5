package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/platform/config"
)

// BuildPoolConfig は database 設定から pgxpool.Config を構築します。
func BuildPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	return poolCfg, nil
}

// NewPool は pgxpool.Pool を生成し疎通確認を行います。疎通できない場合は ErrStorageUnavailable を返します。
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := BuildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperror.Unavailable(fmt.Errorf("postgres: ping: %w", err))
	}

	return pool, nil
}

// Pinger は疎通確認が可能な接続です。*pgxpool.Pool が満たします。
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck は疎通確認を行い、失敗した場合は ErrStorageUnavailable で包んだエラーを返します。
func HealthCheck(ctx context.Context, p Pinger) error {
	if p == nil {
		return apperror.Unavailable(fmt.Errorf("postgres: pool is not configured"))
	}
	if err := p.Ping(ctx); err != nil {
		return apperror.Unavailable(fmt.Errorf("postgres: ping: %w", err))
	}
	return nil
}
