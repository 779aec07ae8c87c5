package postgres

import (
	"context"
	"fmt"

	"github.com/ogurasousui/funcionarios-api/assets"
)

// Seed はデモ用の初期データを投入します。既存の行は変更しません。
func Seed(ctx context.Context, q Queryer) error {
	if _, err := q.Exec(ctx, assets.SeedSQL); err != nil {
		return fmt.Errorf("postgres: seed: %w", err)
	}
	return nil
}
