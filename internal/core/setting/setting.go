// Package setting は configuraciones (参照専用のアプリケーション設定) を扱います。
package setting

import (
	"context"
	"strings"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Setting は configuraciones の 1 行です。
type Setting struct {
	ID          int64
	Category    string
	Key         string
	Value       string
	Description *string
	UpdatedAt   time.Time
}

// Record は Setting の外部表現です。
type Record struct {
	ID          int64   `json:"configuracion_id"`
	Category    string  `json:"categoria"`
	Key         string  `json:"clave"`
	Value       string  `json:"valor"`
	Description *string `json:"descripcion"`
	UpdatedAt   string  `json:"updated_at"`
}

// NewRecord は Setting を Record に変換します。
func NewRecord(s *Setting) Record {
	return Record{
		ID:          s.ID,
		Category:    s.Category,
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
		UpdatedAt:   s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Repository は設定の読み取りを行うインターフェースです。
type Repository interface {
	// List は categoria, clave の順で並べて返します。category が nil の場合は全件です。
	List(ctx context.Context, category *string) ([]*Setting, error)
}

// Service は設定参照のユースケースです。
type Service struct {
	repo Repository
	tx   shared.TransactionManager
}

// UseCase は設定参照の公開インターフェースです。
type UseCase interface {
	ListSettings(ctx context.Context, category string) ([]*Setting, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, tx shared.TransactionManager) *Service {
	if tx == nil {
		tx = shared.NoopTransactionManager()
	}
	return &Service{repo: repo, tx: tx}
}

// ListSettings は設定を取得します。空白のみの category は指定なしとして扱います。
func (s *Service) ListSettings(ctx context.Context, category string) ([]*Setting, error) {
	var filter *string
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		upper := strings.ToUpper(trimmed)
		filter = &upper
	}

	var result []*Setting
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}
