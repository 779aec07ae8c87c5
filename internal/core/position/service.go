package position

import (
	"context"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Service は cargo に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock shared.Clock
	tx    shared.TransactionManager
}

// UseCase は cargo ユースケースの公開インターフェースです。
type UseCase interface {
	CreatePosition(ctx context.Context, in CreatePositionInput) (*Position, error)
	GetPosition(ctx context.Context, id int64) (*Position, error)
	ListPositions(ctx context.Context) ([]*Position, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock shared.Clock, tx shared.TransactionManager) *Service {
	if clock == nil {
		clock = shared.RealClock()
	}
	if tx == nil {
		tx = shared.NoopTransactionManager()
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreatePositionInput は cargo 作成時の入力です。
type CreatePositionInput struct {
	Code        string
	Name        string
	Level       *int
	BaseSalary  *float64
	Description *string
}

// CreatePosition は新しい cargo を作成します。
func (s *Service) CreatePosition(ctx context.Context, in CreatePositionInput) (*Position, error) {
	code, err := apperror.RequireText(EntityName, "codigo_cargo", in.Code)
	if err != nil {
		return nil, err
	}
	name, err := apperror.RequireText(EntityName, "nombre_cargo", in.Name)
	if err != nil {
		return nil, err
	}
	if err := apperror.CheckLengths(EntityName,
		apperror.TextLimit{Field: "codigo_cargo", Value: &code, Max: 20},
		apperror.TextLimit{Field: "nombre_cargo", Value: &name, Max: 100},
	); err != nil {
		return nil, err
	}
	if in.Level != nil && *in.Level <= 0 {
		return nil, ErrInvalidLevel
	}
	if in.BaseSalary != nil && *in.BaseSalary < 0 {
		return nil, ErrInvalidSalary
	}

	var created *Position
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, &Position{
			Code:        code,
			Name:        name,
			Level:       in.Level,
			BaseSalary:  in.BaseSalary,
			Description: shared.TrimOptional(in.Description),
			CreatedAt:   s.clock.Now(),
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetPosition は ID で cargo を取得します。
func (s *Service) GetPosition(ctx context.Context, id int64) (*Position, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	var result *Position
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
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

// ListPositions は cargo の一覧を取得します。
func (s *Service) ListPositions(ctx context.Context) ([]*Position, error) {
	var result []*Position
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx)
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
