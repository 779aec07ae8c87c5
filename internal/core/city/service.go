package city

import (
	"context"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Service は ciudad に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock shared.Clock
	tx    shared.TransactionManager
}

// UseCase は ciudad ユースケースの公開インターフェースです。
type UseCase interface {
	CreateCity(ctx context.Context, in CreateCityInput) (*City, error)
	GetCity(ctx context.Context, id int64) (*City, error)
	ListCities(ctx context.Context) ([]*City, error)
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

// CreateCityInput は ciudad 作成時の入力です。
type CreateCityInput struct {
	Name       string
	PostalCode *string
	Province   *string
	Country    *string
}

// CreateCity は新しい ciudad を作成します。pais の既定値は Ecuador です。
func (s *Service) CreateCity(ctx context.Context, in CreateCityInput) (*City, error) {
	name, err := apperror.RequireText(EntityName, "nombre_ciudad", in.Name)
	if err != nil {
		return nil, err
	}

	country := DefaultCountry
	if c := shared.TrimOptional(in.Country); c != nil {
		country = *c
	}
	postalCode := shared.TrimOptional(in.PostalCode)
	province := shared.TrimOptional(in.Province)
	if err := apperror.CheckLengths(EntityName,
		apperror.TextLimit{Field: "nombre_ciudad", Value: &name, Max: 100},
		apperror.TextLimit{Field: "codigo_postal", Value: postalCode, Max: 20},
		apperror.TextLimit{Field: "provincia", Value: province, Max: 100},
		apperror.TextLimit{Field: "pais", Value: &country, Max: 100},
	); err != nil {
		return nil, err
	}

	var created *City
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, &City{
			Name:       name,
			PostalCode: postalCode,
			Province:   province,
			Country:    country,
			CreatedAt:  s.clock.Now(),
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

// GetCity は ID で ciudad を取得します。
func (s *Service) GetCity(ctx context.Context, id int64) (*City, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	var result *City
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

// ListCities は ciudad の一覧を取得します。
func (s *Service) ListCities(ctx context.Context) ([]*City, error) {
	var result []*City
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
