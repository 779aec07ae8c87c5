package project

import (
	"context"
	"strings"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Service は proyecto に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock shared.Clock
	tx    shared.TransactionManager
}

// UseCase は proyecto ユースケースの公開インターフェースです。
type UseCase interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (*Project, error)
	GetProject(ctx context.Context, in GetProjectInput) (*Project, error)
	ListProjects(ctx context.Context, in ListProjectsInput) ([]*Project, error)
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

// CreateProjectInput は proyecto 作成時の入力です。
type CreateProjectInput struct {
	Code        string
	Name        string
	Description *string
	Budget      *float64
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string
}

// GetProjectInput は proyecto 取得時の入力です。
type GetProjectInput struct {
	ID int64
}

// ListProjectsInput は一覧取得時の入力です。
type ListProjectsInput struct {
	Status *Status
}

// CreateProject は新しい proyecto を作成します。
func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (*Project, error) {
	code, err := apperror.RequireText(EntityName, "codigo_proyecto", in.Code)
	if err != nil {
		return nil, err
	}
	name, err := apperror.RequireText(EntityName, "nombre_proyecto", in.Name)
	if err != nil {
		return nil, err
	}
	if err := apperror.CheckLengths(EntityName,
		apperror.TextLimit{Field: "codigo_proyecto", Value: &code, Max: 30},
		apperror.TextLimit{Field: "nombre_proyecto", Value: &name, Max: 200},
	); err != nil {
		return nil, err
	}

	status := StatusActive
	if strings.TrimSpace(in.Status) != "" {
		status, err = normalizeStatus(Status(in.Status))
		if err != nil {
			return nil, err
		}
	}

	if in.Budget != nil && *in.Budget < 0 {
		return nil, ErrInvalidBudget
	}

	start := shared.NormalizeDatePtr(in.StartDate)
	end := shared.NormalizeDatePtr(in.EndDate)
	if start != nil && end != nil && end.Before(*start) {
		return nil, ErrInvalidDateRange
	}

	var created *Project
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, &Project{
			Code:        code,
			Name:        name,
			Description: shared.TrimOptional(in.Description),
			Budget:      in.Budget,
			StartDate:   start,
			EndDate:     end,
			Status:      status,
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

// GetProject は ID で proyecto を取得します。
func (s *Service) GetProject(ctx context.Context, in GetProjectInput) (*Project, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidID
	}

	var project *Project
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		project = result
		return nil
	}); err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects は proyecto の一覧を取得します。
func (s *Service) ListProjects(ctx context.Context, in ListProjectsInput) ([]*Project, error) {
	var statusPtr *Status
	if in.Status != nil {
		status, err := normalizeStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		statusPtr = &status
	}

	var projects []*Project
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx, ListProjectsFilter{Status: statusPtr})
		if err != nil {
			return err
		}
		projects = result
		return nil
	}); err != nil {
		return nil, err
	}

	return projects, nil
}

func normalizeStatus(raw Status) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(string(raw))))
	if !IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
