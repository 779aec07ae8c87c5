package vacation

import (
	"context"
	"strings"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Service は vacacion 申請に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock shared.Clock
	tx    shared.TransactionManager
}

// UseCase は vacacion ユースケースの公開インターフェースです。
type UseCase interface {
	RequestVacation(ctx context.Context, in RequestVacationInput) (*Request, error)
	GetRequest(ctx context.Context, id int64) (*Request, error)
	ListRequests(ctx context.Context, in ListRequestsInput) ([]*Request, error)
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

// RequestVacationInput は申請登録時の入力です。Days 省略時は期間の日数になります。
type RequestVacationInput struct {
	EmployeeID int64
	StartDate  *time.Time
	EndDate    *time.Time
	Days       *int
	ApprovedBy *int64
	Status     string
	Notes      *string
}

// ListRequestsInput は一覧取得時の入力です。
type ListRequestsInput struct {
	Status     *Status
	EmployeeID *int64
}

// RequestVacation は vacacion 申請を登録します。
func (s *Service) RequestVacation(ctx context.Context, in RequestVacationInput) (*Request, error) {
	if in.EmployeeID <= 0 {
		return nil, apperror.Required(EntityName, "funcionario_id")
	}
	if in.StartDate == nil {
		return nil, apperror.Required(EntityName, "fecha_inicio")
	}
	if in.EndDate == nil {
		return nil, apperror.Required(EntityName, "fecha_fin")
	}

	start := shared.NormalizeDate(*in.StartDate)
	end := shared.NormalizeDate(*in.EndDate)
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	days := InclusiveDays(start, end)
	if in.Days != nil {
		if *in.Days <= 0 {
			return nil, ErrInvalidDays
		}
		days = *in.Days
	}

	status := StatusPending
	if strings.TrimSpace(in.Status) != "" {
		var err error
		if status, err = normalizeStatus(Status(in.Status)); err != nil {
			return nil, err
		}
	}

	if in.ApprovedBy != nil && *in.ApprovedBy <= 0 {
		return nil, ErrInvalidApprover
	}

	var created *Request
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, &Request{
			EmployeeID: in.EmployeeID,
			StartDate:  start,
			EndDate:    end,
			Days:       days,
			ApprovedBy: shared.CloneInt64(in.ApprovedBy),
			Status:     status,
			Notes:      shared.TrimOptional(in.Notes),
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

// GetRequest は ID で申請を取得します。
func (s *Service) GetRequest(ctx context.Context, id int64) (*Request, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	var result *Request
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

// ListRequests は申請の一覧を取得します。
func (s *Service) ListRequests(ctx context.Context, in ListRequestsInput) ([]*Request, error) {
	filter := ListRequestsFilter{}
	if in.Status != nil {
		status, err := normalizeStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if in.EmployeeID != nil {
		if *in.EmployeeID <= 0 {
			return nil, apperror.Invalid(EntityName, "funcionario_id", "must be a positive integer")
		}
		id := *in.EmployeeID
		filter.EmployeeID = &id
	}

	var result []*Request
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

func normalizeStatus(raw Status) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(string(raw))))
	if !IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}
