package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/history"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Service は funcionario に関するユースケースをまとめます。
// 変更系の操作は対象行の取得・更新・履歴追記を 1 つのトランザクションで行います。
type Service struct {
	repo    Repository
	history history.Repository
	clock   shared.Clock
	tx      shared.TransactionManager
}

// UseCase は funcionario ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) (*Employee, error)
}

// NewService は Service を生成します。hist が nil の場合は履歴を記録しません。
func NewService(repo Repository, hist history.Repository, clock shared.Clock, tx shared.TransactionManager) *Service {
	if hist == nil {
		hist = history.Discard()
	}
	if clock == nil {
		clock = shared.RealClock()
	}
	if tx == nil {
		tx = shared.NoopTransactionManager()
	}
	return &Service{repo: repo, history: hist, clock: clock, tx: tx}
}

// CreateEmployeeInput は funcionario 作成時の入力です。
type CreateEmployeeInput struct {
	Code                 string
	IdentificationType   string
	IdentificationNumber string
	LastName             string
	FirstName            string
	Email                string
	Phone                *string
	HiredAt              *time.Time
	TerminatedAt         *time.Time
	Status               string
	PositionID           *int64
	ProjectID            *int64
	CityID               *int64
	Gender               *string
	MaritalStatus        *string
	BirthDate            *time.Time
	Address              *string
	ContractType         string
	Schedule             string
	BiometricCode        *string
	Actor                string
}

// GetEmployeeInput は funcionario 取得時の入力です。
type GetEmployeeInput struct {
	ID int64
}

// ListEmployeesInput は一覧取得時の入力です。
type ListEmployeesInput struct {
	Status    *Status
	ProjectID *int64
}

// UpdateEmployeeInput は部分更新の入力です。Fields のキーは列名です。
type UpdateEmployeeInput struct {
	ID     int64
	Fields map[string]any
	Actor  string
}

// DeleteEmployeeInput は funcionario 削除時の入力です。
type DeleteEmployeeInput struct {
	ID    int64
	Actor string
}

// CreateEmployee は新しい funcionario を作成し、CREACION の履歴を追記します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	emp, err := buildEmployee(in)
	if err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		emp.CreatedAt = now
		emp.UpdatedAt = now

		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		after, err := Snapshot(result)
		if err != nil {
			return fmt.Errorf("employee: snapshot: %w", err)
		}

		if err := s.history.Append(txCtx, &history.Entry{
			EmployeeID: result.ID,
			Type:       history.ChangeCreate,
			Field:      string(history.ChangeCreate),
			After:      after,
			Actor:      history.ActorOrDefault(in.Actor),
			ChangedAt:  now,
		}); err != nil {
			return fmt.Errorf("employee: append history: %w", err)
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// GetEmployee は funcionario を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidID
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
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

// ListEmployees は funcionario の一覧を funcionario_id の降順で取得します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error) {
	filter := ListEmployeesFilter{}

	if in.Status != nil {
		status := Status(strings.ToUpper(strings.TrimSpace(string(*in.Status))))
		if !IsValidStatus(status) {
			return nil, ErrInvalidStatus
		}
		filter.Status = &status
	}

	if in.ProjectID != nil {
		if *in.ProjectID <= 0 {
			return nil, apperror.Invalid(EntityName, string(FieldProjectID), "must be a positive integer")
		}
		id := *in.ProjectID
		filter.ProjectID = &id
	}

	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	return employees, nil
}

// UpdateEmployee は指定された列のみを更新し、更新前後のスナップショットを履歴に追記します。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidID
	}

	changes, err := ParseChanges(in.Fields)
	if err != nil {
		return nil, err
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByIDForUpdate(txCtx, in.ID)
		if err != nil {
			return err
		}

		candidate := existing.Clone()
		ApplyChanges(candidate, changes)
		if err := validateEmploymentPeriod(candidate.HiredAt, candidate.TerminatedAt); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Update(txCtx, in.ID, changes, now)
		if err != nil {
			return err
		}

		if err := s.appendChange(txCtx, history.ChangeUpdate, ChangedFields(changes), existing, result, in.Actor, now); err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee は funcionario を INACTIVO に遷移させ、更新後のレコードを返します。
// 既に INACTIVO の場合も成功し、履歴は追記されます。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) (*Employee, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidID
	}

	var deleted *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByIDForUpdate(txCtx, in.ID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Delete(txCtx, in.ID, now)
		if err != nil {
			return err
		}

		if err := s.appendChange(txCtx, history.ChangeDelete, string(FieldStatus), existing, result, in.Actor, now); err != nil {
			return err
		}

		deleted = result
		return nil
	}); err != nil {
		return nil, err
	}

	return deleted, nil
}

func (s *Service) appendChange(ctx context.Context, kind history.ChangeType, field string, before, after *Employee, actor string, at time.Time) error {
	beforeJSON, err := Snapshot(before)
	if err != nil {
		return fmt.Errorf("employee: snapshot: %w", err)
	}
	afterJSON, err := Snapshot(after)
	if err != nil {
		return fmt.Errorf("employee: snapshot: %w", err)
	}

	if err := s.history.Append(ctx, &history.Entry{
		EmployeeID: before.ID,
		Type:       kind,
		Field:      field,
		Before:     beforeJSON,
		After:      afterJSON,
		Actor:      history.ActorOrDefault(actor),
		ChangedAt:  at,
	}); err != nil {
		return fmt.Errorf("employee: append history: %w", err)
	}
	return nil
}

func buildEmployee(in CreateEmployeeInput) (*Employee, error) {
	code, err := apperror.RequireText(EntityName, string(FieldCode), in.Code)
	if err != nil {
		return nil, err
	}
	idNumber, err := apperror.RequireText(EntityName, string(FieldIdentificationNumber), in.IdentificationNumber)
	if err != nil {
		return nil, err
	}
	lastName, err := apperror.RequireText(EntityName, string(FieldLastName), in.LastName)
	if err != nil {
		return nil, err
	}
	firstName, err := apperror.RequireText(EntityName, string(FieldFirstName), in.FirstName)
	if err != nil {
		return nil, err
	}
	rawEmail, err := apperror.RequireText(EntityName, string(FieldEmail), in.Email)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	if in.HiredAt == nil {
		return nil, apperror.Required(EntityName, string(FieldHiredAt))
	}

	emp := &Employee{
		Code:                 code,
		IdentificationType:   DefaultIdentificationType,
		IdentificationNumber: idNumber,
		LastName:             lastName,
		FirstName:            firstName,
		Email:                email,
		Phone:                shared.TrimOptional(in.Phone),
		HiredAt:              shared.NormalizeDate(*in.HiredAt),
		TerminatedAt:         shared.NormalizeDatePtr(in.TerminatedAt),
		Status:               DefaultStatus,
		Gender:               shared.TrimOptional(in.Gender),
		MaritalStatus:        shared.TrimOptional(in.MaritalStatus),
		BirthDate:            shared.NormalizeDatePtr(in.BirthDate),
		Address:              shared.TrimOptional(in.Address),
		ContractType:         DefaultContractType,
		Schedule:             DefaultSchedule,
		BiometricCode:        shared.TrimOptional(in.BiometricCode),
	}
	if err := validateLengths(emp); err != nil {
		return nil, err
	}

	// 列挙値と参照は部分更新と同じ規則で検証します。
	optional := map[string]any{}
	if v := strings.TrimSpace(in.IdentificationType); v != "" {
		optional[string(FieldIdentificationType)] = v
	}
	if v := strings.TrimSpace(in.Status); v != "" {
		optional[string(FieldStatus)] = v
	}
	if v := strings.TrimSpace(in.ContractType); v != "" {
		optional[string(FieldContractType)] = v
	}
	if v := strings.TrimSpace(in.Schedule); v != "" {
		optional[string(FieldSchedule)] = v
	}
	if in.PositionID != nil {
		optional[string(FieldPositionID)] = *in.PositionID
	}
	if in.ProjectID != nil {
		optional[string(FieldProjectID)] = *in.ProjectID
	}
	if in.CityID != nil {
		optional[string(FieldCityID)] = *in.CityID
	}
	if len(optional) > 0 {
		changes, err := ParseChanges(optional)
		if err != nil {
			return nil, err
		}
		ApplyChanges(emp, changes)
	}

	if err := validateEmploymentPeriod(emp.HiredAt, emp.TerminatedAt); err != nil {
		return nil, err
	}

	return emp, nil
}

func validateEmploymentPeriod(hiredAt time.Time, terminatedAt *time.Time) error {
	if terminatedAt == nil {
		return nil
	}
	if terminatedAt.Before(hiredAt) {
		return ErrInvalidDateRange
	}
	return nil
}
