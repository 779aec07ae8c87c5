package attendance

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Service は marcacion に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock shared.Clock
	tx    shared.TransactionManager
}

// UseCase は marcacion ユースケースの公開インターフェースです。
type UseCase interface {
	RecordEvent(ctx context.Context, in RecordEventInput) (*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, in ListEventsInput) ([]*Event, error)
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

// RecordEventInput は打刻登録時の入力です。Timestamp 省略時は現在時刻になります。
type RecordEventInput struct {
	EmployeeID int64
	Type       string
	Timestamp  *time.Time
	Device     string
	Location   *string
	IPAddress  *string
	Notes      *string
}

// ListEventsInput は一覧取得時の入力です。
type ListEventsInput struct {
	Date       *time.Time
	EmployeeID *int64
}

// RecordEvent は打刻を登録します。
func (s *Service) RecordEvent(ctx context.Context, in RecordEventInput) (*Event, error) {
	if in.EmployeeID <= 0 {
		return nil, apperror.Required(EntityName, "funcionario_id")
	}

	rawType, err := apperror.RequireText(EntityName, "tipo_marcacion", in.Type)
	if err != nil {
		return nil, err
	}
	eventType := Type(strings.ToUpper(rawType))
	if !IsValidType(eventType) {
		return nil, ErrInvalidType
	}

	device := DefaultDevice
	if raw := strings.TrimSpace(in.Device); raw != "" {
		device = Device(strings.ToUpper(raw))
		if !IsValidDevice(device) {
			return nil, ErrInvalidDevice
		}
	}

	ip := shared.TrimOptional(in.IPAddress)
	if ip != nil && net.ParseIP(*ip) == nil {
		return nil, ErrInvalidIP
	}
	location := shared.TrimOptional(in.Location)
	if err := apperror.CheckLengths(EntityName, apperror.TextLimit{Field: "ubicacion", Value: location, Max: 200}); err != nil {
		return nil, err
	}

	var created *Event
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		timestamp := now
		if in.Timestamp != nil {
			timestamp = in.Timestamp.UTC()
		}

		result, err := s.repo.Create(txCtx, &Event{
			EmployeeID: in.EmployeeID,
			Type:       eventType,
			Timestamp:  timestamp,
			Device:     device,
			Location:   location,
			IPAddress:  ip,
			Notes:      shared.TrimOptional(in.Notes),
			CreatedAt:  now,
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

// GetEvent は ID で打刻を取得します。
func (s *Service) GetEvent(ctx context.Context, id int64) (*Event, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	var result *Event
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

// ListEvents は打刻の一覧を取得します。
func (s *Service) ListEvents(ctx context.Context, in ListEventsInput) ([]*Event, error) {
	filter := ListEventsFilter{Date: shared.NormalizeDatePtr(in.Date)}
	if in.EmployeeID != nil {
		if *in.EmployeeID <= 0 {
			return nil, apperror.Invalid(EntityName, "funcionario_id", "must be a positive integer")
		}
		id := *in.EmployeeID
		filter.EmployeeID = &id
	}

	var result []*Event
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
