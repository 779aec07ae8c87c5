package attendance

import (
	"context"
	"time"
)

// Repository は marcacion の永続化を行うインターフェースです。
type Repository interface {
	// Create は存在しない funcionario を参照する場合 ErrInvalidEmployee を返します。
	Create(ctx context.Context, event *Event) (*Event, error)
	FindByID(ctx context.Context, id int64) (*Event, error)
	// List は fecha_hora の降順で返します。
	List(ctx context.Context, filter ListEventsFilter) ([]*Event, error)
}

// ListEventsFilter は一覧取得時の検索条件です。Date は fecha_hora の日付部分と比較されます。
type ListEventsFilter struct {
	Date       *time.Time
	EmployeeID *int64
}
