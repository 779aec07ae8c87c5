package vacation

import "context"

// Repository は vacacion 申請の永続化を行うインターフェースです。
type Repository interface {
	// Create は存在しない funcionario を参照する場合 ErrInvalidEmployee または ErrInvalidApprover を返します。
	Create(ctx context.Context, request *Request) (*Request, error)
	FindByID(ctx context.Context, id int64) (*Request, error)
	// List は fecha_inicio の降順で返します。
	List(ctx context.Context, filter ListRequestsFilter) ([]*Request, error)
}

// ListRequestsFilter は一覧取得時の検索条件です。
type ListRequestsFilter struct {
	Status     *Status
	EmployeeID *int64
}
