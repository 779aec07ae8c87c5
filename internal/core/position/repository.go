package position

import "context"

// Repository は cargo の永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, position *Position) (*Position, error)
	FindByID(ctx context.Context, id int64) (*Position, error)
	// List は cargo_id の昇順で返します。
	List(ctx context.Context) ([]*Position, error)
}
