package city

import "context"

// Repository は ciudad の永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, city *City) (*City, error)
	FindByID(ctx context.Context, id int64) (*City, error)
	// List は nombre_ciudad の昇順で返します。
	List(ctx context.Context) ([]*City, error)
}
