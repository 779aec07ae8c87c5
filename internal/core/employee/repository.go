package employee

import (
	"context"
	"time"
)

// Repository は funcionario 永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	// FindByIDForUpdate は同一トランザクション内の更新のために行を確保して取得します。
	FindByIDForUpdate(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]*Employee, error)
	// Update は changes に含まれる列のみを書き換えます。
	Update(ctx context.Context, id int64, changes []Change, updatedAt time.Time) (*Employee, error)
	// Delete は funcionario を退役させます。永続ストアは行を残して INACTIVO にし、
	// デモストアは物理削除したうえで INACTIVO 状態の最終レコードを返します。
	Delete(ctx context.Context, id int64, updatedAt time.Time) (*Employee, error)
}

// ListEmployeesFilter は一覧取得用フィルタです。指定された条件は AND で結合されます。
type ListEmployeesFilter struct {
	Status    *Status
	ProjectID *int64
}
