package project

import "context"

// Repository は proyecto の永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, project *Project) (*Project, error)
	FindByID(ctx context.Context, id int64) (*Project, error)
	// List は proyecto_id の昇順で返します。
	List(ctx context.Context, filter ListProjectsFilter) ([]*Project, error)
}

// ListProjectsFilter は一覧取得時の検索条件を表します。
type ListProjectsFilter struct {
	Status *Status
}
