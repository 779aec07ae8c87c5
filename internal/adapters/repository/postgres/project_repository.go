package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

const projectColumns = `proyecto_id, codigo_proyecto, nombre_proyecto, descripcion, presupuesto, fecha_inicio, fecha_fin, estado, created_at`

// ProjectRepository は PostgreSQL を利用した proyecto 永続化の実装です。
type ProjectRepository struct {
	pool pgdb.Queryer
}

// NewProjectRepository は ProjectRepository を生成します。
func NewProjectRepository(pool pgdb.Queryer) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

// Create は proyecto を新規作成します。
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO proyectos (codigo_proyecto, nombre_proyecto, descripcion, presupuesto, fecha_inicio, fecha_fin, estado, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+projectColumns,
		p.Code, p.Name, p.Description, p.Budget, p.StartDate, p.EndDate, string(p.Status), p.CreatedAt)

	created, err := scanProject(row)
	if err != nil {
		return nil, translatePgError(err, project.EntityName, project.ErrProjectNotFound)
	}
	return created, nil
}

// FindByID は ID で proyecto を取得します。
func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*project.Project, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+projectColumns+`
          FROM proyectos
         WHERE proyecto_id = $1
    `, id)

	found, err := scanProject(row)
	if err != nil {
		return nil, translatePgError(err, project.EntityName, project.ErrProjectNotFound)
	}
	return found, nil
}

// List は proyecto を proyecto_id の昇順で取得します。
func (r *ProjectRepository) List(ctx context.Context, filter project.ListProjectsFilter) ([]*project.Project, error) {
	args := make([]any, 0, 1)
	whereClause := ""
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		whereClause = `
         WHERE estado = $` + strconv.Itoa(len(args))
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT `+projectColumns+`
          FROM proyectos`+whereClause+`
         ORDER BY proyecto_id ASC
    `, args...)
	if err != nil {
		return nil, translatePgError(err, project.EntityName, nil)
	}
	defer rows.Close()

	projects := make([]*project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, translatePgError(err, project.EntityName, nil)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, project.EntityName, nil)
	}
	return projects, nil
}

func scanProject(row pgx.Row) (*project.Project, error) {
	var (
		p      project.Project
		status string
	)
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.Budget, &p.StartDate, &p.EndDate, &status, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrProjectNotFound
		}
		return nil, err
	}
	p.Status = project.Status(status)
	p.StartDate = dateOnlyPtr(p.StartDate)
	p.EndDate = dateOnlyPtr(p.EndDate)
	return &p, nil
}
