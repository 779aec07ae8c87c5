package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

// PositionRepository は PostgreSQL を利用した cargo 永続化の実装です。
type PositionRepository struct {
	pool pgdb.Queryer
}

// NewPositionRepository は PositionRepository を生成します。
func NewPositionRepository(pool pgdb.Queryer) *PositionRepository {
	return &PositionRepository{pool: pool}
}

// Create は cargo を新規作成します。
func (r *PositionRepository) Create(ctx context.Context, p *position.Position) (*position.Position, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO cargos (codigo_cargo, nombre_cargo, nivel, salario_base, descripcion, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING cargo_id, codigo_cargo, nombre_cargo, nivel, salario_base, descripcion, created_at
    `, p.Code, p.Name, p.Level, p.BaseSalary, p.Description, p.CreatedAt)

	created, err := scanPosition(row)
	if err != nil {
		return nil, translatePgError(err, position.EntityName, position.ErrPositionNotFound)
	}
	return created, nil
}

// FindByID は ID で cargo を取得します。
func (r *PositionRepository) FindByID(ctx context.Context, id int64) (*position.Position, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT cargo_id, codigo_cargo, nombre_cargo, nivel, salario_base, descripcion, created_at
          FROM cargos
         WHERE cargo_id = $1
    `, id)

	found, err := scanPosition(row)
	if err != nil {
		return nil, translatePgError(err, position.EntityName, position.ErrPositionNotFound)
	}
	return found, nil
}

// List は cargo を cargo_id の昇順で取得します。
func (r *PositionRepository) List(ctx context.Context) ([]*position.Position, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT cargo_id, codigo_cargo, nombre_cargo, nivel, salario_base, descripcion, created_at
          FROM cargos
         ORDER BY cargo_id ASC
    `)
	if err != nil {
		return nil, translatePgError(err, position.EntityName, nil)
	}
	defer rows.Close()

	positions := make([]*position.Position, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, translatePgError(err, position.EntityName, nil)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, position.EntityName, nil)
	}
	return positions, nil
}

func scanPosition(row pgx.Row) (*position.Position, error) {
	var p position.Position
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Level, &p.BaseSalary, &p.Description, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, position.ErrPositionNotFound
		}
		return nil, err
	}
	return &p, nil
}
