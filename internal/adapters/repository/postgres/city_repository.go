package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

// CityRepository は PostgreSQL を利用した ciudad 永続化の実装です。
type CityRepository struct {
	pool pgdb.Queryer
}

// NewCityRepository は CityRepository を生成します。
func NewCityRepository(pool pgdb.Queryer) *CityRepository {
	return &CityRepository{pool: pool}
}

// Create は ciudad を新規作成します。
func (r *CityRepository) Create(ctx context.Context, c *city.City) (*city.City, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO ciudades (nombre_ciudad, codigo_postal, provincia, pais, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ciudad_id, nombre_ciudad, codigo_postal, provincia, pais, created_at
    `, c.Name, c.PostalCode, c.Province, c.Country, c.CreatedAt)

	created, err := scanCity(row)
	if err != nil {
		return nil, translatePgError(err, city.EntityName, city.ErrCityNotFound)
	}
	return created, nil
}

// FindByID は ID で ciudad を取得します。
func (r *CityRepository) FindByID(ctx context.Context, id int64) (*city.City, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT ciudad_id, nombre_ciudad, codigo_postal, provincia, pais, created_at
          FROM ciudades
         WHERE ciudad_id = $1
    `, id)

	found, err := scanCity(row)
	if err != nil {
		return nil, translatePgError(err, city.EntityName, city.ErrCityNotFound)
	}
	return found, nil
}

// List は ciudad を nombre_ciudad の昇順で取得します。
func (r *CityRepository) List(ctx context.Context) ([]*city.City, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT ciudad_id, nombre_ciudad, codigo_postal, provincia, pais, created_at
          FROM ciudades
         ORDER BY nombre_ciudad ASC, ciudad_id ASC
    `)
	if err != nil {
		return nil, translatePgError(err, city.EntityName, nil)
	}
	defer rows.Close()

	cities := make([]*city.City, 0)
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, translatePgError(err, city.EntityName, nil)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, city.EntityName, nil)
	}
	return cities, nil
}

func scanCity(row pgx.Row) (*city.City, error) {
	var c city.City
	if err := row.Scan(&c.ID, &c.Name, &c.PostalCode, &c.Province, &c.Country, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, city.ErrCityNotFound
		}
		return nil, err
	}
	return &c, nil
}
