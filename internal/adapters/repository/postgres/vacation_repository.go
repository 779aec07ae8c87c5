package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

const vacationTableColumns = `vacacion_id, funcionario_id, fecha_inicio, fecha_fin, dias_totales, aprobado_por, estado, observaciones, created_at`

const vacationSelect = `
        SELECT v.vacacion_id, v.funcionario_id, v.fecha_inicio, v.fecha_fin, v.dias_totales, v.aprobado_por,
               v.estado, v.observaciones, v.created_at,
               f.codigo_unico, f.apellidos, f.nombres,
               a.apellidos, a.nombres`

const vacationJoins = `
          LEFT JOIN funcionarios f ON f.funcionario_id = v.funcionario_id
          LEFT JOIN funcionarios a ON a.funcionario_id = v.aprobado_por`

// VacationRepository は PostgreSQL を利用した vacacion 永続化の実装です。
type VacationRepository struct {
	pool pgdb.Queryer
}

// NewVacationRepository は VacationRepository を生成します。
func NewVacationRepository(pool pgdb.Queryer) *VacationRepository {
	return &VacationRepository{pool: pool}
}

// Create は vacacion 申請を新規作成します。
func (r *VacationRepository) Create(ctx context.Context, v *vacation.Request) (*vacation.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH inserted AS (
            INSERT INTO vacaciones (funcionario_id, fecha_inicio, fecha_fin, dias_totales, aprobado_por, estado, observaciones, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING `+vacationTableColumns+`
        )`+vacationSelect+`
          FROM inserted v`+vacationJoins,
		v.EmployeeID, v.StartDate, v.EndDate, v.Days, v.ApprovedBy, string(v.Status), v.Notes, v.CreatedAt)

	created, err := scanVacation(row)
	if err != nil {
		return nil, translatePgError(err, vacation.EntityName, vacation.ErrRequestNotFound)
	}
	return created, nil
}

// FindByID は ID で vacacion 申請を取得します。
func (r *VacationRepository) FindByID(ctx context.Context, id int64) (*vacation.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, vacationSelect+`
          FROM vacaciones v`+vacationJoins+`
         WHERE v.vacacion_id = $1`, id)

	found, err := scanVacation(row)
	if err != nil {
		return nil, translatePgError(err, vacation.EntityName, vacation.ErrRequestNotFound)
	}
	return found, nil
}

// List は vacacion 申請を fecha_inicio の降順で取得します。
func (r *VacationRepository) List(ctx context.Context, filter vacation.ListRequestsFilter) ([]*vacation.Request, error) {
	args := make([]any, 0, 2)
	conditions := make([]string, 0, 2)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "v.estado = $"+strconv.Itoa(len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, "v.funcionario_id = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = `
         WHERE ` + strings.Join(conditions, " AND ")
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, vacationSelect+`
          FROM vacaciones v`+vacationJoins+whereClause+`
         ORDER BY v.fecha_inicio DESC, v.vacacion_id DESC`, args...)
	if err != nil {
		return nil, translatePgError(err, vacation.EntityName, nil)
	}
	defer rows.Close()

	requests := make([]*vacation.Request, 0)
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, translatePgError(err, vacation.EntityName, nil)
		}
		requests = append(requests, v)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, vacation.EntityName, nil)
	}
	return requests, nil
}

func scanVacation(row pgx.Row) (*vacation.Request, error) {
	var (
		v      vacation.Request
		start  time.Time
		end    time.Time
		status string
	)
	if err := row.Scan(
		&v.ID,
		&v.EmployeeID,
		&start,
		&end,
		&v.Days,
		&v.ApprovedBy,
		&status,
		&v.Notes,
		&v.CreatedAt,
		&v.EmployeeCode,
		&v.EmployeeLastName,
		&v.EmployeeFirstName,
		&v.ApproverLastName,
		&v.ApproverFirstName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vacation.ErrRequestNotFound
		}
		return nil, err
	}
	v.StartDate = dateOnly(start)
	v.EndDate = dateOnly(end)
	v.Status = vacation.Status(status)
	return &v, nil
}
