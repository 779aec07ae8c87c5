package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

const attendanceTableColumns = `marcacion_id, funcionario_id, tipo_marcacion, fecha_hora, dispositivo, ubicacion, ip_address, observaciones, created_at`

const attendanceSelect = `
        SELECT m.marcacion_id, m.funcionario_id, m.tipo_marcacion, m.fecha_hora, m.dispositivo, m.ubicacion,
               m.ip_address, m.observaciones, m.created_at,
               f.codigo_unico, f.apellidos, f.nombres`

// AttendanceRepository は PostgreSQL を利用した marcacion 永続化の実装です。
type AttendanceRepository struct {
	pool pgdb.Queryer
}

// NewAttendanceRepository は AttendanceRepository を生成します。
func NewAttendanceRepository(pool pgdb.Queryer) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create は marcacion を追記します。
func (r *AttendanceRepository) Create(ctx context.Context, e *attendance.Event) (*attendance.Event, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH inserted AS (
            INSERT INTO marcaciones (funcionario_id, tipo_marcacion, fecha_hora, dispositivo, ubicacion, ip_address, observaciones, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING `+attendanceTableColumns+`
        )`+attendanceSelect+`
          FROM inserted m
          LEFT JOIN funcionarios f ON f.funcionario_id = m.funcionario_id`,
		e.EmployeeID, string(e.Type), e.Timestamp, string(e.Device), e.Location, e.IPAddress, e.Notes, e.CreatedAt)

	created, err := scanAttendance(row)
	if err != nil {
		return nil, translatePgError(err, attendance.EntityName, attendance.ErrEventNotFound)
	}
	return created, nil
}

// FindByID は ID で marcacion を取得します。
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*attendance.Event, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, attendanceSelect+`
          FROM marcaciones m
          LEFT JOIN funcionarios f ON f.funcionario_id = m.funcionario_id
         WHERE m.marcacion_id = $1`, id)

	found, err := scanAttendance(row)
	if err != nil {
		return nil, translatePgError(err, attendance.EntityName, attendance.ErrEventNotFound)
	}
	return found, nil
}

// List は marcacion を fecha_hora の降順で取得します。
func (r *AttendanceRepository) List(ctx context.Context, filter attendance.ListEventsFilter) ([]*attendance.Event, error) {
	args := make([]any, 0, 2)
	conditions := make([]string, 0, 2)

	if filter.Date != nil {
		args = append(args, filter.Date.Format(shared.DateLayout))
		conditions = append(conditions, "DATE(m.fecha_hora) = $"+strconv.Itoa(len(args))+"::date")
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, "m.funcionario_id = $"+strconv.Itoa(len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = `
         WHERE ` + strings.Join(conditions, " AND ")
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, attendanceSelect+`
          FROM marcaciones m
          LEFT JOIN funcionarios f ON f.funcionario_id = m.funcionario_id`+whereClause+`
         ORDER BY m.fecha_hora DESC, m.marcacion_id DESC`, args...)
	if err != nil {
		return nil, translatePgError(err, attendance.EntityName, nil)
	}
	defer rows.Close()

	events := make([]*attendance.Event, 0)
	for rows.Next() {
		ev, err := scanAttendance(rows)
		if err != nil {
			return nil, translatePgError(err, attendance.EntityName, nil)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, attendance.EntityName, nil)
	}
	return events, nil
}

func scanAttendance(row pgx.Row) (*attendance.Event, error) {
	var (
		e      attendance.Event
		kind   string
		device string
	)
	if err := row.Scan(
		&e.ID,
		&e.EmployeeID,
		&kind,
		&e.Timestamp,
		&device,
		&e.Location,
		&e.IPAddress,
		&e.Notes,
		&e.CreatedAt,
		&e.EmployeeCode,
		&e.EmployeeLastName,
		&e.EmployeeFirstName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrEventNotFound
		}
		return nil, err
	}
	e.Type = attendance.Type(kind)
	e.Device = attendance.Device(device)
	return &e, nil
}
