package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

// employeeTableColumns は funcionarios の全列です。INSERT / UPDATE の RETURNING で使用します。
const employeeTableColumns = `funcionario_id, codigo_unico, tipo_identificacion, numero_identificacion, apellidos, nombres,
               correo, telefono, fecha_ingreso, fecha_salida, estado, cargo_id, proyecto_id, ciudad_id, genero,
               estado_civil, fecha_nacimiento, direccion, tipo_contrato, jornada, codigo_biometrico, created_at, updated_at`

// employeeSelect は f を funcionarios (または同じ列を持つ CTE) とした読み取り列と表示名の結合です。
const employeeSelect = `
        SELECT f.funcionario_id, f.codigo_unico, f.tipo_identificacion, f.numero_identificacion, f.apellidos, f.nombres,
               f.correo, f.telefono, f.fecha_ingreso, f.fecha_salida, f.estado, f.cargo_id, f.proyecto_id, f.ciudad_id,
               f.genero, f.estado_civil, f.fecha_nacimiento, f.direccion, f.tipo_contrato, f.jornada, f.codigo_biometrico,
               f.created_at, f.updated_at,
               c.nombre_cargo, p.nombre_proyecto, ci.nombre_ciudad`

const employeeJoins = `
          LEFT JOIN cargos c ON c.cargo_id = f.cargo_id
          LEFT JOIN proyectos p ON p.proyecto_id = f.proyecto_id
          LEFT JOIN ciudades ci ON ci.ciudad_id = f.ciudad_id`

// EmployeeRepository は PostgreSQL を利用した funcionario 永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は funcionario を新規作成し、表示名を補完したレコードを返します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH inserted AS (
            INSERT INTO funcionarios (codigo_unico, tipo_identificacion, numero_identificacion, apellidos, nombres,
                                      correo, telefono, fecha_ingreso, fecha_salida, estado, cargo_id, proyecto_id,
                                      ciudad_id, genero, estado_civil, fecha_nacimiento, direccion, tipo_contrato,
                                      jornada, codigo_biometrico, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
            RETURNING `+employeeTableColumns+`
        )`+employeeSelect+`
          FROM inserted f`+employeeJoins,
		e.Code,
		string(e.IdentificationType),
		e.IdentificationNumber,
		e.LastName,
		e.FirstName,
		e.Email,
		e.Phone,
		e.HiredAt,
		e.TerminatedAt,
		string(e.Status),
		e.PositionID,
		e.ProjectID,
		e.CityID,
		e.Gender,
		e.MaritalStatus,
		e.BirthDate,
		e.Address,
		e.ContractType,
		e.Schedule,
		e.BiometricCode,
		e.CreatedAt,
		e.UpdatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translatePgError(err, employee.EntityName, employee.ErrEmployeeNotFound)
	}
	return created, nil
}

// FindByID は ID で funcionario を取得します。INACTIVO の funcionario も返します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	return r.findByID(ctx, id, "")
}

// FindByIDForUpdate は funcionarios の行を FOR UPDATE で確保して取得します。
func (r *EmployeeRepository) FindByIDForUpdate(ctx context.Context, id int64) (*employee.Employee, error) {
	return r.findByID(ctx, id, `
         FOR UPDATE OF f`)
}

func (r *EmployeeRepository) findByID(ctx context.Context, id int64, lock string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, employeeSelect+`
          FROM funcionarios f`+employeeJoins+`
         WHERE f.funcionario_id = $1`+lock, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translatePgError(err, employee.EntityName, employee.ErrEmployeeNotFound)
	}
	return found, nil
}

// List は条件に一致する funcionario を funcionario_id の降順で返します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, error) {
	args := make([]any, 0, 2)
	conditions := make([]string, 0, 2)

	if filter.Status != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "f.estado = "+placeholder)
		args = append(args, string(*filter.Status))
	}
	if filter.ProjectID != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "f.proyecto_id = "+placeholder)
		args = append(args, *filter.ProjectID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = `
         WHERE ` + strings.Join(conditions, " AND ")
	}

	query := employeeSelect + `
          FROM funcionarios f` + employeeJoins + whereClause + `
         ORDER BY f.funcionario_id DESC`

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err, employee.EntityName, nil)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translatePgError(err, employee.EntityName, nil)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, employee.EntityName, nil)
	}

	return employees, nil
}

// Update は changes に含まれる列と updated_at のみを書き換えます。
// 列名は許可リストで検証した上で識別子としてエスケープします。
func (r *EmployeeRepository) Update(ctx context.Context, id int64, changes []employee.Change, updatedAt time.Time) (*employee.Employee, error) {
	if len(changes) == 0 {
		return nil, employee.ErrEmptyUpdate
	}

	args := make([]any, 0, len(changes)+2)
	assignments := make([]string, 0, len(changes)+1)
	for _, c := range changes {
		if !employee.IsMutable(c.Field) {
			return nil, apperror.Invalid(employee.EntityName, string(c.Field), "is not an updatable field")
		}
		args = append(args, c.Value)
		assignments = append(assignments, pgx.Identifier{string(c.Field)}.Sanitize()+" = $"+strconv.Itoa(len(args)))
	}
	args = append(args, updatedAt)
	assignments = append(assignments, "updated_at = $"+strconv.Itoa(len(args)))
	args = append(args, id)
	idPlaceholder := "$" + strconv.Itoa(len(args))

	query := `
        WITH updated AS (
            UPDATE funcionarios
               SET ` + strings.Join(assignments, ", ") + `
             WHERE funcionario_id = ` + idPlaceholder + `
            RETURNING ` + employeeTableColumns + `
        )` + employeeSelect + `
          FROM updated f` + employeeJoins

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	updated, err := scanEmployee(exec.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translatePgError(err, employee.EntityName, employee.ErrEmployeeNotFound)
	}
	return updated, nil
}

// Delete は funcionario を INACTIVO に更新します。行は削除しません。
func (r *EmployeeRepository) Delete(ctx context.Context, id int64, updatedAt time.Time) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH updated AS (
            UPDATE funcionarios
               SET estado = $1, updated_at = $2
             WHERE funcionario_id = $3
            RETURNING `+employeeTableColumns+`
        )`+employeeSelect+`
          FROM updated f`+employeeJoins,
		string(employee.StatusInactive), updatedAt, id)

	deleted, err := scanEmployee(row)
	if err != nil {
		return nil, translatePgError(err, employee.EntityName, employee.ErrEmployeeNotFound)
	}
	return deleted, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		e        employee.Employee
		idType   string
		status   string
		hiredAt  time.Time
		position *string
		project  *string
		city     *string
	)

	if err := row.Scan(
		&e.ID,
		&e.Code,
		&idType,
		&e.IdentificationNumber,
		&e.LastName,
		&e.FirstName,
		&e.Email,
		&e.Phone,
		&hiredAt,
		&e.TerminatedAt,
		&status,
		&e.PositionID,
		&e.ProjectID,
		&e.CityID,
		&e.Gender,
		&e.MaritalStatus,
		&e.BirthDate,
		&e.Address,
		&e.ContractType,
		&e.Schedule,
		&e.BiometricCode,
		&e.CreatedAt,
		&e.UpdatedAt,
		&position,
		&project,
		&city,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	e.IdentificationType = employee.IdentificationType(idType)
	e.Status = employee.Status(status)
	e.HiredAt = dateOnly(hiredAt)
	e.TerminatedAt = dateOnlyPtr(e.TerminatedAt)
	e.BirthDate = dateOnlyPtr(e.BirthDate)
	e.PositionName, e.ProjectName, e.CityName = position, project, city
	return &e, nil
}

// dateOnly は DATE 列の値を UTC の日付に揃えます。
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}
