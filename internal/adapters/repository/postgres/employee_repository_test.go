package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var employeeColumns = []string{
	"funcionario_id", "codigo_unico", "tipo_identificacion", "numero_identificacion", "apellidos", "nombres",
	"correo", "telefono", "fecha_ingreso", "fecha_salida", "estado", "cargo_id", "proyecto_id", "ciudad_id",
	"genero", "estado_civil", "fecha_nacimiento", "direccion", "tipo_contrato", "jornada", "codigo_biometrico",
	"created_at", "updated_at", "nombre_cargo", "nombre_proyecto", "nombre_ciudad",
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

// employeeRow は FUNC-0001 相当の 1 行を返します。nil の列は NULL です。
func employeeRow(id int64, status string, now time.Time) []any {
	return []any{
		id, "FUNC-0001", "CEDULA", "1700000001", "Perez", "Ana",
		"ana.perez@empresa.com", strPtr("0999999991"), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), nil, status,
		int64Ptr(2), int64Ptr(1), nil,
		nil, nil, nil, nil, "INDEFINIDO", "TIEMPO_COMPLETO", nil,
		now, now, strPtr("Gerente"), strPtr("Digitalización Institucional"), nil,
	}
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestEmployeeRepository_Create(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	e := &employee.Employee{
		Code:                 "FUNC-0001",
		IdentificationType:   employee.IdentificationCedula,
		IdentificationNumber: "1700000001",
		LastName:             "Perez",
		FirstName:            "Ana",
		Email:                "ana.perez@empresa.com",
		Phone:                strPtr("0999999991"),
		HiredAt:              time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:               employee.StatusActive,
		PositionID:           int64Ptr(2),
		ProjectID:            int64Ptr(1),
		ContractType:         employee.DefaultContractType,
		Schedule:             employee.DefaultSchedule,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO funcionarios")).
		WithArgs(
			e.Code, "CEDULA", e.IdentificationNumber, e.LastName, e.FirstName, e.Email, e.Phone,
			e.HiredAt, e.TerminatedAt, "ACTIVO", e.PositionID, e.ProjectID, e.CityID,
			e.Gender, e.MaritalStatus, e.BirthDate, e.Address, e.ContractType, e.Schedule, e.BiometricCode,
			now, now,
		).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(employeeRow(7, "ACTIVO", now)...))

	created, err := repo.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 7 || created.Status != employee.StatusActive {
		t.Fatalf("unexpected created employee: %+v", created)
	}
	if created.PositionName == nil || *created.PositionName != "Gerente" {
		t.Fatalf("expected nombre_cargo to be enriched, got %v", created.PositionName)
	}
	if created.CityID != nil || created.CityName != nil {
		t.Fatalf("expected null city, got %v %v", created.CityID, created.CityName)
	}
	if created.Phone == nil || *created.Phone != "0999999991" {
		t.Fatalf("unexpected telefono %v", created.Phone)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)

	args := make([]any, 22)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO funcionarios")).
		WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "funcionarios_correo_key"})

	_, err := repo.Create(context.Background(), &employee.Employee{Status: employee.StatusActive})
	if !errors.Is(err, employee.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if field, _ := apperror.DuplicateField(err); field != "correo" {
		t.Fatalf("expected correo, got %s", field)
	}
}

func TestEmployeeRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE f.funcionario_id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(employeeColumns))

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF f")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(employeeRow(7, "ACTIVO", now)...))

	found, err := repo.FindByIDForUpdate(context.Background(), 7)
	if err != nil {
		t.Fatalf("FindByIDForUpdate returned error: %v", err)
	}
	if !found.HiredAt.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected fecha_ingreso %v", found.HiredAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List_WithFilters(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)
	now := time.Now().UTC()
	status := employee.StatusActive
	projectID := int64(1)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE f.estado = $1 AND f.proyecto_id = $2")+`\s+`+regexp.QuoteMeta("ORDER BY f.funcionario_id DESC")).
		WithArgs("ACTIVO", int64(1)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).
			AddRow(employeeRow(9, "ACTIVO", now)...).
			AddRow(employeeRow(3, "ACTIVO", now)...))

	employees, err := repo.List(context.Background(), employee.ListEmployeesFilter{Status: &status, ProjectID: &projectID})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(employees) != 2 || employees[0].ID != 9 || employees[1].ID != 3 {
		t.Fatalf("unexpected employees: %+v", employees)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List_NoFilters(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM funcionarios f")).
		WithArgs().
		WillReturnRows(pgxmock.NewRows(employeeColumns))

	employees, err := repo.List(context.Background(), employee.ListEmployeesFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if employees == nil || len(employees) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", employees)
	}
}

func TestEmployeeRepository_Update_OnlySuppliedColumns(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)
	now := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)

	changes, err := employee.ParseChanges(map[string]any{"nombres": "Luisa", "telefono": nil})
	if err != nil {
		t.Fatalf("ParseChanges returned error: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SET "nombres" = $1, "telefono" = $2, updated_at = $3`)+`\s+`+regexp.QuoteMeta("WHERE funcionario_id = $4")).
		WithArgs("Luisa", nil, now, int64(7)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(employeeRow(7, "ACTIVO", now)...))

	if _, err := repo.Update(context.Background(), 7, changes, now); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Update_RejectsUnknownColumn(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)

	_, err := repo.Update(context.Background(), 7, []employee.Change{{Field: "created_at", Value: "x"}}, time.Now())
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := repo.Update(context.Background(), 7, nil, time.Now()); !errors.Is(err, employee.ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query must be issued: %v", err)
	}
}

func TestEmployeeRepository_Update_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE funcionarios")).
		WithArgs("Luisa", now, int64(404)).
		WillReturnRows(pgxmock.NewRows(employeeColumns))

	_, err := repo.Update(context.Background(), 404, []employee.Change{{Field: employee.FieldFirstName, Value: "Luisa"}}, now)
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeRepository_Delete_SetsInactive(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SET estado = $1, updated_at = $2")).
		WithArgs("INACTIVO", now, int64(7)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(employeeRow(7, "INACTIVO", now)...))

	deleted, err := repo.Delete(context.Background(), 7, now)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.Status != employee.StatusInactive {
		t.Fatalf("expected INACTIVO, got %s", deleted.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_UsesTransactionFromContext(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)
	tm := pgdb.NewTransactionManager(mock)
	now := time.Now().UTC()

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF f")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(employeeColumns).AddRow(employeeRow(7, "ACTIVO", now)...))
	mock.ExpectCommit()

	err := tm.WithinReadWrite(context.Background(), func(txCtx context.Context) error {
		_, err := repo.FindByIDForUpdate(txCtx, 7)
		return err
	})
	if err != nil {
		t.Fatalf("WithinReadWrite returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
