package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var vacationColumns = []string{
	"vacacion_id", "funcionario_id", "fecha_inicio", "fecha_fin", "dias_totales", "aprobado_por",
	"estado", "observaciones", "created_at", "codigo_unico", "apellidos", "nombres",
	"aprobador_apellidos", "aprobador_nombres",
}

func TestVacationRepository_Create(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewVacationRepository(mock)
	now := time.Now().UTC()
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	approver := int64Ptr(1)

	req := &vacation.Request{EmployeeID: 4, StartDate: start, EndDate: end, Days: 15, ApprovedBy: approver, Status: vacation.StatusApproved, CreatedAt: now}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO vacaciones")).
		WithArgs(int64(4), start, end, 15, approver, "APROBADO", req.Notes, now).
		WillReturnRows(pgxmock.NewRows(vacationColumns).
			AddRow(int64(1), int64(4), start, end, 15, approver, "APROBADO", nil, now,
				strPtr("FUNC-0004"), strPtr("Apellido4"), strPtr("Nombre4"), strPtr("Apellido1"), strPtr("Nombre1")))

	created, err := repo.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Days != 15 || created.Status != vacation.StatusApproved || !created.EndDate.Equal(end) {
		t.Fatalf("unexpected vacacion: %+v", created)
	}
	if created.ApproverLastName == nil || *created.ApproverLastName != "Apellido1" {
		t.Fatalf("expected approver enrichment, got %v", created.ApproverLastName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVacationRepository_Create_UnknownApprover(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewVacationRepository(mock)

	args := make([]any, 8)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO vacaciones")).
		WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "vacaciones_aprobado_por_fkey"})

	_, err := repo.Create(context.Background(), &vacation.Request{EmployeeID: 4, Days: 1, Status: vacation.StatusPending})
	if !errors.Is(err, vacation.ErrInvalidApprover) {
		t.Fatalf("expected ErrInvalidApprover, got %v", err)
	}
}

func TestVacationRepository_List_Filters(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewVacationRepository(mock)
	status := vacation.StatusPending
	employeeID := int64(4)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE v.estado = $1 AND v.funcionario_id = $2")+`\s+`+regexp.QuoteMeta("ORDER BY v.fecha_inicio DESC, v.vacacion_id DESC")).
		WithArgs("PENDIENTE", int64(4)).
		WillReturnRows(pgxmock.NewRows(vacationColumns))

	requests, err := repo.List(context.Background(), vacation.ListRequestsFilter{Status: &status, EmployeeID: &employeeID})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("expected no vacaciones, got %d", len(requests))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVacationRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewVacationRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE v.vacacion_id = $1")).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows(vacationColumns))

	if _, err := repo.FindByID(context.Background(), 8); !errors.Is(err, vacation.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}
