package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var (
	positionColumns    = []string{"cargo_id", "codigo_cargo", "nombre_cargo", "nivel", "salario_base", "descripcion", "created_at"}
	projectColumnNames = []string{"proyecto_id", "codigo_proyecto", "nombre_proyecto", "descripcion", "presupuesto", "fecha_inicio", "fecha_fin", "estado", "created_at"}
	cityColumns        = []string{"ciudad_id", "nombre_ciudad", "codigo_postal", "provincia", "pais", "created_at"}
)

func intPtr(v int) *int { return &v }

func float64Ptr(v float64) *float64 { return &v }

func TestPositionRepository_CreateAndList(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewPositionRepository(mock)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	p := &position.Position{Code: "ADM-002", Name: "Gerente", Level: intPtr(2), BaseSalary: float64Ptr(3500), CreatedAt: now}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO cargos")).
		WithArgs("ADM-002", "Gerente", p.Level, p.BaseSalary, p.Description, now).
		WillReturnRows(pgxmock.NewRows(positionColumns).AddRow(int64(2), "ADM-002", "Gerente", intPtr(2), float64Ptr(3500), nil, now))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY cargo_id ASC")).
		WithArgs().
		WillReturnRows(pgxmock.NewRows(positionColumns).
			AddRow(int64(1), "ADM-001", "Director General", intPtr(1), float64Ptr(5000), nil, now).
			AddRow(int64(2), "ADM-002", "Gerente", intPtr(2), float64Ptr(3500), nil, now))

	created, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 2 || created.Level == nil || *created.Level != 2 || *created.BaseSalary != 3500 {
		t.Fatalf("unexpected cargo: %+v", created)
	}

	positions, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(positions) != 2 || positions[0].Code != "ADM-001" {
		t.Fatalf("unexpected cargos: %+v", positions)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPositionRepository_Create_DuplicateCode(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewPositionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO cargos")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "cargos_codigo_cargo_key"})

	_, err := repo.Create(context.Background(), &position.Position{Code: "ADM-001", Name: "Otro"})
	if field, ok := apperror.DuplicateField(err); !ok || field != "codigo_cargo" {
		t.Fatalf("expected duplicate codigo_cargo, got %v", err)
	}
}

func TestPositionRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewPositionRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE cargo_id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(positionColumns))

	if _, err := repo.FindByID(context.Background(), 9); !errors.Is(err, position.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}

func TestProjectRepository_ListByStatus(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewProjectRepository(mock)
	now := time.Now().UTC()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	status := project.StatusActive

	mock.ExpectQuery(regexp.QuoteMeta("WHERE estado = $1")+`\s+`+regexp.QuoteMeta("ORDER BY proyecto_id ASC")).
		WithArgs("ACTIVO").
		WillReturnRows(pgxmock.NewRows(projectColumnNames).
			AddRow(int64(1), "PROY-2024-001", "Digitalización Institucional", nil, float64Ptr(150000), &start, nil, "ACTIVO", now))

	projects, err := repo.List(context.Background(), project.ListProjectsFilter{Status: &status})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(projects) != 1 || projects[0].Status != project.StatusActive {
		t.Fatalf("unexpected proyectos: %+v", projects)
	}
	if projects[0].StartDate == nil || !projects[0].StartDate.Equal(start) || projects[0].EndDate != nil {
		t.Fatalf("unexpected dates: %v %v", projects[0].StartDate, projects[0].EndDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProjectRepository_Create_DuplicateCode(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewProjectRepository(mock)

	args := make([]any, 8)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO proyectos")).
		WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "proyectos_codigo_proyecto_key"})

	_, err := repo.Create(context.Background(), &project.Project{Code: "PROY-2024-001", Name: "X", Status: project.StatusActive})
	if !errors.Is(err, project.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestCityRepository_CreateFindList(t *testing.T) {
	t.Parallel()

	mock := newMockPool(t)
	repo := NewCityRepository(mock)
	now := time.Now().UTC()
	province := strPtr("Pichincha")

	c := &city.City{Name: "Quito", Province: province, Country: city.DefaultCountry, CreatedAt: now}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ciudades")).
		WithArgs("Quito", c.PostalCode, province, "Ecuador", now).
		WillReturnRows(pgxmock.NewRows(cityColumns).AddRow(int64(1), "Quito", nil, province, "Ecuador", now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ciudad_id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(cityColumns))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY nombre_ciudad ASC")).
		WithArgs().
		WillReturnRows(pgxmock.NewRows(cityColumns).
			AddRow(int64(2), "Guayaquil", nil, strPtr("Guayas"), "Ecuador", now).
			AddRow(int64(1), "Quito", nil, province, "Ecuador", now))

	created, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 1 || created.Province == nil || *created.Province != "Pichincha" || created.PostalCode != nil {
		t.Fatalf("unexpected ciudad: %+v", created)
	}

	if _, err := repo.FindByID(context.Background(), 5); !errors.Is(err, city.ErrCityNotFound) {
		t.Fatalf("expected ErrCityNotFound, got %v", err)
	}

	cities, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(cities) != 2 || cities[0].Name != "Guayaquil" {
		t.Fatalf("unexpected ciudades: %+v", cities)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
