package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
)

func TestPositionRepository_CreateAndList(t *testing.T) {
	t.Parallel()

	repo := NewPositionRepository(newSeededStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &position.Position{Code: "TEC-001", Name: "Analista"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 4 {
		t.Fatalf("expected id 4, got %d", created.ID)
	}
	if _, err := repo.Create(ctx, &position.Position{Code: "ADM-001", Name: "Otro"}); !errors.Is(err, position.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 4 || list[0].ID != 1 || list[3].ID != 4 {
		t.Fatalf("expected ascending ids 1..4, got %d items", len(list))
	}
}

func TestProjectRepository_ListFiltersByStatus(t *testing.T) {
	t.Parallel()

	repo := NewProjectRepository(newSeededStore(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, &project.Project{Code: "PROY-2024-003", Name: "Archivo", Status: project.StatusSuspended}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	status := project.StatusActive
	active, err := repo.List(ctx, project.ListProjectsFilter{Status: &status})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active projects, got %d", len(active))
	}

	if _, err := repo.FindByID(ctx, 99); !errors.Is(err, project.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestCityRepository_ListOrdersByName(t *testing.T) {
	t.Parallel()

	repo := NewCityRepository(newSeededStore(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, &city.City{Name: "Cuenca", Country: city.DefaultCountry}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := []string{list[0].Name, list[1].Name, list[2].Name}
	want := []string{"Cuenca", "Guayaquil", "Quito"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAttendanceRepository_CreateAndListByDate(t *testing.T) {
	t.Parallel()

	repo := NewAttendanceRepository(newSeededStore(t))
	ctx := context.Background()
	morning := time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

	for i, ev := range []*attendance.Event{
		{EmployeeID: 1, Type: attendance.TypeClockIn, Timestamp: morning, Device: attendance.DeviceWeb},
		{EmployeeID: 1, Type: attendance.TypeClockOut, Timestamp: morning.Add(9 * time.Hour), Device: attendance.DeviceWeb},
		{EmployeeID: 2, Type: attendance.TypeClockIn, Timestamp: morning.AddDate(0, 0, 1), Device: attendance.DeviceWeb},
	} {
		created, err := repo.Create(ctx, ev)
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if created.ID != int64(i+1) {
			t.Fatalf("expected id %d, got %d", i+1, created.ID)
		}
	}

	day := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	list, err := repo.List(ctx, attendance.ListEventsFilter{Date: &day})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].Type != attendance.TypeClockOut {
		t.Fatalf("expected 2 events newest first, got %d", len(list))
	}
	if list[0].EmployeeCode == nil || *list[0].EmployeeCode != "FUNC-0001" {
		t.Fatalf("expected enriched employee code, got %v", list[0].EmployeeCode)
	}

	if _, err := repo.Create(ctx, &attendance.Event{EmployeeID: 99, Type: attendance.TypeClockIn, Timestamp: morning}); !errors.Is(err, attendance.ErrInvalidEmployee) {
		t.Fatalf("expected ErrInvalidEmployee, got %v", err)
	}
}

func TestVacationRepository_CreateValidatesReferences(t *testing.T) {
	t.Parallel()

	repo := NewVacationRepository(newSeededStore(t))
	ctx := context.Background()
	start := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	approver := int64(2)
	missing := int64(99)

	created, err := repo.Create(ctx, &vacation.Request{
		EmployeeID: 1, StartDate: start, EndDate: start.AddDate(0, 0, 4), Days: 5,
		ApprovedBy: &approver, Status: vacation.StatusApproved,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ApproverLastName == nil || *created.ApproverLastName != "Apellido2" {
		t.Fatalf("expected approver to be enriched, got %v", created.ApproverLastName)
	}

	if _, err := repo.Create(ctx, &vacation.Request{EmployeeID: 1, StartDate: start, EndDate: start, Days: 1, ApprovedBy: &missing}); !errors.Is(err, vacation.ErrInvalidApprover) {
		t.Fatalf("expected ErrInvalidApprover, got %v", err)
	}
	if _, err := repo.Create(ctx, &vacation.Request{EmployeeID: 99, StartDate: start, EndDate: start, Days: 1}); !errors.Is(err, vacation.ErrInvalidEmployee) {
		t.Fatalf("expected ErrInvalidEmployee, got %v", err)
	}
}

func TestVacationRepository_ListOrdersByStartDateDescending(t *testing.T) {
	t.Parallel()

	repo := NewVacationRepository(newSeededStore(t))
	ctx := context.Background()
	early := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)

	for _, start := range []time.Time{early, late} {
		if _, err := repo.Create(ctx, &vacation.Request{EmployeeID: 3, StartDate: start, EndDate: start, Days: 1, Status: vacation.StatusPending}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	list, err := repo.List(ctx, vacation.ListRequestsFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || !list[0].StartDate.Equal(late) {
		t.Fatalf("expected latest request first, got %+v", list)
	}
}
