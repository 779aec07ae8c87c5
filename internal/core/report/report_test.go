package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeReportRepo struct {
	month, year int
	monthly     []*MonthlyAttendanceRow
	vacations   []*VacationSummaryRow
	tables      map[string]int64
}

func (r *fakeReportRepo) MonthlyAttendance(_ context.Context, month, year int) ([]*MonthlyAttendanceRow, error) {
	r.month, r.year = month, year
	return r.monthly, nil
}

func (r *fakeReportRepo) VacationSummary(_ context.Context, year int) ([]*VacationSummaryRow, error) {
	r.year = year
	return r.vacations, nil
}

func (r *fakeReportRepo) TableStatus(_ context.Context, table string) (TableStatus, error) {
	n, ok := r.tables[table]
	if !ok {
		return TableStatus{}, nil
	}
	return TableStatus{Exists: true, Count: &n}, nil
}

func TestService_MonthlyAttendance_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeReportRepo{}, nil, nil)

	cases := []struct {
		in   MonthlyInput
		want error
	}{
		{MonthlyInput{Year: 2024}, ErrPeriodRequired},
		{MonthlyInput{Month: 13, Year: 2024}, ErrInvalidMonth},
		{MonthlyInput{Month: 1, Year: 24}, ErrInvalidYear},
	}
	for _, tc := range cases {
		if _, err := svc.MonthlyAttendance(context.Background(), tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("%+v: expected %v, got %v", tc.in, tc.want, err)
		}
	}
}

func TestService_VacationSummary_DefaultsToCurrentYear(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{}
	svc := NewService(repo, &stubClock{now: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}, nil)

	if _, err := svc.VacationSummary(context.Background(), 0); err != nil {
		t.Fatalf("VacationSummary returned error: %v", err)
	}
	if repo.year != 2026 {
		t.Fatalf("expected current year 2026, got %d", repo.year)
	}
}

func TestService_ExportMonthlyAttendance(t *testing.T) {
	t.Parallel()

	position := "Gerente"
	repo := &fakeReportRepo{monthly: []*MonthlyAttendanceRow{
		{Code: "FUNC-0001", FullName: "Perez Ana", PositionName: &position, DaysWorked: 20, ClockIns: 20, ClockOuts: 19},
		{Code: "FUNC-0002", FullName: "Quito Luis", DaysWorked: 0},
	}}
	svc := NewService(repo, nil, nil)

	buf, name, err := svc.ExportMonthlyAttendance(context.Background(), MonthlyInput{Month: 3, Year: 2025})
	if err != nil {
		t.Fatalf("ExportMonthlyAttendance returned error: %v", err)
	}
	if name != "asistencia_2025_03.xlsx" {
		t.Fatalf("unexpected filename %q", name)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(monthlySheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected title, header and 2 data rows, got %d", len(rows))
	}
	if rows[2][0] != "FUNC-0001" || rows[2][2] != "Gerente" || rows[2][3] != "20" {
		t.Fatalf("unexpected first data row: %v", rows[2])
	}
	if rows[3][2] != "" {
		t.Fatalf("missing cargo must be blank, got %q", rows[3][2])
	}
}

func TestService_TablesStatus(t *testing.T) {
	t.Parallel()

	repo := &fakeReportRepo{tables: map[string]int64{"funcionarios": 10, "marcaciones": 0}}
	svc := NewService(repo, nil, nil)

	status, err := svc.TablesStatus(context.Background())
	if err != nil {
		t.Fatalf("TablesStatus returned error: %v", err)
	}
	if len(status) != len(Tables) {
		t.Fatalf("expected %d tables, got %d", len(Tables), len(status))
	}
	if st := status["funcionarios"]; !st.Exists || st.Count == nil || *st.Count != 10 {
		t.Fatalf("unexpected funcionarios status: %+v", st)
	}
	if st := status["marcaciones"]; !st.Exists || st.Count == nil || *st.Count != 0 {
		t.Fatalf("unexpected marcaciones status: %+v", st)
	}
	if st := status["vacaciones"]; st.Exists || st.Count != nil {
		t.Fatalf("expected missing vacaciones, got %+v", st)
	}
}
