package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	"github.com/ogurasousui/funcionarios-api/internal/core/report"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
)

// ReportRepository はメモリ上のスライスから集計を組み立てます。
type ReportRepository struct {
	store *Store
}

// NewReportRepository は ReportRepository を生成します。
func NewReportRepository(store *Store) *ReportRepository {
	return &ReportRepository{store: store}
}

// MonthlyAttendance は ACTIVO の funcionario ごとの月次打刻集計を apellidos の昇順で返します。
// 月と日付の判定は UTC で行います。
func (r *ReportRepository) MonthlyAttendance(_ context.Context, month, year int) ([]*report.MonthlyAttendanceRow, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*employee.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if e.Status == employee.StatusActive {
			active = append(active, e)
		}
	}
	slices.SortFunc(active, func(a, b *employee.Employee) int {
		return cmp.Or(cmp.Compare(a.LastName, b.LastName), cmp.Compare(a.ID, b.ID))
	})

	result := make([]*report.MonthlyAttendanceRow, 0, len(active))
	for _, e := range active {
		row := &report.MonthlyAttendanceRow{Code: e.Code, FullName: e.FullName()}
		if e.PositionID != nil {
			if i := s.positionIndex(*e.PositionID); i >= 0 {
				name := s.positions[i].Name
				row.PositionName = &name
			}
		}

		days := make(map[string]struct{})
		for _, ev := range s.events {
			ts := ev.Timestamp.UTC()
			if ev.EmployeeID != e.ID || int(ts.Month()) != month || ts.Year() != year {
				continue
			}
			days[ts.Format(shared.DateLayout)] = struct{}{}
			switch ev.Type {
			case attendance.TypeClockIn:
				row.ClockIns++
			case attendance.TypeClockOut:
				row.ClockOuts++
			}
		}
		row.DaysWorked = int64(len(days))
		result = append(result, row)
	}
	return result, nil
}

// VacationSummary は ACTIVO の proyecto ごとの年次 vacacion 集計を nombre_proyecto の昇順で返します。
func (r *ReportRepository) VacationSummary(_ context.Context, year int) ([]*report.VacationSummaryRow, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]*project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if p.Status == project.StatusActive {
			projects = append(projects, p)
		}
	}
	slices.SortFunc(projects, func(a, b *project.Project) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	result := make([]*report.VacationSummaryRow, 0, len(projects))
	for _, p := range projects {
		row := &report.VacationSummaryRow{ProjectName: p.Name}
		for _, v := range s.vacations {
			if v.StartDate.Year() != year || !s.employeeInProject(v.EmployeeID, p.ID) {
				continue
			}
			row.TotalRequests++
			switch v.Status {
			case vacation.StatusApproved:
				row.Approved++
			case vacation.StatusPending:
				row.Pending++
			}
			if row.TotalDays == nil {
				row.TotalDays = new(int64)
			}
			*row.TotalDays += int64(v.Days)
		}
		result = append(result, row)
	}
	return result, nil
}

// TableStatus はスライスの長さを件数として返します。メモリストアに無いテーブルは存在しない扱いです。
func (r *ReportRepository) TableStatus(_ context.Context, table string) (report.TableStatus, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	switch table {
	case "proyectos":
		n = len(s.projects)
	case "cargos":
		n = len(s.positions)
	case "ciudades":
		n = len(s.cities)
	case "funcionarios":
		n = len(s.employees)
	case "marcaciones":
		n = len(s.events)
	case "vacaciones":
		n = len(s.vacations)
	case "configuraciones":
		n = len(s.settings)
	default:
		return report.TableStatus{}, nil
	}
	count := int64(n)
	return report.TableStatus{Exists: true, Count: &count}, nil
}

func (s *Store) employeeInProject(employeeID, projectID int64) bool {
	i := s.employeeIndex(employeeID)
	if i < 0 {
		return false
	}
	e := s.employees[i]
	return e.ProjectID != nil && *e.ProjectID == projectID
}
