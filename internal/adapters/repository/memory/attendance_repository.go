package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// AttendanceRepository はメモリ上の marcacion 永続化の実装です。
type AttendanceRepository struct {
	store *Store
}

// NewAttendanceRepository は AttendanceRepository を生成します。
func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// Create は marcacion を追記します。
func (r *AttendanceRepository) Create(_ context.Context, e *attendance.Event) (*attendance.Event, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.employeeIndex(e.EmployeeID) < 0 {
		return nil, attendance.ErrInvalidEmployee
	}
	created := *e
	created.EmployeeCode, created.EmployeeLastName, created.EmployeeFirstName = nil, nil, nil
	created.ID = nextID(s.events, func(x *attendance.Event) int64 { return x.ID })
	s.events = append(s.events, &created)

	return s.enrichEvent(&created), nil
}

// FindByID は ID で marcacion を取得します。
func (r *AttendanceRepository) FindByID(_ context.Context, id int64) (*attendance.Event, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.events, func(e *attendance.Event) bool { return e.ID == id })
	if i < 0 {
		return nil, attendance.ErrEventNotFound
	}
	return s.enrichEvent(s.events[i]), nil
}

// List は fecha_hora の降順で返します。日付の比較は UTC で行います。
func (r *AttendanceRepository) List(_ context.Context, filter attendance.ListEventsFilter) ([]*attendance.Event, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var day string
	if filter.Date != nil {
		day = filter.Date.Format(shared.DateLayout)
	}

	result := make([]*attendance.Event, 0, len(s.events))
	for _, e := range s.events {
		if day != "" && e.Timestamp.UTC().Format(shared.DateLayout) != day {
			continue
		}
		if filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, s.enrichEvent(e))
	}
	slices.SortFunc(result, func(a, b *attendance.Event) int {
		return cmp.Or(b.Timestamp.Compare(a.Timestamp), cmp.Compare(b.ID, a.ID))
	})
	return result, nil
}

func (s *Store) enrichEvent(e *attendance.Event) *attendance.Event {
	out := *e
	out.EmployeeCode, out.EmployeeLastName, out.EmployeeFirstName = nil, nil, nil
	if i := s.employeeIndex(e.EmployeeID); i >= 0 {
		out.EmployeeCode, out.EmployeeLastName, out.EmployeeFirstName = employeeNames(s.employees[i])
	}
	return &out
}

func employeeNames(e *employee.Employee) (code, lastName, firstName *string) {
	c, l, f := e.Code, e.LastName, e.FirstName
	return &c, &l, &f
}
