package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
)

// VacationRepository はメモリ上の vacacion 申請永続化の実装です。
type VacationRepository struct {
	store *Store
}

// NewVacationRepository は VacationRepository を生成します。
func NewVacationRepository(store *Store) *VacationRepository {
	return &VacationRepository{store: store}
}

// Create は vacacion 申請を追加します。
func (r *VacationRepository) Create(_ context.Context, req *vacation.Request) (*vacation.Request, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.employeeIndex(req.EmployeeID) < 0 {
		return nil, vacation.ErrInvalidEmployee
	}
	if req.ApprovedBy != nil && s.employeeIndex(*req.ApprovedBy) < 0 {
		return nil, vacation.ErrInvalidApprover
	}
	created := *req
	created.EmployeeCode, created.EmployeeLastName, created.EmployeeFirstName = nil, nil, nil
	created.ApproverLastName, created.ApproverFirstName = nil, nil
	created.ID = nextID(s.vacations, func(x *vacation.Request) int64 { return x.ID })
	s.vacations = append(s.vacations, &created)

	return s.enrichVacation(&created), nil
}

// FindByID は ID で vacacion 申請を取得します。
func (r *VacationRepository) FindByID(_ context.Context, id int64) (*vacation.Request, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.vacations, func(v *vacation.Request) bool { return v.ID == id })
	if i < 0 {
		return nil, vacation.ErrRequestNotFound
	}
	return s.enrichVacation(s.vacations[i]), nil
}

// List は fecha_inicio の降順で返します。
func (r *VacationRepository) List(_ context.Context, filter vacation.ListRequestsFilter) ([]*vacation.Request, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*vacation.Request, 0, len(s.vacations))
	for _, v := range s.vacations {
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && v.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, s.enrichVacation(v))
	}
	slices.SortFunc(result, func(a, b *vacation.Request) int {
		return cmp.Or(b.StartDate.Compare(a.StartDate), cmp.Compare(b.ID, a.ID))
	})
	return result, nil
}

func (s *Store) enrichVacation(v *vacation.Request) *vacation.Request {
	out := *v
	out.EmployeeCode, out.EmployeeLastName, out.EmployeeFirstName = nil, nil, nil
	out.ApproverLastName, out.ApproverFirstName = nil, nil
	if i := s.employeeIndex(v.EmployeeID); i >= 0 {
		out.EmployeeCode, out.EmployeeLastName, out.EmployeeFirstName = employeeNames(s.employees[i])
	}
	if v.ApprovedBy != nil {
		if i := s.employeeIndex(*v.ApprovedBy); i >= 0 {
			_, out.ApproverLastName, out.ApproverFirstName = employeeNames(s.employees[i])
		}
	}
	return &out
}
