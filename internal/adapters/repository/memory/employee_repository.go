package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
)

// EmployeeRepository はメモリ上の funcionario 永続化の実装です。
type EmployeeRepository struct {
	store *Store
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(store *Store) *EmployeeRepository {
	return &EmployeeRepository{store: store}
}

// Create は funcionario を追加します。
func (r *EmployeeRepository) Create(_ context.Context, e *employee.Employee) (*employee.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	created := e.Clone()
	created.PositionName, created.ProjectName, created.CityName = nil, nil, nil
	if err := s.checkEmployee(created); err != nil {
		return nil, err
	}
	created.ID = nextID(s.employees, func(x *employee.Employee) int64 { return x.ID })
	s.employees = append(s.employees, created)

	return s.enrichEmployee(created), nil
}

// FindByID は ID で funcionario を取得します。
func (r *EmployeeRepository) FindByID(_ context.Context, id int64) (*employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.employeeIndex(id)
	if i < 0 {
		return nil, employee.ErrEmployeeNotFound
	}
	return s.enrichEmployee(s.employees[i]), nil
}

// FindByIDForUpdate は FindByID と同じです。排他は TransactionManager が行います。
func (r *EmployeeRepository) FindByIDForUpdate(ctx context.Context, id int64) (*employee.Employee, error) {
	return r.FindByID(ctx, id)
}

// List は条件に一致する funcionario を funcionario_id の降順で返します。
func (r *EmployeeRepository) List(_ context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*employee.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.ProjectID != nil && (e.ProjectID == nil || *e.ProjectID != *filter.ProjectID) {
			continue
		}
		result = append(result, s.enrichEmployee(e))
	}
	slices.SortFunc(result, func(a, b *employee.Employee) int { return cmp.Compare(b.ID, a.ID) })
	return result, nil
}

// Update は changes に含まれる列のみを書き換えます。
func (r *EmployeeRepository) Update(_ context.Context, id int64, changes []employee.Change, updatedAt time.Time) (*employee.Employee, error) {
	if len(changes) == 0 {
		return nil, employee.ErrEmptyUpdate
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.employeeIndex(id)
	if i < 0 {
		return nil, employee.ErrEmployeeNotFound
	}

	updated := s.employees[i].Clone()
	employee.ApplyChanges(updated, changes)
	updated.UpdatedAt = updatedAt
	if err := s.checkEmployee(updated); err != nil {
		return nil, err
	}
	s.employees[i] = updated

	return s.enrichEmployee(updated), nil
}

// Delete は funcionario を物理削除し、INACTIVO 状態にした最終レコードを返します。
func (r *EmployeeRepository) Delete(_ context.Context, id int64, updatedAt time.Time) (*employee.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.employeeIndex(id)
	if i < 0 {
		return nil, employee.ErrEmployeeNotFound
	}

	removed := s.employees[i].Clone()
	s.employees = slices.Delete(s.employees, i, i+1)
	removed.Status = employee.StatusInactive
	removed.UpdatedAt = updatedAt

	return s.enrichEmployee(removed), nil
}

func (s *Store) employeeIndex(id int64) int {
	return slices.IndexFunc(s.employees, func(e *employee.Employee) bool { return e.ID == id })
}

// checkEmployee は一意制約と参照先の存在を線形走査で検証します。
func (s *Store) checkEmployee(e *employee.Employee) error {
	for _, existing := range s.employees {
		if existing.ID == e.ID {
			continue
		}
		switch {
		case existing.Code == e.Code:
			return employee.ErrDuplicateCode
		case existing.IdentificationNumber == e.IdentificationNumber:
			return employee.ErrDuplicateIDNumber
		case existing.Email == e.Email:
			return employee.ErrDuplicateEmail
		}
	}
	if e.PositionID != nil && s.positionIndex(*e.PositionID) < 0 {
		return employee.ErrUnknownPosition
	}
	if e.ProjectID != nil && s.projectIndex(*e.ProjectID) < 0 {
		return employee.ErrUnknownProject
	}
	if e.CityID != nil && s.cityIndex(*e.CityID) < 0 {
		return employee.ErrUnknownCity
	}
	return nil
}

// enrichEmployee は表示名を補完した複製を返します。
func (s *Store) enrichEmployee(e *employee.Employee) *employee.Employee {
	c := e.Clone()
	c.PositionName, c.ProjectName, c.CityName = nil, nil, nil
	if c.PositionID != nil {
		if i := s.positionIndex(*c.PositionID); i >= 0 {
			name := s.positions[i].Name
			c.PositionName = &name
		}
	}
	if c.ProjectID != nil {
		if i := s.projectIndex(*c.ProjectID); i >= 0 {
			name := s.projects[i].Name
			c.ProjectName = &name
		}
	}
	if c.CityID != nil {
		if i := s.cityIndex(*c.CityID); i >= 0 {
			name := s.cities[i].Name
			c.CityName = &name
		}
	}
	return c
}
