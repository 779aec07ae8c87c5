package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
)

// PositionRepository はメモリ上の cargo 永続化の実装です。
type PositionRepository struct {
	store *Store
}

// NewPositionRepository は PositionRepository を生成します。
func NewPositionRepository(store *Store) *PositionRepository {
	return &PositionRepository{store: store}
}

// Create は cargo を追加します。codigo_cargo が重複する場合 ErrDuplicateCode を返します。
func (r *PositionRepository) Create(_ context.Context, p *position.Position) (*position.Position, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.positions, func(x *position.Position) bool { return x.Code == p.Code }) {
		return nil, position.ErrDuplicateCode
	}
	created := *p
	created.ID = nextID(s.positions, func(x *position.Position) int64 { return x.ID })
	s.positions = append(s.positions, &created)

	out := created
	return &out, nil
}

// FindByID は ID で cargo を取得します。
func (r *PositionRepository) FindByID(_ context.Context, id int64) (*position.Position, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.positionIndex(id)
	if i < 0 {
		return nil, position.ErrPositionNotFound
	}
	out := *s.positions[i]
	return &out, nil
}

// List は cargo_id の昇順で返します。
func (r *PositionRepository) List(context.Context) ([]*position.Position, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*position.Position, 0, len(s.positions))
	for _, p := range s.positions {
		out := *p
		result = append(result, &out)
	}
	slices.SortFunc(result, func(a, b *position.Position) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

func (s *Store) positionIndex(id int64) int {
	return slices.IndexFunc(s.positions, func(p *position.Position) bool { return p.ID == id })
}

// ProjectRepository はメモリ上の proyecto 永続化の実装です。
type ProjectRepository struct {
	store *Store
}

// NewProjectRepository は ProjectRepository を生成します。
func NewProjectRepository(store *Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

// Create は proyecto を追加します。
func (r *ProjectRepository) Create(_ context.Context, p *project.Project) (*project.Project, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.projects, func(x *project.Project) bool { return x.Code == p.Code }) {
		return nil, project.ErrDuplicateCode
	}
	created := *p
	created.ID = nextID(s.projects, func(x *project.Project) int64 { return x.ID })
	s.projects = append(s.projects, &created)

	out := created
	return &out, nil
}

// FindByID は ID で proyecto を取得します。
func (r *ProjectRepository) FindByID(_ context.Context, id int64) (*project.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.projectIndex(id)
	if i < 0 {
		return nil, project.ErrProjectNotFound
	}
	out := *s.projects[i]
	return &out, nil
}

// List は proyecto_id の昇順で返します。
func (r *ProjectRepository) List(_ context.Context, filter project.ListProjectsFilter) ([]*project.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out := *p
		result = append(result, &out)
	}
	slices.SortFunc(result, func(a, b *project.Project) int { return cmp.Compare(a.ID, b.ID) })
	return result, nil
}

func (s *Store) projectIndex(id int64) int {
	return slices.IndexFunc(s.projects, func(p *project.Project) bool { return p.ID == id })
}

// CityRepository はメモリ上の ciudad 永続化の実装です。
type CityRepository struct {
	store *Store
}

// NewCityRepository は CityRepository を生成します。
func NewCityRepository(store *Store) *CityRepository {
	return &CityRepository{store: store}
}

// Create は ciudad を追加します。
func (r *CityRepository) Create(_ context.Context, c *city.City) (*city.City, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *c
	created.ID = nextID(s.cities, func(x *city.City) int64 { return x.ID })
	s.cities = append(s.cities, &created)

	out := created
	return &out, nil
}

// FindByID は ID で ciudad を取得します。
func (r *CityRepository) FindByID(_ context.Context, id int64) (*city.City, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.cityIndex(id)
	if i < 0 {
		return nil, city.ErrCityNotFound
	}
	out := *s.cities[i]
	return &out, nil
}

// List は nombre_ciudad の昇順で返します。
func (r *CityRepository) List(context.Context) ([]*city.City, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*city.City, 0, len(s.cities))
	for _, c := range s.cities {
		out := *c
		result = append(result, &out)
	}
	slices.SortFunc(result, func(a, b *city.City) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return result, nil
}

func (s *Store) cityIndex(id int64) int {
	return slices.IndexFunc(s.cities, func(c *city.City) bool { return c.ID == id })
}
