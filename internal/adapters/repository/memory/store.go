// Package memory はプロセス内メモリに保持するデモ用レコードストアです。
// エンティティ種別ごとの順序付きスライスを線形走査し、ID は既存の最大値 + 1 で採番します。
// 変更履歴は記録しません。
package memory

import (
	"context"
	"sync"

	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	"github.com/ogurasousui/funcionarios-api/internal/core/setting"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
)

// Store は全エンティティのスライスを保持します。
// 保持しているポインタの指す値は書き換えず、更新時は新しい値に差し替えます。
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	positions []*position.Position
	projects  []*project.Project
	cities    []*city.City
	employees []*employee.Employee
	events    []*attendance.Event
	vacations []*vacation.Request
	settings  []*setting.Setting
}

// NewStore は空の Store を生成します。
func NewStore() *Store {
	return &Store{}
}

// Ping は常に成功します。ヘルスチェックで PostgreSQL の Pool と同じ形で扱うためのものです。
func (s *Store) Ping(context.Context) error {
	return nil
}

type snapshot struct {
	positions []*position.Position
	projects  []*project.Project
	cities    []*city.City
	employees []*employee.Employee
	events    []*attendance.Event
	vacations []*vacation.Request
	settings  []*setting.Setting
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		positions: append([]*position.Position(nil), s.positions...),
		projects:  append([]*project.Project(nil), s.projects...),
		cities:    append([]*city.City(nil), s.cities...),
		employees: append([]*employee.Employee(nil), s.employees...),
		events:    append([]*attendance.Event(nil), s.events...),
		vacations: append([]*vacation.Request(nil), s.vacations...),
		settings:  append([]*setting.Setting(nil), s.settings...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = snap.positions
	s.projects = snap.projects
	s.cities = snap.cities
	s.employees = snap.employees
	s.events = snap.events
	s.vacations = snap.vacations
	s.settings = snap.settings
}

type txContextKey struct{}

// TransactionManager は読み書き単位を直列化し、失敗時には開始前の状態に戻します。
type TransactionManager struct {
	store *Store
}

// NewTransactionManager は TransactionManager を生成します。
func NewTransactionManager(store *Store) *TransactionManager {
	return &TransactionManager{store: store}
}

// WithinReadOnly は fn をそのまま実行します。各読み取りは Store のロックで保護されます。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// WithinReadWrite は他の読み書き単位と排他して fn を実行します。
// 入れ子で呼ばれた場合は外側の単位に参加します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if ctx.Value(txContextKey{}) != nil {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txContextKey{}, struct{}{})); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func nextID[T any](items []T, id func(T) int64) int64 {
	var maxID int64
	for _, item := range items {
		if v := id(item); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}
