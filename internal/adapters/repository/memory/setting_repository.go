package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/ogurasousui/funcionarios-api/internal/core/setting"
)

// SettingRepository はメモリ上の configuraciones の読み取り実装です。
type SettingRepository struct {
	store *Store
}

// NewSettingRepository は SettingRepository を生成します。
func NewSettingRepository(store *Store) *SettingRepository {
	return &SettingRepository{store: store}
}

// List は categoria, clave の順で返します。
func (r *SettingRepository) List(_ context.Context, category *string) ([]*setting.Setting, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*setting.Setting, 0, len(s.settings))
	for _, item := range s.settings {
		if category != nil && item.Category != *category {
			continue
		}
		out := *item
		result = append(result, &out)
	}
	slices.SortFunc(result, func(a, b *setting.Setting) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Key, b.Key))
	})
	return result, nil
}
