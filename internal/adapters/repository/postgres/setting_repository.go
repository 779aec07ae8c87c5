package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/funcionarios-api/internal/core/setting"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

const settingEntityName = "configuracion"

// SettingRepository は configuraciones を読み取ります。
type SettingRepository struct {
	pool pgdb.Queryer
}

// NewSettingRepository は SettingRepository を生成します。
func NewSettingRepository(pool pgdb.Queryer) *SettingRepository {
	return &SettingRepository{pool: pool}
}

// List は設定を categoria, clave の順で取得します。
func (r *SettingRepository) List(ctx context.Context, category *string) ([]*setting.Setting, error) {
	args := make([]any, 0, 1)
	whereClause := ""
	if category != nil {
		args = append(args, *category)
		whereClause = `
         WHERE categoria = $1`
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT configuracion_id, categoria, clave, valor, descripcion, updated_at
          FROM configuraciones`+whereClause+`
         ORDER BY categoria, clave
    `, args...)
	if err != nil {
		return nil, translatePgError(err, settingEntityName, nil)
	}
	defer rows.Close()

	settings := make([]*setting.Setting, 0)
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, translatePgError(err, settingEntityName, nil)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translatePgError(err, settingEntityName, nil)
	}
	return settings, nil
}

func scanSetting(row pgx.Row) (*setting.Setting, error) {
	var s setting.Setting
	if err := row.Scan(&s.ID, &s.Category, &s.Key, &s.Value, &s.Description, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
