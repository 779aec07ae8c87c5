package postgres

import (
	"context"
	"encoding/json"

	"github.com/ogurasousui/funcionarios-api/internal/core/history"
	pgdb "github.com/ogurasousui/funcionarios-api/internal/platform/db/postgres"
)

const historyEntityName = "historial_funcionarios"

// HistoryRepository は historial_funcionarios への追記を行います。
// 呼び出し元のトランザクション内で実行されることを前提とします。
type HistoryRepository struct {
	pool pgdb.Queryer
}

// NewHistoryRepository は HistoryRepository を生成します。
func NewHistoryRepository(pool pgdb.Queryer) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Append は変更履歴を 1 行追記し、採番された historial_id を entry に設定します。
func (r *HistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO historial_funcionarios (funcionario_id, tipo_cambio, campo_modificado, valor_anterior, valor_nuevo, usuario_cambio, fecha_cambio)
        VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)
        RETURNING historial_id
    `,
		entry.EmployeeID,
		string(entry.Type),
		entry.Field,
		jsonArg(entry.Before),
		jsonArg(entry.After),
		history.ActorOrDefault(entry.Actor),
		entry.ChangedAt,
	)

	if err := row.Scan(&entry.ID); err != nil {
		return translatePgError(err, historyEntityName, nil)
	}
	return nil
}

// jsonArg は JSON スナップショットをテキストとして渡します。nil は SQL の NULL です。
func jsonArg(raw json.RawMessage) any {
	if raw == nil {
		return nil
	}
	return string(raw)
}
