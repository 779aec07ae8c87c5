// Package history は funcionario の変更履歴 (historial_funcionarios) を扱います。
package history

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// ChangeType は変更の種別です。
type ChangeType string

const (
	ChangeCreate ChangeType = "CREACION"
	ChangeUpdate ChangeType = "ACTUALIZACION"
	ChangeDelete ChangeType = "ELIMINACION"
)

// DefaultActor は操作者が指定されない場合に記録される値です。
const DefaultActor = "sistema"

// Entry は変更履歴の 1 行です。追記のみで更新・削除はされません。
type Entry struct {
	ID         int64
	EmployeeID int64
	Type       ChangeType
	Field      string
	Before     json.RawMessage
	After      json.RawMessage
	Actor      string
	ChangedAt  time.Time
}

// Repository は変更履歴の永続化の抽象です。
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
}

type noopRepository struct{}

func (noopRepository) Append(context.Context, *Entry) error { return nil }

// Discard は何も記録しない Repository を返します。デモストアで使用します。
func Discard() Repository {
	return noopRepository{}
}

// ActorOrDefault は空の操作者を DefaultActor に置き換えます。
func ActorOrDefault(actor string) string {
	trimmed := strings.TrimSpace(actor)
	if trimmed == "" {
		return DefaultActor
	}
	return trimmed
}
