package attendance

import "github.com/ogurasousui/funcionarios-api/internal/core/apperror"

// EntityName はエラーメッセージ上のエンティティ名です。
const EntityName = "marcacion"

var (
	ErrEventNotFound   = apperror.NotFound(EntityName)
	ErrInvalidID       = apperror.Invalid(EntityName, "marcacion_id", "must be a positive integer")
	ErrInvalidEmployee = apperror.Invalid(EntityName, "funcionario_id", "does not reference an existing funcionario")
	ErrInvalidType     = apperror.Invalid(EntityName, "tipo_marcacion", "is not a valid value")
	ErrInvalidDevice   = apperror.Invalid(EntityName, "dispositivo", "is not a valid value")
	ErrInvalidIP       = apperror.Invalid(EntityName, "ip_address", "is not a valid IP address")
)
