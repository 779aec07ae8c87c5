package vacation

import "github.com/ogurasousui/funcionarios-api/internal/core/apperror"

// EntityName はエラーメッセージ上のエンティティ名です。
const EntityName = "vacacion"

var (
	ErrRequestNotFound  = apperror.NotFound(EntityName)
	ErrInvalidID        = apperror.Invalid(EntityName, "vacacion_id", "must be a positive integer")
	ErrInvalidEmployee  = apperror.Invalid(EntityName, "funcionario_id", "does not reference an existing funcionario")
	ErrInvalidApprover  = apperror.Invalid(EntityName, "aprobado_por", "does not reference an existing funcionario")
	ErrInvalidStatus    = apperror.Invalid(EntityName, "estado", "is not a valid state")
	ErrInvalidDateRange = apperror.Invalid(EntityName, "fecha_fin", "must not be before fecha_inicio")
	ErrInvalidDays      = apperror.Invalid(EntityName, "dias_totales", "must be a positive integer")
)
