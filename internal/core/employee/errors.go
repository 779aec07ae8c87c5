package employee

import "github.com/ogurasousui/funcionarios-api/internal/core/apperror"

// EntityName はエラーメッセージ上のエンティティ名です。
const EntityName = "funcionario"

var (
	ErrEmployeeNotFound  = apperror.NotFound(EntityName)
	ErrInvalidID         = apperror.Invalid(EntityName, "funcionario_id", "must be a positive integer")
	ErrInvalidStatus     = apperror.Invalid(EntityName, string(FieldStatus), "is not a valid state")
	ErrInvalidEmail      = apperror.Invalid(EntityName, string(FieldEmail), "is not a valid email address")
	ErrInvalidDateRange  = apperror.Invalid(EntityName, string(FieldTerminatedAt), "must not be before fecha_ingreso")
	ErrEmptyUpdate       = apperror.Invalid(EntityName, "", "no updatable fields supplied")
	ErrDuplicateCode     = apperror.Duplicate(EntityName, string(FieldCode))
	ErrDuplicateIDNumber = apperror.Duplicate(EntityName, string(FieldIdentificationNumber))
	ErrDuplicateEmail    = apperror.Duplicate(EntityName, string(FieldEmail))
	ErrUnknownPosition   = apperror.Invalid(EntityName, string(FieldPositionID), "does not reference an existing cargo")
	ErrUnknownProject    = apperror.Invalid(EntityName, string(FieldProjectID), "does not reference an existing proyecto")
	ErrUnknownCity       = apperror.Invalid(EntityName, string(FieldCityID), "does not reference an existing ciudad")
)
