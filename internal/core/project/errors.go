package project

import "github.com/ogurasousui/funcionarios-api/internal/core/apperror"

// EntityName はエラーメッセージ上のエンティティ名です。
const EntityName = "proyecto"

var (
	// ErrProjectNotFound は proyecto が存在しない場合に返却されます。
	ErrProjectNotFound = apperror.NotFound(EntityName)
	// ErrDuplicateCode は codigo_proyecto 重複時に返却されます。
	ErrDuplicateCode = apperror.Duplicate(EntityName, "codigo_proyecto")
	// ErrInvalidStatus はステータスが不正な場合に返却されます。
	ErrInvalidStatus = apperror.Invalid(EntityName, "estado", "is not a valid state")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = apperror.Invalid(EntityName, "proyecto_id", "must be a positive integer")
	// ErrInvalidBudget は presupuesto が負の場合に返却されます。
	ErrInvalidBudget = apperror.Invalid(EntityName, "presupuesto", "must not be negative")
	// ErrInvalidDateRange は fecha_fin が fecha_inicio より前の場合に返却されます。
	ErrInvalidDateRange = apperror.Invalid(EntityName, "fecha_fin", "must not be before fecha_inicio")
)
