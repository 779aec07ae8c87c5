package position

import "github.com/ogurasousui/funcionarios-api/internal/core/apperror"

// EntityName はエラーメッセージ上のエンティティ名です。
const EntityName = "cargo"

var (
	// ErrPositionNotFound は cargo が存在しない場合に返却されます。
	ErrPositionNotFound = apperror.NotFound(EntityName)
	// ErrDuplicateCode は codigo_cargo 重複時に返却されます。
	ErrDuplicateCode = apperror.Duplicate(EntityName, "codigo_cargo")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = apperror.Invalid(EntityName, "cargo_id", "must be a positive integer")
	// ErrInvalidLevel は nivel が不正な場合に返却されます。
	ErrInvalidLevel = apperror.Invalid(EntityName, "nivel", "must be a positive integer")
	// ErrInvalidSalary は salario_base が不正な場合に返却されます。
	ErrInvalidSalary = apperror.Invalid(EntityName, "salario_base", "must not be negative")
)
