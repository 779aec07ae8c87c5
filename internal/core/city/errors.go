package city

import "github.com/ogurasousui/funcionarios-api/internal/core/apperror"

// EntityName はエラーメッセージ上のエンティティ名です。
const EntityName = "ciudad"

var (
	ErrCityNotFound = apperror.NotFound(EntityName)
	ErrInvalidID    = apperror.Invalid(EntityName, "ciudad_id", "must be a positive integer")
)
