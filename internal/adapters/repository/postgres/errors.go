package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	notNullViolationCode    = "23502"
	checkViolationCode      = "23514"
)

// invalidValueCodes は入力値の型・範囲不正を表す SQLSTATE です。
var invalidValueCodes = map[string]struct{}{
	"22P02": {}, // invalid_text_representation
	"22007": {}, // invalid_datetime_format
	"22008": {}, // datetime_field_overflow
	"22003": {}, // numeric_value_out_of_range
	"22001": {}, // string_data_right_truncation
}

// constraintErrors は制約名からドメインエラーへの対応表です。
var constraintErrors = map[string]error{
	"funcionarios_codigo_unico_key":          employee.ErrDuplicateCode,
	"funcionarios_numero_identificacion_key": employee.ErrDuplicateIDNumber,
	"funcionarios_correo_key":                employee.ErrDuplicateEmail,
	"funcionarios_cargo_id_fkey":             employee.ErrUnknownPosition,
	"funcionarios_proyecto_id_fkey":          employee.ErrUnknownProject,
	"funcionarios_ciudad_id_fkey":            employee.ErrUnknownCity,
	"funcionarios_fecha_salida_check":        employee.ErrInvalidDateRange,
	"funcionarios_estado_check":              employee.ErrInvalidStatus,
	"cargos_codigo_cargo_key":                position.ErrDuplicateCode,
	"cargos_nivel_check":                     position.ErrInvalidLevel,
	"cargos_salario_base_check":              position.ErrInvalidSalary,
	"proyectos_codigo_proyecto_key":          project.ErrDuplicateCode,
	"proyectos_estado_check":                 project.ErrInvalidStatus,
	"proyectos_fechas_check":                 project.ErrInvalidDateRange,
	"marcaciones_funcionario_id_fkey":        attendance.ErrInvalidEmployee,
	"marcaciones_tipo_marcacion_check":       attendance.ErrInvalidType,
	"marcaciones_dispositivo_check":          attendance.ErrInvalidDevice,
	"vacaciones_funcionario_id_fkey":         vacation.ErrInvalidEmployee,
	"vacaciones_aprobado_por_fkey":           vacation.ErrInvalidApprover,
	"vacaciones_estado_check":                vacation.ErrInvalidStatus,
	"vacaciones_fechas_check":                vacation.ErrInvalidDateRange,
	"vacaciones_dias_totales_check":          vacation.ErrInvalidDays,
}

// translatePgError は pgx が返すエラーを apperror の分類に変換します。
// notFound は pgx.ErrNoRows に対応するエンティティ固有のエラーです。
func translatePgError(err error, entity string, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
		switch pgErr.Code {
		case uniqueViolationCode:
			return apperror.Duplicate(entity, constraintField(pgErr))
		case foreignKeyViolationCode:
			return apperror.Invalid(entity, constraintField(pgErr), "does not reference an existing record")
		case notNullViolationCode:
			return apperror.Required(entity, pgErr.ColumnName)
		case checkViolationCode:
			return apperror.Invalid(entity, pgErr.ColumnName, "violates "+pgErr.ConstraintName)
		}
		if _, ok := invalidValueCodes[pgErr.Code]; ok {
			return apperror.Invalid(entity, pgErr.ColumnName, "has an invalid value")
		}
		if isUnavailableCode(pgErr.Code) {
			return apperror.Unavailable(err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.SafeToRetry(err) {
		return apperror.Unavailable(err)
	}

	return err
}

// isUnavailableCode は接続断・サーバ停止・接続数上限を表す SQLSTATE かを判定します。
func isUnavailableCode(code string) bool {
	if strings.HasPrefix(code, "08") {
		return true
	}
	switch code {
	case "57P01", "57P02", "57P03", "53300":
		return true
	default:
		return false
	}
}

// constraintField は未登録の制約名から列名を推定します (<table>_<column>_key|fkey)。
func constraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	name := pgErr.ConstraintName
	if pgErr.TableName != "" {
		name = strings.TrimPrefix(name, pgErr.TableName+"_")
	}
	for _, suffix := range []string{"_fkey", "_key"} {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}
