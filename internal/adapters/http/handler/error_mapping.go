package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/attendance"
	"github.com/ogurasousui/funcionarios-api/internal/core/city"
	"github.com/ogurasousui/funcionarios-api/internal/core/employee"
	"github.com/ogurasousui/funcionarios-api/internal/core/position"
	"github.com/ogurasousui/funcionarios-api/internal/core/project"
	"github.com/ogurasousui/funcionarios-api/internal/core/vacation"
	"go.uber.org/zap"
)

// duplicateMessages は一意制約違反時にクライアントへ返すメッセージです。
var duplicateMessages = map[string]string{
	string(employee.FieldCode):                 "El código único ya existe",
	string(employee.FieldIdentificationNumber): "El número de identificación ya existe",
	string(employee.FieldEmail):                "El correo electrónico ya existe",
	"codigo_cargo":                             "El código de cargo ya existe",
	"codigo_proyecto":                          "El código de proyecto ya existe",
}

// notFoundMessages は存在しないレコードを参照した場合のメッセージです。
var notFoundMessages = map[string]string{
	employee.EntityName:   "Funcionario no encontrado",
	position.EntityName:   "Cargo no encontrado",
	project.EntityName:    "Proyecto no encontrado",
	city.EntityName:       "Ciudad no encontrada",
	attendance.EntityName: "Marcación no encontrada",
	vacation.EntityName:   "Vacación no encontrada",
}

// fieldReasons は FieldError.Reason をクライアント向けの表現に置き換えます。
var fieldReasons = map[string]string{
	"is required":                      "es obligatorio",
	"is invalid":                       "no es válido",
	"is not a valid value":             "no es válido",
	"is not a valid state":             "no es un estado válido",
	"has an invalid value":             "tiene un valor inválido",
	"is not a valid email address":     "no es un correo electrónico válido",
	"is not a valid IP address":        "no es una dirección IP válida",
	"is not an updatable field":        "no es un campo modificable",
	"must be a string":                 "debe ser texto",
	"must be a date (YYYY-MM-DD)":      "debe ser una fecha (YYYY-MM-DD)",
	"must be a positive integer":       "debe ser un entero positivo",
	"must not be negative":             "no puede ser negativo",
	"must not be before fecha_ingreso": "no puede ser anterior a fecha_ingreso",
	"must not be before fecha_inicio":  "no puede ser anterior a fecha_inicio",
	"must be between 1 and 12":         "debe estar entre 1 y 12",
	"must be between 1900 and 9999":    "debe estar entre 1900 y 9999",

	"does not reference an existing cargo":       "no corresponde a un cargo existente",
	"does not reference an existing proyecto":    "no corresponde a un proyecto existente",
	"does not reference an existing ciudad":      "no corresponde a una ciudad existente",
	"does not reference an existing funcionario": "no corresponde a un funcionario existente",
	"does not reference an existing record":      "no corresponde a un registro existente",
}

// entityReasons は特定のフィールドに属さない検証エラーのメッセージです。
var entityReasons = map[string]string{
	"no updatable fields supplied":       "No se enviaron campos para actualizar",
	"mes and anio are required":          "Los parámetros mes y anio son obligatorios",
	"query parameter must be an integer": "Los parámetros de consulta deben ser números enteros",
	"malformed request body":             "El cuerpo de la solicitud no es válido",
}

const (
	invalidMessage     = "Datos inválidos"
	unavailableMessage = "Base de datos no disponible"
	internalMessage    = "Error interno del servidor"
)

type errorResponse struct {
	Error string `json:"error"`
}

// toHTTPError はドメインエラーを HTTP ステータスとメッセージに変換します。
func toHTTPError(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrDuplicateKey):
		field, _ := apperror.DuplicateField(err)
		if msg, ok := duplicateMessages[field]; ok {
			return http.StatusBadRequest, msg
		}
		return http.StatusBadRequest, "El valor de " + field + " ya existe"
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, apperror.ErrNotFound):
		entity, _ := apperror.NotFoundEntity(err)
		if msg, ok := notFoundMessages[entity]; ok {
			return http.StatusNotFound, msg
		}
		return http.StatusNotFound, "Registro no encontrado"
	case errors.Is(err, apperror.ErrStorageUnavailable):
		return http.StatusInternalServerError, unavailableMessage
	default:
		return http.StatusInternalServerError, internalMessage
	}
}

// validationMessage は FieldError をスペイン語のメッセージにします。原文はログにのみ残ります。
func validationMessage(err error) string {
	var fe *apperror.FieldError
	if !errors.As(err, &fe) {
		return invalidMessage
	}
	if fe.Field == "" {
		if msg, ok := entityReasons[fe.Reason]; ok {
			return msg
		}
		return invalidMessage
	}
	return "El campo " + fe.Field + " " + spanishReason(fe.Reason)
}

func spanishReason(reason string) string {
	if es, ok := fieldReasons[reason]; ok {
		return es
	}
	if rest, ok := strings.CutPrefix(reason, "must be at most "); ok {
		if n, ok := strings.CutSuffix(rest, " characters"); ok {
			return "no puede superar " + n + " caracteres"
		}
	}
	if n, ok := strings.CutPrefix(reason, "must be greater than "); ok {
		return "debe ser mayor que " + n
	}
	return "no es válido"
}

// writeError はエラーレスポンスを書き込みます。5xx は Error、それ以外は Warn で記録します。
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg := toHTTPError(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
	} else {
		logger.Warn("request rejected", fields...)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}
