package employee

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Field は funcionarios テーブルの列名であり、API 上のキー名でもあります。
type Field string

const (
	FieldID                   Field = "funcionario_id"
	FieldCode                 Field = "codigo_unico"
	FieldIdentificationType   Field = "tipo_identificacion"
	FieldIdentificationNumber Field = "numero_identificacion"
	FieldLastName             Field = "apellidos"
	FieldFirstName            Field = "nombres"
	FieldEmail                Field = "correo"
	FieldPhone                Field = "telefono"
	FieldHiredAt              Field = "fecha_ingreso"
	FieldTerminatedAt         Field = "fecha_salida"
	FieldStatus               Field = "estado"
	FieldPositionID           Field = "cargo_id"
	FieldProjectID            Field = "proyecto_id"
	FieldCityID               Field = "ciudad_id"
	FieldGender               Field = "genero"
	FieldMaritalStatus        Field = "estado_civil"
	FieldBirthDate            Field = "fecha_nacimiento"
	FieldAddress              Field = "direccion"
	FieldContractType         Field = "tipo_contrato"
	FieldSchedule             Field = "jornada"
	FieldBiometricCode        Field = "codigo_biometrico"
)

type valueKind int

const (
	kindText valueKind = iota
	kindEnum
	kindDate
	kindRef
)

type fieldRule struct {
	kind     valueKind
	nullable bool
	maxLen   int
	allowed  func(string) bool
	apply    func(e *Employee, v any)
}

// mutableFields は部分更新で書き換え可能な列の許可リストです。
var mutableFields = map[Field]fieldRule{
	FieldCode: {kind: kindText, maxLen: 20, apply: func(e *Employee, v any) { e.Code = v.(string) }},
	FieldIdentificationType: {
		kind:    kindEnum,
		allowed: func(s string) bool { return isValidIdentificationType(IdentificationType(s)) },
		apply:   func(e *Employee, v any) { e.IdentificationType = IdentificationType(v.(string)) },
	},
	FieldIdentificationNumber: {kind: kindText, maxLen: 20, apply: func(e *Employee, v any) { e.IdentificationNumber = v.(string) }},
	FieldLastName:             {kind: kindText, maxLen: 100, apply: func(e *Employee, v any) { e.LastName = v.(string) }},
	FieldFirstName:            {kind: kindText, maxLen: 100, apply: func(e *Employee, v any) { e.FirstName = v.(string) }},
	FieldEmail:                {kind: kindText, maxLen: 150, apply: func(e *Employee, v any) { e.Email = v.(string) }},
	FieldPhone:                {kind: kindText, nullable: true, maxLen: 20, apply: func(e *Employee, v any) { e.Phone = stringValue(v) }},
	FieldHiredAt:              {kind: kindDate, apply: func(e *Employee, v any) { e.HiredAt = v.(time.Time) }},
	FieldTerminatedAt:         {kind: kindDate, nullable: true, apply: func(e *Employee, v any) { e.TerminatedAt = timeValue(v) }},
	FieldStatus: {
		kind:    kindEnum,
		allowed: func(s string) bool { return IsValidStatus(Status(s)) },
		apply:   func(e *Employee, v any) { e.Status = Status(v.(string)) },
	},
	FieldPositionID:    {kind: kindRef, nullable: true, apply: func(e *Employee, v any) { e.PositionID = int64Value(v) }},
	FieldProjectID:     {kind: kindRef, nullable: true, apply: func(e *Employee, v any) { e.ProjectID = int64Value(v) }},
	FieldCityID:        {kind: kindRef, nullable: true, apply: func(e *Employee, v any) { e.CityID = int64Value(v) }},
	FieldGender:        {kind: kindText, nullable: true, maxLen: 20, apply: func(e *Employee, v any) { e.Gender = stringValue(v) }},
	FieldMaritalStatus: {kind: kindText, nullable: true, maxLen: 20, apply: func(e *Employee, v any) { e.MaritalStatus = stringValue(v) }},
	FieldBirthDate:     {kind: kindDate, nullable: true, apply: func(e *Employee, v any) { e.BirthDate = timeValue(v) }},
	FieldAddress:       {kind: kindText, nullable: true, apply: func(e *Employee, v any) { e.Address = stringValue(v) }},
	FieldContractType: {
		kind:    kindEnum,
		allowed: func(s string) bool { return contains(contractTypes, s) },
		apply:   func(e *Employee, v any) { e.ContractType = v.(string) },
	},
	FieldSchedule: {
		kind:    kindEnum,
		allowed: func(s string) bool { return contains(schedules, s) },
		apply:   func(e *Employee, v any) { e.Schedule = v.(string) },
	},
	FieldBiometricCode: {kind: kindText, nullable: true, maxLen: 50, apply: func(e *Employee, v any) { e.BiometricCode = stringValue(v) }},
}

// readOnlyFields はクライアントが読み取った値をそのまま送り返しても無視されるキーです。
var readOnlyFields = map[string]struct{}{
	string(FieldID):   {},
	"created_at":      {},
	"updated_at":      {},
	"nombre_cargo":    {},
	"nombre_proyecto": {},
	"nombre_ciudad":   {},
}

// Change は部分更新で書き換える 1 列です。Value は nil, string, time.Time, int64 のいずれかです。
type Change struct {
	Field Field
	Value any
}

// IsMutable は列が許可リストに含まれるかを返します。
func IsMutable(f Field) bool {
	_, ok := mutableFields[f]
	return ok
}

// ParseChanges は任意のキーを持つ更新要求を検証し、列名順に並んだ Change に変換します。
// 識別子や表示用の読み取り専用キーは除外され、未知のキーは検証エラーになります。
func ParseChanges(fields map[string]any) ([]Change, error) {
	changes := make([]Change, 0, len(fields))
	for key, raw := range fields {
		if _, ok := readOnlyFields[key]; ok {
			continue
		}
		field := Field(key)
		rule, ok := mutableFields[field]
		if !ok {
			return nil, apperror.Invalid(EntityName, key, "is not an updatable field")
		}
		value, err := rule.parse(field, raw)
		if err != nil {
			return nil, err
		}
		changes = append(changes, Change{Field: field, Value: value})
	}

	if len(changes) == 0 {
		return nil, ErrEmptyUpdate
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes, nil
}

// ApplyChanges は changes を e に反映します。
func ApplyChanges(e *Employee, changes []Change) {
	for _, c := range changes {
		if rule, ok := mutableFields[c.Field]; ok {
			rule.apply(e, c.Value)
		}
	}
}

// ChangedFields は変更履歴の campo_modificado に記録する列名の一覧です。
func ChangedFields(changes []Change) string {
	names := make([]string, 0, len(changes))
	for _, c := range changes {
		names = append(names, string(c.Field))
	}
	return strings.Join(names, ",")
}

func (r fieldRule) parse(field Field, raw any) (any, error) {
	if raw == nil {
		if r.nullable {
			return nil, nil
		}
		return nil, apperror.Required(EntityName, string(field))
	}

	switch r.kind {
	case kindText:
		s, ok := raw.(string)
		if !ok {
			return nil, apperror.Invalid(EntityName, string(field), "must be a string")
		}
		s = strings.TrimSpace(s)
		if s == "" {
			if r.nullable {
				return nil, nil
			}
			return nil, apperror.Required(EntityName, string(field))
		}
		if err := apperror.MaxLength(EntityName, string(field), s, r.maxLen); err != nil {
			return nil, err
		}
		if field == FieldEmail {
			return normalizeEmail(s)
		}
		return s, nil
	case kindEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, apperror.Invalid(EntityName, string(field), "must be a string")
		}
		s = strings.ToUpper(strings.TrimSpace(s))
		if !r.allowed(s) {
			if field == FieldStatus {
				return nil, ErrInvalidStatus
			}
			return nil, apperror.Invalid(EntityName, string(field), "is not a valid value")
		}
		return s, nil
	case kindDate:
		s, ok := raw.(string)
		if !ok {
			return nil, apperror.Invalid(EntityName, string(field), "must be a date (YYYY-MM-DD)")
		}
		if strings.TrimSpace(s) == "" && r.nullable {
			return nil, nil
		}
		d, err := shared.ParseDate(s)
		if err != nil {
			return nil, apperror.Invalid(EntityName, string(field), "must be a date (YYYY-MM-DD)")
		}
		return d, nil
	case kindRef:
		id, err := parseRef(raw)
		if err != nil {
			return nil, apperror.Invalid(EntityName, string(field), "must be a positive integer")
		}
		return id, nil
	default:
		return nil, fmt.Errorf("employee: unsupported field kind for %s", field)
	}
}

// validateLengths は作成時のテキスト列を列の最大文字数で検査します。
func validateLengths(e *Employee) error {
	limit := func(f Field, v *string) apperror.TextLimit {
		return apperror.TextLimit{Field: string(f), Value: v, Max: mutableFields[f].maxLen}
	}
	return apperror.CheckLengths(EntityName,
		limit(FieldCode, &e.Code),
		limit(FieldIdentificationNumber, &e.IdentificationNumber),
		limit(FieldLastName, &e.LastName),
		limit(FieldFirstName, &e.FirstName),
		limit(FieldEmail, &e.Email),
		limit(FieldPhone, e.Phone),
		limit(FieldGender, e.Gender),
		limit(FieldMaritalStatus, e.MaritalStatus),
		limit(FieldBiometricCode, e.BiometricCode),
	)
}

func parseRef(raw any) (int64, error) {
	var id int64
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, err
		}
		id = n
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		id = int64(v)
	case int:
		id = int64(v)
	case int64:
		id = v
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, err
		}
		id = n
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("not positive: %d", id)
	}
	return id, nil
}

func normalizeEmail(raw string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(lower)
	if err != nil || addr.Address != lower {
		return "", ErrInvalidEmail
	}
	return lower, nil
}

func stringValue(v any) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

func timeValue(v any) *time.Time {
	if v == nil {
		return nil
	}
	t := v.(time.Time)
	return &t
}

func int64Value(v any) *int64 {
	if v == nil {
		return nil
	}
	n := v.(int64)
	return &n
}
