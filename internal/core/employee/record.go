package employee

import (
	"encoding/json"
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Record は funcionario の外部表現です。API レスポンスと変更履歴のスナップショットの双方で使われます。
type Record struct {
	ID                   int64   `json:"funcionario_id"`
	Code                 string  `json:"codigo_unico"`
	IdentificationType   string  `json:"tipo_identificacion"`
	IdentificationNumber string  `json:"numero_identificacion"`
	LastName             string  `json:"apellidos"`
	FirstName            string  `json:"nombres"`
	Email                string  `json:"correo"`
	Phone                *string `json:"telefono"`
	HiredAt              string  `json:"fecha_ingreso"`
	TerminatedAt         *string `json:"fecha_salida"`
	Status               string  `json:"estado"`
	PositionID           *int64  `json:"cargo_id"`
	ProjectID            *int64  `json:"proyecto_id"`
	CityID               *int64  `json:"ciudad_id"`
	Gender               *string `json:"genero"`
	MaritalStatus        *string `json:"estado_civil"`
	BirthDate            *string `json:"fecha_nacimiento"`
	Address              *string `json:"direccion"`
	ContractType         string  `json:"tipo_contrato"`
	Schedule             string  `json:"jornada"`
	BiometricCode        *string `json:"codigo_biometrico"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
	PositionName         *string `json:"nombre_cargo,omitempty"`
	ProjectName          *string `json:"nombre_proyecto,omitempty"`
	CityName             *string `json:"nombre_ciudad,omitempty"`
}

// NewRecord は Employee を Record に変換します。
func NewRecord(e *Employee) Record {
	return Record{
		ID:                   e.ID,
		Code:                 e.Code,
		IdentificationType:   string(e.IdentificationType),
		IdentificationNumber: e.IdentificationNumber,
		LastName:             e.LastName,
		FirstName:            e.FirstName,
		Email:                e.Email,
		Phone:                e.Phone,
		HiredAt:              e.HiredAt.Format(shared.DateLayout),
		TerminatedAt:         shared.FormatDate(e.TerminatedAt),
		Status:               string(e.Status),
		PositionID:           e.PositionID,
		ProjectID:            e.ProjectID,
		CityID:               e.CityID,
		Gender:               e.Gender,
		MaritalStatus:        e.MaritalStatus,
		BirthDate:            shared.FormatDate(e.BirthDate),
		Address:              e.Address,
		ContractType:         e.ContractType,
		Schedule:             e.Schedule,
		BiometricCode:        e.BiometricCode,
		CreatedAt:            e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:            e.UpdatedAt.UTC().Format(time.RFC3339Nano),
		PositionName:         e.PositionName,
		ProjectName:          e.ProjectName,
		CityName:             e.CityName,
	}
}

// Snapshot は変更履歴に保存する JSON スナップショットを返します。表示名は含みません。
func Snapshot(e *Employee) (json.RawMessage, error) {
	if e == nil {
		return nil, nil
	}
	r := NewRecord(e)
	r.PositionName, r.ProjectName, r.CityName = nil, nil, nil
	return json.Marshal(r)
}
