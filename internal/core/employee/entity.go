package employee

import (
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Status は funcionario の状態を表します。
type Status string

const (
	StatusActive    Status = "ACTIVO"
	StatusInactive  Status = "INACTIVO"
	StatusVacation  Status = "VACACIONES"
	StatusLeave     Status = "LICENCIA"
	StatusSuspended Status = "SUSPENDIDO"
)

// IdentificationType は身分証明書の種類です。
type IdentificationType string

const (
	IdentificationCedula    IdentificationType = "CEDULA"
	IdentificationPasaporte IdentificationType = "PASAPORTE"
	IdentificationRUC       IdentificationType = "RUC"
	IdentificationOther     IdentificationType = "OTRO"
)

// 作成時の既定値です。
const (
	DefaultStatus             = StatusActive
	DefaultIdentificationType = IdentificationCedula
	DefaultContractType       = "INDEFINIDO"
	DefaultSchedule           = "TIEMPO_COMPLETO"
)

var (
	contractTypes = []string{"INDEFINIDO", "PLAZO_FIJO", "OCASIONAL", "SERVICIOS_PROFESIONALES"}
	schedules     = []string{"TIEMPO_COMPLETO", "MEDIO_TIEMPO", "POR_HORAS"}
)

// Employee は funcionario エンティティです。
type Employee struct {
	ID                   int64
	Code                 string
	IdentificationType   IdentificationType
	IdentificationNumber string
	LastName             string
	FirstName            string
	Email                string
	Phone                *string
	HiredAt              time.Time
	TerminatedAt         *time.Time
	Status               Status
	PositionID           *int64
	ProjectID            *int64
	CityID               *int64
	Gender               *string
	MaritalStatus        *string
	BirthDate            *time.Time
	Address              *string
	ContractType         string
	Schedule             string
	BiometricCode        *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// 参照先の表示名です。読み取り時にのみ設定されます。
	PositionName *string
	ProjectName  *string
	CityName     *string
}

// FullName は "apellidos nombres" 形式の氏名を返します。
func (e *Employee) FullName() string {
	return e.LastName + " " + e.FirstName
}

// Clone は Employee の深いコピーを返します。
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	c := *e
	c.Phone = shared.CloneString(e.Phone)
	c.TerminatedAt = shared.CloneTime(e.TerminatedAt)
	c.PositionID = shared.CloneInt64(e.PositionID)
	c.ProjectID = shared.CloneInt64(e.ProjectID)
	c.CityID = shared.CloneInt64(e.CityID)
	c.Gender = shared.CloneString(e.Gender)
	c.MaritalStatus = shared.CloneString(e.MaritalStatus)
	c.BirthDate = shared.CloneTime(e.BirthDate)
	c.Address = shared.CloneString(e.Address)
	c.BiometricCode = shared.CloneString(e.BiometricCode)
	c.PositionName = shared.CloneString(e.PositionName)
	c.ProjectName = shared.CloneString(e.ProjectName)
	c.CityName = shared.CloneString(e.CityName)
	return &c
}

// IsValidStatus は状態が既知の値かを判定します。
func IsValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive, StatusVacation, StatusLeave, StatusSuspended:
		return true
	default:
		return false
	}
}

func isValidIdentificationType(t IdentificationType) bool {
	switch t {
	case IdentificationCedula, IdentificationPasaporte, IdentificationRUC, IdentificationOther:
		return true
	default:
		return false
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
