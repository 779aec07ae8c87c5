package attendance

import "time"

// Type は marcacion の種別です。
type Type string

const (
	TypeClockIn    Type = "ENTRADA"
	TypeClockOut   Type = "SALIDA"
	TypeBreakStart Type = "INICIO_DESCANSO"
	TypeBreakEnd   Type = "FIN_DESCANSO"
)

// Device は打刻に使用された端末の分類です。
type Device string

const (
	DeviceBiometric Device = "BIOMETRICO"
	DeviceMobile    Device = "MOVIL"
	DeviceWeb       Device = "WEB"
	DeviceManual    Device = "MANUAL"
)

// DefaultDevice は dispositivo が省略された場合の既定値です。
const DefaultDevice = DeviceBiometric

// Event は marcacion (打刻) エンティティです。追記のみで更新・削除はされません。
type Event struct {
	ID         int64
	EmployeeID int64
	Type       Type
	Timestamp  time.Time
	Device     Device
	Location   *string
	IPAddress  *string
	Notes      *string
	CreatedAt  time.Time

	// 読み取り時に funcionario から補完されます。
	EmployeeCode      *string
	EmployeeLastName  *string
	EmployeeFirstName *string
}

// Record は marcacion の外部表現です。
type Record struct {
	ID                int64   `json:"marcacion_id"`
	EmployeeID        int64   `json:"funcionario_id"`
	Type              string  `json:"tipo_marcacion"`
	Timestamp         string  `json:"fecha_hora"`
	Device            string  `json:"dispositivo"`
	Location          *string `json:"ubicacion"`
	IPAddress         *string `json:"ip_address"`
	Notes             *string `json:"observaciones"`
	CreatedAt         string  `json:"created_at"`
	EmployeeCode      *string `json:"codigo_unico,omitempty"`
	EmployeeLastName  *string `json:"apellidos,omitempty"`
	EmployeeFirstName *string `json:"nombres,omitempty"`
}

// NewRecord は Event を Record に変換します。
func NewRecord(e *Event) Record {
	return Record{
		ID:                e.ID,
		EmployeeID:        e.EmployeeID,
		Type:              string(e.Type),
		Timestamp:         e.Timestamp.UTC().Format(time.RFC3339),
		Device:            string(e.Device),
		Location:          e.Location,
		IPAddress:         e.IPAddress,
		Notes:             e.Notes,
		CreatedAt:         e.CreatedAt.UTC().Format(time.RFC3339Nano),
		EmployeeCode:      e.EmployeeCode,
		EmployeeLastName:  e.EmployeeLastName,
		EmployeeFirstName: e.EmployeeFirstName,
	}
}

// IsValidType は種別が既知の値かを判定します。
func IsValidType(t Type) bool {
	switch t {
	case TypeClockIn, TypeClockOut, TypeBreakStart, TypeBreakEnd:
		return true
	default:
		return false
	}
}

// IsValidDevice は端末分類が既知の値かを判定します。
func IsValidDevice(d Device) bool {
	switch d {
	case DeviceBiometric, DeviceMobile, DeviceWeb, DeviceManual:
		return true
	default:
		return false
	}
}
