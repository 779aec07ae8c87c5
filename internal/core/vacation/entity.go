package vacation

import (
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Status は vacacion 申請の状態です。
type Status string

const (
	StatusPending  Status = "PENDIENTE"
	StatusApproved Status = "APROBADO"
	StatusRejected Status = "RECHAZADO"
)

// Request は vacacion 申請エンティティです。
type Request struct {
	ID         int64
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	ApprovedBy *int64
	Status     Status
	Notes      *string
	CreatedAt  time.Time

	// 読み取り時に funcionario から補完されます。
	EmployeeCode      *string
	EmployeeLastName  *string
	EmployeeFirstName *string
	ApproverLastName  *string
	ApproverFirstName *string
}

// Record は vacacion の外部表現です。
type Record struct {
	ID                int64   `json:"vacacion_id"`
	EmployeeID        int64   `json:"funcionario_id"`
	StartDate         string  `json:"fecha_inicio"`
	EndDate           string  `json:"fecha_fin"`
	Days              int     `json:"dias_totales"`
	ApprovedBy        *int64  `json:"aprobado_por"`
	Status            string  `json:"estado"`
	Notes             *string `json:"observaciones"`
	CreatedAt         string  `json:"created_at"`
	EmployeeCode      *string `json:"codigo_unico,omitempty"`
	EmployeeLastName  *string `json:"apellidos,omitempty"`
	EmployeeFirstName *string `json:"nombres,omitempty"`
	ApproverLastName  *string `json:"aprobador_apellidos,omitempty"`
	ApproverFirstName *string `json:"aprobador_nombres,omitempty"`
}

// NewRecord は Request を Record に変換します。
func NewRecord(r *Request) Record {
	return Record{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		StartDate:         r.StartDate.Format(shared.DateLayout),
		EndDate:           r.EndDate.Format(shared.DateLayout),
		Days:              r.Days,
		ApprovedBy:        r.ApprovedBy,
		Status:            string(r.Status),
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt.UTC().Format(time.RFC3339Nano),
		EmployeeCode:      r.EmployeeCode,
		EmployeeLastName:  r.EmployeeLastName,
		EmployeeFirstName: r.EmployeeFirstName,
		ApproverLastName:  r.ApproverLastName,
		ApproverFirstName: r.ApproverFirstName,
	}
}

// IsValidStatus は状態が既知の値かを判定します。
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// InclusiveDays は start から end までの日数を両端を含めて数えます。
func InclusiveDays(start, end time.Time) int {
	s := shared.NormalizeDate(start)
	e := shared.NormalizeDate(end)
	return int(e.Sub(s).Hours()/24) + 1
}
