package project

import (
	"time"

	"github.com/ogurasousui/funcionarios-api/internal/core/shared"
)

// Status は proyecto の状態を表します。
type Status string

const (
	StatusActive    Status = "ACTIVO"
	StatusInactive  Status = "INACTIVO"
	StatusSuspended Status = "SUSPENDIDO"
)

// Project は proyecto エンティティです。
type Project struct {
	ID          int64
	Code        string
	Name        string
	Description *string
	Budget      *float64
	StartDate   *time.Time
	EndDate     *time.Time
	Status      Status
	CreatedAt   time.Time
}

// Record は proyecto の外部表現です。
type Record struct {
	ID          int64    `json:"proyecto_id"`
	Code        string   `json:"codigo_proyecto"`
	Name        string   `json:"nombre_proyecto"`
	Description *string  `json:"descripcion"`
	Budget      *float64 `json:"presupuesto"`
	StartDate   *string  `json:"fecha_inicio"`
	EndDate     *string  `json:"fecha_fin"`
	Status      string   `json:"estado"`
	CreatedAt   string   `json:"created_at"`
}

// NewRecord は Project を Record に変換します。
func NewRecord(p *Project) Record {
	return Record{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Budget:      p.Budget,
		StartDate:   shared.FormatDate(p.StartDate),
		EndDate:     shared.FormatDate(p.EndDate),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// IsValidStatus は状態が既知の値かを判定します。
func IsValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	default:
		return false
	}
}
