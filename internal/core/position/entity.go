package position

import "time"

// Position は cargo (職位) エンティティです。作成後は参照専用です。
type Position struct {
	ID          int64
	Code        string
	Name        string
	Level       *int
	BaseSalary  *float64
	Description *string
	CreatedAt   time.Time
}

// Record は cargo の外部表現です。
type Record struct {
	ID          int64    `json:"cargo_id"`
	Code        string   `json:"codigo_cargo"`
	Name        string   `json:"nombre_cargo"`
	Level       *int     `json:"nivel"`
	BaseSalary  *float64 `json:"salario_base"`
	Description *string  `json:"descripcion"`
	CreatedAt   string   `json:"created_at"`
}

// NewRecord は Position を Record に変換します。
func NewRecord(p *Position) Record {
	return Record{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Level:       p.Level,
		BaseSalary:  p.BaseSalary,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
