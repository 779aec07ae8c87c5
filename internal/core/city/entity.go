package city

import "time"

// DefaultCountry は pais が省略された場合の既定値です。
const DefaultCountry = "Ecuador"

// City は ciudad エンティティです。
type City struct {
	ID         int64
	Name       string
	PostalCode *string
	Province   *string
	Country    string
	CreatedAt  time.Time
}

// Record は ciudad の外部表現です。
type Record struct {
	ID         int64   `json:"ciudad_id"`
	Name       string  `json:"nombre_ciudad"`
	PostalCode *string `json:"codigo_postal"`
	Province   *string `json:"provincia"`
	Country    string  `json:"pais"`
	CreatedAt  string  `json:"created_at"`
}

// NewRecord は City を Record に変換します。
func NewRecord(c *City) Record {
	return Record{
		ID:         c.ID,
		Name:       c.Name,
		PostalCode: c.PostalCode,
		Province:   c.Province,
		Country:    c.Country,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
