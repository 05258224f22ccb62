package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// To satisfy postgres jsonb data type
type Points []Point

func (p *Points) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("type assertion to []byte failed")
	}
}

func (p Points) Value() (driver.Value, error) {
	return json.Marshal(p)
}
