package model

import (
	"time"
)

// Base contains common fields for all models
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// Ref is the {id, name} pair embedded in joined projections.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func presentID(id *int64) bool {
	return id != nil && *id != 0
}
