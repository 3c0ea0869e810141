package models

import (
	"time"
)

// Type is a free-standing category label. Articles store their type as a
// plain string, not a reference, so this collection is a managed vocabulary
// rather than a relational parent.
type Type struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
