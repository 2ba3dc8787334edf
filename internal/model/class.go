package model

import (
	"errors"
	"strings"
	"time"
)

// Class groups related objects, e.g. all temperature sensors of one
// deployment. Rows live in the `classes` table; objects reference a class
// through objects.class_id.
type Class struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate rejects malformed records before they reach the store.
func (cl *Class) Validate() error {
	if strings.TrimSpace(cl.Name) == "" {
		return errors.New("class: name is required")
	}
	return nil
}
