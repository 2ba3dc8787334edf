package model

import (
	"errors"
	"strings"
	"time"
)

// Object represents a tracked VISO device persisted in the `objects` table.
// Each object carries a stable UUID in addition to the auto-incremented
// numeric key so external systems can reference it without leaking row ids.
// An object may optionally belong to a class (objects.class_id is nullable).
//
// Fields:
//  ID           – primary key identifier.
//  UUID         – stable external identifier, generated at creation.
//  Name         – unique human-friendly name of the device.
//  Kind         – free-form device kind (e.g. "sensor", "beacon").
//  ClassID      – optional foreign key into the classes table.
//  RegisteredBy – users.id of the admin who registered the device.
//  IsActive     – whether the device is currently in service.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Object struct {
	ID           uint64    `json:"id"`
	UUID         string    `json:"uuid"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	ClassID      *uint64   `json:"class_id,omitempty"`
	RegisteredBy uint64    `json:"registered_by"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate rejects malformed records before they reach the store.
func (o *Object) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("object: name is required")
	}
	if strings.TrimSpace(o.Kind) == "" {
		return errors.New("object: kind is required")
	}
	if o.UUID == "" {
		return errors.New("object: uuid is required")
	}
	if o.RegisteredBy == 0 {
		return errors.New("object: registered_by is required")
	}
	return nil
}
