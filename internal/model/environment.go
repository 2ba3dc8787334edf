package model

import (
	"errors"
	"strings"
	"time"
)

// Environment is a point-in-time reading of an object's surroundings stored
// in the `environments` table. Zone doubles as the adjacency key: two
// objects with environment rows in the same zone are considered neighbors.
// Temperature and humidity are nullable because not every device reports
// them.
type Environment struct {
	ID          uint64    `json:"id"`
	ObjectID    uint64    `json:"object_id"`
	Zone        string    `json:"zone"`
	Temperature *float64  `json:"temperature,omitempty"`
	Humidity    *float64  `json:"humidity,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate rejects malformed records before they reach the store.
func (e *Environment) Validate() error {
	if e.ObjectID == 0 {
		return errors.New("environment: object_id is required")
	}
	if strings.TrimSpace(e.Zone) == "" {
		return errors.New("environment: zone is required")
	}
	return nil
}
