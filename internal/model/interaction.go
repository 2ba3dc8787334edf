package model

import (
	"errors"
	"strings"
	"time"
)

// Interaction records a contact between two objects persisted in the
// `interactions` table. Direction is kept as recorded (subject acted on
// target); ranking aggregation collapses direction via OrderPair.
//
// Fields:
//  ID         – primary key identifier.
//  SubjectID  – objects.id of the initiating device.
//  TargetID   – objects.id of the device interacted with.
//  Kind       – interaction kind (e.g. "ping", "pair", "data").
//  Strength   – relative weight of the contact; defaults to 1.
//  OccurredAt – when the interaction happened on the device.
//  CreatedAt  – when the row was written.
type Interaction struct {
	ID         uint64    `json:"id"`
	SubjectID  uint64    `json:"subject_id"`
	TargetID   uint64    `json:"target_id"`
	Kind       string    `json:"kind"`
	Strength   int       `json:"strength"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate rejects malformed records before they reach the store. A device
// cannot interact with itself.
func (i *Interaction) Validate() error {
	if i.SubjectID == 0 || i.TargetID == 0 {
		return errors.New("interaction: subject_id and target_id are required")
	}
	if i.SubjectID == i.TargetID {
		return errors.New("interaction: subject and target must differ")
	}
	if strings.TrimSpace(i.Kind) == "" {
		return errors.New("interaction: kind is required")
	}
	if i.Strength < 1 {
		return errors.New("interaction: strength must be positive")
	}
	return nil
}

// OrderPair returns the two object ids in canonical (ascending) order. The
// friendship ranking table stores one row per unordered pair, so both
// (a,b) and (b,a) interactions land on the same row.
func OrderPair(a, b uint64) (uint64, uint64) {
	if a > b {
		return b, a
	}
	return a, b
}
