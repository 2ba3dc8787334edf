// Package queue defines message payloads exchanged over the message broker
// and the background consumer that maintains the friendship-ranking table.
package queue

// InteractionRecordedEvent is published after an interaction row is
// written. It carries enough for downstream consumers (the ranking updater,
// analytics) to work without querying the primary database.
type InteractionRecordedEvent struct {
	InteractionID uint64 `json:"interaction_id"`
	SubjectID     uint64 `json:"subject_id"`
	TargetID      uint64 `json:"target_id"`
	Kind          string `json:"kind"`
	Strength      int    `json:"strength"`
	OccurredAt    string `json:"occurred_at"`
}
