package model

import "time"

// Ranking is one row of the friendship-ranking table. Exactly one row
// exists per unordered object pair; ObjectAID < ObjectBID always holds (see
// OrderPair). Score accumulates interaction strength and is maintained
// incrementally by the queue consumer, with a full rebuild available as an
// admin operation.
type Ranking struct {
	ID        uint64    `json:"id"`
	ObjectAID uint64    `json:"object_a_id"`
	ObjectBID uint64    `json:"object_b_id"`
	Score     uint64    `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}
