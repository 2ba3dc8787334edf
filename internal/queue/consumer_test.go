package queue

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/gommon/log"

	"github.com/visolab/viso-tracker/internal/repository"
)

func newConsumer(t *testing.T) (*RankingConsumer, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRankingConsumer(repository.NewRankingRepo(db), log.New("test")), mock
}

func TestHandleMessage_BumpsCanonicalPair(t *testing.T) {
	rc, mock := newConsumer(t)

	// Event arrives with subject > target; the stored pair must be ordered.
	body, _ := json.Marshal(InteractionRecordedEvent{
		InteractionID: 1,
		SubjectID:     9,
		TargetID:      2,
		Kind:          "ping",
		Strength:      3,
		OccurredAt:    "2026-08-27T10:00:00Z",
	})
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rankings (object_a_id, object_b_id, score) VALUES (?,?,?)")).
		WithArgs(uint64(2), uint64(9), 3).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := rc.handleMessage(body); err != nil {
		t.Fatalf("handleMessage error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHandleMessage_RejectsMalformedJSON(t *testing.T) {
	rc, _ := newConsumer(t)
	if err := rc.handleMessage([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestHandleMessage_RejectsInvalidEndpoints(t *testing.T) {
	rc, _ := newConsumer(t)

	cases := []InteractionRecordedEvent{
		{SubjectID: 0, TargetID: 2, Strength: 1},
		{SubjectID: 2, TargetID: 0, Strength: 1},
		{SubjectID: 4, TargetID: 4, Strength: 1},
	}
	for _, ev := range cases {
		body, _ := json.Marshal(ev)
		if err := rc.handleMessage(body); err == nil {
			t.Fatalf("expected error for event %+v", ev)
		}
	}
}
