package models

import "time"

// Answer is the latest submitted content of one question by one taker
type Answer struct {
	TakerID    int64      `db:"taker_id"`
	QuestionID int64      `db:"question_id"`
	Content    *string    `db:"content"`
	UpdatedAt  *time.Time `db:"updated_at"`
}

// TestEvent is one row of the browser telemetry log
type TestEvent struct {
	TakerID    int64     `db:"taker_id"`
	EventType  EventType `db:"event_type"`
	OccurredAt time.Time `db:"occurred_at"`
}
