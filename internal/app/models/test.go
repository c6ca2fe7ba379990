package models

import "time"

// Test represents one competitive test of an event
type Test struct {
	ID        int64      `db:"id"`
	EventID   int64      `db:"event_id"`
	Title     string     `db:"title"`
	StartsAt  *time.Time `db:"starts_at"`
	EndsAt    *time.Time `db:"ends_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// TestTaker is one participation slot of a test
type TestTaker struct {
	ID            int64 `db:"id"`
	TestID        int64 `db:"test_id"`
	ParticipantID int64 `db:"participant_id"`
}
