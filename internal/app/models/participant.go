package models

// Participant is a registered person. Name parts are nullable in the schema.
type Participant struct {
	ID        int64   `db:"id"`
	FirstName *string `db:"first_name"`
	LastName  *string `db:"last_name"`
}
