package models

// Team represents a team registered for an event
type Team struct {
	ID      int64  `db:"id"`
	EventID int64  `db:"event_id"`
	Name    string `db:"name"`
}

// TeamMembership links a participant to a team within one event
type TeamMembership struct {
	ParticipantID int64   `db:"participant_id"`
	TeamID        int64   `db:"team_id"`
	DisplayCode   *string `db:"display_code"`
}
