package models

// RoleType defines the role carried in access tokens
type RoleType string

const (
	RoleAdmin       RoleType = "ADMIN"
	RoleOrganizer   RoleType = "ORGANIZER"
	RoleParticipant RoleType = "PARTICIPANT"
)

// EventType classifies rows of the test_events telemetry log
type EventType string

const (
	EventTypePaste EventType = "paste"
	EventTypeBlur  EventType = "blur"
	EventTypeFocus EventType = "focus"
)
