package models

import "time"

// Group is a row of the groups table.
type Group struct {
	GroupID    string `db:"group_id"`
	Name       string `db:"name"`
	InviteCode string `db:"invite_code"` // unique
	AuditFields
}

// GroupMember is a row of the group_members table.
type GroupMember struct {
	GroupID       string    `db:"group_id"`
	ParticipantID string    `db:"participant_id"`
	DisplayName   string    `db:"display_name"`
	JoinedAt      time.Time `db:"joined_at"`
}
