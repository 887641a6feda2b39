package domain

import "time"

// Participant is a member of a group. Identity is fixed once created.
type Participant struct {
	ParticipantID string    `json:"participantID"` // the authenticated user's subject
	DisplayName   string    `json:"displayName"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// Group owns a set of participants and the expenses recorded between them.
type Group struct {
	GroupID    string        `json:"groupID"`
	Name       string        `json:"name"`
	InviteCode string        `json:"inviteCode"`
	Members    []Participant `json:"members"`
	AuditFields
}

// HasMember reports whether participantID belongs to the group.
func (g Group) HasMember(participantID string) bool {
	for _, m := range g.Members {
		if m.ParticipantID == participantID {
			return true
		}
	}
	return false
}

// MemberIDs returns member IDs in join order.
func (g Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ParticipantID
	}
	return ids
}

// DisplayNames maps participant IDs to display names.
func (g Group) DisplayNames() map[string]string {
	names := make(map[string]string, len(g.Members))
	for _, m := range g.Members {
		names[m.ParticipantID] = m.DisplayName
	}
	return names
}
