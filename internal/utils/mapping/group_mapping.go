package mapping

import (
	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/SscSPs/splitbalance/internal/models"
)

// ToModelGroup converts a domain Group to its group row and member rows.
func ToModelGroup(d domain.Group) (models.Group, []models.GroupMember) {
	members := make([]models.GroupMember, len(d.Members))
	for i, m := range d.Members {
		members[i] = ToModelGroupMember(d.GroupID, m)
	}
	return models.Group{
		GroupID:     d.GroupID,
		Name:        d.Name,
		InviteCode:  d.InviteCode,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}, members
}

// ToModelGroupMember converts a domain Participant to a member row of groupID.
func ToModelGroupMember(groupID string, p domain.Participant) models.GroupMember {
	return models.GroupMember{
		GroupID:       groupID,
		ParticipantID: p.ParticipantID,
		DisplayName:   p.DisplayName,
		JoinedAt:      p.JoinedAt,
	}
}

// ToDomainGroup assembles a domain Group. Members keep the order given.
func ToDomainGroup(m models.Group, members []models.GroupMember) domain.Group {
	participants := make([]domain.Participant, len(members))
	for i, gm := range members {
		participants[i] = domain.Participant{
			ParticipantID: gm.ParticipantID,
			DisplayName:   gm.DisplayName,
			JoinedAt:      gm.JoinedAt,
		}
	}
	return domain.Group{
		GroupID:     m.GroupID,
		Name:        m.Name,
		InviteCode:  m.InviteCode,
		Members:     participants,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
