package dto

import (
	"time"

	"github.com/SscSPs/splitbalance/internal/core/domain"
)

// CreateGroupRequest defines data for creating a new group. The caller becomes its first member.
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	DisplayName string `json:"displayName" binding:"required,max=100"` // the creator's name within the group
}

// AddMemberRequest defines data for adding a participant to a group.
type AddMemberRequest struct {
	ParticipantID string `json:"participantID" binding:"required"`
	DisplayName   string `json:"displayName" binding:"required,max=100"`
}

// JoinGroupRequest defines data for joining a group with its invite code.
type JoinGroupRequest struct {
	InviteCode  string `json:"inviteCode" binding:"required,len=8,alphanum"`
	DisplayName string `json:"displayName" binding:"required,max=100"`
}

// MemberResponse defines data returned about a group member.
type MemberResponse struct {
	ParticipantID string    `json:"participantID"`
	DisplayName   string    `json:"displayName"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// GroupResponse defines data returned for a group.
type GroupResponse struct {
	GroupID    string           `json:"groupID"`
	Name       string           `json:"name"`
	InviteCode string           `json:"inviteCode"`
	Members    []MemberResponse `json:"members"`
	CreatedAt  time.Time        `json:"createdAt"`
	CreatedBy  string           `json:"createdBy"`
}

// ToGroupResponse converts domain.Group to DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	members := make([]MemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = MemberResponse{ParticipantID: m.ParticipantID, DisplayName: m.DisplayName, JoinedAt: m.JoinedAt}
	}
	return GroupResponse{
		GroupID:    g.GroupID,
		Name:       g.Name,
		InviteCode: g.InviteCode,
		Members:    members,
		CreatedAt:  g.CreatedAt,
		CreatedBy:  g.CreatedBy,
	}
}

// ListGroupsResponse wraps a list of groups.
type ListGroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// ToListGroupsResponse converts a slice of domain.Group to DTO.
func ToListGroupsResponse(gs []domain.Group) ListGroupsResponse {
	list := make([]GroupResponse, len(gs))
	for i, g := range gs {
		list[i] = ToGroupResponse(&g)
	}
	return ListGroupsResponse{Groups: list}
}
