package services

import (
	"context"

	"github.com/SscSPs/splitbalance/internal/core/domain"
	"github.com/SscSPs/splitbalance/internal/dto"
)

// GroupReaderSvc defines read operations for group data
type GroupReaderSvc interface {
	// GetGroup retrieves a group the requesting user belongs to.
	GetGroup(ctx context.Context, groupID, requestingUserID string) (*domain.Group, error)

	// ListUserGroups retrieves every group the user belongs to.
	ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error)
}

// GroupWriterSvc defines write operations for group data
type GroupWriterSvc interface {
	// CreateGroup creates a group with the creator as its first member.
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error)

	// AddMember adds a participant to a group the requesting user belongs to.
	AddMember(ctx context.Context, groupID string, req dto.AddMemberRequest, requestingUserID string) (*domain.Group, error)

	// JoinByInviteCode adds the user to the group identified by the invite code.
	JoinByInviteCode(ctx context.Context, req dto.JoinGroupRequest, userID string) (*domain.Group, error)
}

// GroupAuthorizerSvc defines membership checks used by other services
type GroupAuthorizerSvc interface {
	// AuthorizeMember returns the group if userID is a member.
	// Returns apperrors.ErrNotFound if the group does not exist and apperrors.ErrForbidden
	// if the user is not a member.
	AuthorizeMember(ctx context.Context, groupID, userID string) (*domain.Group, error)
}

// GroupSvcFacade combines all group-related service interfaces
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
	GroupAuthorizerSvc
}
