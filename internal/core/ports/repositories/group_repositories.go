package repositories

import (
	"context"

	"github.com/SscSPs/splitbalance/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a group with its members.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// FindGroupByInviteCode retrieves a group by its invite code.
	FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error)

	// ListGroupsByParticipant retrieves all groups a participant belongs to.
	ListGroupsByParticipant(ctx context.Context, participantID string) ([]domain.Group, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	// SaveGroup persists a new group together with its initial members.
	SaveGroup(ctx context.Context, group domain.Group) error
}

// GroupMembershipManager defines operations for managing group memberships
type GroupMembershipManager interface {
	// AddMember adds a participant to a group. Adding an existing member returns apperrors.ErrDuplicate.
	AddMember(ctx context.Context, groupID string, member domain.Participant) error

	// IsMember reports whether a participant belongs to a group.
	IsMember(ctx context.Context, groupID, participantID string) (bool, error)
}

// GroupRepositoryFacade combines all group-related repository interfaces
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
	GroupMembershipManager
}
