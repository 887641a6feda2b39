package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	portsrepo "github.com/SscSPs/splitbalance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/dto"
	"github.com/SscSPs/splitbalance/internal/utils"
	"github.com/google/uuid"
)

// inviteCodeAttempts bounds retries when a generated invite code collides.
const inviteCodeAttempts = 3

// GroupService handles groups and their memberships.
type GroupService struct {
	BaseService
	groupRepo     portsrepo.GroupRepositoryFacade
	newInviteCode func() (string, error)
	now           func() time.Time
}

// NewGroupService creates a GroupService. It is its own group authorizer.
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade) *GroupService {
	s := &GroupService{
		groupRepo:     groupRepo,
		newInviteCode: utils.GenerateInviteCode,
		now:           time.Now,
	}
	s.GroupAuthorizer = s
	return s
}

var _ portssvc.GroupSvcFacade = (*GroupService)(nil)

// CreateGroup creates a group with the creator as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	now := s.now()
	group := domain.Group{
		GroupID: uuid.NewString(),
		Name:    strings.TrimSpace(req.Name),
		Members: []domain.Participant{{
			ParticipantID: creatorUserID,
			DisplayName:   strings.TrimSpace(req.DisplayName),
			JoinedAt:      now,
		}},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if group.Name == "" {
		return nil, fmt.Errorf("%w: group name is required", apperrors.ErrValidation)
	}

	var err error
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		group.InviteCode, err = s.newInviteCode()
		if err != nil {
			s.LogError(ctx, err, "Failed to generate invite code")
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}
		err = s.groupRepo.SaveGroup(ctx, group)
		if !errors.Is(err, apperrors.ErrDuplicate) {
			break
		}
		s.LogDebug(ctx, "Invite code collision, retrying", slog.Int("attempt", attempt+1))
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to save group", slog.String("group_name", group.Name))
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.LogInfo(ctx, "Group created", slog.String("group_id", group.GroupID), slog.String("creator_user_id", creatorUserID))
	return &group, nil
}

// GetGroup retrieves a group the requesting user belongs to.
func (s *GroupService) GetGroup(ctx context.Context, groupID, requestingUserID string) (*domain.Group, error) {
	return s.AuthorizeMember(ctx, groupID, requestingUserID)
}

// ListUserGroups retrieves every group the user belongs to.
func (s *GroupService) ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByParticipant(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list groups for user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list groups for user %s: %w", userID, err)
	}
	if groups == nil {
		return []domain.Group{}, nil
	}
	return groups, nil
}

// AddMember adds a participant to a group on behalf of an existing member.
func (s *GroupService) AddMember(ctx context.Context, groupID string, req dto.AddMemberRequest, requestingUserID string) (*domain.Group, error) {
	if _, err := s.AuthorizeMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}

	member := domain.Participant{
		ParticipantID: strings.TrimSpace(req.ParticipantID),
		DisplayName:   strings.TrimSpace(req.DisplayName),
		JoinedAt:      s.now(),
	}
	if member.ParticipantID == "" {
		return nil, fmt.Errorf("%w: participant ID is required", apperrors.ErrValidation)
	}

	if err := s.groupRepo.AddMember(ctx, groupID, member); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to add member", slog.String("group_id", groupID), slog.String("participant_id", member.ParticipantID))
		}
		return nil, fmt.Errorf("failed to add member %s to group %s: %w", member.ParticipantID, groupID, err)
	}

	s.LogInfo(ctx, "Member added to group",
		slog.String("group_id", groupID),
		slog.String("participant_id", member.ParticipantID),
		slog.String("added_by_user_id", requestingUserID))
	return s.groupRepo.FindGroupByID(ctx, groupID)
}

// JoinByInviteCode adds the user to the group the code belongs to. Joining a group
// the user is already in returns the group unchanged.
func (s *GroupService) JoinByInviteCode(ctx context.Context, req dto.JoinGroupRequest, userID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByInviteCode(ctx, strings.ToUpper(req.InviteCode))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Join attempted with unknown invite code", slog.String("user_id", userID))
		}
		return nil, err
	}
	if group.HasMember(userID) {
		return group, nil
	}

	member := domain.Participant{ParticipantID: userID, DisplayName: strings.TrimSpace(req.DisplayName), JoinedAt: s.now()}
	if err := s.groupRepo.AddMember(ctx, group.GroupID, member); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
		s.LogError(ctx, err, "Failed to join group", slog.String("group_id", group.GroupID))
		return nil, fmt.Errorf("failed to join group %s: %w", group.GroupID, err)
	}

	s.LogInfo(ctx, "User joined group by invite code", slog.String("group_id", group.GroupID))
	return s.groupRepo.FindGroupByID(ctx, group.GroupID)
}

// AuthorizeMember returns the group if userID is one of its members.
// Returns apperrors.ErrNotFound if the group doesn't exist and
// apperrors.ErrForbidden if the user is not a member.
func (s *GroupService) AuthorizeMember(ctx context.Context, groupID, userID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load group for authorization", slog.String("group_id", groupID))
			return nil, fmt.Errorf("failed to check authorization: %w", err)
		}
		return nil, err
	}

	if !group.HasMember(userID) {
		s.GetLogger(ctx).Warn("Authorization failed: user is not a group member",
			slog.String("user_id", userID),
			slog.String("group_id", groupID))
		return nil, apperrors.ErrForbidden
	}
	return group, nil
}
