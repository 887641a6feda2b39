package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	portsrepo "github.com/SscSPs/splitbalance/internal/core/ports/repositories"
	"github.com/SscSPs/splitbalance/internal/models"
	"github.com/SscSPs/splitbalance/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxGroupRepository stores groups and their members in PostgreSQL.
type PgxGroupRepository struct {
	BaseRepository
}

func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

const (
	groupColumns  = `group_id, name, invite_code, created_at, created_by, last_updated_at, last_updated_by`
	memberColumns = `group_id, participant_id, display_name, joined_at`
	insertMember  = `INSERT INTO group_members (` + memberColumns + `) VALUES ($1, $2, $3, $4)`
)

// SaveGroup inserts the group and its initial members in one transaction. An
// invite code collision returns apperrors.ErrDuplicate.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	modelGroup, members := mapping.ToModelGroup(group)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `INSERT INTO groups (`+groupColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		modelGroup.GroupID, modelGroup.Name, modelGroup.InviteCode,
		modelGroup.CreatedAt, modelGroup.CreatedBy, modelGroup.LastUpdatedAt, modelGroup.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invite code %s is taken", apperrors.ErrDuplicate, modelGroup.InviteCode)
		}
		return apperrors.NewAppError(500, "failed to insert group "+modelGroup.GroupID, err)
	}

	batch := &pgx.Batch{}
	for _, m := range members {
		batch.Queue(insertMember, m.GroupID, m.ParticipantID, m.DisplayName, m.JoinedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert members for group "+modelGroup.GroupID, err)
	}

	return r.Commit(ctx, tx)
}

// FindGroupByID retrieves a group with its members in join order.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	return r.findGroup(ctx, `SELECT `+groupColumns+` FROM groups WHERE group_id = $1`, groupID)
}

// FindGroupByInviteCode retrieves a group by its invite code.
func (r *PgxGroupRepository) FindGroupByInviteCode(ctx context.Context, inviteCode string) (*domain.Group, error) {
	return r.findGroup(ctx, `SELECT `+groupColumns+` FROM groups WHERE invite_code = $1`, inviteCode)
}

func (r *PgxGroupRepository) findGroup(ctx context.Context, query string, arg string) (*domain.Group, error) {
	modelGroup, err := scanGroup(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find group", err)
	}

	members, err := r.listMembers(ctx, []string{modelGroup.GroupID})
	if err != nil {
		return nil, err
	}

	group := mapping.ToDomainGroup(modelGroup, members[modelGroup.GroupID])
	return &group, nil
}

// ListGroupsByParticipant retrieves all groups a participant belongs to, newest first.
func (r *PgxGroupRepository) ListGroupsByParticipant(ctx context.Context, participantID string) ([]domain.Group, error) {
	query := `
		SELECT g.group_id, g.name, g.invite_code, g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.group_id
		WHERE gm.participant_id = $1
		ORDER BY g.created_at DESC, g.group_id;
	`
	rows, err := r.Pool.Query(ctx, query, participantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query groups for participant "+participantID, err)
	}
	defer rows.Close()

	modelGroups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Group, error) {
		return scanGroup(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan groups", err)
	}

	ids := make([]string, len(modelGroups))
	for i, g := range modelGroups {
		ids[i] = g.GroupID
	}
	members, err := r.listMembers(ctx, ids)
	if err != nil {
		return nil, err
	}

	groups := make([]domain.Group, len(modelGroups))
	for i, g := range modelGroups {
		groups[i] = mapping.ToDomainGroup(g, members[g.GroupID])
	}
	return groups, nil
}

// AddMember adds a participant to a group.
func (r *PgxGroupRepository) AddMember(ctx context.Context, groupID string, member domain.Participant) error {
	m := mapping.ToModelGroupMember(groupID, member)
	_, err := r.Pool.Exec(ctx, insertMember, m.GroupID, m.ParticipantID, m.DisplayName, m.JoinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s is already a member of group %s", apperrors.ErrDuplicate, m.ParticipantID, groupID)
		}
		return apperrors.NewAppError(500, "failed to add member to group "+groupID, err)
	}
	return nil
}

// IsMember reports whether a participant belongs to a group.
func (r *PgxGroupRepository) IsMember(ctx context.Context, groupID, participantID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM group_members WHERE group_id = $1 AND participant_id = $2)`,
		groupID, participantID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check membership", err)
	}
	return exists, nil
}

// listMembers loads members for several groups, keyed by group ID, in join order.
func (r *PgxGroupRepository) listMembers(ctx context.Context, groupIDs []string) (map[string][]models.GroupMember, error) {
	out := make(map[string][]models.GroupMember, len(groupIDs))
	if len(groupIDs) == 0 {
		return out, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT `+memberColumns+`
		FROM group_members
		WHERE group_id = ANY($1)
		ORDER BY group_id, joined_at, participant_id`, groupIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query group members", err)
	}
	defer rows.Close()

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.GroupMember, error) {
		var m models.GroupMember
		err := row.Scan(&m.GroupID, &m.ParticipantID, &m.DisplayName, &m.JoinedAt)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan group members", err)
	}
	for _, m := range members {
		out[m.GroupID] = append(out[m.GroupID], m)
	}
	return out, nil
}

func scanGroup(row pgx.Row) (models.Group, error) {
	var g models.Group
	err := row.Scan(&g.GroupID, &g.Name, &g.InviteCode, &g.CreatedAt, &g.CreatedBy, &g.LastUpdatedAt, &g.LastUpdatedBy)
	return g, err
}
