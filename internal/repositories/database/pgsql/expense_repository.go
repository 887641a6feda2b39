package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	portsrepo "github.com/SscSPs/splitbalance/internal/core/ports/repositories"
	"github.com/SscSPs/splitbalance/internal/models"
	"github.com/SscSPs/splitbalance/internal/utils/mapping"
	"github.com/SscSPs/splitbalance/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExpenseRepository stores expenses, settlements and their split lines in PostgreSQL.
type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, group_id, description, payer_id, amount, currency_code, split_type,
	expense_date, is_settlement, created_at, created_by, last_updated_at, last_updated_by`

// SaveExpense inserts an expense and its split lines within a DB transaction.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	modelExpense, lines := mapping.ToModelExpense(expense)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		modelExpense.ExpenseID,
		modelExpense.GroupID,
		modelExpense.Description,
		modelExpense.PayerID,
		modelExpense.Amount,
		modelExpense.CurrencyCode,
		modelExpense.SplitType,
		modelExpense.ExpenseDate,
		modelExpense.IsSettlement,
		modelExpense.CreatedAt,
		modelExpense.CreatedBy,
		modelExpense.LastUpdatedAt,
		modelExpense.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, modelExpense.ExpenseID)
		}
		return apperrors.NewAppError(500, "failed to insert expense "+modelExpense.ExpenseID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO expense_lines (expense_id, line_no, participant_id, amount, spec)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, l := range lines {
		batch.Queue(lineQuery, l.ExpenseID, l.LineNo, l.ParticipantID, l.Amount, l.Spec)
	}
	// Close surfaces the first failed insert in the batch
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert split lines for expense "+modelExpense.ExpenseID, err)
	}

	return r.Commit(ctx, tx)
}

// FindExpenseByID retrieves an expense of a group with its split lines.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, groupID, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE group_id = $1 AND expense_id = $2;`

	modelExpense, err := scanExpense(r.Pool.QueryRow(ctx, query, groupID, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense by ID "+expenseID, err)
	}

	expenses, err := r.withLines(ctx, []models.Expense{modelExpense})
	if err != nil {
		return nil, err
	}
	return &expenses[0], nil
}

// ListExpensesByGroup retrieves a page of a group's expenses ordered by
// (expense_date, created_at, expense_id) descending. It returns the expenses, a
// token for the next page, and an error.
func (r *PgxExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string, limit int, nextToken *string, includeSettlements bool) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE group_id = $1`
	args := []any{groupID}

	if !includeSettlements {
		query += ` AND is_settlement = FALSE`
	}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		n := len(args)
		query += ` AND (expense_date, created_at, expense_id) < ($` + strconv.Itoa(n+1) +
			`, $` + strconv.Itoa(n+2) + `, $` + strconv.Itoa(n+3) + `)`
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
	}

	query += ` ORDER BY expense_date DESC, created_at DESC, expense_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	modelExpenses, err := r.queryExpenses(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(modelExpenses) > limit {
		modelExpenses = modelExpenses[:limit]
		last := modelExpenses[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.ExpenseDate, CreatedAt: last.CreatedAt, ID: last.ExpenseID})
		nextTokenVal = &token
	}

	expenses, err := r.withLines(ctx, modelExpenses)
	if err != nil {
		return nil, nil, err
	}
	return expenses, nextTokenVal, nil
}

// ListAllExpensesByGroup retrieves every expense and settlement of a group in
// chronological order.
func (r *PgxExpenseRepository) ListAllExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	modelExpenses, err := r.queryExpenses(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE group_id = $1
		ORDER BY expense_date, created_at, expense_id;`, groupID)
	if err != nil {
		return nil, err
	}
	return r.withLines(ctx, modelExpenses)
}

func (r *PgxExpenseRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan expenses", err)
	}
	return modelExpenses, nil
}

// withLines loads the split lines of the given expenses with a single query and
// assembles domain expenses in the same order.
func (r *PgxExpenseRepository) withLines(ctx context.Context, modelExpenses []models.Expense) ([]domain.Expense, error) {
	expenses := make([]domain.Expense, 0, len(modelExpenses))
	if len(modelExpenses) == 0 {
		return expenses, nil
	}

	ids := make([]string, len(modelExpenses))
	for i, e := range modelExpenses {
		ids[i] = e.ExpenseID
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT expense_id, line_no, participant_id, amount, spec
		FROM expense_lines
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, line_no;`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query split lines", err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExpenseLine, error) {
		var l models.ExpenseLine
		err := row.Scan(&l.ExpenseID, &l.LineNo, &l.ParticipantID, &l.Amount, &l.Spec)
		return l, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan split lines", err)
	}

	byExpense := make(map[string][]models.ExpenseLine, len(modelExpenses))
	for _, l := range lines {
		byExpense[l.ExpenseID] = append(byExpense[l.ExpenseID], l)
	}
	for _, e := range modelExpenses {
		expenses = append(expenses, mapping.ToDomainExpense(e, byExpense[e.ExpenseID]))
	}
	return expenses, nil
}

func scanExpense(row pgx.Row) (models.Expense, error) {
	var e models.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.GroupID,
		&e.Description,
		&e.PayerID,
		&e.Amount,
		&e.CurrencyCode,
		&e.SplitType,
		&e.ExpenseDate,
		&e.IsSettlement,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}
