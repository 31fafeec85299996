package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/finbook/ledger-service/internal/models"
)

// Repository provides database operations against the ledger schema
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListDueRules retrieves every unpaused rule due on or before referenceDate.
// Rows are validated before they are handed to the scheduler; rules are
// written by an external flow and their shape is not trusted implicitly.
func (r *Repository) ListDueRules(ctx context.Context, referenceDate time.Time) ([]models.RecurringRule, error) {
	query := `
		SELECT id, user_id, wallet_id, category_id, amount_minor, description,
		       frequency, recur_interval, next_run_date, is_paused
		FROM ledger.recurring_rules
		WHERE is_paused = FALSE AND next_run_date <= $1`
	rows, err := r.db.QueryContext(ctx, query, referenceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list due rules: %w", err)
	}
	defer rows.Close()

	var rules []models.RecurringRule
	for rows.Next() {
		var rule models.RecurringRule
		var description sql.NullString
		err := rows.Scan(&rule.ID, &rule.UserID, &rule.WalletID, &rule.CategoryID,
			&rule.AmountMinor, &description, &rule.Frequency, &rule.Interval,
			&rule.NextRunDate, &rule.IsPaused)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rule.Description = description.String
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("invalid rule row: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read due rules: %w", err)
	}
	return rules, nil
}

// InsertTransaction appends one materialized transaction to the ledger
func (r *Repository) InsertTransaction(ctx context.Context, instance *models.TransactionInstance) error {
	if err := instance.Validate(); err != nil {
		return fmt.Errorf("refusing to insert transaction: %w", err)
	}
	query := `
		INSERT INTO ledger.transactions (id, rule_id, user_id, wallet_id, category_id,
		                                 amount_minor, description, occurred_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP)`
	if _, err := r.db.ExecContext(ctx, query, instance.ID, instance.RuleID, instance.UserID,
		instance.WalletID, instance.CategoryID, instance.AmountMinor,
		instance.Description, instance.OccurredOn); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateNextRunDate moves one rule's schedule forward. No other field is
// touched.
func (r *Repository) UpdateNextRunDate(ctx context.Context, ruleID int64, next time.Time) error {
	query := `
		UPDATE ledger.recurring_rules
		SET next_run_date = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, ruleID, next)
	if err != nil {
		return fmt.Errorf("failed to update next run date for rule %d: %w", ruleID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update next run date for rule %d: %w", ruleID, err)
	}
	if affected != 1 {
		return fmt.Errorf("rule %d not found", ruleID)
	}
	return nil
}
