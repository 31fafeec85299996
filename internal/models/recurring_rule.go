package models

import (
	"fmt"
	"time"
)

// Frequency is the schedule step unit of a recurring rule
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Known reports whether the frequency is one of the supported values.
// Unknown values are still processed (they step monthly) but are flagged
// by the scheduler so bad rule data does not pass silently.
func (f Frequency) Known() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// RecurringRule represents a standing instruction to materialize a
// transaction on a schedule. Only NextRunDate is ever mutated by the
// scheduler; everything else is owned by the rule-management flow.
type RecurringRule struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	WalletID    int64     `json:"wallet_id"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	AmountMinor int64     `json:"amount_minor"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency"`
	Interval    int       `json:"interval"`
	NextRunDate time.Time `json:"next_run_date"` // UTC calendar date, no time-of-day
	IsPaused    bool      `json:"is_paused"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// Validate checks the fields the scheduler relies on. Rules are stored by
// an external flow, so the gateway validates them on read instead of
// trusting the rows implicitly.
func (r *RecurringRule) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("rule has no identity")
	}
	if r.UserID <= 0 {
		return fmt.Errorf("rule %d has no owner", r.ID)
	}
	if r.WalletID <= 0 {
		return fmt.Errorf("rule %d has no wallet", r.ID)
	}
	if r.AmountMinor == 0 {
		return fmt.Errorf("rule %d has zero amount", r.ID)
	}
	if r.NextRunDate.IsZero() {
		return fmt.Errorf("rule %d has no next run date", r.ID)
	}
	return nil
}
