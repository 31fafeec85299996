package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionInstance represents one materialized occurrence of a
// recurring rule. Immutable once inserted; ownership passes to the ledger
// store.
type TransactionInstance struct {
	ID          uuid.UUID `json:"id"`
	RuleID      int64     `json:"rule_id"`
	UserID      int64     `json:"user_id"`
	WalletID    int64     `json:"wallet_id"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	AmountMinor int64     `json:"amount_minor"`
	Description string    `json:"description"`
	OccurredOn  time.Time `json:"occurred_on"` // the run's reference date, not the rule's due date
}

// Amount returns the minor-unit amount as a decimal currency value,
// e.g. 50000 -> 500.00. Used for diagnostics only.
func (t *TransactionInstance) Amount() decimal.Decimal {
	return decimal.New(t.AmountMinor, -2)
}

// Validate checks the instance before it is handed to the ledger store.
func (t *TransactionInstance) Validate() error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("transaction has no identity")
	}
	if t.RuleID <= 0 {
		return fmt.Errorf("transaction %s has no source rule", t.ID)
	}
	if t.UserID <= 0 || t.WalletID <= 0 {
		return fmt.Errorf("transaction %s has no owner", t.ID)
	}
	if t.AmountMinor == 0 {
		return fmt.Errorf("transaction %s has zero amount", t.ID)
	}
	if t.OccurredOn.IsZero() {
		return fmt.Errorf("transaction %s has no occurrence date", t.ID)
	}
	return nil
}
