package models

// RunResult summarizes one scheduler run. Not persisted; reported to the
// caller and discarded. The counters always satisfy
// RulesConsidered >= TransactionsCreated >= RulesAdvanced.
type RunResult struct {
	ReferenceDate       string `json:"reference_date"` // Format: YYYY-MM-DD
	RulesConsidered     int    `json:"rules_considered"`
	TransactionsCreated int    `json:"transactions_created"`
	RulesAdvanced       int    `json:"rules_advanced"`
	InsertFailures      int    `json:"insert_failures"`
	AdvanceFailures     int    `json:"advance_failures"`
}
