package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/ledger-service/internal/models"
	"github.com/finbook/ledger-service/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrRunInProgress is returned when another scheduler run holds the run
// lock. The caller should retry later; nothing has been touched.
var ErrRunInProgress = errors.New("recurring run already in progress")

// Gateway is the rule-store contract the scheduler consumes. The store
// owns all persistent state; the scheduler keeps none between runs.
type Gateway interface {
	// ListDueRules returns every rule that is not paused and whose next
	// run date is on or before referenceDate. Order is insignificant.
	ListDueRules(ctx context.Context, referenceDate time.Time) ([]models.RecurringRule, error)
	// InsertTransaction appends one transaction atomically.
	InsertTransaction(ctx context.Context, instance *models.TransactionInstance) error
	// UpdateNextRunDate moves exactly one rule's schedule forward.
	UpdateNextRunDate(ctx context.Context, ruleID int64, next time.Time) error
}

// RunLock serializes scheduler runs so two overlapping triggers cannot
// materialize the same rule twice.
type RunLock interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// Service executes recurring-rule runs
type Service struct {
	gateway Gateway
	lock    RunLock
	log     *logrus.Logger
}

// NewService initializes a new service
func NewService(gateway Gateway, lock RunLock, log *logrus.Logger) *Service {
	return &Service{gateway: gateway, lock: lock, log: log}
}

// RunRecurring executes one scheduler run against referenceDate and
// reports what happened. Per-rule failures are isolated: a failed insert
// leaves the rule due, so the next run retries the same occurrence. Only
// a failure to list due rules aborts the run.
func (s *Service) RunRecurring(ctx context.Context, referenceDate time.Time) (*models.RunResult, error) {
	ref := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, time.UTC)

	acquired, err := s.lock.TryAcquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !acquired {
		return nil, ErrRunInProgress
	}
	defer func() {
		if err := s.lock.Release(ctx); err != nil {
			s.log.Errorf("Failed to release run lock: %v", err)
		}
	}()

	rules, err := s.gateway.ListDueRules(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list due rules: %w", err)
	}

	result := &models.RunResult{ReferenceDate: ref.Format("2006-01-02")}
	result.RulesConsidered = len(rules)

	if len(rules) == 0 {
		s.log.Infof("Recurring run for %s: no rules due", result.ReferenceDate)
		return result, nil
	}

	for i := range rules {
		s.processRule(ctx, &rules[i], ref, result)
	}

	s.log.WithFields(logrus.Fields{
		"reference_date":       result.ReferenceDate,
		"rules_considered":     result.RulesConsidered,
		"transactions_created": result.TransactionsCreated,
		"rules_advanced":       result.RulesAdvanced,
		"insert_failures":      result.InsertFailures,
		"advance_failures":     result.AdvanceFailures,
	}).Info("Recurring run finished")

	return result, nil
}

// processRule materializes one due rule and advances its schedule. The
// insert and the advance are one logical step: the advance is attempted
// only after the insert is known to have succeeded.
func (s *Service) processRule(ctx context.Context, rule *models.RecurringRule, ref time.Time, result *models.RunResult) {
	if !rule.Frequency.Known() {
		s.log.Warnf("Rule %d has unrecognized frequency %q, stepping monthly", rule.ID, rule.Frequency)
	}

	instance := &models.TransactionInstance{
		ID:          uuid.New(),
		RuleID:      rule.ID,
		UserID:      rule.UserID,
		WalletID:    rule.WalletID,
		CategoryID:  rule.CategoryID,
		AmountMinor: rule.AmountMinor,
		Description: rule.Description,
		OccurredOn:  ref,
	}

	if err := s.gateway.InsertTransaction(ctx, instance); err != nil {
		// The rule stays due; the next run retries this occurrence.
		result.InsertFailures++
		s.log.Errorf("Failed to insert transaction for rule %d, rule left due: %v", rule.ID, err)
		return
	}
	result.TransactionsCreated++
	s.log.Infof("Materialized %s for rule %d on %s", instance.Amount(), rule.ID, result.ReferenceDate)

	next := utils.NextRunDate(rule.NextRunDate, rule.Frequency, rule.Interval)
	if err := s.gateway.UpdateNextRunDate(ctx, rule.ID, next); err != nil {
		// Transaction exists but the schedule did not move: the next run
		// can materialize this rule again. Kept distinct from insert
		// failures so operators can audit it.
		result.AdvanceFailures++
		s.log.Errorf("Transaction %s created but rule %d did not advance, double materialization possible on next run: %v",
			instance.ID, rule.ID, err)
		return
	}
	result.RulesAdvanced++
}
