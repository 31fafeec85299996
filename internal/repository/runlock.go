package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// recurringRunLockKey identifies the scheduler's advisory lock. One key:
// at most one recurring run per database at a time.
const recurringRunLockKey = 815042701

// RunLock serializes recurring runs with a Postgres advisory lock.
// Advisory locks are session scoped, so the lock is taken on a dedicated
// connection that is held until Release.
type RunLock struct {
	db   *sql.DB
	conn *sql.Conn
}

// NewRunLock initializes a run lock over the given database
func NewRunLock(db *sql.DB) *RunLock {
	return &RunLock{db: db}
}

// TryAcquire attempts to take the run lock without blocking. It returns
// false when another run holds the lock.
func (l *RunLock) TryAcquire(ctx context.Context) (bool, error) {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to open lock connection: %w", err)
	}
	var acquired bool
	if err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", recurringRunLockKey).Scan(&acquired); err != nil {
		conn.Close()
		return false, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !acquired {
		conn.Close()
		return false, nil
	}
	l.conn = conn
	return true, nil
}

// Release unlocks and returns the connection to the pool
func (l *RunLock) Release(ctx context.Context) error {
	if l.conn == nil {
		return nil
	}
	conn := l.conn
	l.conn = nil
	defer conn.Close()
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", recurringRunLockKey); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}
	return nil
}
