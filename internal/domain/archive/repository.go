package archive

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository manages archived transactions with pagination support
type Repository interface {
	Create(ctx context.Context, record *Record) error
	GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*Record, error)
	GetByUser(ctx context.Context, userID string, limit, offset int) ([]*Record, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	GetByTimeRange(ctx context.Context, userID string, startTime, endTime time.Time) ([]*Record, error)
}

// ErrRecordNotFound indicates missing archive record
type ErrRecordNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrRecordNotFound) Error() string {
	return "archived transaction not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrRecordNotFound
func (e ErrRecordNotFound) Is(target error) bool {
	t, ok := target.(ErrRecordNotFound)
	if !ok {
		return false
	}
	// If the target TransactionID is empty, consider it a match for any ErrRecordNotFound
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}

// ErrDuplicateRecord indicates transaction uniqueness violation
type ErrDuplicateRecord struct {
	TransactionID uuid.UUID
}

func (e ErrDuplicateRecord) Error() string {
	return "duplicate archived transaction: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrDuplicateRecord
func (e ErrDuplicateRecord) Is(target error) bool {
	t, ok := target.(ErrDuplicateRecord)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}
