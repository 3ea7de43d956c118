package service

import (
	"context"
	"errors"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/ledger"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/shared"
)

// ClassifyFailure maps a processing error to the reason recorded with the failed request.
// permanent is false for errors worth retrying, such as a lost race on the book or an
// unreachable store.
func ClassifyFailure(err error) (reason shared.FailureReason, permanent bool) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return shared.FailureReasonSaveFailed, false
	case errors.Is(err, book.ErrConcurrentModification{}):
		return shared.FailureReasonSaveFailed, false
	case errors.Is(err, shared.ErrMissingUserID),
		errors.Is(err, shared.ErrInvalidAmount),
		errors.Is(err, shared.ErrInvalidCurrency),
		errors.Is(err, client.ErrInvalidUserID):
		return shared.FailureReasonInvalidPayload, true
	case errors.Is(err, book.ErrBookNotFound{}):
		return shared.FailureReasonBookNotFound, true
	case errors.Is(err, ledger.ErrAccountNotFound{}):
		return shared.FailureReasonAccountNotFound, true
	case errors.Is(err, money.ErrCurrencyMismatch):
		return shared.FailureReasonCurrencyMismatch, true
	case errors.Is(err, journal.ErrInvalidTransaction):
		return shared.FailureReasonInvalidTransaction, true
	case errors.Is(err, account.ErrEntryOutOfOrder), errors.Is(err, journal.ErrTransactionOutOfOrder):
		return shared.FailureReasonOutOfOrder, true
	case errors.Is(err, book.ErrPropagation), errors.Is(err, journal.ErrPushedCountExceeded):
		return shared.FailureReasonUnknownError, true
	default:
		return shared.FailureReasonSaveFailed, false
	}
}
