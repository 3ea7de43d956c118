package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/ledger"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/shared"
)

func TestClassifyFailure(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		reason    shared.FailureReason
		permanent bool
	}{
		{"BadAmount", fmt.Errorf("entry 0: %w", shared.ErrInvalidAmount), shared.FailureReasonInvalidPayload, true},
		{"NoUser", shared.ErrMissingUserID, shared.FailureReasonInvalidPayload, true},
		{"EmptyUserAtClient", client.ErrInvalidUserID, shared.FailureReasonInvalidPayload, true},
		{"NoBook", book.ErrBookNotFound{UserID: "bob"}, shared.FailureReasonBookNotFound, true},
		{"NoAccount", ledger.ErrAccountNotFound{AccountID: "x"}, shared.FailureReasonAccountNotFound, true},
		{"Unbalanced", journal.ErrInvalidTransaction, shared.FailureReasonInvalidTransaction, true},
		{"MixedCurrencies", journal.ErrMixedCurrencies, shared.FailureReasonInvalidTransaction, true},
		{"WrongCurrency", fmt.Errorf("account cash: %w", money.ErrCurrencyMismatch), shared.FailureReasonCurrencyMismatch, true},
		{"EntryOutOfOrder", account.ErrEntryOutOfOrder, shared.FailureReasonOutOfOrder, true},
		{"JournalOutOfOrder", journal.ErrTransactionOutOfOrder, shared.FailureReasonOutOfOrder, true},
		{"PropagationOutOfOrder", fmt.Errorf("%w: %w", book.ErrPropagation, account.ErrEntryOutOfOrder), shared.FailureReasonOutOfOrder, true},
		{"Propagation", book.ErrPropagation, shared.FailureReasonUnknownError, true},
		{"LostRace", book.ErrConcurrentModification{UserID: "alice"}, shared.FailureReasonSaveFailed, false},
		{"Canceled", context.Canceled, shared.FailureReasonSaveFailed, false},
		{"StoreDown", errors.New("connection refused"), shared.FailureReasonSaveFailed, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reason, permanent := ClassifyFailure(tc.err)
			assert.Equal(t, tc.reason, reason)
			assert.Equal(t, tc.permanent, permanent)
		})
	}
}
