package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/money"
)

func TestTransactionRequest_ToJournalTransaction(t *testing.T) {
	at := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	valid := func() TransactionRequest {
		return TransactionRequest{
			RequestID:   uuid.New(),
			UserID:      "user-1",
			Time:        at,
			Description: "Seed",
			Entries: []EntryRequest{
				{AccountID: "capital-stock", IsDebit: false, Amount: "1000.50", Currency: "USD"},
				{AccountID: "cash", IsDebit: true, Amount: "1000.50", Currency: "USD"},
			},
		}
	}

	t.Run("Success", func(t *testing.T) {
		req := valid()
		tx, err := req.ToJournalTransaction()
		require.NoError(t, err)

		assert.Equal(t, req.RequestID, tx.ID)
		assert.Equal(t, at, tx.Time)
		assert.Equal(t, "Seed", tx.Description)
		require.Len(t, tx.Entries, 2)
		assert.Equal(t, account.ID("cash"), tx.Entries[1].AccountID)
		assert.True(t, tx.Entries[1].IsDebit)
		assert.True(t, tx.Entries[1].Amount.Equal(money.FromMinor(100050, money.USD())))
		assert.NoError(t, tx.Validate())
	})

	t.Run("GeneratesIDWhenMissing", func(t *testing.T) {
		req := valid()
		req.RequestID = uuid.Nil
		tx, err := req.ToJournalTransaction()
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tx.ID)
	})

	testCases := []struct {
		name     string
		mutate   func(*TransactionRequest)
		expected error
	}{
		{"MissingUser", func(r *TransactionRequest) { r.UserID = "" }, ErrMissingUserID},
		{"BadAmount", func(r *TransactionRequest) { r.Entries[0].Amount = "ten" }, ErrInvalidAmount},
		{"NegativeAmount", func(r *TransactionRequest) { r.Entries[0].Amount = "-1" }, ErrInvalidAmount},
		{"MissingCurrency", func(r *TransactionRequest) { r.Entries[1].Currency = "" }, ErrInvalidCurrency},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(&req)
			_, err := req.ToJournalTransaction()
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
