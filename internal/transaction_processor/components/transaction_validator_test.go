package components

import (
	"context"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/shared"
)

var opened = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func investmentRequest(at time.Time, amount string) *shared.TransactionRequest {
	return &shared.TransactionRequest{
		RequestID:   uuid.New(),
		UserID:      "alice",
		Time:        at,
		Description: "Investing some cash",
		Entries: []shared.EntryRequest{
			{AccountID: string(book.CapitalStockID), Amount: amount, Currency: "USD"},
			{AccountID: string(book.CashID), IsDebit: true, Amount: amount, Currency: "USD"},
		},
	}
}

func TestTransactionValidator_Validate(t *testing.T) {
	validator := NewTransactionValidator(slog.Default(), client.NewLocalClient(slog.Default(), nil))

	unbalanced := investmentRequest(opened, "10")
	unbalanced.Entries[1].Amount = "9"

	tests := []struct {
		name    string
		request *shared.TransactionRequest
		wantErr error
	}{
		{"balanced", investmentRequest(opened, "10"), nil},
		{"bad amount", investmentRequest(opened, "ten"), shared.ErrInvalidAmount},
		{"negative amount", investmentRequest(opened, "-10"), shared.ErrInvalidAmount},
		{"unbalanced", unbalanced, journal.ErrInvalidTransaction},
		{"no user", &shared.TransactionRequest{RequestID: uuid.New()}, shared.ErrMissingUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := validator.Validate(context.Background(), tt.request)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.request.RequestID, tx.ID)
			assert.Len(t, tx.Entries, 2)
		})
	}
}

func TestTransactionValidator_CheckIdempotency(t *testing.T) {
	ctx := context.Background()
	c := client.NewLocalClient(slog.Default(), book.New(opened, money.USD()))
	validator := NewTransactionValidator(slog.Default(), c)

	recorded := investmentRequest(opened.Add(time.Hour), "10")
	tx, err := validator.Validate(ctx, recorded)
	require.NoError(t, err)
	require.NoError(t, c.AddTransaction(ctx, "alice", tx))

	t.Run("already in journal", func(t *testing.T) {
		skip, err := validator.CheckIdempotency(ctx, recorded, tx)
		require.NoError(t, err)
		assert.True(t, skip)
	})

	t.Run("same time, other request", func(t *testing.T) {
		other := investmentRequest(opened.Add(time.Hour), "10")
		otherTx, err := validator.Validate(ctx, other)
		require.NoError(t, err)

		skip, err := validator.CheckIdempotency(ctx, other, otherTx)
		require.NoError(t, err)
		assert.False(t, skip)
	})

	t.Run("no request id", func(t *testing.T) {
		anonymous := investmentRequest(opened.Add(time.Hour), "10")
		anonymous.RequestID = uuid.Nil

		skip, err := validator.CheckIdempotency(ctx, anonymous, tx)
		require.NoError(t, err)
		assert.False(t, skip)
	})

	t.Run("book missing", func(t *testing.T) {
		empty := NewTransactionValidator(slog.Default(), client.NewLocalClient(slog.Default(), nil))
		_, err := empty.CheckIdempotency(ctx, recorded, tx)
		assert.ErrorIs(t, err, book.ErrBookNotFound{})
	})
}
