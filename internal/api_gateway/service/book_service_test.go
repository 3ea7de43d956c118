package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/data/memory"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

func usdCurrency() money.Currency { return money.USD() }

func TestBookServiceImpl_OpenBook(t *testing.T) {
	ctx := context.Background()
	defaults := config.BookConfig{Currency: "USD", StartTime: time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)}
	custom := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		start        time.Time
		currency     string
		wantStart    time.Time
		wantCurrency string
	}{
		{"Defaults", time.Time{}, "", defaults.StartTime, "USD"},
		{"Explicit", custom, "cad", custom, "CAD"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := client.NewMultiClient(testLogger(), memory.NewBookRepository(testLogger()), metrics.New())
			svc := NewBookService(testLogger(), c, defaults)

			info, err := svc.OpenBook(ctx, "alice", tc.start, tc.currency)
			require.NoError(t, err)
			assert.Equal(t, "alice", info.UserID)
			assert.Equal(t, tc.wantCurrency, info.Currency)
			assert.True(t, tc.wantStart.Equal(info.StartTime))

			bs, err := svc.BalanceSheet(ctx, "alice", tc.wantStart.Add(time.Hour))
			require.NoError(t, err)
			assert.Equal(t, tc.wantCurrency, bs.Currency.Code)
		})
	}

	t.Run("AlreadyOpen", func(t *testing.T) {
		svc := NewBookService(testLogger(), newClientWithBook(t), defaults)
		_, err := svc.OpenBook(ctx, "alice", time.Time{}, "")
		assert.ErrorIs(t, err, book.ErrBookExists{})
	})
}

func TestBookServiceImpl_FinancialStatement(t *testing.T) {
	ctx := context.Background()
	svc := NewBookService(testLogger(), newClientWithBook(t), config.BookConfig{})

	fs, err := svc.FinancialStatement(ctx, "alice", opened, opened.Add(24*time.Hour))
	require.NoError(t, err)
	assert.True(t, fs.IsValid())

	_, err = svc.FinancialStatement(ctx, "bob", opened, opened.Add(time.Hour))
	assert.ErrorIs(t, err, book.ErrBookNotFound{UserID: "bob"})
}
