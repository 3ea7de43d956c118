package components

import (
	"context"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/platform/metrics"
	"github.com/zeppelin-cash/internal/transaction_processor/service"
)

func TestCreateProcessingService(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{WorkerPool: config.WorkerPoolConfig{Size: 5}}

	t.Run("wraps the base service in a worker pool", func(t *testing.T) {
		processingService := CreateProcessingService(slog.Default(), client.NewLocalClient(slog.Default(), nil), &MockDeadLetterPublisher{}, metrics.New(), cfg)

		pool, ok := processingService.(*service.WorkerPoolProcessingService)
		require.True(t, ok)
		defer pool.Shutdown()
		assert.Equal(t, 5, pool.Capacity())
	})

	t.Run("records valid requests and dead-letters the rest", func(t *testing.T) {
		c := client.NewLocalClient(slog.Default(), book.New(opened, money.USD()))
		dlq := &MockDeadLetterPublisher{}
		processingService := CreateProcessingService(slog.Default(), c, dlq, metrics.New(), cfg)
		if pool, ok := processingService.(*service.WorkerPoolProcessingService); ok {
			defer pool.Shutdown()
		}

		good := investmentRequest(opened.Add(time.Hour), "100")
		require.NoError(t, processingService.ProcessTransaction(ctx, good))
		// Redelivery is skipped
		require.NoError(t, processingService.ProcessTransaction(ctx, good))

		early := investmentRequest(opened.Add(time.Minute), "5")
		dlq.On("PublishToDLQ", mock.Anything, "alice", mock.Anything, shared.FailureReasonOutOfOrder, mock.Anything).Return(nil).Once()
		require.NoError(t, processingService.ProcessTransaction(ctx, early))

		txs, err := c.Transactions(ctx, "alice", opened, opened.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, good.RequestID, txs[0].ID)
		dlq.AssertExpectations(t)
	})
}
