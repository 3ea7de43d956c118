package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/data/memory"
	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

var opened = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newClientWithBook returns a client backed by memory storage where alice holds a USD book
func newClientWithBook(t *testing.T) client.Client {
	t.Helper()
	c := client.NewMultiClient(testLogger(), memory.NewBookRepository(testLogger()), metrics.New())
	require.NoError(t, c.OpenBook(context.Background(), "alice", opened, usdCurrency()))
	return c
}

type MockTransactionPublisher struct {
	mock.Mock
}

func (m *MockTransactionPublisher) PublishTransaction(ctx context.Context, req *shared.TransactionRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockTransactionPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Create(ctx context.Context, record *archive.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockArchiveRepository) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*archive.Record, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*archive.Record), args.Error(1)
}

func (m *MockArchiveRepository) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*archive.Record, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*archive.Record), args.Error(1)
}

func (m *MockArchiveRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArchiveRepository) GetByTimeRange(ctx context.Context, userID string, startTime, endTime time.Time) ([]*archive.Record, error) {
	args := m.Called(ctx, userID, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*archive.Record), args.Error(1)
}
