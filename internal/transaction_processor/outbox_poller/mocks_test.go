package outbox_poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/outbox"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/platform/metrics"
)

// MockOutboxRepo for testing
type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Create(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepo) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepo) UpdateStatus(ctx context.Context, id int64, status shared.OutboxStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOutboxRepo) IncrementAttempts(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepo) WithTx(pgx.Tx) outbox.Repository {
	return m
}

// MockArchiveRepo for testing
type MockArchiveRepo struct {
	mock.Mock
}

func (m *MockArchiveRepo) Create(ctx context.Context, record *archive.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockArchiveRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*archive.Record, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*archive.Record), args.Error(1)
}

func (m *MockArchiveRepo) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*archive.Record, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*archive.Record), args.Error(1)
}

func (m *MockArchiveRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArchiveRepo) GetByTimeRange(ctx context.Context, userID string, startTime, endTime time.Time) ([]*archive.Record, error) {
	args := m.Called(ctx, userID, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*archive.Record), args.Error(1)
}

// MockArchivePublisher for testing
type MockArchivePublisher struct {
	mock.Mock
}

func (m *MockArchivePublisher) PublishToArchive(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func sampleMessage(t *testing.T, id int64, attempts int) *outbox.Message {
	t.Helper()
	at := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	tx := journal.NewTransaction(at, "Buy inventory",
		journal.Debit("inventory", money.FromInt(300, money.USD())),
		journal.Credit("cash", money.FromInt(300, money.USD())))
	msg, err := outbox.NewMessage(archive.NewRecord("alice", tx, "corr-7"))
	require.NoError(t, err)
	msg.ID = id
	msg.Attempts = attempts
	return msg
}

// scrape returns the metrics exposition text
func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rec.Body.String()
}
