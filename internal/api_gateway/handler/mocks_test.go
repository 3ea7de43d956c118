package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/api_gateway/service"
	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/domain/statement"
)

var opened = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// decodeResponse unmarshals the response envelope, leaving Data as raw JSON
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) (json.RawMessage, *ErrorInfo) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *ErrorInfo      `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope), rr.Body.String())
	return envelope.Data, envelope.Error
}

type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) OpenBook(ctx context.Context, userID string, start time.Time, currency string) (*service.BookInfo, error) {
	args := m.Called(ctx, userID, start, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookInfo), args.Error(1)
}

func (m *MockBookService) FinancialStatement(ctx context.Context, userID string, start, end time.Time) (statement.FinancialStatement, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Get(0).(statement.FinancialStatement), args.Error(1)
}

func (m *MockBookService) BalanceSheet(ctx context.Context, userID string, at time.Time) (statement.BalanceSheet, error) {
	args := m.Called(ctx, userID, at)
	return args.Get(0).(statement.BalanceSheet), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, group book.Group, name string, isAsset bool) (account.ID, error) {
	args := m.Called(ctx, userID, group, name, isAsset)
	return args.Get(0).(account.ID), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, userID string, id account.ID) (*account.Account, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string, at time.Time) ([]account.Metadata, error) {
	args := m.Called(ctx, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.Metadata), args.Error(1)
}

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) AddTransaction(ctx context.Context, req *shared.TransactionRequest) (journal.Transaction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(journal.Transaction), args.Error(1)
}

func (m *MockTransactionService) SubmitTransaction(ctx context.Context, req *shared.TransactionRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, start, end time.Time) ([]journal.Transaction, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]journal.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetArchivedTransaction(ctx context.Context, transactionID uuid.UUID) (*archive.Record, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*archive.Record), args.Error(1)
}

func (m *MockTransactionService) GetArchivedTransactions(ctx context.Context, userID string, page, perPage int) ([]*archive.Record, int64, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*archive.Record), args.Get(1).(int64), args.Error(2)
}
