package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/config"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/statement"
	"github.com/zeppelin-cash/internal/logger"
)

// BookServiceImpl implements the BookService interface
type BookServiceImpl struct {
	client   client.Client
	defaults config.BookConfig
	logger   *slog.Logger
}

// NewBookService creates a new book service
func NewBookService(logger *slog.Logger, c client.Client, defaults config.BookConfig) BookService {
	return &BookServiceImpl{
		client:   c,
		defaults: defaults,
		logger:   logger,
	}
}

func (s *BookServiceImpl) OpenBook(ctx context.Context, userID string, start time.Time, currency string) (*BookInfo, error) {
	if start.IsZero() {
		start = s.defaults.StartTime
	}
	if currency == "" {
		currency = s.defaults.Currency
	}
	cur := money.Lookup(currency)

	if err := s.client.OpenBook(ctx, userID, start, cur); err != nil {
		logger.FromContext(ctx, s.logger).Warn("Failed to open book", "user_id", userID, "error", err)
		return nil, err
	}
	return &BookInfo{UserID: userID, Currency: cur.Code, StartTime: start}, nil
}

func (s *BookServiceImpl) FinancialStatement(ctx context.Context, userID string, start, end time.Time) (statement.FinancialStatement, error) {
	return s.client.FinancialStatement(ctx, userID, start, end)
}

func (s *BookServiceImpl) BalanceSheet(ctx context.Context, userID string, at time.Time) (statement.BalanceSheet, error) {
	return s.client.BalanceSheet(ctx, userID, at)
}
