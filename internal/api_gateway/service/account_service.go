package service

import (
	"context"
	"time"

	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/book"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	client client.Client
}

// NewAccountService creates a new account service
func NewAccountService(c client.Client) AccountService {
	return &AccountServiceImpl{
		client: c,
	}
}

func (s *AccountServiceImpl) CreateAccount(ctx context.Context, userID string, group book.Group, name string, isAsset bool) (account.ID, error) {
	if group == "" {
		return s.client.AddAccount(ctx, userID, name, isAsset)
	}
	return s.client.AddGroupAccount(ctx, userID, group, name, isAsset)
}

func (s *AccountServiceImpl) GetAccount(ctx context.Context, userID string, id account.ID) (*account.Account, error) {
	return s.client.GetAccount(ctx, userID, id)
}

func (s *AccountServiceImpl) ListAccounts(ctx context.Context, userID string, at time.Time) ([]account.Metadata, error) {
	return s.client.ListAccounts(ctx, userID, at)
}
