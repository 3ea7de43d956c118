package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/money"
)

var t0 = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func opened(id account.ID, isAsset bool) *account.Account {
	acc := account.New(id, string(id), isAsset)
	acc.SetStartingBalance(t0, money.Zero(money.USD()))
	return acc
}

func TestLedger_AddAccount(t *testing.T) {
	l, err := New(opened("cash", true))
	require.NoError(t, err)

	err = l.AddAccount(opened("cash", true))

	assert.ErrorIs(t, err, ErrDuplicateAccount{})
	assert.ErrorIs(t, err, ErrDuplicateAccount{AccountID: "cash"})
	assert.Equal(t, 1, l.Len())

	_, err = New(opened("a", true), opened("a", false))
	assert.ErrorIs(t, err, ErrDuplicateAccount{AccountID: "a"})
}

func TestLedger_AddEntry(t *testing.T) {
	l, err := New(opened("cash", true))
	require.NoError(t, err)
	entry := account.NewEntry(t0.Add(time.Second), money.FromInt(10, money.USD()))

	t.Run("UnknownAccount", func(t *testing.T) {
		err := l.AddEntry("missing", true, entry)
		assert.ErrorIs(t, err, ErrAccountNotFound{})
		assert.False(t, errors.Is(err, ErrAccountNotFound{AccountID: "cash"}))
	})

	t.Run("Delegates", func(t *testing.T) {
		require.NoError(t, l.AddEntry("cash", true, entry))
		balance, err := l.BalanceAsOf(t0.Add(time.Minute), "cash")
		require.NoError(t, err)
		assert.True(t, balance.Equal(money.FromInt(10, money.USD())))
	})

	t.Run("OrderingErrorSurfaces", func(t *testing.T) {
		early := account.NewEntry(t0, money.FromInt(1, money.USD()))
		assert.ErrorIs(t, l.CanAddEntry("cash", true, early), account.ErrEntryOutOfOrder)
		assert.ErrorIs(t, l.AddEntry("cash", true, early), account.ErrEntryOutOfOrder)
	})
}

func TestLedger_BalanceAsOf(t *testing.T) {
	l, err := New(opened("cash", true))
	require.NoError(t, err)

	_, err = l.BalanceAsOf(t0, "missing")
	assert.ErrorIs(t, err, ErrAccountNotFound{AccountID: "missing"})

	_, err = l.BalanceAsOf(t0.Add(-time.Second), "cash")
	assert.ErrorIs(t, err, account.ErrBalanceBeforeStart)
}

func TestLedger_ListAccounts(t *testing.T) {
	l, err := New(opened("cash", true), opened("capital-stock", false))
	require.NoError(t, err)
	require.NoError(t, l.AddAccount(account.New("late", "Late", true)))

	list := l.ListAccounts(t0.Add(time.Hour))

	require.Len(t, list, 3)
	assert.Equal(t, account.ID("cash"), list[0].AccountID)
	assert.Equal(t, account.ID("capital-stock"), list[1].AccountID)
	assert.False(t, list[1].IsAsset)
	assert.NotNil(t, list[2].Balance)

	list = l.ListAccounts(time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Nil(t, list[0].Balance)
}

func TestLedger_AccountReturnsCopy(t *testing.T) {
	l, err := New(opened("cash", true))
	require.NoError(t, err)

	acc, err := l.Account("cash")
	require.NoError(t, err)
	require.NoError(t, acc.AddEntry(true, account.NewEntry(t0.Add(time.Second), money.FromInt(5, money.USD()))))

	balance, err := l.BalanceAsOf(t0.Add(time.Hour), "cash")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
	assert.True(t, l.Has("cash"))
	assert.False(t, l.Has("other"))
}
