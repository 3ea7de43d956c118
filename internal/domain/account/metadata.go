package account

import (
	"time"

	"github.com/zeppelin-cash/internal/domain/money"
)

// Metadata is a point-in-time summary of an account.
type Metadata struct {
	AccountID        ID           `json:"account_id"`
	Title            string       `json:"title"`
	Balance          *money.Money `json:"balance,omitempty"` // nil when the balance could not be computed at BalanceTimestamp
	BalanceTimestamp time.Time    `json:"balance_timestamp"`
	IsAsset          bool         `json:"is_asset"`
}
