package handler

import (
	"time"

	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/statement"
)

// OpenBookRequest represents a request to open a book. Both fields are optional.
type OpenBookRequest struct {
	Currency  string     `json:"currency" binding:"omitempty,len=3,alpha"`
	StartTime *time.Time `json:"start_time"`
}

// BookResponse represents an opened book in API responses
type BookResponse struct {
	UserID    string `json:"user_id"`
	Currency  string `json:"currency"`
	StartTime string `json:"start_time"`
}

// CreateAccountRequest represents a request to open an account in a book
type CreateAccountRequest struct {
	Name    string `json:"name" binding:"required"`
	IsAsset bool   `json:"is_asset"`
	Group   string `json:"group"`
}

// CreatedAccountResponse carries the id assigned to a new account
type CreatedAccountResponse struct {
	AccountID string `json:"account_id"`
}

// EntryDTO is one side of a transaction, amounts in major units
type EntryDTO struct {
	AccountID string `json:"account_id" binding:"required"`
	IsDebit   bool   `json:"is_debit"`
	Amount    string `json:"amount" binding:"required,numeric"`
	Currency  string `json:"currency" binding:"required,len=3,alpha"`
}

// AccountEntryResponse represents a dated amount on one side of an account
type AccountEntryResponse struct {
	Time   string `json:"time"`
	Amount string `json:"amount"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	IsAsset         bool                   `json:"is_asset"`
	Currency        string                 `json:"currency"`
	StartingTime    string                 `json:"starting_time"`
	StartingBalance string                 `json:"starting_balance"`
	Balance         string                 `json:"balance"`
	Debits          []AccountEntryResponse `json:"debits"`
	Credits         []AccountEntryResponse `json:"credits"`
}

// AccountSummaryResponse represents one row of an account listing
type AccountSummaryResponse struct {
	AccountID        string  `json:"account_id"`
	Title            string  `json:"title"`
	IsAsset          bool    `json:"is_asset"`
	Balance          *string `json:"balance"`
	BalanceTimestamp string  `json:"balance_timestamp"`
}

// CreateTransactionRequest represents a request to record a journal transaction
type CreateTransactionRequest struct {
	RequestID   string     `json:"request_id" binding:"omitempty,uuid"`
	Time        time.Time  `json:"time" binding:"required"`
	Description string     `json:"description"`
	Entries     []EntryDTO `json:"entries" binding:"dive"`
}

// TransactionResponse represents a journal transaction in API responses
type TransactionResponse struct {
	TransactionID string     `json:"transaction_id"`
	Time          string     `json:"time"`
	Description   string     `json:"description"`
	Entries       []EntryDTO `json:"entries"`
}

// ArchivedTransactionResponse represents an archived transaction in API responses
type ArchivedTransactionResponse struct {
	TransactionResponse
	UserID        string `json:"user_id"`
	CorrelationID string `json:"correlation_id,omitempty"`
	ArchivedAt    string `json:"archived_at,omitempty"`
}

// StatementResponse carries the three statements and their rendered text
type StatementResponse struct {
	statement.FinancialStatement
	Valid bool   `json:"valid"`
	Text  string `json:"text"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func amountOf(m money.Money) string {
	return m.Quantity().String()
}

func mapAccountEntries(entries []account.Entry) []AccountEntryResponse {
	out := make([]AccountEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AccountEntryResponse{Time: formatTime(e.Time), Amount: amountOf(e.Amount)})
	}
	return out
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:              string(acc.ID()),
		Title:           acc.Title(),
		IsAsset:         acc.IsAsset(),
		Currency:        acc.StartingBalance().Currency().Code,
		StartingTime:    formatTime(acc.StartingTime()),
		StartingBalance: amountOf(acc.StartingBalance()),
		Balance:         amountOf(acc.Balance()),
		Debits:          mapAccountEntries(acc.Debits()),
		Credits:         mapAccountEntries(acc.Credits()),
	}
}

func mapMetadataToResponse(md account.Metadata) AccountSummaryResponse {
	resp := AccountSummaryResponse{
		AccountID:        string(md.AccountID),
		Title:            md.Title,
		IsAsset:          md.IsAsset,
		BalanceTimestamp: formatTime(md.BalanceTimestamp),
	}
	if md.Balance != nil {
		balance := amountOf(*md.Balance)
		resp.Balance = &balance
	}
	return resp
}

// mapTransactionToResponse maps a journal transaction to a transaction response DTO
func mapTransactionToResponse(tx journal.Transaction) TransactionResponse {
	entries := make([]EntryDTO, 0, len(tx.Entries))
	for _, e := range tx.Entries {
		entries = append(entries, EntryDTO{
			AccountID: string(e.AccountID),
			IsDebit:   e.IsDebit,
			Amount:    amountOf(e.Amount),
			Currency:  e.Amount.Currency().Code,
		})
	}
	return TransactionResponse{
		TransactionID: tx.ID.String(),
		Time:          formatTime(tx.Time),
		Description:   tx.Description,
		Entries:       entries,
	}
}

func mapRecordToResponse(r *archive.Record) ArchivedTransactionResponse {
	entries := make([]EntryDTO, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, EntryDTO(e))
	}
	resp := ArchivedTransactionResponse{
		TransactionResponse: TransactionResponse{
			TransactionID: r.TransactionID.String(),
			Time:          formatTime(r.Time),
			Description:   r.Description,
			Entries:       entries,
		},
		UserID:        r.UserID,
		CorrelationID: r.CorrelationID,
	}
	if r.ArchivedAt != nil {
		resp.ArchivedAt = formatTime(*r.ArchivedAt)
	}
	return resp
}
