package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zeppelin-cash/internal/api_gateway/middleware"
	"github.com/zeppelin-cash/internal/api_gateway/service"
	"github.com/zeppelin-cash/internal/domain/shared"
)

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// bindTransactionRequest reads the body into a transaction request for the user in the path
func (h *TransactionHandler) bindTransactionRequest(c *gin.Context) (*shared.TransactionRequest, bool) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	requestID := uuid.Nil
	if req.RequestID != "" {
		requestID = uuid.MustParse(req.RequestID) // validated by the uuid binding
	}

	entries := make([]shared.EntryRequest, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, shared.EntryRequest(e))
	}

	return &shared.TransactionRequest{
		RequestID:     requestID,
		UserID:        c.Param("user_id"),
		Time:          req.Time.UTC(),
		Description:   req.Description,
		Entries:       entries,
		CorrelationID: middleware.GetCorrelationID(c),
		Timestamp:     time.Now().UTC(),
	}, true
}

// Create records a transaction synchronously and returns it with its id
func (h *TransactionHandler) Create(c *gin.Context) {
	req, ok := h.bindTransactionRequest(c)
	if !ok {
		return
	}

	tx, err := h.transactionService.AddTransaction(c.Request.Context(), req)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(tx))
}

// CreateAsync queues a transaction for the processor and answers 202 with its request id
func (h *TransactionHandler) CreateAsync(c *gin.Context) {
	req, ok := h.bindTransactionRequest(c)
	if !ok {
		return
	}

	requestID, err := h.transactionService.SubmitTransaction(c.Request.Context(), req)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	RespondAccepted(c, gin.H{
		"transaction_id": requestID,
		"status":         "PENDING",
	})
}

// List returns the journal transactions between the optional start and end query parameters, inclusive
func (h *TransactionHandler) List(c *gin.Context) {
	start, err := queryTime(c, "start", time.Time{})
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	end, err := queryTime(c, "end", endOfTime)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	txs, err := h.transactionService.ListTransactions(c.Request.Context(), c.Param("user_id"), start, end)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, mapTransactionToResponse(tx))
	}
	RespondOK(c, out)
}

// GetArchived retrieves an archived transaction by its ID, returns 404 if not found
func (h *TransactionHandler) GetArchived(c *gin.Context) {
	idParam := c.Param("transaction_id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	record, err := h.transactionService.GetArchivedTransaction(c.Request.Context(), id)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}
	if record.UserID != c.Param("user_id") {
		RespondNotFound(c, "Transaction not found")
		return
	}

	RespondOK(c, mapRecordToResponse(record))
}

// ListArchived retrieves the user's archived transactions, newest first, one page at a time
func (h *TransactionHandler) ListArchived(c *gin.Context) {
	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	records, total, err := h.transactionService.GetArchivedTransactions(
		c.Request.Context(),
		c.Param("user_id"),
		pagination.Page,
		pagination.PerPage,
	)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	out := make([]ArchivedTransactionResponse, 0, len(records))
	for _, r := range records {
		out = append(out, mapRecordToResponse(r))
	}
	RespondWithPaginatedData(c, http.StatusOK, out, pagination.Page, pagination.PerPage, int(total))
}
