package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zeppelin-cash/internal/api_gateway/middleware"
	"github.com/zeppelin-cash/internal/api_gateway/service"
	"github.com/zeppelin-cash/internal/client"
	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/archive"
	"github.com/zeppelin-cash/internal/domain/book"
	"github.com/zeppelin-cash/internal/domain/journal"
	"github.com/zeppelin-cash/internal/domain/ledger"
	"github.com/zeppelin-cash/internal/domain/money"
	"github.com/zeppelin-cash/internal/domain/shared"
	"github.com/zeppelin-cash/internal/logger"
)

// Response represents a standard API response
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	Meta          *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo represents error information in a response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo represents metadata in a response
type MetaInfo struct {
	Page       int `json:"page,omitempty"`
	PerPage    int `json:"per_page,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
	TotalItems int `json:"total_items,omitempty"`
}

// NewResponse creates a new response with data
func NewResponse(data interface{}) *Response {
	return &Response{
		Data: data,
	}
}

// NewErrorResponse creates a new error response
func NewErrorResponse(code, message string) *Response {
	return &Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewPaginatedResponse creates a new paginated response
func NewPaginatedResponse(data interface{}, page, perPage, totalItems int) *Response {
	totalPages := totalItems / perPage
	if totalItems%perPage > 0 {
		totalPages++
	}

	return &Response{
		Data: data,
		Meta: &MetaInfo{
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
			TotalItems: totalItems,
		},
	}
}

// RespondWithData sends a JSON response with data
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	response := NewResponse(data)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondWithError sends a JSON response with an error
func RespondWithError(c *gin.Context, statusCode int, code, message string) {
	response := NewErrorResponse(code, message)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondWithPaginatedData sends a JSON response with paginated data
func RespondWithPaginatedData(c *gin.Context, statusCode int, data interface{}, page, perPage, totalItems int) {
	response := NewPaginatedResponse(data, page, perPage, totalItems)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusCreated, data)
}

// RespondAccepted sends a 202 Accepted response with data.
func RespondAccepted(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusAccepted, data)
}

// RespondBadRequest sends a 400 Bad Request response with an error
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, "NOT_FOUND", message)
}

// RespondInternalError sends a 500 Internal Server Error response with an error
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An internal server error occurred")
}

// domainError maps a domain error to an HTTP status and error code
type domainError struct {
	target error
	status int
	code   string
}

// domainErrors is matched in order. Propagation failures wrap the ledger error that
// caused them, so they are matched first.
var domainErrors = []domainError{
	{book.ErrPropagation, http.StatusConflict, "PROPAGATION_FAILED"},
	{client.ErrInvalidUserID, http.StatusBadRequest, "BAD_REQUEST"},
	{shared.ErrMissingUserID, http.StatusBadRequest, "BAD_REQUEST"},
	{shared.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{shared.ErrInvalidCurrency, http.StatusBadRequest, "INVALID_CURRENCY"},
	{book.ErrUnknownGroup, http.StatusBadRequest, "UNKNOWN_GROUP"},
	{journal.ErrInvalidTransaction, http.StatusBadRequest, "INVALID_TRANSACTION"},
	{money.ErrCurrencyMismatch, http.StatusBadRequest, "CURRENCY_MISMATCH"},
	{account.ErrBalanceBeforeStart, http.StatusBadRequest, "BALANCE_BEFORE_START"},
	{account.ErrEntryOutOfOrder, http.StatusConflict, "OUT_OF_ORDER"},
	{journal.ErrTransactionOutOfOrder, http.StatusConflict, "OUT_OF_ORDER"},
	{ledger.ErrAccountNotFound{}, http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
	{ledger.ErrDuplicateAccount{}, http.StatusConflict, "DUPLICATE_ACCOUNT"},
	{book.ErrBookNotFound{}, http.StatusNotFound, "BOOK_NOT_FOUND"},
	{book.ErrBookExists{}, http.StatusConflict, "BOOK_EXISTS"},
	{book.ErrConcurrentModification{}, http.StatusConflict, "CONCURRENT_MODIFICATION"},
	{archive.ErrRecordNotFound{}, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrAsyncUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	{service.ErrArchiveUnavailable, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
}

// RespondWithDomainError maps err to a status code and error envelope. Unknown errors
// are logged and answered with a 500 that hides the cause.
func RespondWithDomainError(c *gin.Context, log *slog.Logger, err error) {
	for _, d := range domainErrors {
		if errors.Is(err, d.target) {
			RespondWithError(c, d.status, d.code, err.Error())
			return
		}
	}
	logger.FromContext(c.Request.Context(), log).Error("Unhandled error",
		"path", c.FullPath(),
		"error", err,
	)
	RespondInternalError(c)
}
