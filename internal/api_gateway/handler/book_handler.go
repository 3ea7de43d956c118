package handler

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zeppelin-cash/internal/api_gateway/service"
)

// BookHandler handles HTTP requests for whole-book operations
type BookHandler struct {
	bookService service.BookService
	logger      *slog.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(logger *slog.Logger, bookService service.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

// Open opens a book for the user in the path. An empty body takes the configured defaults.
func (h *BookHandler) Open(c *gin.Context) {
	var req OpenBookRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var start time.Time
	if req.StartTime != nil {
		start = req.StartTime.UTC()
	}

	info, err := h.bookService.OpenBook(c.Request.Context(), c.Param("user_id"), start, req.Currency)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, BookResponse{
		UserID:    info.UserID,
		Currency:  info.Currency,
		StartTime: formatTime(info.StartTime),
	})
}

// FinancialStatement returns the balance sheet at end and the flows between start and end
func (h *BookHandler) FinancialStatement(c *gin.Context) {
	start, err := requiredQueryTime(c, "start")
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	end, err := requiredQueryTime(c, "end")
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}
	if end.Before(start) {
		RespondBadRequest(c, "end must not be before start")
		return
	}

	fs, err := h.bookService.FinancialStatement(c.Request.Context(), c.Param("user_id"), start, end)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, StatementResponse{FinancialStatement: fs, Valid: fs.IsValid(), Text: fs.String()})
}

// BalanceSheet returns the balance sheet as of the at query parameter, or now
func (h *BookHandler) BalanceSheet(c *gin.Context) {
	at, err := queryTime(c, "at", time.Now().UTC())
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	bs, err := h.bookService.BalanceSheet(c.Request.Context(), c.Param("user_id"), at)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, bs)
}
