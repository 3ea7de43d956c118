package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zeppelin-cash/internal/api_gateway/service"
	"github.com/zeppelin-cash/internal/domain/account"
	"github.com/zeppelin-cash/internal/domain/book"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create opens a new account in the user's book, under the cash group unless a group is given
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	id, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("user_id"), book.Group(req.Group), req.Name, req.IsAsset)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, CreatedAccountResponse{AccountID: string(id)})
}

// GetByID retrieves an account with its entries, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	acc, err := h.accountService.GetAccount(c.Request.Context(), c.Param("user_id"), account.ID(c.Param("account_id")))
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// List summarizes every account as of the at query parameter, or now
func (h *AccountHandler) List(c *gin.Context) {
	at, err := queryTime(c, "at", time.Now().UTC())
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("user_id"), at)
	if err != nil {
		RespondWithDomainError(c, h.logger, err)
		return
	}

	out := make([]AccountSummaryResponse, 0, len(accounts))
	for _, md := range accounts {
		out = append(out, mapMetadataToResponse(md))
	}
	RespondOK(c, out)
}
