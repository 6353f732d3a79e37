package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/corebank-ledger/internal/api_gateway/service"
	"github.com/corebank-ledger/internal/domain/account"
	"github.com/corebank-ledger/internal/domain/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

// Create handles creation of a new account
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.logger.Error("Invalid user ID", "user_id", req.UserID, "error", err)
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), userID, req.AccountType, req.Currency)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCurrencyFormat) || errors.Is(err, account.ErrEmptyAccountType) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create account", "error", err)
		RespondInternalError(c)
		return
	}

	// A new account has no ledger entries, so its balance is zero
	RespondCreated(c, mapAccountToResponse(acc, 0))
}

// GetByID retrieves an account with its current balance, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	acc, balance, err := h.accountService.GetAccountWithBalance(c.Request.Context(), id)
	if err != nil {
		var accNotFound account.ErrAccountNotFound
		if errors.As(err, &accNotFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc, balance))
}

// GetLedger retrieves the account's raw ledger entries, oldest first
func (h *AccountHandler) GetLedger(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	entries, err := h.accountService.GetAccountLedger(c.Request.Context(), id)
	if err != nil {
		var accNotFound account.ErrAccountNotFound
		if errors.As(err, &accNotFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account ledger", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	response := LedgerResponse{Entries: make([]LedgerEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		response.Entries = append(response.Entries, mapEntryToResponse(entry))
	}

	RespondOK(c, response)
}

// mapAccountToResponse maps an account entity and its balance to a response DTO
func mapAccountToResponse(acc *account.Account, balance int64) AccountResponse {
	return AccountResponse{
		ID:          acc.ID.String(),
		UserID:      acc.UserID.String(),
		AccountType: acc.AccountType,
		Currency:    acc.Currency,
		Status:      string(acc.Status),
		Balance:     balance,
		CreatedAt:   acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   acc.UpdatedAt.Format(time.RFC3339),
	}
}

// mapEntryToResponse maps a ledger entry to a response DTO
func mapEntryToResponse(entry *ledger.Entry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:            entry.ID.String(),
		AccountID:     entry.AccountID.String(),
		TransactionID: entry.TransactionID.String(),
		EntryType:     string(entry.Type),
		Amount:        entry.Amount,
		CreatedAt:     entry.CreatedAt.Format(time.RFC3339),
	}
}
