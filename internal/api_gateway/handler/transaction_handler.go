package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/corebank-ledger/internal/api_gateway/middleware"
	"github.com/corebank-ledger/internal/api_gateway/service"
	"github.com/corebank-ledger/internal/domain/history"
	"github.com/corebank-ledger/internal/domain/transaction"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles HTTP requests for the money-movement operations
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

// Transfer moves funds between two accounts
func (h *TransactionHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sourceID, err := uuid.Parse(req.SourceAccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid source account ID")
		return
	}
	destinationID, err := uuid.Parse(req.DestinationAccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid destination account ID")
		return
	}

	txn, err := h.transactionService.Transfer(c.Request.Context(), middleware.GetCorrelationID(c),
		sourceID, destinationID, req.Amount, req.Currency, req.Description)
	if err != nil {
		h.logger.Warn("Transfer failed", "source", req.SourceAccountID, "destination", req.DestinationAccountID, "error", err)
		RespondEngineError(c, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(txn))
}

// Deposit credits an account from the system account
func (h *TransactionHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	txn, err := h.transactionService.Deposit(c.Request.Context(), middleware.GetCorrelationID(c),
		accountID, req.Amount, req.Currency, req.Description)
	if err != nil {
		h.logger.Warn("Deposit failed", "account", req.AccountID, "error", err)
		RespondEngineError(c, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(txn))
}

// Withdraw debits an account towards the system account
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	txn, err := h.transactionService.Withdraw(c.Request.Context(), middleware.GetCorrelationID(c),
		accountID, req.Amount, req.Currency, req.Description)
	if err != nil {
		h.logger.Warn("Withdrawal failed", "account", req.AccountID, "error", err)
		RespondEngineError(c, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(txn))
}

// GetByID retrieves transaction details by its ID, returns 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get transaction", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if txn == nil {
		RespondNotFound(c, "Transaction not found")
		return
	}

	RespondOK(c, mapTransactionToResponse(txn))
}

// GetByAccountID retrieves paginated transaction history for an account
func (h *TransactionHandler) GetByAccountID(c *gin.Context) {
	accountIDParam := c.Param("id")
	accountID, err := uuid.Parse(accountIDParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "account_id", accountIDParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	records, total, err := h.transactionService.GetHistoryByAccountID(c.Request.Context(), accountID, pagination.Page, pagination.PerPage)
	if err != nil {
		h.logger.Error("Failed to get transaction history", "account_id", accountIDParam, "error", err)
		RespondInternalError(c)
		return
	}

	response := TransactionListResponse{Transactions: make([]TransactionResponse, 0, len(records))}
	for _, record := range records {
		response.Transactions = append(response.Transactions, mapHistoryRecordToResponse(record))
	}

	RespondWithPaginatedData(c, http.StatusOK, response, pagination.Page, pagination.PerPage, int(total))
}

// mapTransactionToResponse maps a transaction entity to a response DTO
func mapTransactionToResponse(txn *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                   txn.ID.String(),
		Type:                 string(txn.Type),
		SourceAccountID:      txn.SourceAccountID.String(),
		DestinationAccountID: txn.DestinationAccountID.String(),
		Amount:               txn.Amount,
		Currency:             txn.Currency,
		Status:               string(txn.Status),
		Description:          txn.Description,
		CreatedAt:            txn.CreatedAt.Format(time.RFC3339),
	}
}

// mapHistoryRecordToResponse maps an archived transaction to a response DTO
func mapHistoryRecordToResponse(record *history.Record) TransactionResponse {
	return TransactionResponse{
		ID:                   record.TransactionID.String(),
		Type:                 string(record.Type),
		SourceAccountID:      record.SourceAccountID.String(),
		DestinationAccountID: record.DestinationAccountID.String(),
		Amount:               record.Amount,
		Currency:             record.Currency,
		Status:               string(record.Status),
		Description:          record.Description,
		CreatedAt:            record.CreatedAt.Format(time.RFC3339),
	}
}
