package handler

// CreateAccountRequest represents a request to create a new account
type CreateAccountRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	AccountType string `json:"account_type" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3"`
}

// AccountResponse represents an account in API responses. Balance is derived
// from the account's ledger entries.
type AccountResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	AccountType string `json:"account_type"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Balance     int64  `json:"balance"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TransferRequest represents a request to move funds between two accounts
type TransferRequest struct {
	SourceAccountID      string `json:"source_account_id" binding:"required,uuid"`
	DestinationAccountID string `json:"destination_account_id" binding:"required,uuid"`
	Amount               int64  `json:"amount" binding:"required,gt=0"`
	Currency             string `json:"currency" binding:"required,len=3"`
	Description          string `json:"description,omitempty"`
}

// DepositRequest represents a request to credit an account
type DepositRequest struct {
	AccountID   string `json:"account_id" binding:"required,uuid"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Description string `json:"description,omitempty"`
}

// WithdrawalRequest represents a request to debit an account
type WithdrawalRequest struct {
	AccountID   string `json:"account_id" binding:"required,uuid"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Description string `json:"description,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	SourceAccountID      string `json:"source_account_id"`
	DestinationAccountID string `json:"destination_account_id"`
	Amount               int64  `json:"amount"`
	Currency             string `json:"currency"`
	Status               string `json:"status"`
	Description          string `json:"description,omitempty"`
	CreatedAt            string `json:"created_at"`
}

// LedgerEntryResponse represents a ledger entry in API responses
type LedgerEntryResponse struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	TransactionID string `json:"transaction_id"`
	EntryType     string `json:"entry_type"`
	Amount        int64  `json:"amount"`
	CreatedAt     string `json:"created_at"`
}

// LedgerResponse represents an account's ledger in API responses
type LedgerResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

// TransactionListResponse represents a list of transactions in API responses
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
