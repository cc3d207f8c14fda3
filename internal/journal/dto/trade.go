package dto

import "trading-journal/internal/entity"

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// TradeRequest is the payload for creating or editing a trade.
type TradeRequest struct {
	EntryDate  string  `json:"entry_date"`
	ExitDate   string  `json:"exit_date"`
	Symbol     string  `json:"symbol"`
	EntryPrice float64 `json:"entry_price"`
	ExitPrice  float64 `json:"exit_price"`
	Lot        int     `json:"lot"`
	BuyFee     float64 `json:"buy_fee"`
	SellFee    float64 `json:"sell_fee"`
	Method     string  `json:"method"`
	Notes      string  `json:"notes"`
}

// TradeFilter narrows a trade listing.
type TradeFilter struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Symbol string `query:"symbol"`
}

// SaveResult tells the caller where a save ended up.
type SaveResult struct {
	Record    entity.TradeRecord `json:"record"`
	Queued    bool               `json:"queued"`
	PendingID string             `json:"pending_id,omitempty"`
	State     string             `json:"state"`
	Message   string             `json:"message"`
}

// OpenPositionRequest starts a new position.
type OpenPositionRequest struct {
	EntryDate  string  `json:"entry_date"`
	Symbol     string  `json:"symbol"`
	EntryPrice float64 `json:"entry_price"`
	Lot        int     `json:"lot"`
	BuyFee     float64 `json:"buy_fee"`
	Method     string  `json:"method"`
	Notes      string  `json:"notes"`
}

// AddToPositionRequest adds lots (average down) to an open position.
type AddToPositionRequest struct {
	EntryDate  string  `json:"entry_date"`
	EntryPrice float64 `json:"entry_price"`
	Lot        int     `json:"lot"`
	BuyFee     float64 `json:"buy_fee"`
	Method     string  `json:"method"`
	Notes      string  `json:"notes"`
}

// ExitPositionRequest closes (exit_type "full") or partially exits a position.
type ExitPositionRequest struct {
	ExitType  string  `json:"exit_type"`
	ExitDate  string  `json:"exit_date"`
	ExitPrice float64 `json:"exit_price"`
	Lot       int     `json:"lot"`
	SellFee   float64 `json:"sell_fee"`
	Method    string  `json:"method"`
	Notes     string  `json:"notes"`
}

// ExitPreviewRequest asks for the P/L of a hypothetical exit.
type ExitPreviewRequest struct {
	ExitPrice float64 `json:"exit_price"`
	Lot       int     `json:"lot"`
}

// ExitPreviewResponse is the estimated outcome of an exit.
type ExitPreviewResponse struct {
	PositionID       string  `json:"position_id"`
	Lot              int     `json:"lot"`
	ExitPrice        float64 `json:"exit_price"`
	AllocatedBuyFee  float64 `json:"allocated_buy_fee"`
	EstimatedSellFee float64 `json:"estimated_sell_fee"`
	ProfitLoss       float64 `json:"profit_loss"`
}

// SyncStatusResponse reports the sync engine state.
type SyncStatusResponse struct {
	State                 string `json:"state"`
	Online                bool   `json:"online"`
	PendingTrades         int    `json:"pending_trades"`
	PendingPortfolio      int    `json:"pending_portfolio"`
	LastSyncAttempt       string `json:"last_sync_attempt,omitempty"`
	LastError             string `json:"last_error,omitempty"`
	TransactionLogRecords int    `json:"transaction_log_records"`
}

// SyncResponse reports the outcome of a manual drain.
type SyncResponse struct {
	TradesSynced    int  `json:"trades_synced"`
	PortfolioSynced bool `json:"portfolio_synced"`
}

// PortfolioTransactionRequest records a top-up or withdrawal.
type PortfolioTransactionRequest struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
	Method string `json:"method"`
	Notes  string `json:"notes"`
}

// PortfolioResponse bundles the summary with the cash flows.
type PortfolioResponse struct {
	Summary      entity.PortfolioSummary       `json:"summary"`
	Transactions []entity.PortfolioTransaction `json:"transactions"`
}
