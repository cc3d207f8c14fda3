package common

const (
	StorageKeyPendingTrades    = "pending_trading_data"
	StorageKeyPendingPortfolio = "portfolio_pending_changes"

	PendingIDPrefixTrade     = "PENDING"
	PendingIDPrefixPortfolio = "PORTFOLIO"

	RecordIDPrefix   = "TRX"
	PositionIDPrefix = "POS"

	DefaultPaymentMethod = "BANK_TRANSFER"
)
