package dto

// Metrics are the headline statistics of a set of trades.
type Metrics struct {
	TotalPL     float64 `json:"total_pl"`
	WinRate     float64 `json:"win_rate"`
	TotalTrades int     `json:"total_trades"`
	AvgProfit   float64 `json:"avg_profit"`
	MaxProfit   float64 `json:"max_profit"`
	MaxLoss     float64 `json:"max_loss"`
}

// GroupPerformance summarizes trades sharing a symbol or method.
type GroupPerformance struct {
	Key        string  `json:"key"`
	Trades     int     `json:"trades"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	TotalPL    float64 `json:"total_pl"`
	WinRate    float64 `json:"win_rate"`
	AvgPL      float64 `json:"avg_pl"`
	BestTrade  float64 `json:"best_trade"`
	WorstTrade float64 `json:"worst_trade"`
}

// MetricsQuery selects the date window of a metrics request.
type MetricsQuery struct {
	Range string `query:"range"`
	From  string `query:"from"`
	To    string `query:"to"`
}

// MetricsResponse is the body of GET /metrics.
type MetricsResponse struct {
	From     string             `json:"from,omitempty"`
	To       string             `json:"to,omitempty"`
	Metrics  Metrics            `json:"metrics"`
	BySymbol []GroupPerformance `json:"by_symbol"`
	ByMethod []GroupPerformance `json:"by_method"`
}
