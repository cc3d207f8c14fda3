package entity

type PositionStatus string

const (
	PositionStatusOpen   PositionStatus = "open"
	PositionStatusClosed PositionStatus = "closed"
)

// PositionEntry is one buy leg of a position.
type PositionEntry struct {
	RecordID string  `json:"record_id"`
	Date     string  `json:"date"`
	Lot      int     `json:"lot"`
	Price    float64 `json:"price"`
	Fee      float64 `json:"fee"`
}

// PositionExit is one sell leg of a position.
type PositionExit struct {
	RecordID   string  `json:"record_id"`
	Date       string  `json:"date"`
	Lot        int     `json:"lot"`
	ExitPrice  float64 `json:"exit_price"`
	Fee        float64 `json:"fee"`
	ProfitLoss float64 `json:"profit_loss"`
}

// Position is a read model rebuilt from all records sharing a position id.
type Position struct {
	ID              string          `json:"id"`
	Symbol          string          `json:"symbol"`
	Status          PositionStatus  `json:"status"`
	Entries         []PositionEntry `json:"entries"`
	Exits           []PositionExit  `json:"exits"`
	TotalLot        int             `json:"total_lot"`
	TotalFeeBuy     float64         `json:"total_fee_buy"`
	RemainingLot    int             `json:"remaining_lot"`
	AveragePrice    float64         `json:"average_price"`
	TotalInvestment float64         `json:"total_investment"`
}

// IsOpen reports whether the position can still take entries or exits.
func (p *Position) IsOpen() bool {
	return p.RemainingLot > 0
}

// FirstEntryDate returns the earliest entry date, or "" without entries.
func (p *Position) FirstEntryDate() string {
	first := ""
	for _, e := range p.Entries {
		if first == "" || (e.Date != "" && e.Date < first) {
			first = e.Date
		}
	}
	return first
}

// RealizedProfitLoss sums the P/L of all exits.
func (p *Position) RealizedProfitLoss() float64 {
	var total float64
	for _, e := range p.Exits {
		total += e.ProfitLoss
	}
	return total
}
