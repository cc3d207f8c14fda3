package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SheetRecord is a trade record as the spreadsheet web app stores it.
type SheetRecord struct {
	ID            string  `json:"id"`
	TanggalMasuk  string  `json:"tanggalMasuk"`
	TanggalKeluar string  `json:"tanggalKeluar"`
	KodeSaham     string  `json:"kodeSaham"`
	HargaMasuk    float64 `json:"hargaMasuk"`
	HargaKeluar   float64 `json:"hargaKeluar"`
	Lot           int     `json:"lot"`
	FeeBuy        float64 `json:"feeBuy"`
	FeeSell       float64 `json:"feeSell"`
	TotalFee      float64 `json:"totalFee"`
	ProfitLoss    float64 `json:"profitLoss"`
	MetodeTrading string  `json:"metodeTrading"`
	Catatan       string  `json:"catatan"`
	PositionData  string  `json:"positionData"`
}

// SheetDataResponse is the body of GET ?action=getData.
type SheetDataResponse struct {
	Data  [][]SheetCell `json:"data"`
	Error string        `json:"error,omitempty"`
}

// SheetResult is the {success|error} envelope shared by write actions.
type SheetResult struct {
	Success *bool  `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Failed reports whether the envelope signals a failure, and why.
func (r SheetResult) Failed() (bool, string) {
	if r.Error != "" {
		return true, r.Error
	}
	if r.Success != nil && !*r.Success {
		if r.Message != "" {
			return true, r.Message
		}
		return true, "request was not successful"
	}
	return false, ""
}

// SheetPortfolioSummary is the summary object of the portfolio sheet.
type SheetPortfolioSummary struct {
	TotalTopUp    SheetCell `json:"totalTopUp"`
	TotalWithdraw SheetCell `json:"totalWithdraw"`
	TotalPL       SheetCell `json:"totalPL"`
	TotalEquity   SheetCell `json:"totalEquity"`
	AvailableCash SheetCell `json:"availableCash"`
	GrowthPercent SheetCell `json:"growthPercent"`
	LastUpdated   SheetCell `json:"lastUpdated"`
}

// SheetPortfolioSummaryResponse is the body of GET ?action=portfolio/summary.
type SheetPortfolioSummaryResponse struct {
	SheetResult
	Summary *SheetPortfolioSummary `json:"summary"`
}

// SheetPortfolioTransaction is one row of the cash-flow sheet.
type SheetPortfolioTransaction struct {
	ID        SheetCell `json:"id"`
	Type      SheetCell `json:"type"`
	Amount    SheetCell `json:"amount"`
	Method    SheetCell `json:"method"`
	Notes     SheetCell `json:"notes"`
	Timestamp SheetCell `json:"timestamp"`
}

// SheetPortfolioTransactionsResponse is the body of GET ?action=portfolio/transactions.
type SheetPortfolioTransactionsResponse struct {
	SheetResult
	Transactions []SheetPortfolioTransaction `json:"transactions"`
}

// SheetAddTransactionResponse is the body of GET ?action=portfolio/add.
type SheetAddTransactionResponse struct {
	SheetResult
	ID          string                     `json:"id,omitempty"`
	Transaction *SheetPortfolioTransaction `json:"transaction,omitempty"`
}

// SheetCell holds a spreadsheet value that may arrive as a number, string, bool or null.
type SheetCell struct {
	raw interface{}
}

// NewSheetCell wraps a value.
func NewSheetCell(v interface{}) SheetCell {
	return SheetCell{raw: v}
}

func (c *SheetCell) UnmarshalJSON(b []byte) error {
	var v interface{}
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	c.raw = v
	return nil
}

func (c SheetCell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.raw)
}

// String returns the cell as text. Null is "".
func (c SheetCell) String() string {
	switch v := c.raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(c.raw)
}

// Float parses the cell leniently: non-numeric values read as 0.
func (c SheetCell) Float() float64 {
	switch v := c.raw.(type) {
	case json.Number:
		f, _ := v.Float64()
		return f
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Int truncates the numeric value of the cell.
func (c SheetCell) Int() int {
	return int(c.Float())
}
