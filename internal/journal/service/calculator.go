package service

import (
	"trading-journal/internal/entity"

	"github.com/shopspring/decimal"
)

// Brokerage fee schedule applied when a fee leg is left empty.
var (
	BuyFeeRate  = decimal.RequireFromString("0.001513")
	SellFeeRate = decimal.RequireFromString("0.0025132")

	sharesPerLot = decimal.NewFromInt(entity.SharesPerLot)
)

// FeeResult holds the auto-computed fee legs of a trade.
type FeeResult struct {
	BuyFee  float64 `json:"buy_fee"`
	SellFee float64 `json:"sell_fee"`
}

// TradeResult holds the derived money fields of a trade.
type TradeResult struct {
	ProfitLoss float64 `json:"profit_loss"`
	TotalFee   float64 `json:"total_fee"`
	BuyFee     float64 `json:"buy_fee"`
	SellFee    float64 `json:"sell_fee"`
}

// PositionExitResult is the outcome of selling lots out of a position.
// AllocatedBuyFee is the unrounded proportional share of the position's buy fees.
type PositionExitResult struct {
	AllocatedBuyFee  float64 `json:"allocated_buy_fee"`
	EstimatedSellFee float64 `json:"estimated_sell_fee"`
	ProfitLoss       float64 `json:"profit_loss"`
}

// roundHalfUp rounds to the nearest integer, ties toward +Inf.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.NewFromFloat(0.5)).Floor()
}

func shares(lots int) decimal.Decimal {
	return decimal.NewFromInt(int64(lots)).Mul(sharesPerLot)
}

// ComputeBuyFee returns round(price × lots×100 × BuyFeeRate).
func ComputeBuyFee(price float64, lots int) float64 {
	return roundHalfUp(decimal.NewFromFloat(price).Mul(shares(lots)).Mul(BuyFeeRate)).InexactFloat64()
}

// ComputeSellFee returns round(price × lots×100 × SellFeeRate).
func ComputeSellFee(price float64, lots int) float64 {
	return roundHalfUp(decimal.NewFromFloat(price).Mul(shares(lots)).Mul(SellFeeRate)).InexactFloat64()
}

// ComputeAutoFee applies the fee schedule to both legs of a trade.
func ComputeAutoFee(entryPrice, exitPrice float64, lots int) FeeResult {
	return FeeResult{
		BuyFee:  ComputeBuyFee(entryPrice, lots),
		SellFee: ComputeSellFee(exitPrice, lots),
	}
}

// ComputeTradeResult derives fees and P/L. A zero fee leg is replaced by
// its auto-computed value. Trades without an exit price, or without lots,
// have zero P/L.
func ComputeTradeResult(entryPrice, exitPrice float64, lots int, buyFee, sellFee float64) TradeResult {
	auto := ComputeAutoFee(entryPrice, exitPrice, lots)
	if buyFee == 0 {
		buyFee = auto.BuyFee
	}
	if sellFee == 0 {
		sellFee = auto.SellFee
	}

	totalFee := decimal.NewFromFloat(buyFee).Add(decimal.NewFromFloat(sellFee))
	result := TradeResult{
		TotalFee: totalFee.InexactFloat64(),
		BuyFee:   buyFee,
		SellFee:  sellFee,
	}
	if exitPrice <= 0 || lots <= 0 {
		return result
	}

	n := shares(lots)
	gross := decimal.NewFromFloat(exitPrice).Mul(n).Sub(decimal.NewFromFloat(entryPrice).Mul(n))
	result.ProfitLoss = roundHalfUp(gross.Sub(totalFee)).InexactFloat64()
	return result
}

// ComputePositionExitResult estimates the P/L of selling exitLots out of position at exitPrice
// using the auto sell fee.
func ComputePositionExitResult(position *entity.Position, exitPrice float64, exitLots int) PositionExitResult {
	return ComputePositionExitResultWithFee(position, exitPrice, exitLots, 0)
}

// ComputePositionExitResultWithFee is ComputePositionExitResult with an explicit
// sell fee. A zero sellFee falls back to the fee schedule.
func ComputePositionExitResultWithFee(position *entity.Position, exitPrice float64, exitLots int, sellFee float64) PositionExitResult {
	if position == nil || exitLots <= 0 {
		return PositionExitResult{}
	}

	allocated := decimal.Zero
	if position.TotalLot > 0 {
		allocated = decimal.NewFromInt(int64(exitLots)).
			Div(decimal.NewFromInt(int64(position.TotalLot))).
			Mul(decimal.NewFromFloat(position.TotalFeeBuy))
	}

	fee := decimal.NewFromFloat(sellFee)
	if sellFee == 0 {
		fee = decimal.NewFromFloat(ComputeSellFee(exitPrice, exitLots))
	}

	n := shares(exitLots)
	pl := n.Mul(decimal.NewFromFloat(exitPrice)).
		Sub(n.Mul(decimal.NewFromFloat(position.AveragePrice))).
		Sub(allocated).
		Sub(fee)

	return PositionExitResult{
		AllocatedBuyFee:  allocated.InexactFloat64(),
		EstimatedSellFee: fee.InexactFloat64(),
		ProfitLoss:       roundHalfUp(pl).InexactFloat64(),
	}
}

// ComputeAverageDown returns the integer-rounded average price after buying
// lots more at price.
func ComputeAverageDown(position *entity.Position, lots int, price float64) float64 {
	totalLot := lots
	value := shares(lots).Mul(decimal.NewFromFloat(price))
	if position != nil {
		totalLot += position.TotalLot
		value = value.Add(shares(position.TotalLot).Mul(decimal.NewFromFloat(position.AveragePrice)))
	}
	if totalLot <= 0 {
		return 0
	}
	return roundHalfUp(value.Div(shares(totalLot))).InexactFloat64()
}
