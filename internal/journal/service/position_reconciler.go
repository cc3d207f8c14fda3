package service

import (
	"fmt"
	"sort"

	"trading-journal/internal/entity"
	"trading-journal/pkg/logger"

	"github.com/shopspring/decimal"
)

// IntegrityWarning describes a record the reconciler had to skip.
type IntegrityWarning struct {
	RecordID   string `json:"record_id"`
	PositionID string `json:"position_id"`
	Reason     string `json:"reason"`
}

// RebuildPositions derives every position from the transaction log. Entries
// are applied before exits so the result does not depend on log order.
// Records without usable position data stay standalone trades.
func RebuildPositions(records []entity.TradeRecord) (map[string]*entity.Position, []IntegrityWarning) {
	positions := make(map[string]*entity.Position)
	entrySymbols := make(map[string]string)
	var warnings []IntegrityWarning

	for _, r := range records {
		if !r.PositionData.IsEntry() {
			continue
		}
		pid := r.PositionData.PositionID
		p, ok := positions[pid]
		if !ok {
			p = &entity.Position{ID: pid, Symbol: r.Symbol, Status: entity.PositionStatusOpen}
			positions[pid] = p
		}
		entrySymbols[r.ID] = r.Symbol
		p.Entries = append(p.Entries, entity.PositionEntry{
			RecordID: r.ID,
			Date:     r.EntryDate,
			Lot:      r.Lot,
			Price:    r.EntryPrice,
			Fee:      r.BuyFee,
		})
		p.TotalLot += r.Lot
		p.TotalFeeBuy += r.BuyFee
		p.RemainingLot += r.Lot
	}

	for _, r := range records {
		if !r.PositionData.IsExit() {
			continue
		}
		pid := r.PositionData.PositionID
		p, ok := positions[pid]
		if !ok {
			warnings = append(warnings, IntegrityWarning{
				RecordID:   r.ID,
				PositionID: pid,
				Reason:     "exit references unknown position",
			})
			continue
		}
		p.Exits = append(p.Exits, entity.PositionExit{
			RecordID:   r.ID,
			Date:       r.ExitDate,
			Lot:        r.Lot,
			ExitPrice:  r.ExitPrice,
			Fee:        r.SellFee,
			ProfitLoss: r.ProfitLoss,
		})
		p.RemainingLot -= r.Lot
	}

	for _, p := range positions {
		sort.SliceStable(p.Entries, func(i, j int) bool {
			return legLess(p.Entries[i].Date, p.Entries[i].RecordID, p.Entries[j].Date, p.Entries[j].RecordID)
		})
		sort.SliceStable(p.Exits, func(i, j int) bool {
			return legLess(p.Exits[i].Date, p.Exits[i].RecordID, p.Exits[j].Date, p.Exits[j].RecordID)
		})
		if len(p.Entries) > 0 {
			p.Symbol = entrySymbols[p.Entries[0].RecordID]
		}

		if p.RemainingLot <= 0 {
			p.RemainingLot = 0
			p.Status = entity.PositionStatusClosed
		} else {
			p.Status = entity.PositionStatusOpen
		}

		value := decimal.Zero
		for _, e := range p.Entries {
			value = value.Add(shares(e.Lot).Mul(decimal.NewFromFloat(e.Price)))
		}
		if p.TotalLot > 0 {
			p.AveragePrice = roundHalfUp(value.Div(shares(p.TotalLot))).InexactFloat64()
		}
		p.TotalInvestment = value.Add(decimal.NewFromFloat(p.TotalFeeBuy)).InexactFloat64()
	}

	return positions, warnings
}

func legLess(dateA, idA, dateB, idB string) bool {
	if dateA != dateB {
		return dateA < dateB
	}
	return idA < idB
}

// SortPositions returns positions ordered by first entry date, then id.
func SortPositions(positions map[string]*entity.Position, status entity.PositionStatus) []*entity.Position {
	out := make([]*entity.Position, 0, len(positions))
	for _, p := range positions {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return legLess(out[i].FirstEntryDate(), out[i].ID, out[j].FirstEntryDate(), out[j].ID)
	})
	return out
}

// PositionReconciler rebuilds positions and reports integrity warnings to the log.
type PositionReconciler struct {
	logger *logger.Logger
}

// NewPositionReconciler creates a PositionReconciler.
func NewPositionReconciler(log *logger.Logger) *PositionReconciler {
	return &PositionReconciler{logger: log}
}

// Rebuild runs RebuildPositions and logs every skipped exit.
func (r *PositionReconciler) Rebuild(records []entity.TradeRecord) map[string]*entity.Position {
	positions, warnings := RebuildPositions(records)
	for _, w := range warnings {
		r.logger.Warn("Data integrity warning while rebuilding positions",
			logger.StringField("record_id", w.RecordID),
			logger.StringField("position_id", w.PositionID),
			logger.StringField("reason", w.Reason))
	}
	if len(warnings) > 0 {
		r.logger.Debug(fmt.Sprintf("Rebuilt %d positions with %d warnings", len(positions), len(warnings)))
	}
	return positions
}
