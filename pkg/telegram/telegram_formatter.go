package telegram

import (
	"fmt"
	"strings"

	"trading-journal/internal/entity"
	"trading-journal/pkg/utils"
)

const maxMessageLen = 4090

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown escapes the characters that break legacy Telegram Markdown.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// FormatNotification renders a sync notification for Telegram.
func FormatNotification(level, title, message string, sticky bool) string {
	var icon string
	switch level {
	case "success":
		icon = "✅"
	case "warning":
		icon = "⚠️"
	case "error":
		icon = "❌"
	default:
		icon = "ℹ️"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s *%s*\n", icon, EscapeMarkdown(title)))
	if message != "" {
		sb.WriteString(EscapeMarkdown(message))
		sb.WriteString("\n")
	}
	if sticky {
		sb.WriteString("\n_Perlu tindakan: data belum tersimpan di server._\n")
	}
	sb.WriteString(fmt.Sprintf("\n🕒 %s", utils.TimeNowWIB().Format("02 Jan 2006 15:04 WIB")))
	return truncate(sb.String())
}

// FormatPortfolioSummary renders the portfolio summary for Telegram.
func FormatPortfolioSummary(s entity.PortfolioSummary, openPositions []*entity.Position) string {
	var sb strings.Builder
	sb.WriteString("💼 *Ringkasan Portfolio*\n\n")
	sb.WriteString(fmt.Sprintf("💰 *Top Up:* %s\n", utils.FormatRupiah(s.TotalTopUp)))
	sb.WriteString(fmt.Sprintf("🏧 *Withdraw:* %s\n", utils.FormatRupiah(s.TotalWithdraw)))

	plIcon := "📈"
	if s.TotalPL < 0 {
		plIcon = "📉"
	}
	sb.WriteString(fmt.Sprintf("%s *Total P/L:* %s\n", plIcon, utils.FormatRupiah(s.TotalPL)))
	sb.WriteString(fmt.Sprintf("🏦 *Equity:* %s\n", utils.FormatRupiah(s.TotalEquity)))
	sb.WriteString(fmt.Sprintf("📊 *Growth:* %.2f%%\n", s.GrowthPercent))

	if len(openPositions) > 0 {
		sb.WriteString("\n*Posisi Terbuka:*\n")
		for _, p := range openPositions {
			sb.WriteString(fmt.Sprintf("• %s: %d lot @ %s\n", EscapeMarkdown(p.Symbol), p.RemainingLot, utils.FormatRupiah(int64(p.AveragePrice))))
		}
	}
	return truncate(sb.String())
}

func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	return s[:maxMessageLen-3] + "..."
}
