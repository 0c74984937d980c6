// Package presenter derives display values for listings: deadline badges,
// price deltas and prices in 억 (100 million won) units.
package presenter

import (
	"fmt"
	"math"
	"time"
)

const wonPerEok = 100_000_000

// Badge is a deadline countdown label with its CSS class
type Badge struct {
	Text  string `json:"text"`
	Class string `json:"class"`
	Days  int    `json:"days"`
}

// DDay compares calendar dates only; time of day is ignored in both values.
func DDay(deadline, today time.Time) Badge {
	d := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(d.Sub(t).Hours() / 24)

	switch {
	case days < 0:
		return Badge{Text: "마감", Class: "bg-gray-400", Days: days}
	case days == 0:
		return Badge{Text: "D-Day", Class: "bg-red-500", Days: 0}
	case days <= 7:
		return Badge{Text: fmt.Sprintf("D-%d", days), Class: "bg-red-500", Days: days}
	case days <= 30:
		return Badge{Text: fmt.Sprintf("D-%d", days), Class: "bg-orange-500", Days: days}
	default:
		return Badge{Text: fmt.Sprintf("D-%d", days), Class: "bg-blue-500", Days: days}
	}
}

// Delta is a signed price change label
type Delta struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// FormatMargin renders a margin in 억 and its rate, e.g. "+1.5억 (+12.0%)".
// A zero margin has no label.
func FormatMargin(margin, rate float64) *Delta {
	if margin == 0 || math.IsNaN(margin) {
		return nil
	}
	sign, color := "", "text-blue-500"
	if margin > 0 {
		sign, color = "+", "text-red-500"
	}
	return &Delta{
		Text:  fmt.Sprintf("%s%.1f억 (%s%.1f%%)", sign, margin, sign, rate),
		Color: color,
	}
}

// FormatPrice renders a price already in 억, "-" when unknown
func FormatPrice(price float64) string {
	if price == 0 || math.IsNaN(price) {
		return "-"
	}
	return fmt.Sprintf("%.1f억", price)
}

// FormatWon renders a won amount in 억
func FormatWon(amount int64) string {
	return FormatPrice(float64(amount) / wonPerEok)
}

// Margin returns the change from original to recent price and its
// percentage of the original. The rate is zero when there is no original.
func Margin(original, recent float64) (margin, rate float64) {
	margin = recent - original
	if original > 0 {
		rate = margin / original * 100
	}
	return margin, rate
}
