package ingest

import "github.com/Dan9191/trade-prices/internal/models"

// Months returns every month from start to end inclusive, oldest first.
// An inverted range or a month outside 1..12 yields no months.
func Months(start, end models.YearMonth) []models.YearMonth {
	if !validMonth(start) || !validMonth(end) {
		return nil
	}
	var months []models.YearMonth
	for ym := start; !end.Before(ym); ym = ym.Next() {
		months = append(months, ym)
	}
	return months
}

func validMonth(ym models.YearMonth) bool {
	return ym.Month >= 1 && ym.Month <= 12
}
