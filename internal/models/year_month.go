package models

import (
	"fmt"
	"strconv"
)

// YearMonth is a calendar month used as the DEAL_YMD query parameter
type YearMonth struct {
	Year  int
	Month int
}

// ParseYearMonth parses a YYYYMM string
func ParseYearMonth(s string) (YearMonth, error) {
	if len(s) != 6 {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: want YYYYMM", s)
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	month, err := strconv.Atoi(s[4:])
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("invalid month in %q", s)
	}
	return YearMonth{Year: year, Month: month}, nil
}

// DealYMD formats the month as YYYYMM
func (ym YearMonth) DealYMD() string {
	return fmt.Sprintf("%04d%02d", ym.Year, ym.Month)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Next returns the following calendar month
func (ym YearMonth) Next() YearMonth {
	if ym.Month == 12 {
		return YearMonth{Year: ym.Year + 1, Month: 1}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}
