package molit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Dan9191/trade-prices/internal/models"
)

// AmountScale converts the registry's 만원 unit to won
const AmountScale = 10000

// Parser extracts raw item fields from one response body. Each item is a map
// from the source field name to its text value.
type Parser interface {
	Items(body []byte) ([]map[string]string, error)
	ContentType() string
}

// NewParser returns the parser for a configured payload format
func NewParser(format string) (Parser, error) {
	switch format {
	case "xml":
		return XMLParser{}, nil
	case "json":
		return JSONParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported payload format %q", format)
	}
}

// Source field names. The legacy endpoint uses Korean tags, the current one
// English camel case.
var fieldAliases = map[string][]string{
	"name":   {"아파트", "aptNm"},
	"amount": {"거래금액", "dealAmount"},
	"year":   {"년", "dealYear"},
	"month":  {"월", "dealMonth"},
	"day":    {"일", "dealDay"},
	"area":   {"전용면적", "excluUseAr"},
	"floor":  {"층", "floor"},
	"dong":   {"법정동", "umdNm"},
	"jibun":  {"지번", "jibun"},
}

// Parse runs the parser and normalizes every complete item into a record.
// Items without an apartment name or a numeric amount are dropped.
func Parse(p Parser, body []byte, regionCode string) ([]models.TransactionRecord, error) {
	items, err := p.Items(body)
	if err != nil {
		return nil, err
	}
	records := make([]models.TransactionRecord, 0, len(items))
	for _, item := range items {
		if rec, ok := normalize(item, regionCode); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func normalize(item map[string]string, regionCode string) (models.TransactionRecord, bool) {
	name := field(item, "name")
	amountText := strings.ReplaceAll(field(item, "amount"), ",", "")
	if name == "" || amountText == "" {
		return models.TransactionRecord{}, false
	}
	amount, err := strconv.ParseInt(amountText, 10, 64)
	if err != nil {
		return models.TransactionRecord{}, false
	}

	rec := models.TransactionRecord{
		RegionCode: regionCode,
		AptName:    name,
		Amount:     amount * AmountScale,
		Year:       atoi(field(item, "year")),
		Month:      atoi(field(item, "month")),
		Day:        atoi(field(item, "day")),
		Dong:       field(item, "dong"),
		Jibun:      field(item, "jibun"),
	}
	if area, err := strconv.ParseFloat(field(item, "area"), 64); err == nil && !math.IsNaN(area) && !math.IsInf(area, 0) {
		rec.Area = area
	}
	if floor, err := strconv.Atoi(field(item, "floor")); err == nil {
		rec.Floor = &floor
	}
	return rec, true
}

func field(item map[string]string, key string) string {
	for _, alias := range fieldAliases[key] {
		if v, ok := item[alias]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// atoi returns 0 for unparsable input; dates are not validated
func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func resultOK(code string) bool {
	code = strings.TrimSpace(code)
	return code == "" || code == "00" || code == "000"
}
