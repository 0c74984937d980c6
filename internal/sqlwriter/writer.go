// Package sqlwriter renders trade records as batched INSERT OR IGNORE
// statements and hands them to an executor.
package sqlwriter

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/trade-prices/internal/models"
)

const (
	DefaultTable     = "trade_prices"
	DefaultBatchSize = 100
)

var columns = []string{
	"sigungu_code", "sigungu_name", "apt_name", "deal_amount",
	"deal_year", "deal_month", "deal_day", "area", "floor", "dong", "jibun",
}

// Writer renders records into SQL text
type Writer struct {
	table     string
	batchSize int
	now       func() time.Time
}

// NewWriter initializes a writer; a non-positive batch size uses the default
func NewWriter(table string, batchSize int) *Writer {
	if table == "" {
		table = DefaultTable
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Writer{table: table, batchSize: batchSize, now: time.Now}
}

// Batches splits records into contiguous slices of at most batchSize
func (w *Writer) Batches(records []models.TransactionRecord) [][]models.TransactionRecord {
	var batches [][]models.TransactionRecord
	for start := 0; start < len(records); start += w.batchSize {
		end := min(start+w.batchSize, len(records))
		batches = append(batches, records[start:end])
	}
	return batches
}

// Statements renders one INSERT OR IGNORE statement per batch
func (w *Writer) Statements(records []models.TransactionRecord) []string {
	batches := w.Batches(records)
	statements := make([]string, 0, len(batches))
	for _, batch := range batches {
		statements = append(statements, w.statement(batch))
	}
	return statements
}

// Render returns the full artifact: a header comment followed by every
// batch statement, separated by blank lines. Only the generated line
// depends on now.
func (w *Writer) Render(records []models.TransactionRecord, now time.Time) string {
	statements := w.Statements(records)

	var b strings.Builder
	fmt.Fprintf(&b, "-- %s insert (duplicates ignored)\n", w.table)
	fmt.Fprintf(&b, "-- generated: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "-- records: %d\n", len(records))
	fmt.Fprintf(&b, "-- batches: %d\n", len(statements))
	for _, stmt := range statements {
		b.WriteString("\n")
		b.WriteString(stmt)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteFile renders records and writes them to path
func (w *Writer) WriteFile(path string, records []models.TransactionRecord) error {
	sql := w.Render(records, w.now())
	if err := os.WriteFile(path, []byte(sql), 0o644); err != nil {
		return fmt.Errorf("failed to write SQL file: %w", err)
	}
	return nil
}

func (w *Writer) statement(batch []models.TransactionRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT OR IGNORE INTO %s (%s) VALUES\n", w.table, strings.Join(columns, ", "))
	for i, rec := range batch {
		b.WriteString("  ")
		b.WriteString(row(rec))
		if i < len(batch)-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteString(";")
	return b.String()
}

func row(rec models.TransactionRecord) string {
	floor := "NULL"
	if rec.Floor != nil {
		floor = strconv.Itoa(*rec.Floor)
	}
	// SQLite would read NaN or Inf as a column name and reject the batch
	area := "NULL"
	if !math.IsNaN(rec.Area) && !math.IsInf(rec.Area, 0) {
		area = strconv.FormatFloat(rec.Area, 'f', -1, 64)
	}
	values := []string{
		quote(rec.RegionCode),
		quote(rec.RegionName),
		quote(rec.AptName),
		strconv.FormatInt(rec.Amount, 10),
		strconv.Itoa(rec.Year),
		strconv.Itoa(rec.Month),
		strconv.Itoa(rec.Day),
		area,
		floor,
		quote(rec.Dong),
		quote(rec.Jibun),
	}
	return "(" + strings.Join(values, ", ") + ")"
}

// quote doubles embedded single quotes. Values come from the registry API,
// never from site users.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
