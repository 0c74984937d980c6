package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/trade-prices/internal/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

const maxTradeLimit = 500

// Repository provides read access to the listing database
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListTrades returns the most recent trades for a district, newest first
func (r *Repository) ListTrades(ctx context.Context, regionCode string, limit int) ([]models.TransactionRecord, error) {
	if limit <= 0 || limit > maxTradeLimit {
		limit = maxTradeLimit
	}
	query := `
		SELECT sigungu_code, COALESCE(sigungu_name, ''), apt_name, deal_amount,
		       deal_year, deal_month, deal_day, COALESCE(area, 0), floor,
		       COALESCE(dong, ''), COALESCE(jibun, '')
		FROM trade_prices
		WHERE sigungu_code = $1
		ORDER BY deal_year DESC, deal_month DESC, deal_day DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, regionCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	trades := []models.TransactionRecord{}
	for rows.Next() {
		var t models.TransactionRecord
		var floor sql.NullInt64
		if err := rows.Scan(&t.RegionCode, &t.RegionName, &t.AptName, &t.Amount,
			&t.Year, &t.Month, &t.Day, &t.Area, &floor, &t.Dong, &t.Jibun); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		if floor.Valid {
			f := int(floor.Int64)
			t.Floor = &f
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return trades, nil
}

const propertyColumns = `
		id, title, COALESCE(location, ''), COALESCE(status, ''), deadline,
		COALESCE(image_url, ''), COALESCE(sigungu_code, ''),
		original_price, recent_trade_price, expected_margin, margin_rate`

// ListProperties returns every listing ordered by deadline
func (r *Repository) ListProperties(ctx context.Context) ([]models.Property, error) {
	query := `SELECT` + propertyColumns + `
		FROM properties
		ORDER BY deadline IS NULL, deadline, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetProperty retrieves a listing by id
func (r *Repository) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	query := `SELECT` + propertyColumns + `
		FROM properties
		WHERE id = $1`
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(s scanner) (*models.Property, error) {
	p := &models.Property{}
	var deadline sql.NullString
	var original, recent, margin, rate sql.NullFloat64
	err := s.Scan(&p.ID, &p.Title, &p.Location, &p.Status, &deadline,
		&p.ImageURL, &p.SigunguCode, &original, &recent, &margin, &rate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan property: %w", err)
	}
	if deadline.Valid && deadline.String != "" {
		if d, err := parseDate(deadline.String); err == nil {
			p.Deadline = &d
		}
	}
	p.OriginalPrice = original.Float64
	p.RecentTradePrice = recent.Float64
	p.ExpectedMargin = margin.Float64
	p.MarginRate = rate.Float64
	return p, nil
}

// deadlines are stored as text; accept a date or a full timestamp
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
