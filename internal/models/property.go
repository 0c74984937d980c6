package models

import "time"

// Property represents a subscription listing shown on the site
type Property struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Location         string     `json:"location"`
	Status           string     `json:"status"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	ImageURL         string     `json:"image_url"`
	SigunguCode      string     `json:"sigungu_code"`
	OriginalPrice    float64    `json:"original_price"`     // 억
	RecentTradePrice float64    `json:"recent_trade_price"` // 억
	ExpectedMargin   float64    `json:"expected_margin"`    // 억
	MarginRate       float64    `json:"margin_rate"`        // percent
}
