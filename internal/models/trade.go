package models

// TransactionRecord represents one apartment sale reported by the registry
type TransactionRecord struct {
	RegionCode string  `json:"sigungu_code"`
	RegionName string  `json:"sigungu_name,omitempty"`
	AptName    string  `json:"apt_name"`
	Amount     int64   `json:"deal_amount"` // won
	Year       int     `json:"deal_year"`
	Month      int     `json:"deal_month"`
	Day        int     `json:"deal_day"`
	Area       float64 `json:"area"`
	Floor      *int    `json:"floor,omitempty"`
	Dong       string  `json:"dong"`
	Jibun      string  `json:"jibun"`
}

// Region is one administrative district queried by the ingestion run
type Region struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
