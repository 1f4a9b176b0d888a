package entities

// FiatPrice is the daily USD quote of a fiat currency, one row per day.
type FiatPrice struct {
	ID        uint     `json:"-" gorm:"primaryKey"`
	Timestamp int64    `json:"timestamp" gorm:"not null"`
	UTCDate   string   `json:"utcDate" gorm:"column:utc_date;size:10"`
	PriceUSD  float64  `json:"priceUsd" gorm:"column:price_usd;not null"`
	Volume24h *float64 `json:"volume24h,omitempty" gorm:"column:volume_24h"`
}
