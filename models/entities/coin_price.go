package entities

// CoinPrice is one sample of a coin. Every coin symbol owns a table with this layout.
type CoinPrice struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	Timestamp int64   `json:"timestamp" gorm:"not null"`
	UTCDate   string  `json:"utcDate" gorm:"column:utc_date;size:10"`
	Price     float64 `json:"price" gorm:"column:price;not null"`
	Volume24h float64 `json:"volume24h" gorm:"column:volume_24h;not null"`
}
