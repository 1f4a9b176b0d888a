package entities

// DayStatus is the indexing checkpoint of a calendar day.
type DayStatus struct {
	Date   string `json:"date" gorm:"primaryKey;size:10"`
	Status bool   `json:"status" gorm:"not null"`
}

func (DayStatus) TableName() string {
	return "day_status"
}
