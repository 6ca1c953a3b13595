package models

import "time"

type BreakTime struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// WeeklyAvailability is the recurring working window for one weekday.
type WeeklyAvailability struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DayOfWeek int    `gorm:"uniqueIndex;not null" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	BreakTimes []BreakTime `gorm:"type:jsonb;serializer:json" json:"break_times"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WeeklyAvailability) TableName() string {
	return "weekly_availabilities"
}
