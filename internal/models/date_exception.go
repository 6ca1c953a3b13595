package models

import "time"

type ExceptionType string

const (
	ExceptionUnavailable ExceptionType = "unavailable"
	ExceptionCustomHours ExceptionType = "custom_hours"
)

// DateException overrides the weekly rule for a single calendar day.
type DateException struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date time.Time     `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Type ExceptionType `gorm:"size:20;not null" json:"type"`

	StartTime string `gorm:"size:5" json:"start_time,omitempty"`
	EndTime   string `gorm:"size:5" json:"end_time,omitempty"`
	Reason    string `gorm:"size:255" json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
