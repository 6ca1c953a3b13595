package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Date     time.Time `gorm:"type:date;index;not null" json:"date"`
	Time     string    `gorm:"size:5;not null" json:"time"`
	Duration int       `gorm:"not null" json:"duration"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes      string  `gorm:"size:255" json:"notes"`
	ExternalID *string `gorm:"size:100;uniqueIndex" json:"external_id,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartsAt combines the stored date and HH:MM time in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", a.Time, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		a.Date.Year(), a.Date.Month(), a.Date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), nil
}
