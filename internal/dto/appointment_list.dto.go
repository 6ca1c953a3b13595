package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Duration     int       `json:"duration"`
	Status       string    `json:"status"`
	PatientName  string    `json:"patient_name"`
	PatientPhone string    `json:"patient_phone"`
	ServiceName  string    `json:"service_name"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:           ap.ID,
		Date:         ap.Date.Format("2006-01-02"),
		Time:         ap.Time,
		Duration:     ap.Duration,
		Status:       ap.Status,
		PatientName:  ap.Patient.Name,
		PatientPhone: ap.Patient.Phone,
		ServiceName:  ap.Service.Name,
		Notes:        ap.Notes,
		CreatedAt:    ap.CreatedAt,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
