package notify

import (
	"bytes"
	"text/template"
)

type Kind string

const (
	KindBookingReceived  Kind = "booking_received"
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCancelled Kind = "booking_cancelled"
	KindClinicNewBooking Kind = "clinic_new_booking"
)

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
}

func mustTemplate(subject, body string) messageTemplate {
	return messageTemplate{
		subject: template.Must(template.New("subject").Parse(subject)),
		body:    template.Must(template.New("body").Parse(body)),
	}
}

var templates = map[Kind]messageTemplate{
	KindBookingReceived: mustTemplate(
		"We received your booking for {{.ServiceName}}",
		"Hello {{.PatientName}},\n\nYour request for {{.ServiceName}} on {{.Date}} at {{.Time}} was received and is awaiting confirmation.\n",
	),
	KindBookingConfirmed: mustTemplate(
		"Your appointment on {{.Date}} is confirmed",
		"Hello {{.PatientName}},\n\nYour appointment for {{.ServiceName}} on {{.Date}} at {{.Time}} is confirmed.\n",
	),
	KindBookingCancelled: mustTemplate(
		"Your appointment on {{.Date}} was cancelled",
		"Hello {{.PatientName}},\n\nYour appointment for {{.ServiceName}} on {{.Date}} at {{.Time}} was cancelled.\n",
	),
	KindClinicNewBooking: mustTemplate(
		"New booking #{{.AppointmentID}}: {{.Date}} {{.Time}}",
		"{{.PatientName}} ({{.PatientPhone}}) booked {{.ServiceName}} on {{.Date}} at {{.Time}}.\n",
	),
}

type Data struct {
	AppointmentID uint
	PatientName   string
	PatientPhone  string
	ServiceName   string
	Date          string
	Time          string
}

func render(kind Kind, data Data) (subject, body string, err error) {
	tpl, ok := templates[kind]
	if !ok {
		return "", "", errUnknownKind
	}

	var s, b bytes.Buffer
	if err := tpl.subject.Execute(&s, data); err != nil {
		return "", "", err
	}
	if err := tpl.body.Execute(&b, data); err != nil {
		return "", "", err
	}
	return s.String(), b.String(), nil
}
