package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var errUnknownKind = errors.New("unknown notification kind")

type message struct {
	kind Kind
	to   string
	data Data
}

// Notifier queues appointment emails and sends them from one worker.
type Notifier struct {
	mailer      Mailer
	clinicEmail string
	log         *zap.Logger
	queue       chan message
	done        sync.WaitGroup
	once        sync.Once
}

func NewNotifier(mailer Mailer, clinicEmail string, log *zap.Logger) *Notifier {
	n := &Notifier{
		mailer:      mailer,
		clinicEmail: clinicEmail,
		log:         log,
		queue:       make(chan message, 100),
	}

	n.done.Add(1)
	go n.worker()
	return n
}

func (n *Notifier) worker() {
	defer n.done.Done()

	for msg := range n.queue {
		subject, body, err := render(msg.kind, msg.data)
		if err != nil {
			n.log.Error("render email", zap.String("kind", string(msg.kind)), zap.Error(err))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := n.mailer.Send(ctx, msg.to, subject, body); err != nil {
			n.log.Error("send email",
				zap.String("kind", string(msg.kind)),
				zap.Uint("appointment_id", msg.data.AppointmentID),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (n *Notifier) enqueue(msg message) {
	select {
	case n.queue <- msg:
	default:
		n.log.Warn("email queue full, dropping message", zap.String("kind", string(msg.kind)))
	}
}

// AppointmentEvent emails the patient about ap and, for new bookings, the clinic.
// ap is expected to have Patient and Service loaded.
func (n *Notifier) AppointmentEvent(kind Kind, ap *models.Appointment) {
	data := Data{
		AppointmentID: ap.ID,
		PatientName:   ap.Patient.Name,
		PatientPhone:  ap.Patient.Phone,
		ServiceName:   ap.Service.Name,
		Date:          ap.Date.Format("2006-01-02"),
		Time:          ap.Time,
	}

	if ap.Patient.Email != "" {
		n.enqueue(message{kind: kind, to: ap.Patient.Email, data: data})
	}
	if kind == KindBookingReceived && n.clinicEmail != "" {
		n.enqueue(message{kind: KindClinicNewBooking, to: n.clinicEmail, data: data})
	}
}

func (n *Notifier) Close() {
	n.once.Do(func() {
		close(n.queue)
		n.done.Wait()
	})
}
