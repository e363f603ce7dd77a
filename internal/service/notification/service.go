// Package notification fans booking events out to email and the
// message broker. Delivery is best-effort: failures are logged and
// counted, never propagated to the booking path.
package notification

import (
	"context"
	"fmt"

	"github.com/medagenda/clinic-api/internal/email"
	"github.com/medagenda/clinic-api/internal/model"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/messaging"
	"github.com/medagenda/clinic-api/pkg/metrics"
)

const (
	channelBookings = "bookings"

	eventBookingConfirmed = "booking.confirmed"
	eventBookingCancelled = "booking.cancelled"
)

type Service struct {
	mailer  email.Sender
	broker  messaging.Broker
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewService builds a notifier. Both mailer and broker may be nil;
// absent channels are simply skipped.
func NewService(mailer email.Sender, broker messaging.Broker, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{mailer: mailer, broker: broker, logger: log, metrics: m}
}

type bookingEvent struct {
	SlotID        string `json:"slot_id"`
	StartTime     string `json:"start_time"`
	DoctorLicense int64  `json:"doctor_license"`
	PatientDNI    int64  `json:"patient_dni"`
}

func (s *Service) BookingConfirmed(ctx context.Context, slot *model.Slot, patient *model.Patient) error {
	subject := "Appointment confirmed"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment on %s has been confirmed.\n",
		patient.FullName(),
		slot.StartTime.Format(model.DateTimeLayout),
	)
	return s.deliver(ctx, eventBookingConfirmed, slot, patient, subject, body)
}

func (s *Service) BookingCancelled(ctx context.Context, slot *model.Slot, patient *model.Patient) error {
	subject := "Appointment cancelled"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment on %s has been cancelled. The slot is available again.\n",
		patient.FullName(),
		slot.StartTime.Format(model.DateTimeLayout),
	)
	return s.deliver(ctx, eventBookingCancelled, slot, patient, subject, body)
}

func (s *Service) deliver(ctx context.Context, event string, slot *model.Slot, patient *model.Patient, subject, body string) error {
	var firstErr error

	if s.mailer != nil && patient.Email != "" {
		if err := s.mailer.Send(patient.Email, subject, body); err != nil {
			s.metrics.NotificationsFailed.Inc()
			s.logger.Warn("email delivery failed",
				"event", event, "patient_dni", patient.DNI, "error", err.Error())
			firstErr = err
		} else {
			s.metrics.NotificationsSent.Inc()
		}
	}

	if s.broker != nil {
		msg := messaging.Message{
			Type: event,
			Payload: bookingEvent{
				SlotID:        slot.ID.String(),
				StartTime:     slot.StartTime.Format(model.DateTimeLayout),
				DoctorLicense: slot.DoctorLicense,
				PatientDNI:    patient.DNI,
			},
		}
		if err := s.broker.Publish(ctx, channelBookings, msg); err != nil {
			s.logger.Warn("event publish failed",
				"event", event, "error", err.Error())
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
