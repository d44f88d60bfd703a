package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/config"
	"github.com/healthapp/healthcare-portal/internal/events"
)

// NotificationService turns domain events into patient and staff notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAppointmentBooked, n.handleAppointment)
	n.dispatcher.Subscribe(events.EventAppointmentUpdated, n.handleAppointment)
	n.dispatcher.Subscribe(events.EventAppointmentCancelled, n.handleAppointment)
	n.dispatcher.Subscribe(events.EventMedicalRecordCreated, n.handleClinical)
	n.dispatcher.Subscribe(events.EventPrescriptionIssued, n.handleClinical)
	n.dispatcher.Subscribe(events.EventPaymentRecorded, n.handlePaymentRecorded)
	n.dispatcher.Subscribe(events.EventStaffCreated, n.handleStaffCreated)
}

func (n *NotificationService) handleAppointment(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.AppointmentPayload)
	n.logger.Info(string(event.Type),
		zap.String("appointment_id", event.SubjectID),
		zap.String("patient_id", payload.PatientID),
		zap.String("doctor_id", payload.DoctorID),
		zap.String("status", string(payload.Status)))
	n.sendEmailNotificationStub(ctx, event, payload.PatientID)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleClinical(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.ClinicalPayload)
	n.logger.Info(string(event.Type),
		zap.String("subject_id", event.SubjectID),
		zap.String("patient_id", payload.PatientID),
		zap.String("doctor_id", payload.DoctorID))
	n.sendEmailNotificationStub(ctx, event, payload.PatientID)
	return nil
}

func (n *NotificationService) handlePaymentRecorded(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.PaymentPayload)
	n.logger.Info(string(event.Type),
		zap.String("payment_id", event.SubjectID),
		zap.String("transaction_id", payload.TransactionID),
		zap.Float64("amount", payload.Amount))
	n.sendEmailNotificationStub(ctx, event, event.Actor.UserID)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStaffCreated(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.AccountPayload)
	n.logger.Info(string(event.Type),
		zap.String("user_id", event.SubjectID),
		zap.String("role", string(payload.Role)))
	n.sendEmailNotificationStub(ctx, event, event.SubjectID)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event, recipientID string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || recipientID == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("recipient_id", recipientID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
