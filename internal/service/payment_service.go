package service

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

// Gateway authorises a charge. It reports false when the charge is declined.
type Gateway interface {
	Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (bool, error)
}

// SimulatedGateway approves a configured fraction of charges.
type SimulatedGateway struct {
	SuccessRate float64
	Latency     time.Duration
	roll        func() float64
}

// NewSimulatedGateway returns a gateway approving roughly successRate of charges.
func NewSimulatedGateway(successRate float64, latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{SuccessRate: successRate, Latency: latency, roll: rand.Float64}
}

// Charge waits for the simulated latency and rolls against the success rate.
func (g *SimulatedGateway) Charge(ctx context.Context, _ float64, _ domain.PaymentMethod) (bool, error) {
	if g.Latency > 0 {
		timer := time.NewTimer(g.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	}
	roll := g.roll
	if roll == nil {
		roll = rand.Float64
	}
	return roll() < g.SuccessRate, nil
}

// PaymentService records payments and runs them through the gateway.
type PaymentService struct {
	payments     repository.PaymentRepository
	appointments repository.AppointmentRepository
	gateway      Gateway
	now          func() time.Time
	logger       *zap.Logger
	events       publisher
}

// PaymentInput describes a payment request.
type PaymentInput struct {
	AppointmentID string
	Amount        float64
	PaymentMethod string
}

// NewPaymentService constructs the service.
func NewPaymentService(repos Repositories, gateway Gateway, dispatcher events.Dispatcher, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		payments:     repos.Payments,
		appointments: repos.Appointments,
		gateway:      gateway,
		now:          time.Now,
		logger:       logger,
		events:       publisher{dispatcher: dispatcher},
	}
}

// List returns payments visible to the caller: patients see their own, staff see all.
func (s *PaymentService) List(ctx context.Context, p *domain.Principal) ([]domain.Payment, error) {
	var userID *string
	if p.Role == domain.RolePatient {
		id := p.SubjectID
		userID = &id
	}
	payments, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return payments, nil
}

// Create records a completed payment without contacting the gateway.
func (s *PaymentService) Create(ctx context.Context, p *domain.Principal, in PaymentInput) (*domain.Payment, error) {
	payment, err := s.build(p, in)
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, p, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Process charges through the gateway, records the payment and, when an
// appointment is given, marks it paid. The two writes are not atomic: if
// marking fails the payment stays recorded and the error is returned.
func (s *PaymentService) Process(ctx context.Context, p *domain.Principal, in PaymentInput) (*domain.Payment, error) {
	payment, err := s.build(p, in)
	if err != nil {
		return nil, err
	}
	if payment.AppointmentID != nil {
		if err := s.ownedAppointment(ctx, p, *payment.AppointmentID); err != nil {
			return nil, err
		}
	}

	approved, err := s.gateway.Charge(ctx, payment.Amount, payment.Method)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !approved {
		return nil, apperrors.NewValidationError("Payment failed", nil)
	}

	if err := s.store(ctx, p, payment); err != nil {
		return nil, err
	}
	if payment.AppointmentID == nil {
		return payment, nil
	}
	if err := s.appointments.MarkPaid(ctx, *payment.AppointmentID, payment.ID); err != nil {
		s.logger.Error("appointment payment mark failed",
			zap.String("payment_id", payment.ID),
			zap.String("appointment_id", *payment.AppointmentID),
			zap.Error(err))
		return nil, notFound(err, "Appointment")
	}
	return payment, nil
}

func (s *PaymentService) build(p *domain.Principal, in PaymentInput) (*domain.Payment, error) {
	if in.Amount <= 0 || in.PaymentMethod == "" {
		return nil, apperrors.NewValidationError("Missing required fields", nil)
	}
	method := domain.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return nil, apperrors.NewValidationError("Invalid payment method", map[string]any{"paymentMethod": in.PaymentMethod})
	}

	payment := &domain.Payment{
		UserID:        p.SubjectID,
		Amount:        in.Amount,
		Method:        method,
		Status:        domain.PaymentCompleted,
		TransactionID: referenceCode("TXN", s.now()),
	}
	if in.AppointmentID != "" {
		if !validID(in.AppointmentID) {
			return nil, apperrors.NewNotFound("Appointment")
		}
		appointmentID := in.AppointmentID
		payment.AppointmentID = &appointmentID
	}
	return payment, nil
}

func (s *PaymentService) ownedAppointment(ctx context.Context, p *domain.Principal, id string) error {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Appointment")
	}
	if !ScopeFor(p).Owns(appt.PatientID, appt.DoctorID) {
		return apperrors.NewNotFound("Appointment")
	}
	return nil
}

func (s *PaymentService) store(ctx context.Context, p *domain.Principal, payment *domain.Payment) error {
	if err := s.payments.Create(ctx, payment); err != nil {
		return apperrors.MapError(err)
	}
	s.events.publish(ctx, events.EventPaymentRecorded, payment.ID, p, events.PaymentPayload{
		AppointmentID: payment.AppointmentID,
		Amount:        payment.Amount,
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
	})
	return nil
}
