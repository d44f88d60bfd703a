package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

type stubGateway struct {
	approve bool
	calls   int
}

func (g *stubGateway) Charge(context.Context, float64, domain.PaymentMethod) (bool, error) {
	g.calls++
	return g.approve, nil
}

func TestSimulatedGatewayHonoursSuccessRate(t *testing.T) {
	gateway := NewSimulatedGateway(0.95, 0)

	gateway.roll = func() float64 { return 0.5 }
	ok, err := gateway.Charge(context.Background(), 10, domain.PaymentCard)
	require.NoError(t, err)
	assert.True(t, ok)

	gateway.roll = func() float64 { return 0.97 }
	ok, err = gateway.Charge(context.Background(), 10, domain.PaymentCard)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPaymentServiceProcess(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	doctor := createUser(t, repos, domain.RoleDoctor, "doc@x.com")
	patient := createUser(t, repos, domain.RolePatient, "pat@x.com")
	stranger := createUser(t, repos, domain.RolePatient, "other@x.com")

	appt, err := NewAppointmentService(repos, nil, nil).Book(ctx, principalOf(patient), BookInput{
		DoctorID: doctor.ID, Date: "2026-11-01", Time: "09:00", Reason: "checkup",
	})
	require.NoError(t, err)

	gateway := &stubGateway{approve: false}
	svc := NewPaymentService(repos, gateway, nil, nil)
	input := PaymentInput{AppointmentID: appt.ID, Amount: 50, PaymentMethod: "card"}

	_, err = svc.Process(ctx, principalOf(patient), input)
	requireDomainError(t, err, http.StatusBadRequest, "Payment failed")
	stored, err := svc.List(ctx, principalOf(patient))
	require.NoError(t, err)
	assert.Empty(t, stored)

	_, err = svc.Process(ctx, principalOf(stranger), input)
	requireDomainError(t, err, http.StatusNotFound, "Appointment not found")
	assert.Equal(t, 1, gateway.calls)

	gateway.approve = true
	payment, err := svc.Process(ctx, principalOf(patient), input)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, payment.Status)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN"))

	paid, err := repos.Appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentID)
	assert.Equal(t, payment.ID, *paid.PaymentID)
}

func TestPaymentServiceCreateAndList(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	alice := createUser(t, repos, domain.RolePatient, "alice@x.com")
	bob := createUser(t, repos, domain.RolePatient, "bob@x.com")
	admin := createUser(t, repos, domain.RoleAdmin, "admin@x.com")
	svc := NewPaymentService(repos, &stubGateway{approve: true}, nil, nil)

	tests := []struct {
		name    string
		input   PaymentInput
		message string
	}{
		{"missing amount", PaymentInput{PaymentMethod: "cash"}, "Missing required fields"},
		{"missing method", PaymentInput{Amount: 10}, "Missing required fields"},
		{"unknown method", PaymentInput{Amount: 10, PaymentMethod: "barter"}, "Invalid payment method"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, principalOf(alice), tt.input)
			requireDomainError(t, err, http.StatusBadRequest, tt.message)
		})
	}

	first, err := svc.Create(ctx, principalOf(alice), PaymentInput{Amount: 20, PaymentMethod: "cash"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, principalOf(bob), PaymentInput{Amount: 30, PaymentMethod: "insurance"})
	require.NoError(t, err)
	assert.NotEqual(t, first.TransactionID, second.TransactionID)

	own, err := svc.List(ctx, principalOf(alice))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID, own[0].UserID)

	all, err := svc.List(ctx, principalOf(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
