package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

const testQRBase = "https://qr.example/?data="

func TestParseCardInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare number", "HC123ABC", "HC123ABC"},
		{"padded", "  HC123ABC \n", "HC123ABC"},
		{"qr payload", `{"cardNumber":"HC999","patientId":"p1"}`, "HC999"},
		{"broken json", `{"cardNumber":`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCardInput(tt.input))
		})
	}
}

func TestHealthCardServiceLazyCreation(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewHealthCardService(repos, testQRBase, nil)
	patient := createUser(t, repos, domain.RolePatient, "pat@x.com")

	_, err := svc.Update(ctx, principalOf(patient), HealthCardUpdate{BloodGroup: "O+"})
	requireDomainError(t, err, http.StatusNotFound, "Health card not found")

	card, err := svc.Get(ctx, principalOf(patient))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(card.CardNumber, "HC"))
	assert.Equal(t, patient.ID, card.PatientID)
	require.True(t, strings.HasPrefix(card.QRCode, testQRBase))

	payload, err := url.QueryUnescape(strings.TrimPrefix(card.QRCode, testQRBase))
	require.NoError(t, err)
	assert.Equal(t, card.CardNumber, ParseCardInput(payload))
	assert.Contains(t, payload, patient.ID)

	again, err := svc.Get(ctx, principalOf(patient))
	require.NoError(t, err)
	assert.Equal(t, card.CardNumber, again.CardNumber)

	updated, err := svc.Update(ctx, principalOf(patient), HealthCardUpdate{
		BloodGroup:       "O+",
		Allergies:        []string{"penicillin"},
		EmergencyContact: &domain.EmergencyContact{Name: "Sam", Phone: "555", Relationship: "sibling"},
	})
	require.NoError(t, err)
	assert.Equal(t, "O+", updated.BloodGroup)
	assert.Equal(t, []string{"penicillin"}, updated.Allergies)
	assert.Equal(t, card.CardNumber, updated.CardNumber)
}

func TestHealthCardServiceScan(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewHealthCardService(repos, testQRBase, nil)
	doctor := createUser(t, repos, domain.RoleDoctor, "doc@x.com")
	patient := createUser(t, repos, domain.RolePatient, "pat@x.com")

	card, err := svc.Get(ctx, principalOf(patient))
	require.NoError(t, err)

	clinical := NewClinicalService(repos, nil, nil)
	for i := 0; i < 12; i++ {
		_, err := clinical.CreatePrescription(ctx, principalOf(doctor), PrescriptionInput{
			PatientID: patient.ID, MedicineName: "Cetirizine", Dosage: "10mg", Frequency: "daily", Duration: "7 days",
		})
		require.NoError(t, err)
	}

	_, err = svc.Scan(ctx, principalOf(doctor), "  ")
	requireDomainError(t, err, http.StatusBadRequest, "Card number is required")

	_, err = svc.Scan(ctx, principalOf(doctor), "HC0000")
	requireDomainError(t, err, http.StatusNotFound, "Health card not found")

	byNumber, err := svc.Scan(ctx, principalOf(doctor), card.CardNumber)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, byNumber.Patient.ID)
	assert.Len(t, byNumber.Prescriptions, scanPrescriptionLimit)
	assert.Empty(t, byNumber.Records)

	payload, err := url.QueryUnescape(strings.TrimPrefix(card.QRCode, testQRBase))
	require.NoError(t, err)
	byQR, err := svc.Scan(ctx, principalOf(doctor), payload)
	require.NoError(t, err)
	assert.Equal(t, card.ID, byQR.Card.ID)
}
