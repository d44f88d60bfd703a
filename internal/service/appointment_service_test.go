package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

func TestAppointmentServiceBook(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewAppointmentService(repos, nil, nil)
	doctor := createUser(t, repos, domain.RoleDoctor, "doc@x.com")
	patient := createUser(t, repos, domain.RolePatient, "pat@x.com")

	tests := []struct {
		name    string
		input   BookInput
		status  int
		message string
	}{
		{"missing reason", BookInput{DoctorID: doctor.ID, Date: "2026-11-01", Time: "10:00"}, http.StatusBadRequest, "Missing required fields"},
		{"bad date", BookInput{DoctorID: doctor.ID, Date: "tomorrow", Time: "10:00", Reason: "checkup"}, http.StatusBadRequest, "Invalid date"},
		{"not a doctor", BookInput{DoctorID: patient.ID, Date: "2026-11-01", Time: "10:00", Reason: "checkup"}, http.StatusNotFound, "Doctor not found"},
		{"malformed doctor id", BookInput{DoctorID: "nope", Date: "2026-11-01", Time: "10:00", Reason: "checkup"}, http.StatusNotFound, "Doctor not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(ctx, principalOf(patient), tt.input)
			requireDomainError(t, err, tt.status, tt.message)
		})
	}

	appt, err := svc.Book(ctx, principalOf(patient), BookInput{DoctorID: doctor.ID, Date: "2026-11-01", Time: "10:00", Reason: "checkup"})
	require.NoError(t, err)
	assert.Equal(t, patient.ID, appt.PatientID)
	assert.Equal(t, domain.AppointmentScheduled, appt.Status)
	assert.Equal(t, domain.PaymentStateUnpaid, appt.PaymentStatus)

	views, err := svc.List(ctx, principalOf(doctor), "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Patient)
	assert.Equal(t, patient.ID, views[0].Patient.ID)

	filtered, err := svc.List(ctx, principalOf(patient), string(domain.AppointmentCompleted))
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestAppointmentServiceOwnership(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewAppointmentService(repos, nil, nil)
	doctor := createUser(t, repos, domain.RoleDoctor, "doc@x.com")
	otherDoctor := createUser(t, repos, domain.RoleDoctor, "doc2@x.com")
	patient := createUser(t, repos, domain.RolePatient, "pat@x.com")
	stranger := createUser(t, repos, domain.RolePatient, "other@x.com")
	admin := createUser(t, repos, domain.RoleAdmin, "admin@x.com")

	appt, err := svc.Book(ctx, principalOf(patient), BookInput{DoctorID: doctor.ID, Date: "2026-11-01", Time: "10:00", Reason: "checkup"})
	require.NoError(t, err)

	completed := string(domain.AppointmentCompleted)
	for _, outsider := range []*domain.User{stranger, otherDoctor} {
		_, err := svc.Update(ctx, principalOf(outsider), appt.ID, AppointmentUpdate{Status: &completed})
		requireDomainError(t, err, http.StatusNotFound, "Appointment not found")
		err = svc.Delete(ctx, principalOf(outsider), appt.ID)
		requireDomainError(t, err, http.StatusNotFound, "Appointment not found")
	}

	bogus := "rescheduled"
	_, err = svc.Update(ctx, principalOf(doctor), appt.ID, AppointmentUpdate{Status: &bogus})
	requireDomainError(t, err, http.StatusBadRequest, "Invalid status")

	notes := "bring x-rays"
	updated, err := svc.Update(ctx, principalOf(doctor), appt.ID, AppointmentUpdate{Status: &completed, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCompleted, updated.Status)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, patient.ID, updated.PatientID)

	_, err = svc.Update(ctx, principalOf(admin), "not-a-uuid", AppointmentUpdate{Notes: &notes})
	requireDomainError(t, err, http.StatusNotFound, "Appointment not found")

	require.NoError(t, svc.Delete(ctx, principalOf(admin), appt.ID))
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
