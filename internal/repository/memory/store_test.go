package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/repository"
)

func TestUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	first := &domain.User{Email: "a@b.com", Role: domain.RolePatient, Name: "A"}
	require.NoError(t, store.Users.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	err := store.Users.Create(ctx, &domain.User{Email: "a@b.com", Role: domain.RoleDoctor, Name: "B"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := store.Users.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = store.Users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepositoryListAndCounts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	cardiology := "cardiology"

	for _, u := range []domain.User{
		{Email: "d1@x.com", Role: domain.RoleDoctor, Name: "Zed", Department: cardiology},
		{Email: "d2@x.com", Role: domain.RoleDoctor, Name: "Amy", Department: "oncology"},
		{Email: "p1@x.com", Role: domain.RolePatient, Name: "Pat"},
		{Email: "ph@x.com", Role: domain.RolePharmacist, Name: "Phil"},
	} {
		u := u
		require.NoError(t, store.Users.Create(ctx, &u))
	}

	doctors, err := store.Users.List(ctx, repository.UserFilter{Roles: []domain.Role{domain.RoleDoctor}})
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "Amy", doctors[0].Name)

	inCardiology, err := store.Users.List(ctx, repository.UserFilter{Roles: []domain.Role{domain.RoleDoctor}, Department: &cardiology})
	require.NoError(t, err)
	require.Len(t, inCardiology, 1)
	assert.Equal(t, "Zed", inCardiology[0].Name)

	byRole, err := store.Users.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byRole["doctor"])
	assert.Equal(t, int64(1), byRole["pharmacist"])
	assert.Zero(t, byRole["admin"])
}

func TestAppointmentListScopingAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		appt := &domain.Appointment{
			PatientID: "p1",
			DoctorID:  "d1",
			Date:      base.AddDate(0, 0, i),
			Status:    domain.AppointmentScheduled,
		}
		require.NoError(t, store.Appointments.Create(ctx, appt))
	}
	other := &domain.Appointment{PatientID: "p2", DoctorID: "d1", Date: base, Status: domain.AppointmentCompleted}
	require.NoError(t, store.Appointments.Create(ctx, other))

	p1 := "p1"
	mine, err := store.Appointments.List(ctx, repository.AppointmentFilter{PatientID: &p1})
	require.NoError(t, err)
	require.Len(t, mine, 4)
	assert.True(t, mine[0].Date.After(mine[3].Date))

	recent, err := store.Appointments.List(ctx, repository.AppointmentFilter{RecentFirst: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, other.ID, recent[0].ID)

	require.NoError(t, store.Appointments.MarkPaid(ctx, other.ID, "pay-1"))
	got, err := store.Appointments.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatePaid, got.PaymentStatus)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, "pay-1", *got.PaymentID)

	require.NoError(t, store.Appointments.Delete(ctx, other.ID))
	assert.ErrorIs(t, store.Appointments.Delete(ctx, other.ID), repository.ErrNotFound)
}

func TestPrescriptionsNewestFirstPerPatient(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, store.Prescriptions.Create(ctx, &domain.Prescription{PatientID: "p1", DoctorID: "d1", MedicineName: name}))
	}
	require.NoError(t, store.Prescriptions.Create(ctx, &domain.Prescription{PatientID: "p2", DoctorID: "d1", MedicineName: "other"}))

	p1 := "p1"
	list, err := store.Prescriptions.List(ctx, repository.ClinicalFilter{PatientID: &p1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "third", list[0].MedicineName)
	assert.Equal(t, "second", list[1].MedicineName)
}

func TestHealthCardOnePerPatient(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	card := &domain.HealthCard{PatientID: "p1", CardNumber: "HC1"}
	require.NoError(t, store.HealthCards.Create(ctx, card))
	assert.ErrorIs(t, store.HealthCards.Create(ctx, &domain.HealthCard{PatientID: "p1", CardNumber: "HC2"}), repository.ErrDuplicate)

	card.BloodGroup = "O+"
	card.CardNumber = "tampered"
	require.NoError(t, store.HealthCards.Update(ctx, card))

	got, err := store.HealthCards.GetByCardNumber(ctx, "HC1")
	require.NoError(t, err)
	assert.Equal(t, "O+", got.BloodGroup)
}

func TestMedicineSearch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Medicines.Create(ctx, &domain.Medicine{Name: "Paracetamol", GenericName: "Acetaminophen", Category: "Pain Relief"}))
	require.NoError(t, store.Medicines.Create(ctx, &domain.Medicine{Name: "Amoxicillin", Manufacturer: "GSK", Category: "Antibiotic"}))

	search := "acetam"
	found, err := store.Medicines.List(ctx, repository.MedicineFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Paracetamol", found[0].Name)

	category := "Antibiotic"
	found, err = store.Medicines.List(ctx, repository.MedicineFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Amoxicillin", found[0].Name)
}
