package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/persistence"
	"github.com/healthapp/healthcare-portal/internal/repository"
	"github.com/healthapp/healthcare-portal/internal/repository/memory"
)

func TestSeederAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := persistence.MemoryRepositories(memory.NewStore())
	seeder := New(repos, 4, nil)

	created, err := seeder.Admin(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := repos.Users.GetByEmail(ctx, AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	require.NotNil(t, admin.HospitalID)
	require.NoError(t, auth.ComparePassword(admin.PasswordHash, AdminPassword))

	created, err = seeder.Admin(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	hospitals, err := repos.Hospitals.ListByStatus(ctx, domain.HospitalActive)
	require.NoError(t, err)
	assert.Len(t, hospitals, 1)
	assert.Equal(t, *admin.HospitalID, hospitals[0].ID)
}

func TestSeederMedicinesSkipsExisting(t *testing.T) {
	ctx := context.Background()
	repos := persistence.MemoryRepositories(memory.NewStore())
	seeder := New(repos, 4, nil)

	added, err := seeder.Medicines(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(Medicines), added)

	added, err = seeder.Medicines(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)

	all, err := repos.Medicines.List(ctx, repository.MedicineFilter{})
	require.NoError(t, err)
	assert.Len(t, all, len(Medicines))
}
