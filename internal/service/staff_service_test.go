package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/config"
	"github.com/healthapp/healthcare-portal/internal/domain"
)

func TestStaffServiceCreateStaff(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := NewStaffService(config.Config{Auth: config.AuthConfig{BcryptCost: 4}}, repos.Users, nil)
	admin := principalOf(createUser(t, repos, domain.RoleAdmin, "admin@x.com"))

	tests := []struct {
		name    string
		role    string
		wantErr bool
	}{
		{"doctor", "doctor", false},
		{"pharmacist", "pharmacist", false},
		{"admin", "admin", true},
		{"patient", "patient", true},
		{"unknown", "nurse", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.CreateStaff(ctx, admin, StaffInput{
				Email:    tt.name + "@staff.com",
				Password: "staffpw1",
				Name:     "Staff " + tt.name,
				Role:     tt.role,
			})
			if tt.wantErr {
				requireDomainError(t, err, http.StatusBadRequest, "Invalid role. Only doctor and pharmacist allowed")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Role(tt.role), user.Role)
			require.NoError(t, auth.ComparePassword(user.PasswordHash, "staffpw1"))
		})
	}

	_, err := svc.CreateStaff(ctx, admin, StaffInput{Email: "DOCTOR@staff.com", Password: "x", Name: "Dup", Role: "doctor"})
	requireDomainError(t, err, http.StatusConflict, "User already exists")

	_, err = svc.CreateStaff(ctx, admin, StaffInput{Email: "new@staff.com", Password: "x", Name: "New"})
	requireDomainError(t, err, http.StatusBadRequest, "Missing required fields")

	staff, err := svc.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	for _, u := range staff {
		assert.Contains(t, []domain.Role{domain.RoleDoctor, domain.RolePharmacist}, u.Role)
	}
}
