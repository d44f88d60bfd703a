package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/healthapp/healthcare-portal/internal/auth"
	"github.com/healthapp/healthcare-portal/internal/config"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/events"
	"github.com/healthapp/healthcare-portal/internal/repository"
	apperrors "github.com/healthapp/healthcare-portal/pkg/util/errorutil"
)

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	events     publisher
}

// RegisterInput is the self-registration payload.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	Role        string
	Phone       string
	DateOfBirth string
	Gender      string
}

// ProfileUpdate carries optional profile changes; empty fields are left as is.
type ProfileUpdate struct {
	Name             string
	Phone            string
	DateOfBirth      string
	Gender           string
	Address          string
	Specialization   string
	Department       string
	Allergies        string
	BloodGroup       string
	MedicalHistory   string
	EmergencyContact string
	CurrentPassword  string
	NewPassword      string
}

// Session is an issued token together with the account it belongs to.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, tokens *auth.TokenManager, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		bcryptCost: cfg.Auth.BcryptCost,
		events:     publisher{dispatcher: dispatcher},
	}
}

// Register creates a patient account and issues its first session. Staff
// accounts are created by administrators, so any other role is rejected.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	if err := required(map[string]string{"email": email, "password": in.Password, "name": in.Name}); err != nil {
		return nil, err
	}

	role := domain.RolePatient
	if strings.TrimSpace(in.Role) != "" {
		parsed, ok := domain.ParseRole(in.Role)
		if !ok || parsed != domain.RolePatient {
			return nil, apperrors.NewValidationError("Invalid role. Only patients may self-register", map[string]any{"role": in.Role})
		}
		role = parsed
	}

	user, err := createAccount(ctx, s.users, s.bcryptCost, &domain.User{
		Email:       email,
		Role:        role,
		Name:        strings.TrimSpace(in.Name),
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
		Gender:      domain.Gender(in.Gender),
	}, in.Password)
	if err != nil {
		return nil, err
	}

	s.events.publish(ctx, events.EventUserRegistered, user.ID, nil, events.AccountPayload{Email: user.Email, Role: user.Role})
	return s.issue(user)
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		auth.CompareDecoy(password)
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}
	return s.issue(user)
}

// Me returns the stored account behind the principal.
func (s *AuthService) Me(ctx context.Context, p *domain.Principal) (*domain.User, error) {
	if !validID(p.SubjectID) {
		return nil, apperrors.NewNotFound("User")
	}
	user, err := s.users.GetByID(ctx, p.SubjectID)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

// UpdateProfile applies non-empty fields and, when both password fields are
// given, rotates the password after checking the current one.
func (s *AuthService) UpdateProfile(ctx context.Context, p *domain.Principal, in ProfileUpdate) (*domain.User, error) {
	user, err := s.Me(ctx, p)
	if err != nil {
		return nil, err
	}

	setIf(&user.Name, in.Name)
	setIf(&user.Phone, in.Phone)
	setIf(&user.DateOfBirth, in.DateOfBirth)
	setIf(&user.Address, in.Address)
	setIf(&user.Specialization, in.Specialization)
	setIf(&user.Department, in.Department)
	setIf(&user.Allergies, in.Allergies)
	setIf(&user.BloodGroup, in.BloodGroup)
	setIf(&user.MedicalHistory, in.MedicalHistory)
	setIf(&user.EmergencyContact, in.EmergencyContact)
	if in.Gender != "" {
		user.Gender = domain.Gender(in.Gender)
	}

	if in.CurrentPassword != "" && in.NewPassword != "" {
		if err := auth.ComparePassword(user.PasswordHash, in.CurrentPassword); err != nil {
			return nil, apperrors.NewValidationError("Current password is incorrect", nil)
		}
		hash, err := auth.HashPassword(in.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

// createAccount hashes password and stores user, reporting a taken email as a conflict.
func createAccount(ctx context.Context, users repository.UserRepository, cost int, user *domain.User, password string) (*domain.User, error) {
	if _, err := users.GetByEmail(ctx, user.Email); err == nil {
		return nil, apperrors.NewConflict("User already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, cost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash

	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("User already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(domain.Principal{
		SubjectID: user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Name:      user.Name,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func setIf(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
