package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthapp/healthcare-portal/internal/domain"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func samplePrincipal(role domain.Role) domain.Principal {
	return domain.Principal{
		SubjectID: "6531f0c2a1b2c3d4e5f60718",
		Email:     "a@b.com",
		Role:      role,
		Name:      "A",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 0)

	for _, role := range domain.Roles() {
		t.Run(string(role), func(t *testing.T) {
			want := samplePrincipal(role)
			token, exp, err := tm.Issue(want)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(DefaultSessionTTL), exp, 2*time.Second)

			got, ok := tm.Verify(token)
			require.True(t, ok)
			assert.Equal(t, want, *got)
		})
	}
}

func TestTokenExpiry(t *testing.T) {
	issuedAt := time.Unix(1_700_000_000, 0)
	lifetime := 7 * 24 * time.Hour

	issuer := NewTokenManager(testSecret, lifetime).WithClock(fixedClock(issuedAt))
	token, exp, err := issuer.Issue(samplePrincipal(domain.RolePatient))
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(lifetime), exp)

	before := NewTokenManager(testSecret, lifetime).WithClock(fixedClock(issuedAt.Add(lifetime - time.Second)))
	_, ok := before.Verify(token)
	assert.True(t, ok, "token must verify one second before expiry")

	after := NewTokenManager(testSecret, lifetime).WithClock(fixedClock(issuedAt.Add(lifetime + time.Second)))
	_, ok = after.Verify(token)
	assert.False(t, ok, "token must fail one second after expiry")
}

func TestTokenTamperRejection(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	token, _, err := tm.Issue(samplePrincipal(domain.RoleDoctor))
	require.NoError(t, err)

	sigStart := strings.LastIndex(token, ".") + 1
	require.Greater(t, len(token), sigStart)

	for i := sigStart; i < len(token); i++ {
		tampered := []byte(token)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		_, ok := tm.Verify(string(tampered))
		assert.False(t, ok, "flipped signature byte at %d must be rejected", i)
	}
}

func TestTokenVerifyFailsClosed(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	valid, _, err := tm.Issue(samplePrincipal(domain.RoleAdmin))
	require.NoError(t, err)

	otherSecret, _, err := NewTokenManager("another-secret-another-secret-xx", time.Hour).Issue(samplePrincipal(domain.RoleAdmin))
	require.NoError(t, err)

	noRole := signClaims(t, &Claims{
		UserID: "abc",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256)

	unknownRole := signClaims(t, &Claims{
		UserID: "abc",
		Role:   domain.Role("nurse"),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256)

	noExpiry := signClaims(t, &Claims{
		UserID: "abc",
		Role:   domain.RolePatient,
	}, jwt.SigningMethodHS256)

	hs512 := signClaims(t, &Claims{
		UserID: "abc",
		Role:   domain.RolePatient,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS512)

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not-a-token",
		"truncated":      valid[:len(valid)-5],
		"foreign secret": otherSecret,
		"missing role":   noRole,
		"unknown role":   unknownRole,
		"missing exp":    noExpiry,
		"wrong alg":      hs512,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			p, ok := tm.Verify(token)
			assert.False(t, ok)
			assert.Nil(t, p)
		})
	}
}

func TestIssueRejectsMalformedPrincipal(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	_, _, err := tm.Issue(domain.Principal{Role: domain.RolePatient})
	assert.Error(t, err)

	_, _, err = tm.Issue(domain.Principal{SubjectID: "x", Role: "nurse"})
	assert.Error(t, err)
}

func signClaims(t *testing.T, claims *Claims, method jwt.SigningMethod) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
