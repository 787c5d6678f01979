package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwtClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(subject string, roles []string, expiresIn time.Duration) jwtClaims {
	now := time.Now()
	return jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		Roles: roles,
	}
}

func TestJWTVerifier_Verify(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	t.Run("valid token yields principal", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("user-123", []string{"organizer", " client "}, time.Hour))

		p, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", p.UserID)
		assert.Equal(t, []string{"ORGANIZER", "CLIENT"}, p.Roles)
		assert.True(t, p.HasRole("ORGANIZER"))
	})

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("user-123", nil, -time.Minute))
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("other"), claimsFor("user-123", nil, time.Hour))
			},
		},
		{
			name: "unexpected algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS512, []byte(testSecret), claimsFor("user-123", nil, time.Hour))
			},
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), claimsFor("  ", nil, time.Hour))
			},
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwtClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"}})
			},
		},
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not-a-jwt" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := verifier.Verify(tt.token(t))
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, p)
		})
	}
}
