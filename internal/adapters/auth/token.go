package auth

import (
	"errors"
	"fmt"
	"strings"

	"eventenrollment/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks.
var ErrInvalidToken = errors.New("invalid token")

type jwtClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

type jwtVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTVerifier returns a TokenVerifier that accepts HS256 tokens signed with secret.
// The principal is taken from the "sub" claim and its roles from "roles".
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *jwtVerifier) Verify(token string) (*domain.Principal, error) {
	claims := &jwtClaims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	roles := make([]string, 0, len(claims.Roles))
	for _, r := range claims.Roles {
		if r = strings.ToUpper(strings.TrimSpace(r)); r != "" {
			roles = append(roles, r)
		}
	}
	return &domain.Principal{UserID: subject, Roles: roles}, nil
}
