package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims read by JWTVerifier.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// JWTVerifier verifies HMAC-signed JWTs locally.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier creates a verifier for HS256 tokens signed with secret.
// When issuer is non-empty the iss claim must match it. Returns nil if the
// secret is blank.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	if strings.TrimSpace(secret) == "" {
		return nil
	}
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

// Verify implements Verifier.
func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{Subject: claims.Subject, SessionID: claims.ID, Email: claims.Email}, nil
}
