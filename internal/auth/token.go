package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/anbuchelva/cams/internal/domain"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// TokenIssuer signs and verifies bearer session tokens with a server-held
// symmetric secret. Sessions are stateless: identity is reconstructed from
// the token on every request.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer. The secret comes from configuration and
// is required at startup.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue signs the claims with HS256 and the configured expiry.
func (t *TokenIssuer) Issue(claims domain.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: claims.ID,
		Email:  claims.Email,
		Name:   claims.Name,
	})
	return token.SignedString(t.secret)
}

// Verify parses the token and returns its claims. It fails with
// domain.ErrInvalidToken when the signature is invalid or the token expired.
func (t *TokenIssuer) Verify(tokenString string) (domain.Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return domain.Claims{ID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}
