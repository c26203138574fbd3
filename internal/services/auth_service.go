package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"account-service/config"
	"account-service/internal/domain/user"
	account_errors "account-service/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt work factor used for stored passwords.
const DefaultPasswordCost = 10

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// BearerPrefix precedes issued tokens in responses and Authorization headers.
const BearerPrefix = "Bearer "

// EncryptPassword hashes a plaintext password with bcrypt at the given cost.
func EncryptPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultPasswordCost
	}
	if len(plain) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", account_errors.ErrInvalidInput, MaxPasswordBytes)
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// IsEqualPassword reports whether plain matches the bcrypt hash.
func IsEqualPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// TokenClaims carries the token model alongside the registered claims.
type TokenClaims struct {
	user.TokenModel
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.JWTExpiryMin) * time.Minute,
		now:    time.Now,
	}
}

// CreateToken signs an HS256 token embedding payload.
func (t *TokenIssuer) CreateToken(payload user.TokenModel) (string, error) {
	now := t.now()
	claims := TokenClaims{
		TokenModel: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  payload.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) ParseToken(tokenString string) (TokenClaims, error) {
	if tokenString == "" {
		return TokenClaims{}, account_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, account_errors.ErrUnauthorized
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return TokenClaims{}, account_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return TokenClaims{}, account_errors.ErrUnauthorized
	}

	return *claims, nil
}

// HTTPStatus maps errors raised at the transport edge to a response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, account_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, account_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, account_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, account_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var claimsKey ctxKey = "token_claims"

func WithClaimsContext(ctx context.Context, claims TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(TokenClaims)
	return claims, ok
}
