package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/netriktechworks/site-backend/errs"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	TokenType       = "bearer"
)

// Session is what a successful login hands back to the client.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenIssuer signs and checks HS256 admin tokens. The subject claim is the
// admin username; a token is only honoured while that username is still in
// the credential store.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	admins *CredentialStore
	now    func() time.Time
}

type Option func(*TokenIssuer)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

func NewTokenIssuer(secret string, ttl time.Duration, admins *CredentialStore, opts ...Option) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errs.NewConfigError("JWT_SECRET", errors.New("must not be empty"))
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	issuer := &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		admins: admins,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer, nil
}

// Login verifies the credentials and issues a session token.
func (t *TokenIssuer) Login(username, password string) (Session, error) {
	if err := t.admins.Verify(username, password); err != nil {
		return Session{}, err
	}
	token, expiresAt, err := t.Issue(username)
	if err != nil {
		return Session{}, err
	}
	return Session{AccessToken: token, TokenType: TokenType, ExpiresAt: expiresAt}, nil
}

// Issue signs a token for username valid for the configured TTL.
func (t *TokenIssuer) Issue(username string) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, errs.NewInternalErrorWithCause("sign token", err)
	}
	return signed, expiresAt, nil
}

// Verify parses tokenString and returns the admin username it was issued
// to. Expired tokens, bad signatures and unknown subjects are all
// unauthorized.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errs.NewMissingTokenError()
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errs.NewExpiredTokenError()
		}
		return "", errs.NewInvalidTokenError(err)
	}

	if claims.Subject == "" {
		return "", errs.NewInvalidTokenError(fmt.Errorf("token has no subject"))
	}
	if !t.admins.Allowed(claims.Subject) {
		return "", errs.NewUnknownPrincipalError(claims.Subject)
	}
	return claims.Subject, nil
}
