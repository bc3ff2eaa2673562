package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
	"github.com/jrsteele09/go-school-insights/users"
	"github.com/pkg/errors"
)

// DefaultExpiry is the lifetime of an access token when none is configured
const DefaultExpiry = 2 * time.Hour

// Claims carried by an access token. Subject is the username.
type Claims struct {
	jwt.RegisteredClaims
}

// Issued is a freshly signed access token
type Issued struct {
	Token     string
	ExpiresAt time.Time
}

// ExpiresIn returns the token lifetime in whole seconds relative to now
func (i Issued) ExpiresIn(now time.Time) int {
	return int(i.ExpiresAt.Sub(now).Seconds())
}

// Manager issues and validates access tokens
type Manager struct {
	credentials users.CredentialRepo // Subjects must resolve here to validate
	signer      Signer               // Token signing and verification
	expiry      time.Duration
	nowFunc     func() time.Time
}

type ManagerOption func(*Manager)

func WithTokenExpiry(expiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.expiry = expiry
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func New(credentials users.CredentialRepo, signer Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		credentials: credentials,
		signer:      signer,
	}

	for _, opt := range options {
		opt(m)
	}

	if m.expiry <= 0 {
		m.expiry = DefaultExpiry
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m
}

// Now returns the manager's current time
func (m *Manager) Now() time.Time {
	return m.nowFunc()
}

// Issue signs a token for username expiring after the configured expiry.
// It does not check that username exists; callers authenticate first.
func (m *Manager) Issue(username string) (*Issued, error) {
	now := m.nowFunc()
	expiresAt := now.Add(m.expiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	signed, err := m.signer.Sign(claims)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to issue token for %s", username)
	}
	return &Issued{Token: signed, ExpiresAt: expiresAt}, nil
}

// Validate verifies rawToken and returns its subject.
//
// Errors: ErrMalformedToken when the structure, algorithm or signature is wrong,
// ErrTokenExpired when now >= exp, ErrUnknownSubject when the subject is not a
// known credential.
func (m *Manager) Validate(rawToken string) (string, error) {
	if strings.TrimSpace(rawToken) == "" {
		return "", apperrors.ErrMalformedToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, m.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{m.signer.GetSigningMethod().Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.nowFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", apperrors.ErrMalformedToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", apperrors.ErrMalformedToken)
	}

	if _, err := m.credentials.Lookup(claims.Subject); err != nil {
		return "", apperrors.ErrUnknownSubject
	}
	return claims.Subject, nil
}
