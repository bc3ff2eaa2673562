package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
	"github.com/jrsteele09/go-school-insights/token"
	"github.com/jrsteele09/go-school-insights/users"
	"github.com/stretchr/testify/require"
)

const (
	secretStr    = "1234"
	testUsername = "admin"
	testPassword = "admin123"
)

// clock is a settable time source for the manager
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

type testFixture struct {
	clock   *clock
	store   *users.CredentialStore
	signer  *token.HMACsigner
	manager *token.Manager
}

func setupTestFixture(t *testing.T, options ...token.ManagerOption) *testFixture {
	t.Helper()

	admin, err := users.NewCredential(testUsername, testPassword, users.RoleAdmin)
	require.NoError(t, err)
	store, err := users.NewCredentialStore(admin)
	require.NoError(t, err)

	signer, err := token.NewHMACSigner(secretStr)
	require.NoError(t, err)

	c := &clock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	options = append([]token.ManagerOption{token.WithNowFunc(c.Now)}, options...)

	return &testFixture{
		clock:   c,
		store:   store,
		signer:  signer,
		manager: token.New(store, signer, options...),
	}
}

func TestManager_IssueThenValidate(t *testing.T) {
	f := setupTestFixture(t)

	issued, err := f.manager.Issue(testUsername)
	require.NoError(t, err)
	require.Equal(t, f.clock.now.Add(2*time.Hour), issued.ExpiresAt)
	require.Equal(t, 7200, issued.ExpiresIn(f.clock.now))

	subject, err := f.manager.Validate(issued.Token)
	require.NoError(t, err)
	require.Equal(t, testUsername, subject)
}

func TestManager_Expiry(t *testing.T) {
	f := setupTestFixture(t)
	issuedAt := f.clock.now

	issued, err := f.manager.Issue(testUsername)
	require.NoError(t, err)

	t.Run("valid one second before expiry", func(t *testing.T) {
		f.clock.now = issuedAt.Add(2*time.Hour - time.Second)
		_, err := f.manager.Validate(issued.Token)
		require.NoError(t, err)
	})

	t.Run("expired at expiry", func(t *testing.T) {
		f.clock.now = issuedAt.Add(2 * time.Hour)
		_, err := f.manager.Validate(issued.Token)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("expired after expiry", func(t *testing.T) {
		f.clock.now = issuedAt.Add(3 * time.Hour)
		_, err := f.manager.Validate(issued.Token)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}

func TestManager_CustomExpiry(t *testing.T) {
	f := setupTestFixture(t, token.WithTokenExpiry(15*time.Minute))
	issuedAt := f.clock.now

	issued, err := f.manager.Issue(testUsername)
	require.NoError(t, err)
	require.Equal(t, issuedAt.Add(15*time.Minute), issued.ExpiresAt)

	f.clock.now = issuedAt.Add(15 * time.Minute)
	_, err = f.manager.Validate(issued.Token)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestManager_Malformed(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("empty", func(t *testing.T) {
		_, err := f.manager.Validate("")
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := f.manager.Validate("not.a.jwt")
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("different key", func(t *testing.T) {
		otherSigner, err := token.NewHMACSigner("another-secret")
		require.NoError(t, err)
		other := token.New(f.store, otherSigner, token.WithNowFunc(f.clock.Now))

		issued, err := other.Issue(testUsername)
		require.NoError(t, err)

		_, err = f.manager.Validate(issued.Token)
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		issued, err := f.manager.Issue(testUsername)
		require.NoError(t, err)

		parts := strings.Split(issued.Token, ".")
		require.Len(t, parts, 3)
		parts[1] = parts[1] + "x"

		_, err = f.manager.Validate(strings.Join(parts, "."))
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   testUsername,
			ExpiresAt: jwt.NewNumericDate(f.clock.now.Add(time.Hour)),
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = f.manager.Validate(raw)
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		raw, err := f.signer.Sign(jwt.RegisteredClaims{Subject: testUsername})
		require.NoError(t, err)

		_, err = f.manager.Validate(raw)
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		raw, err := f.signer.Sign(jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(f.clock.now.Add(time.Hour))})
		require.NoError(t, err)

		_, err = f.manager.Validate(raw)
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("expired and wrongly signed is malformed", func(t *testing.T) {
		otherSigner, err := token.NewHMACSigner("another-secret")
		require.NoError(t, err)
		raw, err := otherSigner.Sign(jwt.RegisteredClaims{
			Subject:   testUsername,
			ExpiresAt: jwt.NewNumericDate(f.clock.now.Add(-time.Hour)),
		})
		require.NoError(t, err)

		_, err = f.manager.Validate(raw)
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})
}

func TestManager_UnknownSubject(t *testing.T) {
	f := setupTestFixture(t)

	issued, err := f.manager.Issue("ghost")
	require.NoError(t, err)

	_, err = f.manager.Validate(issued.Token)
	require.ErrorIs(t, err, apperrors.ErrUnknownSubject)
}

func TestNew_DefaultExpiry(t *testing.T) {
	f := setupTestFixture(t, token.WithTokenExpiry(0))

	issued, err := f.manager.Issue(testUsername)
	require.NoError(t, err)
	require.Equal(t, f.clock.now.Add(token.DefaultExpiry), issued.ExpiresAt)
}

func TestHMACSigner(t *testing.T) {
	t.Run("empty secret", func(t *testing.T) {
		_, err := token.NewHMACSigner("")
		require.Error(t, err)
	})

	t.Run("generated secrets differ", func(t *testing.T) {
		a, err := token.GenerateSecret()
		require.NoError(t, err)
		b, err := token.GenerateSecret()
		require.NoError(t, err)
		require.Len(t, a, 64)
		require.NotEqual(t, a, b)
	})

	t.Run("rejects foreign algorithm", func(t *testing.T) {
		s, err := token.NewHMACSigner(secretStr)
		require.NoError(t, err)
		_, err = s.GetVerificationKey(&jwt.Token{Method: jwt.SigningMethodNone, Header: map[string]any{"alg": "none"}})
		require.ErrorContains(t, err, "unexpected signing method")
	})
}
