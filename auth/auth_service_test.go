package auth_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-school-insights/auth"
	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
	"github.com/jrsteele09/go-school-insights/token"
	"github.com/jrsteele09/go-school-insights/users"
	"github.com/stretchr/testify/require"
)

const (
	secretStr        = "1234"
	testUsername     = "admin"
	testUserPassword = "admin123"
)

// testFixture holds all test dependencies
type testFixture struct {
	now     time.Time
	store   *users.CredentialStore
	tokens  *token.Manager
	service *auth.Service
}

// setupTestFixture creates a new test fixture with all dependencies
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	admin, err := users.NewCredential(testUsername, testUserPassword, users.RoleAdmin)
	require.NoError(t, err)
	store, err := users.NewCredentialStore(admin)
	require.NoError(t, err)

	signer, err := token.NewHMACSigner(secretStr)
	require.NoError(t, err)

	f := &testFixture{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), store: store}
	f.tokens = token.New(store, signer, token.WithNowFunc(func() time.Time { return f.now }))

	f.service, err = auth.NewService(store, f.tokens)
	require.NoError(t, err)
	return f
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := auth.NewService(nil, nil)
	require.Error(t, err)
}

func TestService_Login(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := f.service.Login(testUsername, testUserPassword)
		require.NoError(t, err)
		require.Equal(t, auth.TokenTypeBearer, resp.TokenType)
		require.Equal(t, int((2 * time.Hour).Seconds()), resp.ExpiresIn)
		require.NotEmpty(t, resp.AccessToken)

		subject, err := f.service.Authenticate(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, testUsername, subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := f.service.Login(testUsername, "nope")
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		require.Nil(t, resp)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp, err := f.service.Login("root", testUserPassword)
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		require.Nil(t, resp)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := f.service.Login("", "")
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestService_Authenticate(t *testing.T) {
	f := setupTestFixture(t)

	resp, err := f.service.Login(testUsername, testUserPassword)
	require.NoError(t, err)

	t.Run("not a jwt", func(t *testing.T) {
		_, err := f.service.Authenticate("opaque-value")
		require.ErrorIs(t, err, apperrors.ErrMalformedToken)
	})

	t.Run("expired", func(t *testing.T) {
		f.now = f.now.Add(2 * time.Hour)
		_, err := f.service.Authenticate(resp.AccessToken)
		require.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}

func TestValidator(t *testing.T) {
	v := auth.NewValidator()

	t.Run("grant type", func(t *testing.T) {
		require.NoError(t, v.ValidateGrantType(""))
		require.NoError(t, v.ValidateGrantType("password"))
		require.ErrorContains(t, v.ValidateGrantType("client_credentials"), "unsupported grant_type")
	})

	t.Run("user credentials", func(t *testing.T) {
		require.NoError(t, v.ValidateUserCredentials("admin", "pw"))
		require.ErrorContains(t, v.ValidateUserCredentials(" ", "pw"), "username is required")
		require.ErrorContains(t, v.ValidateUserCredentials("admin", ""), "password is required")
	})

	t.Run("access token", func(t *testing.T) {
		require.NoError(t, v.ValidateAccessToken("eyJhbGc.eyJzdWI.signature"))
		require.ErrorContains(t, v.ValidateAccessToken(""), "access token is required")
		require.ErrorContains(t, v.ValidateAccessToken("not-a-jwt"), "must be a valid JWT")
	})
}
