package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-school-insights/auth"
	"github.com/jrsteele09/go-school-insights/datasets"
	"github.com/jrsteele09/go-school-insights/intent"
	"github.com/jrsteele09/go-school-insights/internal/config"
	"github.com/jrsteele09/go-school-insights/prediction"
	"github.com/jrsteele09/go-school-insights/server"
	"github.com/jrsteele09/go-school-insights/token"
	"github.com/jrsteele09/go-school-insights/users"
)

// newApp builds every component once and returns the gateway handler.
func newApp(ctx context.Context, c config.Config, logger zerolog.Logger) (http.Handler, error) {
	credentials, err := buildCredentials(c)
	if err != nil {
		return nil, fmt.Errorf("[newApp] credentials: %w", err)
	}
	logger.Info().Int("users", credentials.Len()).Msg("credential store ready")

	signer, err := buildSigner(c, logger)
	if err != nil {
		return nil, fmt.Errorf("[newApp] token signer: %w", err)
	}
	tokens := token.New(credentials, signer, token.WithTokenExpiry(c.GetTokenExpiry()))

	authService, err := auth.NewService(credentials, tokens)
	if err != nil {
		return nil, fmt.Errorf("[newApp] auth service: %w", err)
	}

	store, err := datasets.Load(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("[newApp] datasets: %w", err)
	}

	predictor, err := prediction.New(store,
		prediction.WithTrees(c.GetModelTrees()),
		prediction.WithSeed(c.GetModelSeed()),
	)
	if err != nil {
		return nil, fmt.Errorf("[newApp] models: %w", err)
	}
	revenue := predictor.Revenue()
	logger.Info().
		Int("trees", c.GetModelTrees()).
		Strs("months", predictor.Months()).
		Float64("revenue_intercept", revenue.Intercept).
		Float64("revenue_slope", revenue.Slope).
		Msg("models fitted")

	return server.New(c, logger, server.Services{
		Auth:      authService,
		Reports:   store,
		Predictor: predictor,
		Intents:   intent.New(),
	})
}

// buildCredentials reads the credentials file when configured, otherwise the
// single admin_* account.
func buildCredentials(c config.SecurityConfig) (*users.CredentialStore, error) {
	if path := c.GetCredentialsFile(); path != "" {
		creds, err := users.LoadCredentialsFile(path)
		if err != nil {
			return nil, err
		}
		return users.NewCredentialStore(creds...)
	}

	admin, err := users.NewCredential(c.GetAdminUsername(), c.GetAdminPassword(), users.RoleType(c.GetAdminRole()))
	if err != nil {
		return nil, err
	}
	return users.NewCredentialStore(admin)
}

// buildSigner uses the configured secret, generating a random one when unset.
func buildSigner(c config.SecurityConfig, logger zerolog.Logger) (token.Signer, error) {
	secret := c.GetTokenSecret()
	if secret == "" {
		generated, err := token.GenerateSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
		logger.Warn().Msg("token_secret is not set; using a random secret, issued tokens will not survive a restart")
	}
	return token.NewHMACSigner(secret)
}
