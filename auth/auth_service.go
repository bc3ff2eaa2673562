package auth

import (
	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
	"github.com/jrsteele09/go-school-insights/token"
	"github.com/jrsteele09/go-school-insights/users"
	"github.com/pkg/errors"
)

// TokenTypeBearer is the only token type issued by the service
const TokenTypeBearer = "bearer"

// TokenResponse is the body returned from the token endpoint.
type TokenResponse struct {
	// AccessToken is the signed JWT used as "Authorization: Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// The authoritative expiry is the JWT's "exp" claim.
	ExpiresIn int `json:"expires_in,omitempty"`
}

// Service authenticates credentials and hands out access tokens.
type Service struct {
	credentials users.CredentialRepo
	tokens      *token.Manager
	validator   *Validator
}

func NewService(credentials users.CredentialRepo, tokens *token.Manager) (*Service, error) {
	if credentials == nil {
		return nil, errors.New("[auth NewService] credential repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[auth NewService] token manager is required")
	}
	return &Service{
		credentials: credentials,
		tokens:      tokens,
		validator:   NewValidator(),
	}, nil
}

// Login looks the user up before anything is issued, so tokens never name an
// unknown subject. A missing user and a wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(username, password string) (*TokenResponse, error) {
	if err := s.validator.ValidateUserCredentials(username, password); err != nil {
		return nil, errors.Wrap(apperrors.ErrInvalidCredentials, err.Error())
	}

	credential, err := s.credentials.Lookup(username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !credential.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	issued, err := s.tokens.Issue(credential.Username)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] tokens.Issue")
	}

	return &TokenResponse{
		AccessToken: issued.Token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   issued.ExpiresIn(s.tokens.Now()),
	}, nil
}

// Authenticate resolves a bearer token to its username.
func (s *Service) Authenticate(rawToken string) (string, error) {
	if err := s.validator.ValidateAccessToken(rawToken); err != nil {
		return "", errors.Wrap(apperrors.ErrMalformedToken, err.Error())
	}
	return s.tokens.Validate(rawToken)
}
