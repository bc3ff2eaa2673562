package auth

import (
	"fmt"
	"strings"
)

// Validator holds the boundary checks applied to login and bearer inputs.
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGrantType accepts an absent grant type or "password"
func (v *Validator) ValidateGrantType(grantType string) error {
	if grantType != "" && grantType != "password" {
		return fmt.Errorf("unsupported grant_type %q", grantType)
	}
	return nil
}

// ValidateUserCredentials validates the login form fields are present
func (v *Validator) ValidateUserCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username is required")
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidateAccessToken checks the bearer value looks like a compact JWT
func (v *Validator) ValidateAccessToken(token string) error {
	if token == "" {
		return fmt.Errorf("access token is required")
	}
	if strings.Count(token, ".") != 2 {
		return fmt.Errorf("access token must be a valid JWT")
	}
	return nil
}
