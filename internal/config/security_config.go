package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	tokenSecretKey     = "token_secret"
	tokenExpiryKey     = "token_expiry"
	adminUsernameKey   = "admin_username"
	adminPasswordKey   = "admin_password"
	adminRoleKey       = "admin_role"
	credentialsFileKey = "credentials_file"
)

type SecurityConfig interface {
	GetTokenSecret() string
	GetTokenExpiry() time.Duration
	GetAdminUsername() string
	GetAdminPassword() string
	GetAdminRole() string
	GetCredentialsFile() string
}

type Security struct {
	v *viper.Viper
}

var _ SecurityConfig = Security{}

// GetTokenSecret returns the HMAC signing secret. Empty means one is generated at startup.
func (s Security) GetTokenSecret() string {
	return s.v.GetString(tokenSecretKey)
}

func (s Security) GetTokenExpiry() time.Duration {
	return s.v.GetDuration(tokenExpiryKey)
}

func (s Security) GetAdminUsername() string {
	return s.v.GetString(adminUsernameKey)
}

func (s Security) GetAdminPassword() string {
	return s.v.GetString(adminPasswordKey)
}

func (s Security) GetAdminRole() string {
	return s.v.GetString(adminRoleKey)
}

// GetCredentialsFile returns a YAML credentials file path. When set it replaces the admin_* settings.
func (s Security) GetCredentialsFile() string {
	return s.v.GetString(credentialsFileKey)
}
