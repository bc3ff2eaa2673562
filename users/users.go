package users

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents the role granted to a credential
type RoleType string

const (
	RoleAdmin  RoleType = "admin"  // Full read access to reports and predictions
	RoleViewer RoleType = "viewer" // Reserved for read-only accounts
)

// Credential is a login identity known to the service. It is immutable once built.
type Credential struct {
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"` // Hashed version of the password - never serialize
	Role         RoleType `json:"role"`
}

// NewCredential hashes password and returns the credential for username.
func NewCredential(username, password string, role RoleType) (Credential, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Credential{}, fmt.Errorf("username is required")
	}
	if password == "" {
		return Credential{}, fmt.Errorf("password is required for %s", username)
	}
	if role == "" {
		role = RoleAdmin
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to hash password for %s: %w", username, err)
	}
	return Credential{Username: username, PasswordHash: hash, Role: role}, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword reports whether password matches the credential's hash
func (c *Credential) CheckPassword(password string) bool {
	return CheckPasswordHash(password, c.PasswordHash)
}

func (c *Credential) IsAdmin() bool {
	return c.Role == RoleAdmin
}
