package users

import (
	"fmt"

	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
)

var _ CredentialRepo = (*CredentialStore)(nil)

// CredentialStore is an in-memory credential map fixed at construction.
// It has no mutation methods, so concurrent lookups need no locking.
type CredentialStore struct {
	credentials map[string]Credential
}

// NewCredentialStore builds a store from creds. Usernames must be unique.
func NewCredentialStore(creds ...Credential) (*CredentialStore, error) {
	store := &CredentialStore{credentials: make(map[string]Credential, len(creds))}
	for _, c := range creds {
		if c.Username == "" {
			return nil, fmt.Errorf("credential with empty username")
		}
		if _, exists := store.credentials[c.Username]; exists {
			return nil, fmt.Errorf("duplicate credential for %s", c.Username)
		}
		store.credentials[c.Username] = c
	}
	return store, nil
}

// Lookup returns a copy of the credential for username, or ErrUserNotFound.
func (s *CredentialStore) Lookup(username string) (*Credential, error) {
	c, ok := s.credentials[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &c, nil
}

func (s *CredentialStore) Len() int {
	return len(s.credentials)
}
