package users

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type credentialsFile struct {
	Users []struct {
		Username string   `yaml:"username"`
		Password string   `yaml:"password"`
		Role     RoleType `yaml:"role"`
	} `yaml:"users"`
}

// LoadCredentialsFile reads a YAML file of the form
//
//	users:
//	  - username: admin
//	    password: admin123
//	    role: admin
//
// and returns the hashed credentials. Plaintext passwords are not retained.
func LoadCredentialsFile(path string) ([]Credential, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var decoded credentialsFile
	if err := yaml.Unmarshal(b, &decoded); err != nil {
		return nil, fmt.Errorf("decode credentials file: %w", err)
	}
	if len(decoded.Users) == 0 {
		return nil, fmt.Errorf("credentials file %s has no users", path)
	}

	creds := make([]Credential, 0, len(decoded.Users))
	for _, u := range decoded.Users {
		c, err := NewCredential(u.Username, u.Password, u.Role)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, nil
}
