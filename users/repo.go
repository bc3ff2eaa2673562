package users

// CredentialRepo resolves usernames to credentials. Implementations are read-only.
type CredentialRepo interface {
	Lookup(username string) (*Credential, error)
}
