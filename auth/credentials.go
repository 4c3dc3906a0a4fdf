package auth

// CredentialVerifier checks a username/password pair and, on success,
// returns the display name to embed in the issued token. A real user
// directory can replace StaticCredentials without touching the handlers.
type CredentialVerifier interface {
	VerifyCredentials(username, password string) (displayName string, ok bool)
}

// StaticCredentials accepts exactly one fixed identity. This is the demo
// login for the admin UI; both fields are compared case-sensitively.
type StaticCredentials struct {
	Username    string
	Password    string
	DisplayName string
}

func (c StaticCredentials) VerifyCredentials(username, password string) (string, bool) {
	if username != c.Username || password != c.Password {
		return "", false
	}
	return c.DisplayName, true
}
