package domain

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned when a credential cannot be decoded into
// a session. Callers must drop the stored credential when they see it.
var ErrInvalidCredential = errors.New("invalid credential")

// Claims are the parts of the access token the front-end reads.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the identity of the current browser session.
type Session struct {
	Credential string
	Role       Role
	Username   string
}

// Authenticated reports whether the session carries a usable credential.
func (s Session) Authenticated() bool {
	return s.Credential != "" && s.Role.Valid()
}

// DecodeCredential reads the role claim out of an access token. The signature
// is not checked here; the API verifies it on every call. The header must
// still decode and name a known signing method.
func DecodeCredential(credential string) (Session, error) {
	if credential == "" {
		return Session{}, fmt.Errorf("%w: empty", ErrInvalidCredential)
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(credential, &claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	role := Role(claims.Role)
	if !role.Valid() {
		return Session{}, fmt.Errorf("%w: unknown role %q", ErrInvalidCredential, claims.Role)
	}

	return Session{
		Credential: credential,
		Role:       role,
		Username:   claims.Subject,
	}, nil
}
