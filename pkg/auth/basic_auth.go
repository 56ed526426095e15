package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/saturnines/nexus-sparql/pkg/config"
	"github.com/saturnines/nexus-sparql/pkg/errors"
)

// BasicAuth implements the interface for HTTP basic authentication
type BasicAuth struct {
	Username string // Username for Basic auth
	Password string // Password for Basic auth
}

// NewBasicAuth creates a new basic authentication handler
func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{
		Username: username,
		Password: password,
	}
}

// ApplyAuth adds the basic auth header to the request
func (b *BasicAuth) ApplyAuth(req *http.Request) error {
	if b.Username == "" {
		return errors.WrapError(
			fmt.Errorf("username is required"),
			errors.ErrConfiguration,
			"apply basic auth",
		)
	}
	// an empty password is allowed

	authStr := b.Username + ":" + b.Password
	encodedAuth := base64.StdEncoding.EncodeToString([]byte(authStr))
	req.Header.Set("Authorization", "Basic "+encodedAuth)

	return nil
}

// Method returns config.AuthMethodBasic
func (b *BasicAuth) Method() config.AuthMethod {
	return config.AuthMethodBasic
}

// String returns a string representation of this auth method for testing
func (b *BasicAuth) String() string {
	return fmt.Sprintf("BasicAuth(username: %s)", b.Username)
}
