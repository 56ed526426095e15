package auth

import (
	"fmt"
	"net/http"

	"github.com/icholy/digest"
	"github.com/saturnines/nexus-sparql/pkg/config"
)

// DigestAuth implements HTTP digest authentication.
// Credentials are computed from the server's WWW-Authenticate challenge, so the
// work happens in the round tripper returned by WrapTransport.
type DigestAuth struct {
	Username string
	Password string
}

// NewDigestAuth creates a new digest authentication handler
func NewDigestAuth(username, password string) *DigestAuth {
	return &DigestAuth{
		Username: username,
		Password: password,
	}
}

// ApplyAuth is a no-op: the Authorization header is set by the digest
// transport once the server has issued a challenge. Stores that never
// challenge are reached without credentials.
func (d *DigestAuth) ApplyAuth(req *http.Request) error {
	return nil
}

// WrapTransport returns a round tripper that answers digest challenges
func (d *DigestAuth) WrapTransport(base http.RoundTripper) http.RoundTripper {
	return &digest.Transport{
		Username:  d.Username,
		Password:  d.Password,
		Transport: base,
	}
}

// Method returns config.AuthMethodDigest
func (d *DigestAuth) Method() config.AuthMethod {
	return config.AuthMethodDigest
}

// String returns a string representation of this auth method for testing
func (d *DigestAuth) String() string {
	return fmt.Sprintf("DigestAuth(username: %s)", d.Username)
}
