package auth

import (
	"net/http"

	"github.com/saturnines/nexus-sparql/pkg/config"
)

// Handler defines the interface for auth handlers
type Handler interface {
	// ApplyAuth attaches credentials to an outgoing request
	ApplyAuth(req *http.Request) error

	// Method reports which auth method the handler implements
	Method() config.AuthMethod
}

// TransportWrapper is implemented by handlers that negotiate credentials with the
// server (challenge/response) instead of attaching them up front.
type TransportWrapper interface {
	WrapTransport(base http.RoundTripper) http.RoundTripper
}

// NoAuth implements the Handler interface by attaching nothing
type NoAuth struct{}

// NewNoAuth creates a handler that sends requests without credentials
func NewNoAuth() *NoAuth {
	return &NoAuth{}
}

// ApplyAuth leaves the request untouched
func (n *NoAuth) ApplyAuth(req *http.Request) error {
	return nil
}

// Method returns config.AuthMethodNone
func (n *NoAuth) Method() config.AuthMethod {
	return config.AuthMethodNone
}

// String returns a string representation of this auth method
func (n *NoAuth) String() string {
	return "NoAuth"
}

// Transport returns base wrapped by h when h negotiates credentials at the
// transport level, and base unchanged otherwise.
func Transport(h Handler, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if w, ok := h.(TransportWrapper); ok {
		return w.WrapTransport(base)
	}
	return base
}
