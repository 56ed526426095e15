package auth

import (
	"github.com/saturnines/nexus-sparql/pkg/config"
)

// Credentials carries the username and password handed to auth creators
type Credentials struct {
	Username string
	Password string
}

// Creator functions for auth handlers

func createNoAuth(_ Credentials) (Handler, error) {
	return NewNoAuth(), nil
}

func createBasicAuth(creds Credentials) (Handler, error) {
	return NewBasicAuth(creds.Username, creds.Password), nil
}

func createDigestAuth(creds Credentials) (Handler, error) {
	return NewDigestAuth(creds.Username, creds.Password), nil
}

var defaultRegistry = NewAuthRegistry()

// CreateHandler builds the handler for method using the default registry
func CreateHandler(method config.AuthMethod, creds Credentials) (Handler, error) {
	return defaultRegistry.Create(method, creds)
}

// RegisterAuthHandler adds or replaces a creator in the default registry
func RegisterAuthHandler(method config.AuthMethod, creator AuthCreator) {
	defaultRegistry.Register(method, creator)
}
