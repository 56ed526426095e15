package auth

import (
	"fmt"
	"sync"

	"github.com/saturnines/nexus-sparql/pkg/config"
	"github.com/saturnines/nexus-sparql/pkg/errors"
)

// AuthCreator defines a function that creates an auth handler from credentials
type AuthCreator func(Credentials) (Handler, error)

// AuthRegistry maintains a registry of auth handler creators
type AuthRegistry struct {
	creators map[config.AuthMethod]AuthCreator
	mutex    sync.RWMutex
}

// NewAuthRegistry creates a new auth registry with default handlers
func NewAuthRegistry() *AuthRegistry {
	registry := &AuthRegistry{
		creators: make(map[config.AuthMethod]AuthCreator),
	}

	registry.Register(config.AuthMethodNone, createNoAuth)
	registry.Register(config.AuthMethodBasic, createBasicAuth)
	registry.Register(config.AuthMethodDigest, createDigestAuth)
	return registry
}

// Register adds a new auth creator to the registry
func (r *AuthRegistry) Register(method config.AuthMethod, creator AuthCreator) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.creators[method] = creator
}

// Create creates an auth handler for the given method.
// An empty method selects config.DefaultAuthMethod; an unknown one is a
// configuration error rather than a silent fallback to no auth.
func (r *AuthRegistry) Create(method config.AuthMethod, creds Credentials) (Handler, error) {
	if method == "" {
		method = config.DefaultAuthMethod
	}

	r.mutex.RLock()
	creator, exists := r.creators[method]
	r.mutex.RUnlock()

	if !exists {
		return nil, errors.WrapError(
			fmt.Errorf("unsupported auth method: %s", method),
			errors.ErrConfiguration,
			"invalid auth method",
		)
	}

	return creator(creds)
}
