package config

// Connection represents the full config for one triplestore connection
type Connection struct {
	Name           string     `yaml:"name,omitempty"`            // Optional label used in logs
	Endpoint       string     `yaml:"endpoint"`                  // Required: read (SPARQL) endpoint URI
	UpdateEndpoint string     `yaml:"update_endpoint,omitempty"` // Optional: update (SPARUL) endpoint URI
	Username       string     `yaml:"username,omitempty"`        // Optional username
	Password       string     `yaml:"password,omitempty"`        // Optional password
	AuthMethod     AuthMethod `yaml:"auth_method,omitempty"`     // none, basic or digest (default digest)
	Timeout        int        `yaml:"timeout,omitempty"`         // Request timeout in seconds (default 5)
	LogLevel       string     `yaml:"log_level,omitempty"`       // logrus level name (default info)
}

// AuthMethod defines current supported authentication methods
type AuthMethod string

const (
	AuthMethodNone   AuthMethod = "none"
	AuthMethodBasic  AuthMethod = "basic"
	AuthMethodDigest AuthMethod = "digest"
)

// Defaults applied when a field is left empty
const (
	DefaultAuthMethod = AuthMethodDigest
	DefaultTimeout    = 5
	DefaultLogLevel   = "info"
)

// Valid reports whether m is a known auth method
func (m AuthMethod) Valid() bool {
	switch m {
	case AuthMethodNone, AuthMethodBasic, AuthMethodDigest:
		return true
	}
	return false
}
