package config

import (
	"fmt"
	"net/url"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ConfigLoader defines the interface for loading configs
type ConfigLoader interface {
	Load(path string) (*Connection, error)
	Parse(data []byte) (*Connection, error)
}

type ValidationError struct {
	Field   string
	Message string
}

type Validator interface {
	Validate(conn *Connection) []ValidationError
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultValueSetter Handles the interface for setting default values
type DefaultValueSetter interface {
	SetDefaults(conn *Connection)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// ConnectionLoader loads Connection configurations from YAML
type ConnectionLoader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewConnectionLoader creates a new ConnectionLoader with the given components
func NewConnectionLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *ConnectionLoader {
	return &ConnectionLoader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// NewDefaultLoader returns a loader with env expansion, defaults and every validator
func NewDefaultLoader() *ConnectionLoader {
	return NewConnectionLoader(
		&EnvExpander{},
		&ConnectionDefaults{},
		&RequiredFieldValidator{},
		&EndpointValidator{},
		&AuthValidator{},
		&TimeoutValidator{},
	)
}

// Load a new connection config from YAML file
func (l *ConnectionLoader) Load(path string) (*Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *ConnectionLoader) Parse(data []byte) (*Connection, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var conn Connection
	if err := yaml.Unmarshal(data, &conn); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&conn)
	}

	if err := l.Validate(&conn); err != nil {
		return nil, err
	}

	return &conn, nil
}

// Validate runs every configured validator against conn
func (l *ConnectionLoader) Validate(conn *Connection) error {
	var allErrors []ValidationError
	for _, validator := range l.validators {
		errors := validator.Validate(conn)
		allErrors = append(allErrors, errors...)
	}

	if len(allErrors) > 0 {
		return fmt.Errorf("validation errors: %v", allErrors)
	}
	return nil
}

// ConnectionDefaults implements DefaultValueSetter for Connection
type ConnectionDefaults struct{}

// SetDefaults sets default values for Connection
func (d *ConnectionDefaults) SetDefaults(conn *Connection) {
	if conn.AuthMethod == "" {
		conn.AuthMethod = DefaultAuthMethod
	}
	if conn.Timeout == 0 {
		conn.Timeout = DefaultTimeout
	}
	if conn.LogLevel == "" {
		conn.LogLevel = DefaultLogLevel
	}
}

// RequiredFieldValidator validates required fields
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(conn *Connection) []ValidationError {
	var errors []ValidationError

	if conn.Endpoint == "" {
		errors = append(errors, ValidationError{Field: "endpoint", Message: "is required"})
	}

	return errors
}

// EndpointValidator checks that endpoint URIs are absolute http(s) URIs
type EndpointValidator struct{}

// Validate checks endpoint and update_endpoint
func (v *EndpointValidator) Validate(conn *Connection) []ValidationError {
	var errors []ValidationError

	check := func(field, raw string) {
		if raw == "" {
			return
		}
		u, err := url.Parse(raw)
		if err != nil {
			errors = append(errors, ValidationError{Field: field, Message: err.Error()})
			return
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			errors = append(errors, ValidationError{Field: field, Message: fmt.Sprintf("unsupported scheme: %q", u.Scheme)})
		}
		if u.Host == "" {
			errors = append(errors, ValidationError{Field: field, Message: "host is required"})
		}
	}

	check("endpoint", conn.Endpoint)
	check("update_endpoint", conn.UpdateEndpoint)

	return errors
}

// AuthValidator handles authentication validation
type AuthValidator struct{}

// Validate checks that authentication configuration is valid
func (v *AuthValidator) Validate(conn *Connection) []ValidationError {
	var errors []ValidationError

	switch conn.AuthMethod {
	case AuthMethodNone, "":
	case AuthMethodBasic:
		// writes always send basic credentials
		if conn.Username == "" {
			errors = append(errors, ValidationError{Field: "username", Message: "is required for basic auth"})
		}
	case AuthMethodDigest:
		// with an update endpoint every read is challenged as well
		if conn.UpdateEndpoint != "" && conn.Username == "" {
			errors = append(errors, ValidationError{
				Field:   "username",
				Message: fmt.Sprintf("is required for %s auth", conn.AuthMethod),
			})
		}
	default:
		errors = append(errors, ValidationError{Field: "auth_method", Message: fmt.Sprintf("unknown auth method: %s", conn.AuthMethod)})
	}

	return errors
}

// TimeoutValidator checks timeout and log level values
type TimeoutValidator struct{}

// Validate checks that the timeout is positive and the log level parses
func (v *TimeoutValidator) Validate(conn *Connection) []ValidationError {
	var errors []ValidationError

	if conn.Timeout <= 0 {
		errors = append(errors, ValidationError{Field: "timeout", Message: "must be positive"})
	}

	if conn.LogLevel != "" {
		if _, err := log.ParseLevel(conn.LogLevel); err != nil {
			errors = append(errors, ValidationError{Field: "log_level", Message: err.Error()})
		}
	}

	return errors
}
