package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saturnines/nexus-sparql/pkg/config"
	"github.com/saturnines/nexus-sparql/pkg/errors"
)

// Helper functions for tests
func assertHeader(t *testing.T, req *http.Request, header, expected string) {
	t.Helper()
	if value := req.Header.Get(header); value != expected {
		t.Errorf("Expected %s header '%s', got '%s'", header, expected, value)
	}
}

func assertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error containing '%s', got nil", expected)
		return
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error containing '%s', got '%s'", expected, err.Error())
	}
}

func TestNoAuth(t *testing.T) {
	auth := NewNoAuth()
	req, _ := http.NewRequest("GET", "http://db.example/sparql", nil)

	if err := auth.ApplyAuth(req); err != nil {
		t.Fatalf("ApplyAuth failed: %v", err)
	}
	assertHeader(t, req, "Authorization", "")

	if auth.Method() != config.AuthMethodNone {
		t.Errorf("Expected method none, got %s", auth.Method())
	}
}

func TestBasicAuth(t *testing.T) {
	t.Run("ValidCredentials", func(t *testing.T) {
		auth := NewBasicAuth("testuser", "testpass")
		req, _ := http.NewRequest("GET", "http://db.example/sparql", nil)

		err := auth.ApplyAuth(req)
		if err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}

		encoded := base64.StdEncoding.EncodeToString([]byte("testuser:testpass"))
		assertHeader(t, req, "Authorization", "Basic "+encoded)
	})

	t.Run("EmptyUsername", func(t *testing.T) {
		auth := NewBasicAuth("", "testpass")
		req, _ := http.NewRequest("GET", "http://db.example/sparql", nil)

		err := auth.ApplyAuth(req)
		assertErrorContains(t, err, "username is required")
		if !errors.Is(err, errors.ErrConfiguration) {
			t.Errorf("Expected configuration error, got %v", err)
		}
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		auth := NewBasicAuth("testuser", "")
		req, _ := http.NewRequest("GET", "http://db.example/sparql", nil)

		err := auth.ApplyAuth(req)
		if err != nil {
			t.Fatalf("ApplyAuth with empty password failed: %v", err)
		}

		encoded := base64.StdEncoding.EncodeToString([]byte("testuser:"))
		assertHeader(t, req, "Authorization", "Basic "+encoded)
	})

	t.Run("StringMethod", func(t *testing.T) {
		auth := NewBasicAuth("testuser", "testpass")
		str := auth.String()
		if !strings.Contains(str, "testuser") {
			t.Errorf("String() should contain username, got: %s", str)
		}
		if strings.Contains(str, "testpass") {
			t.Errorf("String() should not contain password, got: %s", str)
		}
	})
}

func TestDigestAuth(t *testing.T) {
	t.Run("ApplyAuthLeavesHeaderToTransport", func(t *testing.T) {
		auth := NewDigestAuth("dba", "secret")
		req, _ := http.NewRequest("GET", "http://db.example/sparql", nil)

		if err := auth.ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
		assertHeader(t, req, "Authorization", "")
	})

	t.Run("EmptyUsernameWaitsForChallenge", func(t *testing.T) {
		auth := NewDigestAuth("", "secret")
		req, _ := http.NewRequest("GET", "http://db.example/sparql", nil)

		if err := auth.ApplyAuth(req); err != nil {
			t.Fatalf("ApplyAuth failed: %v", err)
		}
	})

	t.Run("AnswersChallenge", func(t *testing.T) {
		var attempts int
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Digest ") {
				w.Header().Set("WWW-Authenticate", `Digest realm="SPARQL", nonce="dcd98b7102dd2f0e8b11d0f600bfb0c093", qop="auth", algorithm=MD5`)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if !strings.Contains(authz, `username="dba"`) {
				t.Errorf("Expected digest username in '%s'", authz)
			}
			if !strings.Contains(authz, `realm="SPARQL"`) {
				t.Errorf("Expected digest realm in '%s'", authz)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer mockServer.Close()

		auth := NewDigestAuth("dba", "secret")
		client := &http.Client{Transport: Transport(auth, nil)}

		resp, err := client.Get(mockServer.URL + "/sparql-auth")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d", resp.StatusCode)
		}
		if attempts != 2 {
			t.Errorf("Expected challenge plus authenticated retry, got %d requests", attempts)
		}
	})

	t.Run("StringMethod", func(t *testing.T) {
		str := NewDigestAuth("dba", "secret").String()
		if strings.Contains(str, "secret") {
			t.Errorf("String() should not contain password, got: %s", str)
		}
	})
}

func TestTransport(t *testing.T) {
	base := http.DefaultTransport

	if got := Transport(NewBasicAuth("u", "p"), base); got != base {
		t.Error("Basic auth should not wrap the transport")
	}
	if got := Transport(NewNoAuth(), base); got != base {
		t.Error("No auth should not wrap the transport")
	}
	if got := Transport(NewDigestAuth("u", "p"), base); got == base {
		t.Error("Digest auth should wrap the transport")
	}
}

func TestCreateHandler(t *testing.T) {
	creds := Credentials{Username: "user", Password: "pass"}

	t.Run("BasicAuthCreation", func(t *testing.T) {
		handler, err := CreateHandler(config.AuthMethodBasic, creds)
		if err != nil {
			t.Fatalf("CreateHandler failed: %v", err)
		}

		basicAuth, ok := handler.(*BasicAuth)
		if !ok {
			t.Fatalf("Expected *BasicAuth, got %T", handler)
		}
		if basicAuth.Username != "user" || basicAuth.Password != "pass" {
			t.Errorf("Auth not properly configured: %+v", basicAuth)
		}
	})

	t.Run("DigestAuthCreation", func(t *testing.T) {
		handler, err := CreateHandler(config.AuthMethodDigest, creds)
		if err != nil {
			t.Fatalf("CreateHandler failed: %v", err)
		}
		if _, ok := handler.(*DigestAuth); !ok {
			t.Fatalf("Expected *DigestAuth, got %T", handler)
		}
	})

	t.Run("EmptyMethodDefaultsToDigest", func(t *testing.T) {
		handler, err := CreateHandler("", creds)
		if err != nil {
			t.Fatalf("CreateHandler failed: %v", err)
		}
		if handler.Method() != config.AuthMethodDigest {
			t.Errorf("Expected digest, got %s", handler.Method())
		}
	})

	t.Run("NoneCreation", func(t *testing.T) {
		handler, err := CreateHandler(config.AuthMethodNone, creds)
		if err != nil {
			t.Fatalf("CreateHandler failed: %v", err)
		}
		if _, ok := handler.(*NoAuth); !ok {
			t.Fatalf("Expected *NoAuth, got %T", handler)
		}
	})

	t.Run("UnsupportedAuthMethod", func(t *testing.T) {
		_, err := CreateHandler(config.AuthMethod("ntlm"), creds)
		if err == nil {
			t.Fatal("Expected error for unsupported auth method, got nil")
		}
		if !errors.Is(err, errors.ErrConfiguration) {
			t.Errorf("Expected configuration error, got %v", err)
		}
	})
}

func TestRegisterAuthHandler(t *testing.T) {
	registry := NewAuthRegistry()
	customMethod := config.AuthMethod("custom")

	registry.Register(customMethod, func(creds Credentials) (Handler, error) {
		return NewBasicAuth("custom", "secret"), nil
	})

	handler, err := registry.Create(customMethod, Credentials{})
	if err != nil {
		t.Fatalf("Failed to create custom handler: %v", err)
	}

	customHandler, ok := handler.(*BasicAuth)
	if !ok {
		t.Fatal("Custom handler is not a BasicAuth")
	}
	if customHandler.Username != "custom" || customHandler.Password != "secret" {
		t.Error("Custom handler has incorrect values")
	}
}
