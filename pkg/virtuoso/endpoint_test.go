package virtuoso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnines/nexus-sparql/pkg/errors"
)

func TestNewEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		update     string
		wantBase   string
		wantRead   string
		wantWrite  string
		wantUpdate bool
	}{
		{
			name:      "ReadOnly",
			endpoint:  "http://db.example/sparql",
			wantBase:  "http://db.example",
			wantRead:  "/sparql",
			wantWrite: "/sparql",
		},
		{
			name:      "ReadOnlyWithPort",
			endpoint:  "http://db.example:8890/sparql",
			wantBase:  "http://db.example:8890",
			wantRead:  "/sparql",
			wantWrite: "/sparql",
		},
		{
			name:       "DistinctUpdateEndpoint",
			endpoint:   "https://db.example/sparql",
			update:     "https://db.example/sparql-auth",
			wantBase:   "https://db.example",
			wantRead:   "/sparql-auth",
			wantWrite:  "/sparql-auth",
			wantUpdate: true,
		},
		{
			name:       "IdenticalUpdateEndpoint",
			endpoint:   "http://db.example/sparql",
			update:     "http://db.example/sparql",
			wantBase:   "http://db.example",
			wantRead:   "/sparql",
			wantWrite:  "/sparql",
			wantUpdate: true,
		},
		{
			name:       "UpdateEndpointWithExplicitDefaultPort",
			endpoint:   "http://db.example/sparql",
			update:     "http://db.example:80/sparql-auth",
			wantBase:   "http://db.example",
			wantRead:   "/sparql-auth",
			wantWrite:  "/sparql-auth",
			wantUpdate: true,
		},
		{
			name:       "ReadEndpointWithExplicitDefaultPort",
			endpoint:   "https://DB.example:443/sparql",
			update:     "https://db.example/sparql-auth",
			wantBase:   "https://DB.example:443",
			wantRead:   "/sparql-auth",
			wantWrite:  "/sparql-auth",
			wantUpdate: true,
		},
		{
			name:      "QueryStringIsPartOfPath",
			endpoint:  "http://db.example/sparql?default-graph-uri=urn:g",
			wantBase:  "http://db.example",
			wantRead:  "/sparql?default-graph-uri=urn:g",
			wantWrite: "/sparql?default-graph-uri=urn:g",
		},
		{
			name:      "NoPath",
			endpoint:  "http://db.example",
			wantBase:  "http://db.example",
			wantRead:  "/",
			wantWrite: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEndpoints(tt.endpoint, tt.update)
			require.NoError(t, err)

			assert.Equal(t, tt.wantBase, e.Base)
			assert.Equal(t, tt.wantRead, e.ReadTarget())
			assert.Equal(t, tt.wantWrite, e.WriteTarget())
			assert.Equal(t, tt.wantUpdate, e.HasUpdate())
			assert.Equal(t, tt.wantBase+tt.wantRead, e.URL(e.ReadTarget()))
		})
	}
}

func TestReadTargetFollowsUpdateEndpoint(t *testing.T) {
	for _, update := range []string{"/update", "/sparql-auth", "/sparql/update?x=1"} {
		e, err := NewEndpoints("http://db.example/sparql", "http://db.example"+update)
		require.NoError(t, err)
		assert.Equal(t, update, e.ReadTarget())
		assert.Equal(t, e.WriteTarget(), e.ReadTarget())
	}

	e, err := NewEndpoints("http://db.example/sparql", "")
	require.NoError(t, err)
	assert.Equal(t, e.ReadPath, e.ReadTarget())
}

func TestNewEndpoints_Errors(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		update   string
	}{
		{"Empty", "", ""},
		{"Relative", "/sparql", ""},
		{"Unparseable", "http://db example/sparql", ""},
		{"RelativeUpdate", "http://db.example/sparql", "/sparql-auth"},
		{"UpdateOnOtherHost", "http://db.example/sparql", "http://other.example/sparql-auth"},
		{"UpdateOnOtherScheme", "http://db.example/sparql", "https://db.example/sparql-auth"},
		{"UpdateOnOtherPort", "http://db.example/sparql", "http://db.example:8080/sparql-auth"},
		{"UpdateOnDefaultPortOfOtherScheme", "http://db.example/sparql", "http://db.example:443/sparql-auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEndpoints(tt.endpoint, tt.update)
			assert.ErrorIs(t, err, errors.ErrConfiguration)
		})
	}
}
