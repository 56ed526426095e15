// pkg/transport/rest/builder.go
package rest

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/saturnines/nexus-sparql/pkg/auth"
)

// Builder builds SPARQL protocol HTTP requests.
type Builder struct {
	URL         string
	Method      string
	Headers     map[string]string
	QueryParams map[string]string
	Form        map[string]string // encoded as application/x-www-form-urlencoded when non-nil
	AuthHandler auth.Handler
}

// NewBuilder constructs a Builder.
// Method defaults to GET if empty.
func NewBuilder(
	url, method string,
	headers, params map[string]string,
	authHandler auth.Handler,
) *Builder {
	if method == "" {
		method = http.MethodGet
	}
	return &Builder{
		URL:         url,
		Method:      method,
		Headers:     headers,
		QueryParams: params,
		AuthHandler: authHandler,
	}
}

// WithForm sets the form body and returns the builder
func (b *Builder) WithForm(form map[string]string) *Builder {
	b.Form = form
	return b
}

// Build creates an HTTP request.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if b.Form != nil {
		body = strings.NewReader(encode(b.Form))
	}

	req, err := http.NewRequestWithContext(ctx, b.Method, b.URL, body)
	if err != nil {
		return nil, err
	}

	for k, v := range b.Headers {
		req.Header.Set(k, v)
	}

	if b.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if len(b.QueryParams) > 0 {
		q := req.URL.Query()
		for k, v := range b.QueryParams {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	if b.AuthHandler != nil {
		if err := b.AuthHandler.ApplyAuth(req); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func encode(values map[string]string) string {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	return form.Encode()
}
