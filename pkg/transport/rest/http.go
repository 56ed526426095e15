package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the response Content-Type header
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Send builds the request, sends it and reads the whole body before returning,
// so the caller's context deadline covers the complete exchange.
func Send(ctx context.Context, doer HTTPDoer, builder *Builder) (*Response, error) {
	req, err := builder.Build(ctx)
	if err != nil {
		return nil, &BuildError{Err: err}
	}

	resp, err := doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// BuildError reports a request that could not be constructed, as opposed to
// one that failed in flight
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string {
	return "build request: " + e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
