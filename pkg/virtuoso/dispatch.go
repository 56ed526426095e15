package virtuoso

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/saturnines/nexus-sparql/pkg/auth"
	"github.com/saturnines/nexus-sparql/pkg/errors"
	"github.com/saturnines/nexus-sparql/pkg/results"
	"github.com/saturnines/nexus-sparql/pkg/transport/rest"
)

// acceptHeader lists JSON first so stores that honour order prefer it
var acceptHeader = strings.Join([]string{results.MIMEJSON, results.MIMEXML}, ", ")

func headers() map[string]string {
	return map[string]string{"Accept": acceptHeader}
}

// executeRead sends a query form as GET. Credentials go out only when an
// update endpoint is configured, because that is the endpoint being read.
func (c *Client) executeRead(ctx context.Context, op Operation, query string, params Params) (*Outcome, error) {
	target := c.endpoints.ReadTarget()
	qp := params.merge(map[string]string{
		"query":  query,
		"format": results.MIMEJSON,
	})

	doer, handler := c.plain, auth.Handler(nil)
	if c.endpoints.HasUpdate() {
		doer, handler = c.authed, c.auth
	}

	builder := rest.NewBuilder(c.endpoints.URL(target), http.MethodGet, headers(), qp, handler)
	resp, err := c.send(ctx, op, doer, builder)
	if err != nil {
		return nil, err
	}

	if err := classify(op, resp); err != nil {
		return nil, err
	}

	res, err := c.parser.Parse(resp.ContentType(), resp.Body)
	if err != nil {
		return nil, &errors.Error{
			Kind:       errors.ErrResultParse,
			Op:         op.String(),
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
			Err:        err,
		}
	}

	return &Outcome{Op: op, Result: res}, nil
}

// executeWrite posts an update form to the write target with credentials
func (c *Client) executeWrite(ctx context.Context, op Operation, update string, params Params) (*Outcome, error) {
	target := c.endpoints.WriteTarget()
	form := params.merge(map[string]string{"query": update})

	builder := rest.NewBuilder(
		c.endpoints.URL(target),
		http.MethodPost,
		headers(),
		map[string]string{"format": results.MIMEJSON},
		c.auth,
	).WithForm(form)

	resp, err := c.send(ctx, op, c.authed, builder)
	if err != nil {
		return nil, err
	}

	if err := classify(op, resp); err != nil {
		return nil, err
	}

	return &Outcome{Op: op, Ack: acknowledgement(resp.Body)}, nil
}

// send performs one exchange under the client's deadline. The body is read
// before the deadline is released, so a slow body is a timeout too.
func (c *Client) send(ctx context.Context, op Operation, doer rest.HTTPDoer, builder *rest.Builder) (*rest.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logger := c.logger.WithFields(log.Fields{
		"op":     op.String(),
		"method": builder.Method,
		"url":    builder.URL,
	})

	start := time.Now()
	resp, err := rest.Send(ctx, doer, builder)
	elapsed := time.Since(start)

	if err != nil {
		dispatchErr := transportError(ctx, op, err)
		logger.WithField("elapsed", elapsed).WithError(err).Debug("sparql request failed")
		return nil, dispatchErr
	}

	logger.WithFields(log.Fields{
		"status":  resp.StatusCode,
		"elapsed": elapsed,
	}).Debug("sparql request completed")

	if passthrough(resp.StatusCode) {
		logger.WithField("status", resp.StatusCode).Warn("unexpected status treated as success")
	}

	return resp, nil
}

// transportError maps a failure that happened before a status was available
func transportError(ctx context.Context, op Operation, err error) error {
	kind := errors.ErrTransport

	var buildErr *rest.BuildError
	var netErr net.Error
	switch {
	case errors.As(err, &buildErr):
		kind = errors.ErrHTTPRequest
		if errors.Is(err, errors.ErrConfiguration) {
			kind = errors.ErrConfiguration
		}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		kind = errors.ErrTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = errors.ErrTimeout
	}

	return &errors.Error{Kind: kind, Op: op.String(), Err: err}
}

// passthrough reports non-2xx statuses that classify lets through
func passthrough(code int) bool {
	if code >= 200 && code < 300 {
		return false
	}
	return code != http.StatusBadRequest && code != http.StatusUnauthorized && (code < 500 || code > 599)
}
