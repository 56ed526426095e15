// Package virtuoso dispatches SPARQL operations to a Virtuoso-style store with
// separate query and update endpoints.
package virtuoso

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/saturnines/nexus-sparql/pkg/auth"
	"github.com/saturnines/nexus-sparql/pkg/config"
	"github.com/saturnines/nexus-sparql/pkg/errors"
	"github.com/saturnines/nexus-sparql/pkg/results"
	"github.com/saturnines/nexus-sparql/pkg/transport/rest"
)

// Client talks to a Virtuoso-style SPARQL store. It holds only configuration
// fixed at construction and is safe for concurrent use.
type Client struct {
	endpoints Endpoints
	auth      auth.Handler
	timeout   time.Duration
	plain     rest.HTTPDoer // unauthenticated reads
	authed    rest.HTTPDoer // everything that carries credentials
	parser    results.Parser
	logger    log.FieldLogger
	table     map[Operation]dispatchFunc
}

// Outcome is the normalized result of one operation.
// Reads set Result; writes set Ack, which stays nil when the store sent no
// acknowledgement text.
type Outcome struct {
	Op     Operation
	Result *results.Result
	Ack    *string
}

type dispatchFunc func(ctx context.Context, op Operation, query string, params Params) (*Outcome, error)

type clientOptions struct {
	updateEndpoint string
	creds          auth.Credentials
	authMethod     config.AuthMethod
	timeout        time.Duration
	httpClient     *http.Client
	parser         results.Parser
	logger         log.FieldLogger
}

// ClientOption defines config for Client
type ClientOption func(*clientOptions)

// WithUpdateEndpoint sets the update (SPARUL) endpoint URI
func WithUpdateEndpoint(uri string) ClientOption {
	return func(o *clientOptions) {
		o.updateEndpoint = uri
	}
}

// WithCredentials sets the username and password
func WithCredentials(username, password string) ClientOption {
	return func(o *clientOptions) {
		o.creds = auth.Credentials{Username: username, Password: password}
	}
}

// WithAuthMethod selects none, basic or digest authentication
func WithAuthMethod(method config.AuthMethod) ClientOption {
	return func(o *clientOptions) {
		o.authMethod = method
	}
}

// WithTimeout sets the hard deadline for each request
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient specifies the underlying http.Client used as transport.
// The client is copied, never modified. Without a CheckRedirect of its own,
// redirects are followed keeping the request method and body.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithResultsParser replaces the parser used for read responses
func WithResultsParser(parser results.Parser) ClientOption {
	return func(o *clientOptions) {
		o.parser = parser
	}
}

// WithLogger sets the logger; defaults to the logrus standard logger
func WithLogger(logger log.FieldLogger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a client for the read endpoint URI with the given options
func NewClient(endpoint string, options ...ClientOption) (*Client, error) {
	o := clientOptions{
		authMethod: config.DefaultAuthMethod,
		timeout:    config.DefaultTimeout * time.Second,
	}
	for _, option := range options {
		option(&o)
	}

	if o.timeout <= 0 {
		return nil, errors.WrapError(
			fmt.Errorf("timeout must be positive, got %s", o.timeout),
			errors.ErrConfiguration,
			"create client",
		)
	}

	endpoints, err := NewEndpoints(endpoint, o.updateEndpoint)
	if err != nil {
		return nil, err
	}

	handler, err := auth.CreateHandler(o.authMethod, o.creds)
	if err != nil {
		return nil, err
	}

	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}
	if o.parser == nil {
		o.parser = results.NewParser()
	}
	if o.logger == nil {
		o.logger = log.StandardLogger()
	}

	plain := withRedirectPolicy(o.httpClient)
	authed := withRedirectPolicy(o.httpClient)
	authed.Transport = auth.Transport(handler, o.httpClient.Transport)

	c := &Client{
		endpoints: endpoints,
		auth:      handler,
		timeout:   o.timeout,
		plain:     plain,
		authed:    authed,
		parser:    o.parser,
		logger:    o.logger,
	}

	c.table = make(map[Operation]dispatchFunc, len(ReadOperations)+len(WriteOperations))
	for _, op := range ReadOperations {
		c.table[op] = c.executeRead
	}
	for _, op := range WriteOperations {
		c.table[op] = c.executeWrite
	}

	return c, nil
}

// NewClientFromConfig creates a client from a loaded connection config.
// Options are applied after the config values, so they take precedence.
func NewClientFromConfig(conn *config.Connection, options ...ClientOption) (*Client, error) {
	base := []ClientOption{
		WithUpdateEndpoint(conn.UpdateEndpoint),
		WithCredentials(conn.Username, conn.Password),
	}
	if conn.AuthMethod != "" {
		base = append(base, WithAuthMethod(conn.AuthMethod))
	}
	if conn.Timeout != 0 {
		base = append(base, WithTimeout(time.Duration(conn.Timeout)*time.Second))
	}
	if conn.Name != "" {
		base = append(base, WithLogger(log.WithField("connection", conn.Name)))
	}

	return NewClient(conn.Endpoint, append(base, options...)...)
}

// Endpoints returns the resolved endpoints
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// AuthMethod returns the configured auth method
func (c *Client) AuthMethod() config.AuthMethod {
	return c.auth.Method()
}

// Timeout returns the per-request deadline
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Do runs any operation through the dispatch table
func (c *Client) Do(ctx context.Context, op Operation, query string, params Params) (*Outcome, error) {
	dispatch, ok := c.table[op]
	if !ok {
		return nil, &errors.Error{
			Kind: errors.ErrHTTPRequest,
			Op:   op.String(),
			Err:  fmt.Errorf("unknown operation"),
		}
	}
	return dispatch(ctx, op, query, params)
}

func (c *Client) read(ctx context.Context, op Operation, query string, params []Params) (*results.Result, error) {
	out, err := c.Do(ctx, op, query, mergeParams(params))
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (c *Client) write(ctx context.Context, op Operation, query string, params []Params) (*string, error) {
	out, err := c.Do(ctx, op, query, mergeParams(params))
	if err != nil {
		return nil, err
	}
	return out.Ack, nil
}

func mergeParams(params []Params) Params {
	switch len(params) {
	case 0:
		return nil
	case 1:
		return params[0]
	}
	merged := Params{}
	for _, p := range params {
		for k, v := range p {
			merged[k] = v
		}
	}
	return merged
}

// Query runs a generic query form
func (c *Client) Query(ctx context.Context, query string, params ...Params) (*results.Result, error) {
	return c.read(ctx, Query, query, params)
}

// Select runs a SELECT query
func (c *Client) Select(ctx context.Context, query string, params ...Params) (*results.Result, error) {
	return c.read(ctx, Select, query, params)
}

// Ask runs an ASK query; the answer is in Result.Boolean
func (c *Client) Ask(ctx context.Context, query string, params ...Params) (*results.Result, error) {
	return c.read(ctx, Ask, query, params)
}

// Construct runs a CONSTRUCT query
func (c *Client) Construct(ctx context.Context, query string, params ...Params) (*results.Result, error) {
	return c.read(ctx, Construct, query, params)
}

// Describe runs a DESCRIBE query
func (c *Client) Describe(ctx context.Context, query string, params ...Params) (*results.Result, error) {
	return c.read(ctx, Describe, query, params)
}

// Insert runs an INSERT ... WHERE update
func (c *Client) Insert(ctx context.Context, update string, params ...Params) (*string, error) {
	return c.write(ctx, Insert, update, params)
}

// InsertData runs an INSERT DATA update
func (c *Client) InsertData(ctx context.Context, update string, params ...Params) (*string, error) {
	return c.write(ctx, InsertData, update, params)
}

// Update runs a generic update request
func (c *Client) Update(ctx context.Context, update string, params ...Params) (*string, error) {
	return c.write(ctx, Update, update, params)
}

// Delete runs a DELETE ... WHERE update
func (c *Client) Delete(ctx context.Context, update string, params ...Params) (*string, error) {
	return c.write(ctx, Delete, update, params)
}

// DeleteData runs a DELETE DATA update
func (c *Client) DeleteData(ctx context.Context, update string, params ...Params) (*string, error) {
	return c.write(ctx, DeleteData, update, params)
}

// Create runs a CREATE GRAPH update
func (c *Client) Create(ctx context.Context, update string, params ...Params) (*string, error) {
	return c.write(ctx, Create, update, params)
}

// Drop runs a DROP GRAPH update
func (c *Client) Drop(ctx context.Context, update string, params ...Params) (*string, error) {
	return c.write(ctx, Drop, update, params)
}

// Clear runs a CLEAR GRAPH update
func (c *Client) Clear(ctx context.Context, update string, params ...Params) (*string, error) {
	return c.write(ctx, Clear, update, params)
}
