package virtuoso

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/saturnines/nexus-sparql/pkg/errors"
)

// Endpoints holds the base URI and the read and update paths of a store
type Endpoints struct {
	Base       string // scheme://host[:port]
	ReadPath   string
	UpdatePath string // empty when no update endpoint is configured
}

// NewEndpoints derives the base URI and paths from the read endpoint URI and
// the optional update endpoint URI. The update endpoint must live on the same
// scheme and host as the read endpoint.
func NewEndpoints(endpoint, updateEndpoint string) (Endpoints, error) {
	u, err := parseEndpoint("endpoint", endpoint)
	if err != nil {
		return Endpoints{}, err
	}

	e := Endpoints{
		Base:     u.Scheme + "://" + u.Host,
		ReadPath: u.RequestURI(),
	}

	if updateEndpoint == "" {
		return e, nil
	}

	uu, err := parseEndpoint("update endpoint", updateEndpoint)
	if err != nil {
		return Endpoints{}, err
	}
	if origin(uu) != origin(u) {
		return Endpoints{}, errors.WrapError(
			fmt.Errorf("update endpoint %s://%s is not on %s", uu.Scheme, uu.Host, e.Base),
			errors.ErrConfiguration,
			"resolve endpoints",
		)
	}
	e.UpdatePath = uu.RequestURI()

	return e, nil
}

func parseEndpoint(name, raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		err = fmt.Errorf("%q is not an absolute URI", raw)
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "parse "+name)
	}
	return u, nil
}

var defaultPorts = map[string]string{"http": "80", "https": "443"}

// origin identifies the server a URL points at. An explicit default port
// names the same server as an omitted one.
func origin(u *url.URL) string {
	port := u.Port()
	if port == "" {
		port = defaultPorts[u.Scheme]
	}
	return u.Scheme + "://" + net.JoinHostPort(strings.ToLower(u.Hostname()), port)
}

// HasUpdate reports whether a dedicated update endpoint is configured
func (e Endpoints) HasUpdate() bool {
	return e.UpdatePath != ""
}

// WriteTarget is the path updates are posted to
func (e Endpoints) WriteTarget() string {
	if e.HasUpdate() {
		return e.UpdatePath
	}
	return e.ReadPath
}

// ReadTarget is the path queries are sent to. The update endpoint is preferred
// when present so queries can reach graphs that need credentials.
func (e Endpoints) ReadTarget() string {
	if e.HasUpdate() {
		return e.UpdatePath
	}
	return e.ReadPath
}

// URL joins the base URI and path
func (e Endpoints) URL(path string) string {
	return e.Base + path
}
