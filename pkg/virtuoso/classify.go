package virtuoso

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/saturnines/nexus-sparql/pkg/errors"
	"github.com/saturnines/nexus-sparql/pkg/transport/rest"
)

// classify maps the status code to an error outcome. Statuses it does not
// name, including 3xx and most 4xx, fall through to the normalizer.
func classify(op Operation, resp *rest.Response) error {
	switch code := resp.StatusCode; {
	case code == http.StatusUnauthorized:
		return &errors.Error{Kind: errors.ErrNotAuthorized, Op: op.String(), StatusCode: code, Body: resp.Body}
	case code == http.StatusBadRequest:
		return &errors.Error{
			Kind:       errors.ErrMalformedQuery,
			Op:         op.String(),
			StatusCode: code,
			Body:       resp.Body,
			Payload:    parsedBody(resp),
		}
	case code >= 500 && code <= 599:
		return &errors.Error{Kind: errors.ErrServerError, Op: op.String(), StatusCode: code, Body: resp.Body}
	}
	return nil
}

// parsedBody decodes JSON bodies and returns everything else as text
func parsedBody(resp *rest.Response) interface{} {
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return ""
	}

	mediaType, _, _ := mime.ParseMediaType(resp.ContentType())
	isJSON := mediaType == "application/json" || mediaType == "application/sparql-results+json" ||
		body[0] == '{' || body[0] == '['

	if isJSON {
		var v interface{}
		if err := json.Unmarshal(body, &v); err == nil {
			return v
		}
	}
	return string(resp.Body)
}
