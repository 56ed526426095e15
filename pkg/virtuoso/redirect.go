package virtuoso

import (
	"fmt"
	"net/http"
)

const maxRedirects = 10

// keepMethod is a CheckRedirect policy that follows redirects without
// downgrading the request. net/http turns a POST answered by 301, 302 or 303
// into a bodiless GET, which would drop an update; here the original method
// and form body are restored on every hop.
func keepMethod(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}

	orig := via[0]
	if req.Method == orig.Method {
		return nil
	}
	if orig.GetBody == nil {
		// nothing to replay; hand the 3xx back to the classifier
		return http.ErrUseLastResponse
	}

	body, err := orig.GetBody()
	if err != nil {
		return err
	}
	req.Method = orig.Method
	req.Body = body
	req.GetBody = orig.GetBody
	req.ContentLength = orig.ContentLength
	if ct := orig.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	return nil
}

// withRedirectPolicy returns a copy of client that follows redirects with
// keepMethod, unless the caller installed a policy of their own
func withRedirectPolicy(client *http.Client) *http.Client {
	c := *client
	if c.CheckRedirect == nil {
		c.CheckRedirect = keepMethod
	}
	return &c
}
