package client

import (
	"net/http"

	"github.com/dmitrijs2005/runnio/internal/common"
	"github.com/google/uuid"
)

// newRequestID is a test seam.
var newRequestID = func() string { return uuid.NewString() }

// authTransport stamps outbound requests with the current bearer token and
// a request ID. The token is read per request, so SetAuthHeader takes effect
// on the very next call.
type authTransport struct {
	base  http.RoundTripper
	token func() string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if tok := t.token(); tok != "" {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	} else {
		r.Header.Del(common.AuthorizationHeaderName)
	}

	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, newRequestID())
	}

	return t.base.RoundTrip(r)
}
