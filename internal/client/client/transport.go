package client

import (
	"context"
	"net/http"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/common"
)

// Session is the slice of the session store this transport needs: the
// current bearer header for outbound requests, and logout for when the
// server reports the session stale.
type Session interface {
	AuthHeader() http.Header
	Logout(ctx context.Context)
}

// AuthedClient decorates an *http.Client so that every outbound request
// carries whatever bearer header the session currently produces. A 401
// response signs the session out before surfacing common.ErrUnauthorized;
// the session store itself never polls for expiry.
type AuthedClient struct {
	http    *http.Client
	session Session
}

func NewAuthedClient(h *http.Client, session Session) *AuthedClient {
	if h == nil {
		h = &http.Client{}
	}
	return &AuthedClient{http: h, session: session}
}

// Do sends the request with the current auth header attached. The header is
// read per request, so a token that expired since the last call is simply
// not sent.
func (c *AuthedClient) Do(req *http.Request) (*http.Response, error) {
	for k, vv := range c.session.AuthHeader() {
		for _, v := range vv {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.session.Logout(req.Context())
		return nil, common.ErrUnauthorized
	}
	return resp, nil
}
