package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/common"
)

// fakeSession satisfies Session with a fixed header and records logouts.
type fakeSession struct {
	Header      http.Header
	LogoutCalls int
}

func (f *fakeSession) AuthHeader() http.Header    { return f.Header }
func (f *fakeSession) Logout(ctx context.Context) { f.LogoutCalls++ }

func TestAuthedClient_AttachesBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthHeaderName)
	}))
	t.Cleanup(srv.Close)

	h := http.Header{}
	h.Set(common.AuthHeaderName, "Bearer tok-1")
	sess := &fakeSession{Header: h}
	c := NewAuthedClient(nil, sess)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/participants", nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Zero(t, sess.LogoutCalls)
}

func TestAuthedClient_NoHeaderWhenSignedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthHeaderName)
	}))
	t.Cleanup(srv.Close)

	sess := &fakeSession{Header: http.Header{}}
	c := NewAuthedClient(srv.Client(), sess)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/participants", nil)
	require.NoError(t, err)
	resp, err := c.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestAuthedClient_401SignsSessionOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	h := http.Header{}
	h.Set(common.AuthHeaderName, "Bearer tok-1")
	sess := &fakeSession{Header: h}
	c := NewAuthedClient(nil, sess)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/participants", nil)
	require.NoError(t, err)
	_, err = c.Do(req)

	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 1, sess.LogoutCalls, "the HTTP layer drives the logout, not the store")
}
