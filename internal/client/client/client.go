package client

import (
	"context"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/models"
)

// Client is the remote API surface the session layer depends on. The only
// unauthenticated call is the sign-in exchange; everything else goes through
// Do with whatever bearer header the session store currently produces.
type Client interface {
	// Login exchanges credentials for a token and the signed-in user's
	// profile. A response without a usable token is an error even when the
	// HTTP status reports success.
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	Close() error
}
