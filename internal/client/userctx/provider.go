// Package userctx exposes one cross-cutting value to deeply nested UI code:
// the current user's identifier. It is the second, independent consumer of
// the session store, with its own fallback lookup for installs that predate
// the session.user blob.
package userctx

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/models"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/repositories/metadata"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/common"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/logging"
)

// SessionSource is the slice of the session store the provider needs.
type SessionSource interface {
	State() models.AuthState
	Subscribe(fn func(models.AuthState)) func()
}

// Provider resolves and tracks the current user ID.
//
// At mount time the provider may run before the session store has finished
// initializing, so Resolve consults a fallback chain: the legacy userId key,
// then the UserID inside the persisted profile blob, then the live session.
// Once any settled session push has been observed, the live value wins
// forever; a fallback read can never resurface an identifier after logout.
type Provider struct {
	mu     sync.Mutex
	userID string
	live   bool

	meta  metadata.Repository
	sess  SessionSource
	log   logging.Logger
	unsub func()
}

func NewProvider(meta metadata.Repository, sess SessionSource, log logging.Logger) *Provider {
	return &Provider{meta: meta, sess: sess, log: log}
}

// Resolve performs the one-time fallback lookup and subscribes to the
// session store. Call once at mount.
func (p *Provider) Resolve(ctx context.Context) {
	p.unsub = p.sess.Subscribe(p.apply)

	id := p.lookupFallback(ctx)
	if id == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		// A settled push already arrived; the fallback result is stale by
		// definition.
		return
	}
	p.userID = id
}

// apply consumes a session push. Pushes with IsLoading set are transitional
// (initialization or an in-flight login) and do not yet outrank the
// fallback; an authenticated push or a settled signed-out push does.
func (p *Provider) apply(st models.AuthState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case st.IsAuthenticated:
		p.userID = st.User.UserID
		p.live = true
	case !st.IsLoading:
		p.userID = ""
		p.live = true
	}
}

func (p *Provider) lookupFallback(ctx context.Context) string {
	if raw, err := p.meta.Get(ctx, common.KeyLegacyUserID); err != nil {
		p.log.Warn(ctx, "reading legacy user id", "error", err)
	} else if len(raw) > 0 {
		return string(raw)
	}

	if raw, err := p.meta.Get(ctx, common.KeyUser); err != nil {
		p.log.Warn(ctx, "reading persisted user", "error", err)
	} else if len(raw) > 0 {
		var user models.User
		if jerr := json.Unmarshal(raw, &user); jerr != nil {
			p.log.Warn(ctx, "decoding persisted user", "error", jerr)
		} else if user.UserID != "" {
			return user.UserID
		}
	}

	if u := p.sess.State().User; u != nil {
		return u.UserID
	}
	return ""
}

// UserID returns the current identifier; ok is false while no user is known.
func (p *Provider) UserID() (id string, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userID, p.userID != ""
}

// Close detaches the provider from the session store.
func (p *Provider) Close() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
}
