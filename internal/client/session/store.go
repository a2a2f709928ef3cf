// Package session owns the client's credential lifecycle: login, logout,
// startup restore, token expiry, and persistence. The Store is the single
// writer of AuthState; every other component observes it through Subscribe
// and receives read-only snapshots.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/models"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/repositories/metadata"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/token"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/common"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/dbx"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/logging"
)

// Exchanger performs the remote credential exchange. client.HTTPClient
// satisfies it; tests provide fakes.
type Exchanger interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
}

// Listener receives AuthState snapshots: once immediately on subscription,
// then after every state mutation. Listeners are invoked in insertion order
// while the store's mutation lock is held, so a listener must not call back
// into the Store synchronously; record the snapshot and return.
type Listener = func(models.AuthState)

type subscription struct {
	id uuid.UUID
	fn Listener
}

// Store is the single source of truth for the session. Construct exactly
// one per process at the composition root and share it.
type Store struct {
	mu        sync.Mutex
	state     models.AuthState
	listeners []subscription

	initOnce sync.Once

	db        *sql.DB
	exchanger Exchanger
	log       logging.Logger
}

// New returns a Store in its pre-initialization state: signed out, with
// IsLoading set until Initialize settles.
func New(db *sql.DB, exchanger Exchanger, log logging.Logger) *Store {
	return &Store{
		state:     models.AuthState{IsLoading: true},
		db:        db,
		exchanger: exchanger,
		log:       log,
	}
}

func (s *Store) metaRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Subscribe registers fn and immediately invokes it with the current state.
// The returned function removes the registration; calling it more than once
// is harmless.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	fn(s.state.Clone())

	return func() { s.unsubscribe(id) }
}

func (s *Store) unsubscribe(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.listeners {
		if sub.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// notifyLocked pushes the current state to every listener, in insertion
// order. Callers must hold s.mu, which is what guarantees that delivery for
// one mutation finishes before the next mutation is observed by anyone.
func (s *Store) notifyLocked() {
	snap := s.state.Clone()
	for _, sub := range s.listeners {
		sub.fn(snap)
	}
}

// Initialize restores a persisted session, if there is one worth restoring.
// It runs its body once; later calls are no-ops. It never returns an error:
// on any internal failure it logs and settles signed out.
//
// A race with an early Login is allowed. If a login completes first,
// Initialize leaves the fresh session alone instead of reverting to the
// stale persisted one.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() { s.initialize(ctx) })
}

func (s *Store) initialize(ctx context.Context) {
	repo := s.metaRepo()

	var (
		restored models.AuthState
		ok       bool
		loadErr  string
	)

	tok, err := repo.Get(ctx, common.KeyToken)
	if err != nil {
		s.log.Error(ctx, "reading persisted token", "error", err)
		loadErr = "could not restore session"
	}
	rawUser, uerr := repo.Get(ctx, common.KeyUser)
	if uerr != nil {
		s.log.Error(ctx, "reading persisted user", "error", uerr)
		loadErr = "could not restore session"
	}

	if err == nil && uerr == nil && len(tok) > 0 && len(rawUser) > 0 {
		if token.IsExpired(string(tok)) {
			s.log.Info(ctx, "persisted token expired, clearing session")
		} else {
			var user models.User
			if jerr := json.Unmarshal(rawUser, &user); jerr != nil {
				s.log.Error(ctx, "decoding persisted user", "error", jerr)
				loadErr = "could not restore session"
			} else {
				restored = models.AuthState{User: &user, Token: string(tok), IsAuthenticated: true}
				ok = true
			}
		}
	}

	if !ok {
		// An expired or half-written session must not survive to the next
		// start either.
		if cerr := s.clearPersisted(ctx); cerr != nil {
			s.log.Error(ctx, "clearing persisted session", "error", cerr)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsAuthenticated {
		// A login won the startup race; only settle the loading flag.
		s.state.IsLoading = false
		s.notifyLocked()
		return
	}

	if ok {
		s.state = restored
	} else {
		s.state = models.AuthState{Error: loadErr}
	}
	s.notifyLocked()
}

// Login exchanges the credentials for a session. On success the token, the
// user profile, and the legacy user-id key are persisted before the
// authenticated state is pushed. Credential rejection and transport failure
// surface both through the returned error and through AuthState.Error; the
// store stays signed out in either case.
func (s *Store) Login(ctx context.Context, creds models.Credentials) error {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.Error = ""
	s.notifyLocked()
	s.mu.Unlock()

	res, err := s.exchanger.Login(ctx, creds)
	if err == nil && res.Token == "" {
		err = common.ErrNoTokenInResponse
	}
	if err != nil {
		s.log.Warn(ctx, "login failed", "error", err)
		s.mu.Lock()
		s.state = models.AuthState{Error: err.Error()}
		s.notifyLocked()
		s.mu.Unlock()
		return err
	}

	user := res.User
	if perr := s.persistSession(ctx, res.Token, &user); perr != nil {
		// The session still lives in memory; it just won't survive a
		// restart. Initialize clears partial writes on the next start.
		s.log.Error(ctx, "persisting session", "error", perr)
	}

	s.mu.Lock()
	s.state = models.AuthState{User: &user, Token: res.Token, IsAuthenticated: true}
	s.notifyLocked()
	s.mu.Unlock()
	return nil
}

// persistSession writes all three storage keys in one transaction, so a
// crash cannot leave a token without its user or vice versa.
func (s *Store) persistSession(ctx context.Context, tok string, user *models.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.KeyToken, []byte(tok)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.KeyUser, rawUser); err != nil {
			return err
		}
		return repo.Set(ctx, common.KeyLegacyUserID, []byte(user.UserID))
	})
}

func (s *Store) clearPersisted(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range []string{common.KeyToken, common.KeyUser, common.KeyLegacyUserID} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// Logout clears the persisted credentials and resets the state to signed
// out. Safe to call when already signed out, and safe to call from the HTTP
// layer on a 401: the terminal state is the same either way, even when the
// storage delete fails.
func (s *Store) Logout(ctx context.Context) {
	if err := s.clearPersisted(ctx); err != nil {
		s.log.Error(ctx, "clearing persisted session", "error", err)
	}

	s.mu.Lock()
	s.state = models.AuthState{}
	s.notifyLocked()
	s.mu.Unlock()
}

// State returns a snapshot of the current state.
func (s *Store) State() models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// IsAuthenticated reports whether the live state carries both a user and a
// token. It reads memory, never storage.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.User != nil && s.state.Token != ""
}

// IsTokenValid reports whether the current token exists and has not lapsed.
func (s *Store) IsTokenValid() bool {
	s.mu.Lock()
	tok := s.state.Token
	s.mu.Unlock()
	return tok != "" && !token.IsExpired(tok)
}

// AuthHeader returns the header set outbound requests should carry: empty
// when there is no valid token, otherwise a single bearer entry. A stale or
// expired token is never returned.
func (s *Store) AuthHeader() http.Header {
	s.mu.Lock()
	tok := s.state.Token
	s.mu.Unlock()

	h := http.Header{}
	if tok == "" || token.IsExpired(tok) {
		return h
	}
	h.Set(common.AuthHeaderName, "Bearer "+tok)
	return h
}
