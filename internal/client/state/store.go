// Package state mirrors the session store into a reducer-managed slice of
// application state. The slice is a pure projection of the latest pushed
// AuthState: the reducer holds no logic of its own that could diverge from
// the source of truth.
package state

import (
	"sync"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/models"
)

type ActionType string

const (
	// ActionSyncAuthState replaces the auth slice with the snapshot the
	// session store just pushed.
	ActionSyncAuthState ActionType = "auth/syncAuthState"

	ActionInitPending ActionType = "auth/initialize/pending"

	// ActionInitFulfilled carries no snapshot; the restored state arrives
	// through ActionSyncAuthState, and the fulfilled action only settles
	// the loading flag.
	ActionInitFulfilled ActionType = "auth/initialize/fulfilled"

	ActionLoginPending   ActionType = "auth/login/pending"
	ActionLoginFulfilled ActionType = "auth/login/fulfilled"
	ActionLoginRejected  ActionType = "auth/login/rejected"

	ActionLogoutFulfilled ActionType = "auth/logout/fulfilled"
)

// Action is a dispatched state transition. State carries the snapshot for
// sync/fulfilled actions; Err carries the failure message for rejections.
type Action struct {
	Type  ActionType
	State models.AuthState
	Err   string
}

// AuthSlice is the reducer's auth slice. It is structurally identical to
// the canonical AuthState by construction.
type AuthSlice = models.AuthState

func reduce(s AuthSlice, a Action) AuthSlice {
	switch a.Type {
	case ActionSyncAuthState, ActionLoginFulfilled, ActionLogoutFulfilled:
		return a.State
	case ActionInitPending, ActionLoginPending:
		s.IsLoading = true
		s.Error = ""
		return s
	case ActionInitFulfilled:
		s.IsLoading = false
		return s
	case ActionLoginRejected:
		s.IsLoading = false
		s.User = nil
		s.Token = ""
		s.IsAuthenticated = false
		s.Error = a.Err
		return s
	default:
		return s
	}
}

// Store is a minimal reducer-based state container.
type Store struct {
	mu    sync.Mutex
	slice AuthSlice
	subs  []func(AuthSlice)
}

func NewStore() *Store {
	return &Store{slice: AuthSlice{IsLoading: true}}
}

// Dispatch runs the action through the reducer and notifies subscribers
// when the slice changed.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.slice = reduce(s.slice, a)
	snap := s.slice.Clone()
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// State returns a snapshot of the auth slice.
func (s *Store) State() AuthSlice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slice.Clone()
}

// Subscribe registers a UI-facing callback invoked after every dispatch.
func (s *Store) Subscribe(fn func(AuthSlice)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
