package state

import (
	"context"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/models"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/session"
)

// Adapter bridges session store pushes into the reducer store and exposes
// the three async auth flows the UI dispatches. Success and failure of the
// async actions come from the session store's own result, never from an
// independent reading of the response.
type Adapter struct {
	session *session.Store
	state   *Store
	unsub   func()
}

// Bind subscribes to the session store and mirrors every push into the
// reducer slice via ActionSyncAuthState. The subscription's immediate
// initial push seeds the slice, so after Bind the two stores already agree.
func Bind(sess *session.Store, st *Store) *Adapter {
	a := &Adapter{session: sess, state: st}
	a.unsub = sess.Subscribe(func(snap models.AuthState) {
		st.Dispatch(Action{Type: ActionSyncAuthState, State: snap})
	})
	return a
}

// Close detaches the adapter from the session store.
func (a *Adapter) Close() {
	if a.unsub != nil {
		a.unsub()
		a.unsub = nil
	}
}

// InitializeAuth runs the one-time session restore. The fulfilled action
// carries no snapshot: the restore's result already arrived through the
// sync subscription, and re-reading the session here could overwrite a
// login that settled in between.
func (a *Adapter) InitializeAuth(ctx context.Context) {
	a.state.Dispatch(Action{Type: ActionInitPending})
	a.session.Initialize(ctx)
	a.state.Dispatch(Action{Type: ActionInitFulfilled})
}

// LoginUser performs the credential exchange through the session store and
// settles the slice according to its result.
func (a *Adapter) LoginUser(ctx context.Context, creds models.Credentials) error {
	a.state.Dispatch(Action{Type: ActionLoginPending})
	if err := a.session.Login(ctx, creds); err != nil {
		a.state.Dispatch(Action{Type: ActionLoginRejected, Err: err.Error()})
		return err
	}
	a.state.Dispatch(Action{Type: ActionLoginFulfilled, State: a.session.State()})
	return nil
}

// LogoutUser signs the session out. Logout cannot fail from the UI's point
// of view, so the action always fulfills.
func (a *Adapter) LogoutUser(ctx context.Context) {
	a.session.Logout(ctx)
	a.state.Dispatch(Action{Type: ActionLogoutFulfilled, State: a.session.State()})
}
