package state

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/models"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/session"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/logging"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return db
}

type fakeExchanger struct {
	Ret *models.LoginResult
	Err error
}

func (f *fakeExchanger) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	return f.Ret, f.Err
}

func validToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": float64(time.Now().Add(time.Hour).Unix()),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func newSession(t *testing.T, ex session.Exchanger) *session.Store {
	t.Helper()
	return session.New(setupDB(t), ex, logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestBind_SeedsSliceFromSession(t *testing.T) {
	sess := newSession(t, &fakeExchanger{})
	st := NewStore()

	Bind(sess, st)

	assert.Equal(t, sess.State(), st.State(), "slice agrees with the session right after Bind")
}

func TestAdapter_LoginFulfilled_SliceConverges(t *testing.T) {
	tok := validToken(t)
	sess := newSession(t, &fakeExchanger{Ret: &models.LoginResult{
		User:  models.User{UserID: "u-3", Email: "a@b.com"},
		Token: tok,
	}})
	st := NewStore()
	a := Bind(sess, st)

	require.NoError(t, a.LoginUser(context.Background(), models.Credentials{Email: "a@b.com", Password: "secret1"}))

	got := st.State()
	assert.Equal(t, sess.State(), got, "slice is structurally equal to the session state")
	assert.True(t, got.IsAuthenticated)
	assert.Equal(t, tok, got.Token)
}

func TestAdapter_LoginRejected(t *testing.T) {
	sess := newSession(t, &fakeExchanger{Err: errors.New("invalid email or password")})
	st := NewStore()
	a := Bind(sess, st)

	err := a.LoginUser(context.Background(), models.Credentials{})
	require.Error(t, err)

	got := st.State()
	assert.False(t, got.IsAuthenticated)
	assert.False(t, got.IsLoading)
	assert.Equal(t, "invalid email or password", got.Error)
	assert.Equal(t, sess.State(), got)
}

func TestAdapter_InitializeAndLogout(t *testing.T) {
	tok := validToken(t)
	sess := newSession(t, &fakeExchanger{Ret: &models.LoginResult{User: models.User{UserID: "u-3"}, Token: tok}})
	st := NewStore()
	a := Bind(sess, st)

	a.InitializeAuth(context.Background())
	assert.Equal(t, sess.State(), st.State())
	assert.False(t, st.State().IsLoading)

	require.NoError(t, a.LoginUser(context.Background(), models.Credentials{}))
	a.LogoutUser(context.Background())

	got := st.State()
	assert.False(t, got.IsAuthenticated)
	assert.Nil(t, got.User)
	assert.Equal(t, sess.State(), got)
}

func TestAdapter_InitFulfilledDoesNotOverwriteFreshLogin(t *testing.T) {
	tok := validToken(t)
	sess := newSession(t, &fakeExchanger{Ret: &models.LoginResult{User: models.User{UserID: "u-3"}, Token: tok}})
	st := NewStore()
	a := Bind(sess, st)

	require.NoError(t, a.LoginUser(context.Background(), models.Credentials{}))

	// A restore that settles after the login must not displace it.
	a.InitializeAuth(context.Background())

	got := st.State()
	assert.True(t, got.IsAuthenticated)
	assert.Equal(t, sess.State(), got)
}

func TestReduce_InitFulfilledOnlySettlesLoading(t *testing.T) {
	st := NewStore()
	st.Dispatch(Action{Type: ActionSyncAuthState, State: AuthSlice{
		User:            &models.User{UserID: "u-3"},
		Token:           "tok",
		IsAuthenticated: true,
	}})

	st.Dispatch(Action{Type: ActionInitFulfilled})

	got := st.State()
	assert.True(t, got.IsAuthenticated, "fulfilled carries no snapshot and keeps the synced state")
	assert.False(t, got.IsLoading)
}

func TestAdapter_EveryPushMirrored(t *testing.T) {
	tok := validToken(t)
	sess := newSession(t, &fakeExchanger{Ret: &models.LoginResult{User: models.User{UserID: "u-3"}, Token: tok}})
	st := NewStore()
	Bind(sess, st)

	var seen []AuthSlice
	st.Subscribe(func(s AuthSlice) { seen = append(seen, s) })

	// Mutate the session directly, without going through the adapter's
	// async helpers: the sync subscription alone must keep the slice current.
	require.NoError(t, sess.Login(context.Background(), models.Credentials{}))
	assert.Equal(t, sess.State(), st.State())

	sess.Logout(context.Background())
	assert.Equal(t, sess.State(), st.State())
	assert.NotEmpty(t, seen)
}

func TestAdapter_CloseStopsMirroring(t *testing.T) {
	tok := validToken(t)
	sess := newSession(t, &fakeExchanger{Ret: &models.LoginResult{User: models.User{UserID: "u-3"}, Token: tok}})
	st := NewStore()
	a := Bind(sess, st)

	a.Close()
	a.Close() // idempotent

	require.NoError(t, sess.Login(context.Background(), models.Credentials{}))
	assert.False(t, st.State().IsAuthenticated, "detached slice no longer follows the session")
}

func TestReduce_UnknownActionIsNoOp(t *testing.T) {
	st := NewStore()
	before := st.State()
	st.Dispatch(Action{Type: ActionType("auth/unknown")})
	assert.Equal(t, before, st.State())
}
