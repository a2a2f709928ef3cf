package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/client"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/config"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/repositories/metadata"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/session"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/state"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/userctx"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the composition root of the client. It owns the single session
// store instance and the two adapters that observe it.
type App struct {
	config *config.Config
	db     *sql.DB
	api    client.Client
	// authed is the HTTP surface for authenticated backend calls; it reads
	// the bearer header from the session per request.
	authed  *client.AuthedClient
	session *session.Store
	state   *state.Store
	adapter *state.Adapter
	users   *userctx.Provider
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		db.Close()
		return nil, err
	}

	sess := session.New(db, apiClient, log)
	st := state.NewStore()

	return &App{
		config:  c,
		db:      db,
		api:     apiClient,
		authed:  client.NewAuthedClient(nil, sess),
		session: sess,
		state:   st,
		adapter: state.Bind(sess, st),
		users:   userctx.NewProvider(metadata.NewSQLiteRepository(db), sess, log),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Close tears the app down in dependency order: observers first, then the
// remote client, then the database.
func (a *App) Close() {
	if a.users != nil {
		a.users.Close()
	}
	if a.adapter != nil {
		a.adapter.Close()
	}
	if a.api != nil {
		_ = a.api.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// Run restores the session in the background and hands control to the REPL.
// The restore deliberately races user-driven commands: if the user signs in
// before it settles, the session store keeps the fresh login.
func (a *App) Run(ctx context.Context) {
	go func() {
		a.adapter.InitializeAuth(ctx)
		a.users.Resolve(ctx)
	}()

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))

	a.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status renders the prompt suffix from the reducer slice, so the prompt
// shows exactly what any other UI consumer would see.
func (a *App) status() string {
	st := a.state.State()
	switch {
	case st.IsLoading:
		return "(...)"
	case st.IsAuthenticated:
		return "(" + st.User.Email + ")"
	default:
		return ""
	}
}
