package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/auth"
	"github.com/taskflowhq/taskflow/internal/config"
	"github.com/taskflowhq/taskflow/internal/errors"
	"github.com/taskflowhq/taskflow/internal/rbac"
	"github.com/taskflowhq/taskflow/internal/session"
)

// app wires the long-lived objects every command shares. Built once per
// invocation in the root PersistentPreRunE.
type app struct {
	cfg    *config.Config
	client *api.Client
	store  *session.Store
	guard  *rbac.Guard

	initOnce sync.Once
	initErr  error
}

var (
	appMu      sync.Mutex
	currentApp *app
)

func setApp(a *app) {
	appMu.Lock()
	currentApp = a
	appMu.Unlock()
}

func getApp() *app {
	appMu.Lock()
	defer appMu.Unlock()
	return currentApp
}

func newApp(cfg *config.Config) *app {
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout())

	var opts []auth.Option
	if cfg.Demo.Enabled {
		opts = append(opts, auth.WithDemoDirectory(auth.NewDemoDirectory()))
	}
	flow := auth.NewFlow(client, opts...)

	store := session.NewStore(cfg.StateDir, client, flow)
	store.SetOnLogout(func() {
		fmt.Fprintln(os.Stderr, "Session ended. Use 'taskflow auth login' to sign in again.")
	})

	return &app{
		cfg:    cfg,
		client: client,
		store:  store,
		guard:  rbac.NewGuard(rbac.DefaultRouteTable(cfg.Access.DefaultAllow())),
	}
}

// initSession restores persisted state exactly once per invocation.
func (a *app) initSession(ctx context.Context) error {
	a.initOnce.Do(func() {
		a.initErr = a.store.Initialize(ctx)
	})
	return a.initErr
}

// requireSession returns the current session or a not-logged-in error.
func (a *app) requireSession(ctx context.Context) (session.Session, error) {
	if err := a.initSession(ctx); err != nil {
		return session.Session{}, err
	}
	sess := a.store.Current()
	if !sess.Authenticated {
		return session.Session{}, errors.NewNotLoggedInError()
	}
	return sess, nil
}

// requireRoute is requireSession plus a route-access check. Commands map to
// the routes of the web app they mirror.
func (a *app) requireRoute(ctx context.Context, route string) (session.Session, error) {
	sess, err := a.requireSession(ctx)
	if err != nil {
		return session.Session{}, err
	}
	if !a.guard.CanAccessRoute(sess.Subject(), route) {
		return session.Session{}, errors.NewAccessDeniedError(route)
	}
	return sess, nil
}
