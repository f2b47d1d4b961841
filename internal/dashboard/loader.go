package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/log"
	"github.com/taskflowhq/taskflow/internal/rbac"
	"github.com/taskflowhq/taskflow/internal/session"
)

// Fetcher is the backend surface the loader needs.
type Fetcher interface {
	ListTasks(ctx context.Context, filter api.TaskFilter) ([]api.Task, error)
	MyTasks(ctx context.Context, status api.TaskStatus) ([]api.Task, error)
	ListUsers(ctx context.Context, opts api.ListUsersOptions) ([]api.User, error)
	ListCompanies(ctx context.Context) ([]api.Company, error)
	ListNotifications(ctx context.Context, unreadOnly bool) ([]api.Notification, error)
}

// LoadErrors records which collections failed to fetch. Collections that
// did resolve are still usable; the caller decides whether to render a
// partial dashboard or a retry prompt.
type LoadErrors struct {
	Tasks         error
	Users         error
	Companies     error
	Notifications error
}

// Any reports whether at least one fetch failed.
func (e LoadErrors) Any() bool {
	return e.Tasks != nil || e.Users != nil || e.Companies != nil || e.Notifications != nil
}

// First returns one representative error for display.
func (e LoadErrors) First() error {
	for _, err := range []error{e.Tasks, e.Users, e.Companies, e.Notifications} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Loader fetches the dashboard's input collections concurrently.
type Loader struct {
	fetcher Fetcher
	logger  *log.Logger
}

// NewLoader creates a loader over the given backend client.
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{
		fetcher: fetcher,
		logger:  log.DefaultLogger().With("component", "dashboard"),
	}
}

// Load fetches every collection the session's role can see. All fetches run
// to completion regardless of individual failures; there is no automatic
// retry — the caller re-invokes Load on the user's retry action.
//
// Demo sessions hold no token, so nothing is fetched and everything stays
// empty rather than producing four failed calls.
func (l *Loader) Load(ctx context.Context, sess session.Session) (Collections, LoadErrors) {
	var c Collections
	var errs LoadErrors

	if !sess.Authenticated || sess.Demo {
		return c, errs
	}

	g := new(errgroup.Group)

	g.Go(func() error {
		var err error
		if sess.Role == rbac.RoleUser {
			c.Tasks, err = l.fetcher.MyTasks(ctx, "")
		} else {
			c.Tasks, err = l.fetcher.ListTasks(ctx, api.TaskFilter{})
		}
		errs.Tasks = err
		return nil
	})

	if sess.Role == rbac.RoleSuperAdmin || sess.Role == rbac.RoleAdmin {
		g.Go(func() error {
			c.Users, errs.Users = l.fetcher.ListUsers(ctx, api.ListUsersOptions{})
			return nil
		})
	}

	if sess.Role == rbac.RoleSuperAdmin {
		g.Go(func() error {
			c.Companies, errs.Companies = l.fetcher.ListCompanies(ctx)
			return nil
		})
	}

	g.Go(func() error {
		c.Notifications, errs.Notifications = l.fetcher.ListNotifications(ctx, false)
		return nil
	})

	// Goroutines report through errs, not return values, so Wait never
	// short-circuits and every collection settles.
	_ = g.Wait()

	if errs.Any() {
		l.logger.Warn("dashboard load completed with failures",
			"tasks_failed", errs.Tasks != nil,
			"users_failed", errs.Users != nil,
			"companies_failed", errs.Companies != nil,
			"notifications_failed", errs.Notifications != nil,
		)
	}

	return c, errs
}
