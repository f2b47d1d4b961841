package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/errors"
	"github.com/taskflowhq/taskflow/internal/rbac"
	"github.com/taskflowhq/taskflow/internal/session"
)

type fakeFetcher struct {
	tasks            []api.Task
	tasksErr         error
	myTasks          []api.Task
	users            []api.User
	usersErr         error
	companies        []api.Company
	companiesErr     error
	notifications    []api.Notification
	notificationsErr error

	listTasksCalls int
	myTasksCalls   int
	usersCalls     int
	companiesCalls int
	notifCalls     int
}

func (f *fakeFetcher) ListTasks(context.Context, api.TaskFilter) ([]api.Task, error) {
	f.listTasksCalls++
	return f.tasks, f.tasksErr
}

func (f *fakeFetcher) MyTasks(context.Context, api.TaskStatus) ([]api.Task, error) {
	f.myTasksCalls++
	return f.myTasks, f.tasksErr
}

func (f *fakeFetcher) ListUsers(context.Context, api.ListUsersOptions) ([]api.User, error) {
	f.usersCalls++
	return f.users, f.usersErr
}

func (f *fakeFetcher) ListCompanies(context.Context) ([]api.Company, error) {
	f.companiesCalls++
	return f.companies, f.companiesErr
}

func (f *fakeFetcher) ListNotifications(context.Context, bool) ([]api.Notification, error) {
	f.notifCalls++
	return f.notifications, f.notificationsErr
}

func TestLoader_SuperAdminFetchesEverything(t *testing.T) {
	fetcher := &fakeFetcher{
		tasks:     []api.Task{{ID: 1}},
		users:     []api.User{{ID: 1}},
		companies: []api.Company{{ID: 1}},
	}
	loader := NewLoader(fetcher)

	c, errs := loader.Load(context.Background(), userSession(1, rbac.RoleSuperAdmin, 0))
	require.False(t, errs.Any())
	assert.Len(t, c.Tasks, 1)
	assert.Len(t, c.Users, 1)
	assert.Len(t, c.Companies, 1)
	assert.Equal(t, 1, fetcher.listTasksCalls)
	assert.Equal(t, 0, fetcher.myTasksCalls)
	assert.Equal(t, 1, fetcher.companiesCalls)
}

func TestLoader_UserRoleUsesMyTasks(t *testing.T) {
	fetcher := &fakeFetcher{myTasks: []api.Task{{ID: 1, AssignedToID: 7}}}
	loader := NewLoader(fetcher)

	c, errs := loader.Load(context.Background(), userSession(7, rbac.RoleUser, 0))
	require.False(t, errs.Any())
	assert.Len(t, c.Tasks, 1)
	assert.Equal(t, 1, fetcher.myTasksCalls)
	assert.Equal(t, 0, fetcher.listTasksCalls)
	assert.Equal(t, 0, fetcher.usersCalls, "user role must not list users")
	assert.Equal(t, 0, fetcher.companiesCalls)
}

func TestLoader_PartialFailureKeepsResolvedCollections(t *testing.T) {
	fetcher := &fakeFetcher{
		tasksErr:      errors.New(errors.ErrCodeAPIServer, "boom"),
		users:         []api.User{{ID: 1}},
		companies:     []api.Company{{ID: 1}},
		notifications: []api.Notification{{ID: 1}},
	}
	loader := NewLoader(fetcher)

	c, errs := loader.Load(context.Background(), userSession(1, rbac.RoleSuperAdmin, 0))
	assert.True(t, errs.Any())
	assert.Error(t, errs.Tasks)
	assert.NoError(t, errs.Users)
	assert.Len(t, c.Users, 1, "resolved collections survive a sibling failure")
	assert.Len(t, c.Notifications, 1)
	assert.Error(t, errs.First())
}

func TestLoader_ManualRetryRefetches(t *testing.T) {
	fetcher := &fakeFetcher{tasksErr: errors.New(errors.ErrCodeAPIServer, "boom")}
	loader := NewLoader(fetcher)
	sess := userSession(1, rbac.RoleSuperAdmin, 0)

	_, errs := loader.Load(context.Background(), sess)
	require.True(t, errs.Any())

	fetcher.tasksErr = nil
	fetcher.tasks = []api.Task{{ID: 1}}

	c, errs := loader.Load(context.Background(), sess)
	assert.False(t, errs.Any())
	assert.Len(t, c.Tasks, 1)
	assert.Equal(t, 2, fetcher.listTasksCalls, "retry is a fresh load, nothing cached")
}

func TestLoader_DemoSessionSkipsNetwork(t *testing.T) {
	fetcher := &fakeFetcher{}
	loader := NewLoader(fetcher)

	sess := session.Session{
		Authenticated: true,
		Demo:          true,
		User:          api.User{ID: -1, Role: "admin"},
		Role:          rbac.RoleAdmin,
	}

	c, errs := loader.Load(context.Background(), sess)
	assert.False(t, errs.Any())
	assert.Empty(t, c.Tasks)
	assert.Zero(t, fetcher.listTasksCalls+fetcher.myTasksCalls+fetcher.usersCalls+fetcher.companiesCalls+fetcher.notifCalls)
}
