// Package auth implements the two-path login flow.
//
// A submitted identity is ambiguous: it may be an individual account email or
// a company login name. The flow tries the individual endpoint first and, on
// any failure, retries the same credentials against the company endpoint.
// The two attempts are strictly sequential, one shot each; resubmission is up
// to the caller.
package auth

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/errors"
	"github.com/taskflowhq/taskflow/internal/log"
	"github.com/taskflowhq/taskflow/internal/rbac"
)

// State is the flow's lifecycle state.
type State string

const (
	StateIdle           State = "idle"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateFailed         State = "failed"
)

const fallbackLoginError = "Login failed. Please check your credentials and try again."

// Client is the backend surface the flow needs.
type Client interface {
	Login(ctx context.Context, identity, secret string) (*api.LoginResponse, error)
	CompanyLogin(ctx context.Context, identity, secret string) (*api.LoginResponse, error)
}

// Result is a successful authentication outcome.
type Result struct {
	Token string
	User  api.User
	// CompanyPath reports that the company endpoint authenticated the
	// credentials. Company sessions always carry role admin.
	CompanyPath bool
	// Demo reports an offline demo login; Token is empty.
	Demo bool
}

// Role returns the effective role for the session.
func (r *Result) Role() rbac.Role {
	role, err := rbac.ParseRole(r.User.Role)
	if err != nil {
		return rbac.RoleUser
	}
	return role
}

// Flow runs the primary-then-company login sequence.
type Flow struct {
	client Client
	demo   *DemoDirectory
	logger *log.Logger

	mu    sync.Mutex
	state State
}

// Option configures a Flow.
type Option func(*Flow)

// WithDemoDirectory enables the offline demo accounts.
func WithDemoDirectory(d *DemoDirectory) Option {
	return func(f *Flow) { f.demo = d }
}

// NewFlow creates an idle flow over the given client.
func NewFlow(client Client, opts ...Option) *Flow {
	f := &Flow{
		client: client,
		logger: log.DefaultLogger().With("component", "auth"),
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Authenticate resolves identity+secret to a session. It validates inputs
// before any network call, consults the demo directory if one is configured,
// then tries the individual endpoint and falls back to the company endpoint.
func (f *Flow) Authenticate(ctx context.Context, identity, secret string) (*Result, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || secret == "" {
		return nil, errors.New(errors.ErrCodeAPIValidation, "email and password are required")
	}

	f.setState(StateAuthenticating)

	if f.demo != nil {
		if user, ok := f.demo.Lookup(identity, secret); ok {
			f.logger.Info("demo login", "identity", identity)
			f.setState(StateAuthenticated)
			return &Result{User: *user, Demo: true}, nil
		}
	}

	primary, primaryErr := f.client.Login(ctx, identity, secret)
	if primaryErr == nil {
		f.setState(StateAuthenticated)
		return &Result{Token: primary.AccessToken, User: primary.User}, nil
	}

	f.logger.Debug("primary login failed, trying company path",
		"identity", identity,
		"error", primaryErr.Error(),
	)

	company, companyErr := f.client.CompanyLogin(ctx, identity, secret)
	if companyErr == nil {
		// Company sessions are always admin, whatever the backend profile
		// says. This is a normalization step, not a bug workaround.
		user := company.User
		user.Role = string(rbac.RoleAdmin)
		f.setState(StateAuthenticated)
		return &Result{Token: company.AccessToken, User: user, CompanyPath: true}, nil
	}

	f.setState(StateFailed)
	return nil, loginError(primaryErr, companyErr)
}

// loginError picks the message shown to the user when both paths fail.
// Preference order: a backend-provided detail, then any error text, then a
// generic fallback. The primary path's error wins over the company path's.
func loginError(primaryErr, companyErr error) error {
	for _, err := range []error{primaryErr, companyErr} {
		var tfErr *errors.TaskFlowError
		if stderrors.As(err, &tfErr) {
			switch tfErr.Code {
			case errors.ErrCodeAPIUnreachable, errors.ErrCodeAPITimeout:
				return tfErr
			}
			if tfErr.Message != "" {
				return errors.New(errors.ErrCodeAuthInvalidCredentials, tfErr.Message).
					WithCause(tfErr).
					WithSuggestion("Check your email/company name and password")
			}
		}
	}
	for _, err := range []error{primaryErr, companyErr} {
		if err != nil && err.Error() != "" {
			return errors.New(errors.ErrCodeAuthInvalidCredentials, err.Error())
		}
	}
	return errors.New(errors.ErrCodeAuthInvalidCredentials, fallbackLoginError)
}
