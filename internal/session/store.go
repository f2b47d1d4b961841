// Package session owns the authenticated session: one in-memory value,
// mirrored to exactly two durable files (bearer token and serialized
// profile). All mutation goes through the Store; everything else reads.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskflowhq/taskflow/internal/api"
	"github.com/taskflowhq/taskflow/internal/auth"
	"github.com/taskflowhq/taskflow/internal/errors"
	"github.com/taskflowhq/taskflow/internal/log"
	"github.com/taskflowhq/taskflow/internal/rbac"
)

const (
	tokenFile   = "token"
	profileFile = "profile.json"
)

// Session is the current authentication state.
type Session struct {
	Authenticated bool
	Token         string
	User          api.User
	Role          rbac.Role
	// Demo marks a profile-only session with no token. It is trusted
	// without revalidation and cannot make backend calls.
	Demo bool
	// Loading is true while a restore or login is in flight. Subscribers
	// see it flip on and off around the backend round trip.
	Loading bool
}

// Subject converts the session into an access-control subject.
func (s Session) Subject() rbac.Subject {
	if !s.Authenticated {
		return rbac.Anonymous
	}
	return rbac.Subject{Authenticated: true, Role: s.Role}
}

// Store holds the session and keeps it in sync with durable state.
type Store struct {
	dir    string
	client *api.Client
	flow   *auth.Flow
	logger *log.Logger

	mu          sync.RWMutex
	current     Session
	subscribers map[int]func(Session)
	nextSub     int
	onLogout    func()
}

// NewStore creates a store persisting under dir. The client's unauthorized
// hook is wired so that any 401 anywhere invalidates the session globally.
func NewStore(dir string, client *api.Client, flow *auth.Flow) *Store {
	s := &Store{
		dir:         dir,
		client:      client,
		flow:        flow,
		logger:      log.DefaultLogger().With("component", "session"),
		subscribers: make(map[int]func(Session)),
	}
	client.SetOnUnauthorized(s.invalidate)
	return s
}

// SetOnLogout registers the navigation hook fired after logout or
// invalidation, once state is already cleared.
func (s *Store) SetOnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = fn
	s.mu.Unlock()
}

// Current returns the session value.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers a change listener and returns its unsubscribe func.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) set(sess Session) {
	s.mu.Lock()
	s.current = sess
	subs := make([]func(Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

func (s *Store) markLoading(v bool) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	cur.Loading = v
	s.set(cur)
}

// Initialize restores the session from durable state at startup.
//
// Token path: the token's expiry claim is inspected locally first (cheap
// reject for stale state), then the token is revalidated against the backend.
// Any failure clears all durable state and yields an unauthenticated session.
//
// Profile-only path: a profile with no token is trusted as-is. This is the
// demo mode's weaker guarantee; no backend call is possible without a token.
func (s *Store) Initialize(ctx context.Context) error {
	s.markLoading(true)

	token, tokenErr := s.readToken()
	profile, profileErr := s.readProfile()

	if tokenErr != nil || token == "" {
		if profileErr == nil && profile != nil {
			s.logger.Debug("restoring profile-only session", "email", profile.Email)
			s.set(sessionFromUser(*profile, "", true))
			return nil
		}
		s.set(Session{})
		return nil
	}

	if expired(token) {
		s.logger.Info("persisted token expired, clearing session")
		s.clearDurable()
		s.set(Session{})
		return nil
	}

	s.client.SetToken(token)
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.logger.Info("token revalidation failed, clearing session", "error", err.Error())
		s.client.ClearToken()
		s.clearDurable()
		s.set(Session{})
		return nil
	}

	// Persist the fresh profile; the backend copy wins over the stale one.
	if err := s.writeProfile(user); err != nil {
		s.logger.Warn("failed to refresh persisted profile", "error", err.Error())
	}
	s.set(sessionFromUser(*user, token, false))
	return nil
}

// Login authenticates and, on success, persists and publishes the session.
func (s *Store) Login(ctx context.Context, identity, secret string) (Session, error) {
	s.markLoading(true)

	result, err := s.flow.Authenticate(ctx, identity, secret)
	if err != nil {
		s.markLoading(false)
		return Session{}, err
	}

	sess := Session{
		Authenticated: true,
		Token:         result.Token,
		User:          result.User,
		Role:          result.Role(),
		Demo:          result.Demo,
	}

	if result.Token != "" {
		s.client.SetToken(result.Token)
		if err := s.writeToken(result.Token); err != nil {
			s.markLoading(false)
			return Session{}, err
		}
	}
	if err := s.writeProfile(&result.User); err != nil {
		s.markLoading(false)
		return Session{}, err
	}

	s.set(sess)
	return sess, nil
}

// Logout clears durable state, resets the session, and fires the
// navigation hook. It always succeeds from the caller's point of view.
func (s *Store) Logout() {
	s.client.ClearToken()
	s.clearDurable()
	s.set(Session{})

	s.mu.RLock()
	fn := s.onLogout
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// invalidate is the 401 hook: identical to logout, but logged as a
// credential rejection rather than a user action.
func (s *Store) invalidate() {
	s.logger.Info("backend rejected credentials, session invalidated")
	s.Logout()
}

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
type ProfilePatch struct {
	FullName          *string
	AvatarURL         *string
	PhoneNumber       *string
	Department        *string
	AboutMe           *string
	PreferredLanguage *string
}

// Update merges a profile patch into the session and re-persists it.
func (s *Store) Update(patch ProfilePatch) (Session, error) {
	s.mu.Lock()
	if !s.current.Authenticated {
		s.mu.Unlock()
		return Session{}, errors.NewNotLoggedInError()
	}
	user := s.current.User
	s.mu.Unlock()

	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.AvatarURL != nil {
		user.AvatarURL = *patch.AvatarURL
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Department != nil {
		user.Department = *patch.Department
	}
	if patch.AboutMe != nil {
		user.AboutMe = *patch.AboutMe
	}
	if patch.PreferredLanguage != nil {
		user.PreferredLanguage = *patch.PreferredLanguage
	}

	if err := s.writeProfile(&user); err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	s.current.User = user
	sess := s.current
	s.mu.Unlock()
	s.set(sess)
	return sess, nil
}

func sessionFromUser(user api.User, token string, demo bool) Session {
	role, err := rbac.ParseRole(user.Role)
	if err != nil {
		role = rbac.RoleUser
	}
	return Session{
		Authenticated: true,
		Token:         token,
		User:          user,
		Role:          role,
		Demo:          demo,
	}
}

// expired reports whether the token's exp claim is in the past. The claim is
// read without signature verification; the backend is the authority, this is
// only a local fast path. A token without a readable exp is not rejected here.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (s *Store) tokenPath() string   { return filepath.Join(s.dir, tokenFile) }
func (s *Store) profilePath() string { return filepath.Join(s.dir, profileFile) }

func (s *Store) readToken() (string, error) {
	data, err := os.ReadFile(s.tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Store) writeToken(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeSessionPersistFailed, "failed to create state directory", err)
	}
	if err := os.WriteFile(s.tokenPath(), []byte(token), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionPersistFailed, "failed to persist token", err)
	}
	return nil
}

func (s *Store) readProfile() (*api.User, error) {
	data, err := os.ReadFile(s.profilePath())
	if err != nil {
		return nil, err
	}
	var user api.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionLoadFailed, "persisted profile is corrupt", err)
	}
	return &user, nil
}

func (s *Store) writeProfile(user *api.User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeSessionPersistFailed, "failed to create state directory", err)
	}
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionPersistFailed, "failed to serialize profile", err)
	}
	if err := os.WriteFile(s.profilePath(), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionPersistFailed, "failed to persist profile", err)
	}
	return nil
}

// clearDurable removes both durable values. Both are always cleared
// together; a token without a profile or vice versa is never left behind.
func (s *Store) clearDurable() {
	if err := os.Remove(s.tokenPath()); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove persisted token", "error", err.Error())
	}
	if err := os.Remove(s.profilePath()); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove persisted profile", "error", err.Error())
	}
}
