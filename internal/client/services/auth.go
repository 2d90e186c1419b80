// Package services contains application services for the Runnio client.
// This file defines the authentication service: the single owner of the
// signed-in identity, the API client's bearer token and the persisted
// session.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/runnio/internal/client/client"
	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/dmitrijs2005/runnio/internal/client/session"
	"github.com/dmitrijs2005/runnio/internal/logging"
)

const (
	MsgUnavailable    = "Unable to reach the server. Please try again."
	MsgSuperseded     = "Request superseded by a newer session change."
	MsgNotSignedIn    = "You are not signed in."
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgBadResponse    = "Unexpected response from the server."
)

// AuthState is a snapshot of the authentication state.
type AuthState struct {
	Identity *models.Identity
	// Loading is true only until the persisted session has been restored.
	Loading bool
}

func (s AuthState) IsAuthenticated() bool { return s.Identity != nil }

func (s AuthState) IsAdmin() bool { return s.Identity.IsAdmin() }

// Result is the outcome of a lifecycle operation. Server rejections and
// transport failures are reported here, not as errors.
type Result struct {
	Success  bool
	Message  string
	Errors   []string
	Identity *models.Identity
}

// SessionStore persists the token/identity pair.
type SessionStore interface {
	Load(ctx context.Context) (*session.Session, error)
	Save(ctx context.Context, token string, identity *models.Identity) error
	Clear(ctx context.Context) error
}

// AuthService defines the session lifecycle used by the CLI.
//
// Contract:
//   - Restore: seed state from the session store; runs once, later calls are no-ops.
//   - Login/Register: one API request; on success persist, set the auth header and identity.
//   - Logout: clear identity, auth header and store; no network call, never fails.
//   - UpdateProfile/Refresh: replace the identity from the server, keeping the token.
//   - Subscribe: observe every state change.
//
// Login, Register, UpdateProfile and Refresh return an error only when the
// session could not be persisted; the state is left untouched in that case.
type AuthService interface {
	State() AuthState
	Restore(ctx context.Context)
	Login(ctx context.Context, email, password string) (Result, error)
	Register(ctx context.Context, name, email, password string) (Result, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (Result, error)
	Refresh(ctx context.Context) (Result, error)
	Subscribe(fn func(AuthState)) (unsubscribe func())
}

// authService keeps identity, token and auth header in lock step. mu
// serialises every mutation together with its persistence, and seq orders
// operations: a completion whose ticket is no longer current was overtaken by
// a logout or a newer operation and must not apply itself.
type authService struct {
	api   client.AuthAPI
	store SessionStore
	log   logging.Logger

	restoreOnce sync.Once

	mu        sync.Mutex
	state     AuthState
	token     string
	seq       uint64
	listeners map[int]func(AuthState)
	nextID    int
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store. The state reports Loading until Restore has run.
func NewAuthService(api client.AuthAPI, store SessionStore, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{
		api:       api,
		store:     store,
		log:       log,
		state:     AuthState{Loading: true},
		listeners: make(map[int]func(AuthState)),
	}
}

func (a *authService) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

// snapshot must be called with mu held.
func (a *authService) snapshot() AuthState {
	return AuthState{Identity: a.state.Identity.Clone(), Loading: a.state.Loading}
}

func (a *authService) Subscribe(fn func(AuthState)) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

// commit captures the state and listeners under mu; call the returned
// function after unlocking.
func (a *authService) commit() func() {
	st := a.snapshot()
	fns := make([]func(AuthState), 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(st)
		}
	}
}

func (a *authService) begin() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	return a.seq
}

func (a *authService) Restore(ctx context.Context) {
	a.restoreOnce.Do(func() {
		ticket := a.begin()

		sess, err := a.store.Load(ctx)
		if err != nil {
			a.log.Error(ctx, "restore session failed, continuing signed out", "error", err)
			sess = nil
		}

		a.mu.Lock()
		if ticket == a.seq {
			if sess != nil {
				a.state.Identity = sess.Identity.Clone()
				a.token = sess.Token
				a.api.SetAuthHeader(sess.Token)
				a.log.Info(ctx, "session restored", "user_id", sess.Identity.ID, "role", sess.Identity.Role)
			} else {
				a.state.Identity = nil
				a.token = ""
				a.api.SetAuthHeader("")
			}
		}
		a.state.Loading = false
		notify := a.commit()
		a.mu.Unlock()

		notify()
	})
}

func (a *authService) Login(ctx context.Context, email, password string) (Result, error) {
	ticket := a.begin()

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login rejected", "email", email, "error", err)
		return failure(err, "Login failed."), nil
	}
	return a.establish(ctx, ticket, resp.Token, &resp.User)
}

func (a *authService) Register(ctx context.Context, name, email, password string) (Result, error) {
	ticket := a.begin()

	resp, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		a.log.Warn(ctx, "registration rejected", "email", email, "error", err)
		return failure(err, "Registration failed."), nil
	}
	return a.establish(ctx, ticket, resp.Token, &resp.User)
}

func (a *authService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (Result, error) {
	ticket, token, ok := a.beginSignedIn()
	if !ok {
		return Result{Message: MsgNotSignedIn}, nil
	}

	identity, err := a.api.UpdateProfile(ctx, upd)
	if err != nil {
		a.log.Warn(ctx, "profile update rejected", "error", err)
		return failure(err, "Profile update failed."), nil
	}
	return a.establish(ctx, ticket, token, identity)
}

func (a *authService) Refresh(ctx context.Context) (Result, error) {
	ticket, token, ok := a.beginSignedIn()
	if !ok {
		return Result{Message: MsgNotSignedIn}, nil
	}

	identity, err := a.api.Me(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		a.mu.Lock()
		if ticket != a.seq {
			a.mu.Unlock()
			return Result{Message: MsgSuperseded}, nil
		}
		a.log.Info(ctx, "token rejected by server, signing out")
		a.signOut(ctx)
		return Result{Message: MsgSessionExpired}, nil
	}
	if err != nil {
		return failure(err, "Could not refresh the profile."), nil
	}
	return a.establish(ctx, ticket, token, identity)
}

// beginSignedIn takes a ticket for an operation that needs the current token.
func (a *authService) beginSignedIn() (uint64, string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Identity == nil || a.token == "" {
		return 0, "", false
	}
	a.seq++
	return a.seq, a.token, true
}

// establish applies a server-confirmed identity: persist, set the header,
// then publish. Nothing changes when ticket is stale or persisting fails.
func (a *authService) establish(ctx context.Context, ticket uint64, token string, identity *models.Identity) (Result, error) {
	if token == "" || identity.Validate() != nil {
		a.log.Error(ctx, "server returned an incomplete session", "has_token", token != "")
		return Result{Message: MsgBadResponse}, nil
	}
	identity = identity.Clone()

	a.mu.Lock()
	if ticket != a.seq {
		a.mu.Unlock()
		a.log.Info(ctx, "discarding superseded session change", "ticket", ticket)
		return Result{Message: MsgSuperseded}, nil
	}

	if err := a.store.Save(ctx, token, identity); err != nil {
		a.mu.Unlock()
		return Result{}, fmt.Errorf("persist session: %w", err)
	}

	a.state.Identity = identity
	a.token = token
	a.api.SetAuthHeader(token)
	notify := a.commit()
	a.mu.Unlock()

	notify()
	a.log.Info(ctx, "signed in", "user_id", identity.ID, "role", identity.Role)
	return Result{Success: true, Identity: identity.Clone()}, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.mu.Lock()
	a.signOut(ctx)
}

// signOut must be called with mu held; it releases it.
func (a *authService) signOut(ctx context.Context) {
	a.seq++
	a.state.Identity = nil
	a.token = ""
	a.api.SetAuthHeader("")
	err := a.store.Clear(ctx)
	notify := a.commit()
	a.mu.Unlock()

	if err != nil {
		a.log.Error(ctx, "clear persisted session failed", "error", err)
	}
	notify()
}

// failure maps an API error to a user-facing result. Server messages and
// field errors pass through verbatim.
func failure(err error, fallback string) Result {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return Result{Message: apiErr.Message, Errors: apiErr.Errors}
	case errors.Is(err, client.ErrUnavailable):
		return Result{Message: MsgUnavailable}
	default:
		return Result{Message: fallback}
	}
}
