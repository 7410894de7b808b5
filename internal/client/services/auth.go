// Package services contains application services for the PharmaDesk client.
// This file defines the authentication flow: login, logout and restoring a
// previous session from local storage.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/pharmadesk/internal/client/client"
	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
	"github.com/dmitrijs2005/pharmadesk/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// AuthState is the state of the authentication flow.
type AuthState string

const (
	StateIdle          AuthState = "idle"
	StateLoading       AuthState = "loading"
	StateAuthenticated AuthState = "authenticated"
	StateError         AuthState = "error"
)

// SessionStore is the persistence the flows need. *session.Store implements it.
type SessionStore interface {
	Save(ctx context.Context, token string, user models.UserProfile) error
	Load(ctx context.Context) (*models.Session, bool)
	Clear(ctx context.Context) error
	Token(ctx context.Context) string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session.
//     Never returns a Go error; callers branch on AuthResponse.Success.
//   - Logout: end the session on the server. Local state is always cleared.
//   - State/Loading/Err/User/Token: read the current flow state.
//
// All methods are safe for concurrent use.
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) models.AuthResponse
	Logout(ctx context.Context) models.AuthResponse
	State() AuthState
	Loading() bool
	Err() error
	User() *models.UserProfile
	Token() string
}

type authService struct {
	client client.Client
	store  SessionStore
	log    logging.Logger
	now    func() time.Time

	mu    sync.Mutex
	state AuthState
	err   error
	user  *models.UserProfile
	token string
	seq   uint64
}

// NewAuthService constructs an AuthService and restores a stored session
// synchronously, without any network call.
func NewAuthService(ctx context.Context, c client.Client, store SessionStore, log logging.Logger) AuthService {
	return newAuthService(ctx, c, store, log, time.Now)
}

func newAuthService(ctx context.Context, c client.Client, store SessionStore, log logging.Logger, now func() time.Time) *authService {
	if log == nil {
		log = logging.Nop()
	}
	a := &authService{client: c, store: store, log: log, now: now, state: StateIdle}
	a.restore(ctx)
	return a
}

// restore trusts a stored token and profile without asking the server,
// except for JWTs whose exp claim is already in the past.
func (a *authService) restore(ctx context.Context) {
	sess, ok := a.store.Load(ctx)
	if !ok {
		return
	}

	if tokenExpired(sess.Token, a.now()) {
		a.log.Info(ctx, "stored session expired, discarding")
		if err := a.store.Clear(ctx); err != nil {
			a.log.Error(ctx, "failed to clear expired session", "error", err)
		}
		return
	}

	user := sess.User
	a.user = &user
	a.token = sess.Token
	a.state = StateAuthenticated
}

// tokenExpired reports whether token is a JWT with an exp claim before now.
// Tokens that are not JWTs are opaque and never considered expired.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) models.AuthResponse {
	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.state = StateLoading
	a.err = nil
	a.mu.Unlock()

	resp, err := a.client.Login(ctx, creds)
	if err != nil {
		return a.loginFailed(ctx, seq, serverMessage(err, msgLoginFailed), err)
	}
	if resp == nil {
		return a.loginFailed(ctx, seq, msgLoginFailed, client.ErrMalformedResponse)
	}

	token := resp.AccessToken()
	user := resp.User()
	if !resp.Success || token == "" || user == nil {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		if msg == "" {
			msg = msgLoginFailed
		}
		return a.loginFailed(ctx, seq, msg, nil)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if seq != a.seq {
		a.log.Debug(ctx, "discarding superseded login response", "email", creds.Email)
		return models.Failure(msgLoginSuperseded)
	}

	if err := a.store.Save(ctx, token, *user); err != nil {
		a.log.Error(ctx, "failed to persist session", "error", err)
		a.state = StateError
		a.err = &flowError{msg: msgLoginFailed, cause: err}
		return models.Failure(msgLoginFailed)
	}

	u := *user
	a.user = &u
	a.token = token
	a.state = StateAuthenticated
	a.log.Info(ctx, "logged in", "email", u.Email)
	return *resp
}

func (a *authService) loginFailed(ctx context.Context, seq uint64, msg string, cause error) models.AuthResponse {
	a.log.Warn(ctx, "login failed", "reason", msg, "error", cause)

	a.mu.Lock()
	defer a.mu.Unlock()

	if seq == a.seq {
		a.state = StateError
		a.err = &flowError{msg: msg, cause: cause}
	}
	return models.Failure(msg)
}

func (a *authService) Logout(ctx context.Context) models.AuthResponse {
	a.mu.Lock()
	a.seq++
	token := a.token
	a.state = StateLoading
	a.err = nil
	a.mu.Unlock()

	if token == "" {
		token = a.store.Token(ctx)
	}

	if token == "" {
		a.clearLocal(ctx, ErrNoSession)
		return models.Failure(ErrNoSession.Error())
	}

	resp, err := a.client.Logout(ctx, token)
	if err != nil {
		msg := serverMessage(err, msgLogoutFailed)
		a.log.Warn(ctx, "logout request failed, clearing local session anyway", "error", err)
		a.clearLocal(ctx, &flowError{msg: msg, cause: err})
		return models.Failure(msg)
	}
	if resp == nil {
		a.log.Warn(ctx, "logout answered with an empty body, session cleared locally")
		a.clearLocal(ctx, &flowError{msg: msgLogoutFailed, cause: client.ErrMalformedResponse})
		return models.Failure(msgLogoutFailed)
	}

	a.clearLocal(ctx, nil)
	a.log.Info(ctx, "logged out")
	return *resp
}

// clearLocal wipes the stored and in-memory session. A non-nil cause leaves
// the flow in the error state.
func (a *authService) clearLocal(ctx context.Context, cause error) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.user = nil
	a.token = ""
	a.err = cause
	if cause != nil {
		a.state = StateError
	} else {
		a.state = StateIdle
	}
}

func (a *authService) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) Loading() bool {
	return a.State() == StateLoading
}

func (a *authService) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// User returns a copy of the signed-in profile or nil.
func (a *authService) User() *models.UserProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *authService) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}
