package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/client/store"
	"github.com/dmitrijs2005/finkeeper/internal/cryptox"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

var (
	ErrEmptyCredentials   = errors.New("empty username or password")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSignUpFailed       = errors.New("sign up failed")
	ErrServerUnavailable  = errors.New("server unavailable")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// UserMessage returns the text shown to the user for an auth error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyCredentials):
		return "Please enter username and password"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, ErrSignUpFailed):
		return "Sign up failed"
	case errors.Is(err, ErrServerUnavailable):
		return "Server unavailable"
	case errors.Is(err, ErrNotLoggedIn):
		return "Please log in first"
	default:
		return err.Error()
	}
}

// Mode tells how the current session was established.
type Mode int

const (
	ModeNone Mode = iota
	ModeOnline
	ModeOffline
)

func (m Mode) String() string {
	switch m {
	case ModeOnline:
		return "online"
	case ModeOffline:
		return "offline"
	default:
		return "logged out"
	}
}

// Session is the transient login state. It is never persisted.
type Session struct {
	Username string
	Mode     Mode
}

type AuthService struct {
	client client.Client
	store  CredentialStore
	log    logging.Logger

	mu      sync.RWMutex
	session Session
}

func NewAuthService(c client.Client, s CredentialStore, log logging.Logger) *AuthService {
	return &AuthService{client: c, store: s, log: log.With("component", "auth")}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Login authenticates against the server. When the server cannot be reached
// it falls back to the locally stored credential and logs in offline.
// Empty input is rejected before any request is made.
func (a *AuthService) Login(ctx context.Context, username, password string) (Mode, error) {
	if blank(username) || password == "" {
		return ModeNone, ErrEmptyCredentials
	}

	err := a.client.Authenticate(ctx, username, password)
	switch {
	case err == nil:
		a.rememberCredential(ctx, username, password, "")
		a.setSession(Session{Username: username, Mode: ModeOnline})
		a.log.Info(ctx, "logged in", "username", username, "mode", ModeOnline.String())
		return ModeOnline, nil

	case errors.Is(err, client.ErrUnavailable):
		a.log.Warn(ctx, "server unavailable, trying offline login", "error", err)
		return a.offlineLogin(ctx, username, password)

	default:
		a.log.Info(ctx, "login rejected", "username", username, "error", err)
		return ModeNone, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
}

func (a *AuthService) offlineLogin(ctx context.Context, username, password string) (Mode, error) {
	cred := a.store.FindCredential(ctx, username)
	if cred == nil {
		return ModeNone, ErrServerUnavailable
	}

	ok, err := cryptox.VerifyPassword(password, cred.PasswordHash, cred.Salt)
	if err != nil || !ok {
		return ModeNone, ErrInvalidCredentials
	}

	a.setSession(Session{Username: username, Mode: ModeOffline})
	a.log.Info(ctx, "logged in", "username", username, "mode", ModeOffline.String())
	return ModeOffline, nil
}

// rememberCredential makes sure a later offline login with the same password
// works. Failures only cost the offline fallback, so they are logged.
func (a *AuthService) rememberCredential(ctx context.Context, username, password, email string) {
	existing := a.store.FindCredential(ctx, username)
	if existing != nil {
		if ok, _ := cryptox.VerifyPassword(password, existing.PasswordHash, existing.Salt); ok {
			return
		}
		if email == "" {
			email = existing.Email
		}
		a.store.Delete(store.Handle{Kind: store.KindCredential, ID: existing.ID})
	}

	hash, salt := cryptox.HashPassword(password)
	a.store.CreateCredential(store.CredentialFields{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
	})
	if err := a.store.Save(ctx); err != nil {
		a.log.Error(ctx, "failed to store local credential", "error", err)
	}
}

// SignUp registers the account remotely and then keeps a hashed local copy.
func (a *AuthService) SignUp(ctx context.Context, username, password, email string) error {
	if blank(username) || password == "" {
		return ErrEmptyCredentials
	}

	if err := a.client.SignUp(ctx, username, password, email); err != nil {
		a.log.Warn(ctx, "sign up failed", "username", username, "error", err)
		if errors.Is(err, client.ErrUnavailable) {
			return fmt.Errorf("%w: %w", ErrServerUnavailable, err)
		}
		return fmt.Errorf("%w: %w", ErrSignUpFailed, err)
	}

	hash, salt := cryptox.HashPassword(password)
	a.store.CreateCredential(store.CredentialFields{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
	})
	if err := a.store.Save(ctx); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}

	a.log.Info(ctx, "signed up", "username", username)
	return nil
}

// Profile returns the server profile when online and the local copy when
// logged in offline.
func (a *AuthService) Profile(ctx context.Context) (*models.UserProfile, error) {
	s := a.Session()
	switch s.Mode {
	case ModeOnline:
		p, err := a.client.UserProfile(ctx)
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, ErrNotLoggedIn
		}
		return p, err
	case ModeOffline:
		cred := a.store.FindCredential(ctx, s.Username)
		if cred == nil {
			return &models.UserProfile{Username: s.Username}, nil
		}
		return &models.UserProfile{Username: cred.Username, Email: cred.Email}, nil
	default:
		return nil, ErrNotLoggedIn
	}
}

func (a *AuthService) Logout(ctx context.Context) {
	a.client.Logout()
	a.setSession(Session{})
	a.log.Info(ctx, "logged out")
}

func (a *AuthService) IsLoggedIn() bool {
	return a.Session().Mode != ModeNone
}

func (a *AuthService) Session() Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

func (a *AuthService) setSession(s Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

// Ping proxies a liveness check to the API client.
func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
