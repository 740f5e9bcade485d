package session

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"trotamundos/internal/api"
	"trotamundos/internal/logging"
	"trotamundos/internal/models"
	"trotamundos/internal/repositories/credentials"
)

// State is the lifecycle phase of the store. Uninitialized only exists
// before Restore runs; Restoring only while it runs. Every operation ends
// in Authenticated or Anonymous.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateRestoring     State = "restoring"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Session is an immutable snapshot of the current identity, handed to
// consumers (the access gate, CLI views). Token and User are set and
// cleared together.
type Session struct {
	Token        string
	RefreshToken string
	User         *models.User
}

// Authenticated reports whether the snapshot carries a full identity.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// TokenHolder is the transport-side slot for the bearer pair. The store
// pushes tokens into it on login/restore and registers itself for refresh
// notifications, staying the sole writer of the persisted copy.
type TokenHolder interface {
	SetTokens(access, refresh string)
	ClearTokens()
	OnTokensRefreshed(fn func(ctx context.Context, pair api.TokenPair))
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Store owns the authentication lifecycle: it restores the persisted
// session at boot, performs login/register/logout, and is the single
// writer of the durable token copy. Expected failures never surface as
// errors from Login/Register; they resolve false with a human-readable
// message in Err.
type Store struct {
	client   api.Client
	tokens   TokenHolder
	repo     credentials.Repository
	log      logging.Logger
	validate *validator.Validate

	state   State
	user    *models.User
	access  string
	refresh string
	lastErr string
}

// NewStore wires a store to its transport and durable storage. The store
// starts Uninitialized; call Restore once at boot.
func NewStore(client api.Client, tokens TokenHolder, repo credentials.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	s := &Store{
		client:   client,
		tokens:   tokens,
		repo:     repo,
		log:      log,
		validate: validator.New(),
		state:    StateUninitialized,
	}
	tokens.OnTokensRefreshed(s.tokensRefreshed)
	return s
}

// State returns the current lifecycle phase.
func (s *Store) State() State { return s.state }

// Authenticated reports whether a full identity is established.
func (s *Store) Authenticated() bool {
	return s.state == StateAuthenticated && s.user != nil
}

// User returns the authenticated user, or nil when anonymous.
func (s *Store) User() *models.User { return s.user }

// UpdateUser replaces the cached identity after a profile change. Ignored
// while anonymous; a profile update without a session makes no sense.
func (s *Store) UpdateUser(u *models.User) {
	if s.state == StateAuthenticated && u != nil {
		s.user = u
	}
}

// Err returns the human-readable message of the last failed operation,
// cleared by the next successful one.
func (s *Store) Err() string { return s.lastErr }

// Session returns a snapshot of the current identity.
func (s *Store) Session() Session {
	return Session{Token: s.access, RefreshToken: s.refresh, User: s.user}
}

// tokensRefreshed persists a pair produced by the transport's refresh
// exchange, keeping the durable copy in step with the in-memory one.
func (s *Store) tokensRefreshed(ctx context.Context, pair api.TokenPair) {
	s.access = pair.Access
	s.refresh = pair.Refresh
	if err := s.persist(ctx, pair); err != nil {
		s.log.Warn(ctx, "failed to persist refreshed tokens", "error", err)
	}
}

// persist writes the pair through the repository's atomic path: both
// tokens become durable together or not at all.
func (s *Store) persist(ctx context.Context, pair api.TokenPair) error {
	return s.repo.SetPair(ctx, pair.Access, pair.Refresh)
}

// clearAll drops the session everywhere: durable storage, transport slot
// and memory. Safe to call repeatedly.
func (s *Store) clearAll(ctx context.Context) {
	if err := s.repo.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear stored credentials", "error", err)
	}
	s.tokens.ClearTokens()
	s.access = ""
	s.refresh = ""
	s.user = nil
	s.state = StateAnonymous
}

// Restore rebuilds the session from durable storage, once, at boot. A
// stored token is verified against the profile endpoint; any failure
// (rejection, expiry the refresh exchange cannot fix, plain network
// trouble) clears the stored pair and lands in Anonymous. Restore never
// stays in Restoring: it always terminates in a terminal state.
func (s *Store) Restore(ctx context.Context) {
	s.state = StateRestoring

	access, err := s.repo.Get(ctx, credentials.KeyAccessToken)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored credentials", "error", err)
		s.clearAll(ctx)
		return
	}
	if access == "" {
		s.state = StateAnonymous
		return
	}
	refresh, err := s.repo.Get(ctx, credentials.KeyRefreshToken)
	if err != nil {
		s.log.Warn(ctx, "failed to read stored credentials", "error", err)
		s.clearAll(ctx)
		return
	}

	s.access = access
	s.refresh = refresh
	s.tokens.SetTokens(access, refresh)

	user, err := s.client.Profile(ctx)
	if err != nil {
		s.log.Info(ctx, "stored session rejected", "error", err)
		s.clearAll(ctx)
		return
	}

	s.user = user
	s.state = StateAuthenticated
	s.log.Info(ctx, "session restored", "email", user.Email)
}

// Login authenticates with the token endpoint, persists the issued pair,
// and then resolves the profile. The sequence is strictly ordered: tokens
// are durable before the profile fetch starts, and a failed profile fetch
// rolls the whole operation back; a token without an identity is not a
// valid end state. Expected failures return false with the reason in Err.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	if msg := s.checkCredentials(email, password); msg != "" {
		s.lastErr = msg
		return false
	}

	pair, err := s.client.ObtainToken(ctx, email, password)
	if err != nil {
		s.lastErr = failureMessage(err, "could not sign in")
		return false
	}

	s.tokens.SetTokens(pair.Access, pair.Refresh)
	if err := s.persist(ctx, pair); err != nil {
		s.log.Warn(ctx, "failed to persist tokens", "error", err)
		s.clearAll(ctx)
		s.lastErr = "could not store the session"
		return false
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		s.clearAll(ctx)
		s.lastErr = failureMessage(err, "could not load the user profile")
		return false
	}

	s.access = pair.Access
	s.refresh = pair.Refresh
	s.user = user
	s.state = StateAuthenticated
	s.lastErr = ""
	s.log.Info(ctx, "login successful", "email", user.Email)
	return true
}

// Register creates the account and, on success, immediately logs in with
// the same credentials; registration alone does not establish a session.
func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) bool {
	if msg := s.checkCredentials(email, password); msg != "" {
		s.lastErr = msg
		return false
	}

	reg := api.Registration{Email: email, Password: password, FirstName: firstName, LastName: lastName}
	if err := s.client.Register(ctx, reg); err != nil {
		s.lastErr = failureMessage(err, "could not register")
		return false
	}

	return s.Login(ctx, email, password)
}

// Logout drops the session everywhere. Idempotent: calling it while
// anonymous is a no-op beyond re-clearing storage.
func (s *Store) Logout(ctx context.Context) {
	s.clearAll(ctx)
	s.lastErr = ""
	s.log.Info(ctx, "logged out")
}

func (s *Store) checkCredentials(email, password string) string {
	in := loginInput{Email: email, Password: password}
	err := s.validate.Struct(in)
	if err == nil {
		return ""
	}
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		for _, fe := range verr {
			switch fe.Field() {
			case "Email":
				if fe.Tag() == "email" {
					return "enter a valid email address"
				}
				return "email is required"
			case "Password":
				return "password is required"
			}
		}
	}
	return "invalid credentials"
}

// failureMessage converts an expected API failure into the message shown
// to the user; unexpected errors fall back to the supplied generic one.
func failureMessage(err error, generic string) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		if msg := verr.First(); msg != "" {
			return msg
		}
		return generic
	}
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return "connection error"
	case errors.Is(err, api.ErrUnauthorized):
		return "invalid email or password"
	default:
		return generic
	}
}
