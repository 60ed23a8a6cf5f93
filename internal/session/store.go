// Package session owns the authentication lifecycle for the client suite.
//
// The Store is the only component allowed to mutate the credential/identity
// pair; every other component reads it through Snapshot or AuthHeaders.
package session

import (
	"context"
	"sync"

	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/pkg/log"
)

// Result is the outcome of a user-initiated auth operation. Failures are
// data, not panics: the caller renders Error and may retry.
type Result struct {
	Success bool
	Error   string
}

// Snapshot is a read-only view of the session for guards and views.
type Snapshot struct {
	User    *backend.User
	Token   string
	Loading bool
}

// Store holds the current identity and bearer credential. Credential and
// identity are always set and cleared together under one lock; the only
// state with a token but no identity is the restore window, flagged by
// loading=true.
type Store struct {
	client *backend.Client
	tokens *TokenFile
	logger log.Logger

	mu      sync.RWMutex
	user    *backend.User
	token   string
	loading bool
}

// NewStore creates a session store and wires itself into the client as its
// auth provider. The session starts in the loading state until Restore
// settles it.
func NewStore(client *backend.Client, tokens *TokenFile) *Store {
	s := &Store{
		client:  client,
		tokens:  tokens,
		logger:  log.WithName("session"),
		loading: true,
	}
	client.SetAuthProvider(s.AuthHeaders)

	return s
}

// Restore resolves the identity behind a persisted token, if any. On
// failure the persisted token is discarded; this is the only request path
// that clears the session on error. The store is settled when Restore
// returns, whatever the outcome.
func (s *Store) Restore(ctx context.Context) {
	defer s.settle()

	token := s.tokens.Load()
	if token == "" {
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Warn("saved session rejected, logging out", "reason", backend.FormatError(err))
		s.clear()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.logger.Debug("session restored", "user", user.Email, "role", string(user.Role))
}

// Login exchanges credentials for a token and identity. Network and
// credential failures never escape as errors; they come back as a Result
// the caller can display.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return Result{Error: backend.FormatError(err)}
	}

	return s.establish(token)
}

// Register creates an account and opens a session, with Login's contract.
func (s *Store) Register(ctx context.Context, req backend.RegisterRequest) Result {
	token, err := s.client.Register(ctx, req)
	if err != nil {
		return Result{Error: backend.FormatError(err)}
	}

	return s.establish(token)
}

// Logout clears the in-memory pair and the persisted token. No server
// round-trip is involved.
func (s *Store) Logout() {
	s.clear()
	s.logger.Debug("session cleared")
}

// AuthHeaders returns the header map to attach to outbound requests. It is
// empty when no session is active, which makes login/register requests
// naturally unauthenticated.
func (s *Store) AuthHeaders() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return nil
	}

	return map[string]string{"Authorization": "Bearer " + s.token}
}

// Snapshot returns the current session view.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{User: s.user, Token: s.token, Loading: s.loading}
}

// Identity returns the authenticated user, or false when anonymous.
func (s *Store) Identity() (*backend.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user, s.user != nil
}

func (s *Store) establish(token *backend.Token) Result {
	if token.User == nil || token.AccessToken == "" {
		return Result{Error: backend.ErrMsgGeneric}
	}

	s.mu.Lock()
	s.token = token.AccessToken
	s.user = token.User
	s.loading = false
	s.mu.Unlock()

	if err := s.tokens.Save(token.AccessToken); err != nil {
		s.logger.Warn("failed to persist session token", "err", err)
	}

	return Result{Success: true}
}

func (s *Store) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("failed to remove saved token", "err", err)
	}
}

func (s *Store) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}
