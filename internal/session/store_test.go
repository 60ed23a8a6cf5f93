package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"locatrack.io/locatrack/internal/backend"
)

func newTestStore(t *testing.T, handler http.Handler) (*Store, *TokenFile) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := NewTokenFile(filepath.Join(t.TempDir(), "token"))
	client := backend.NewWithBaseURL(srv.URL, time.Second)

	return NewStore(client, tokens), tokens
}

func TestLoginEstablishesSession(t *testing.T) {
	store, tokens := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q, want /api/auth/login", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login request carried an Authorization header")
		}
		json.NewEncoder(w).Encode(backend.Token{
			AccessToken: "tok-abc",
			TokenType:   "bearer",
			User:        &backend.User{ID: "u1", Email: "a@b.c", Role: backend.RoleLocateur},
		})
	}))

	res := store.Login(context.Background(), "a@b.c", "pw")
	if !res.Success {
		t.Fatalf("Login failed: %s", res.Error)
	}

	snap := store.Snapshot()
	if snap.User == nil || snap.User.ID != "u1" || snap.Token != "tok-abc" {
		t.Errorf("snapshot after login = %+v", snap)
	}
	if snap.Loading {
		t.Error("session still loading after login")
	}

	if got := tokens.Load(); got != "tok-abc" {
		t.Errorf("persisted token = %q, want tok-abc", got)
	}

	headers := store.AuthHeaders()
	if headers["Authorization"] != "Bearer tok-abc" {
		t.Errorf("AuthHeaders() = %v", headers)
	}
}

func TestLoginFailureReturnsResultNotError(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Email ou mot de passe incorrect"}`))
	}))

	res := store.Login(context.Background(), "a@b.c", "bad")
	if res.Success {
		t.Fatal("Login reported success on 401")
	}
	if res.Error != "Email ou mot de passe incorrect" {
		t.Errorf("Result.Error = %q", res.Error)
	}

	if _, ok := store.Identity(); ok {
		t.Error("identity set after failed login")
	}
}

func TestLogoutClearsBothAtomically(t *testing.T) {
	store, tokens := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backend.Token{
			AccessToken: "tok-abc",
			User:        &backend.User{ID: "u1"},
		})
	}))

	if res := store.Login(context.Background(), "a@b.c", "pw"); !res.Success {
		t.Fatalf("Login failed: %s", res.Error)
	}

	store.Logout()

	snap := store.Snapshot()
	if snap.User != nil || snap.Token != "" {
		t.Errorf("snapshot after logout = %+v, want empty pair", snap)
	}
	if got := tokens.Load(); got != "" {
		t.Errorf("persisted token survived logout: %q", got)
	}
	if headers := store.AuthHeaders(); len(headers) != 0 {
		t.Errorf("AuthHeaders() after logout = %v, want empty", headers)
	}
}

func TestRestoreWithValidToken(t *testing.T) {
	store, tokens := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me" {
			t.Errorf("path = %q, want /api/auth/me", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer saved-tok" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(backend.User{ID: "u1", Role: backend.RoleEmployee})
	}))

	if err := tokens.Save("saved-tok"); err != nil {
		t.Fatal(err)
	}

	if snap := store.Snapshot(); !snap.Loading {
		t.Error("store not in loading state before Restore")
	}

	store.Restore(context.Background())

	snap := store.Snapshot()
	if snap.Loading {
		t.Error("store still loading after Restore")
	}
	if snap.User == nil || snap.User.ID != "u1" {
		t.Errorf("snapshot after restore = %+v", snap)
	}
}

func TestRestoreWithRejectedTokenClearsSession(t *testing.T) {
	store, tokens := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Token expired"}`))
	}))

	if err := tokens.Save("stale-tok"); err != nil {
		t.Fatal(err)
	}

	store.Restore(context.Background())

	snap := store.Snapshot()
	if snap.Loading {
		t.Error("store still loading after failed Restore")
	}
	if snap.User != nil || snap.Token != "" {
		t.Errorf("session not cleared after rejected token: %+v", snap)
	}
	if got := tokens.Load(); got != "" {
		t.Errorf("stale token still persisted: %q", got)
	}
}

func TestRestoreWithoutTokenSettlesAnonymous(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected when no token is saved")
	}))

	store.Restore(context.Background())

	snap := store.Snapshot()
	if snap.Loading || snap.User != nil || snap.Token != "" {
		t.Errorf("snapshot = %+v, want settled anonymous", snap)
	}
}
