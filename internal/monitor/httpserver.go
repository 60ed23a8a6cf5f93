package monitor

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"locatrack.io/locatrack/internal/backend"
	"locatrack.io/locatrack/internal/track"
)

// statusResponse is the /api/v1/status payload.
type statusResponse struct {
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Objects     int       `json:"objects"`
	Moving      int       `json:"moving"`
	Offline     int       `json:"offline"`
	UnreadTotal int       `json:"unread_total"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

func (m *Monitor) newHTTPHandler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Ready means an authenticated session and at least one GPS snapshot.
	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if _, ok := m.store.Identity(); !ok || m.tracker.RefreshedAt().IsZero() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/v1/status", m.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/objects", m.handleObjects).Methods(http.MethodGet)

	return r
}

func (m *Monitor) handleStatus(w http.ResponseWriter, req *http.Request) {
	user, ok := m.store.Identity()
	if !ok {
		http.Error(w, "no active session", http.StatusServiceUnavailable)
		return
	}

	objects := m.tracker.Snapshot()
	now := time.Now()

	status := statusResponse{
		Email:       user.Email,
		Role:        string(user.Role),
		Objects:     len(objects),
		UnreadTotal: m.inbox.UnreadTotal(),
		RefreshedAt: m.tracker.RefreshedAt(),
	}
	for i := range objects {
		switch track.Classify(&objects[i], now) {
		case track.StatusMoving:
			status.Moving++
		case track.StatusOffline:
			status.Offline++
		}
	}

	writeJSON(w, status)
}

func (m *Monitor) handleObjects(w http.ResponseWriter, req *http.Request) {
	objects := m.tracker.Snapshot()
	if objects == nil {
		objects = []backend.TrackedObject{}
	}

	writeJSON(w, objects)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
