package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// debugHeaders are the attributes an authenticating proxy may forward.
var debugHeaders = []string{
	"REMOTE_USER",
	"eppn",
	"targeted-id",
	"persistent-id",
	"Shib-Identity-Provider",
	"uid",
	"mail",
	"givenname",
	"surname",
	"o",
	"group",
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler serves the request-debug and health endpoints.
type OpsHandler struct {
	pinger Pinger
}

func NewOpsHandler(pinger Pinger) *OpsHandler {
	return &OpsHandler{pinger: pinger}
}

func (h *OpsHandler) Register(r *mux.Router) {
	r.HandleFunc("/debug", h.Debug).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// Debug echoes the trusted identity headers as plain text.
func (h *OpsHandler) Debug(w http.ResponseWriter, r *http.Request) {
	lines := make([]string, 0, len(debugHeaders))
	for _, name := range debugHeaders {
		lines = append(lines, fmt.Sprintf("%s:%s", name, r.Header.Get(name)))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, strings.Join(lines, "\n"))
}

func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		writeError(w, r, fmt.Errorf("database unreachable: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
