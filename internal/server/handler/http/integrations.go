package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/AccountKeeper/internal/remote"
	"github.com/go-chi/chi/v5"
)

// RemoteClient is the remote account API.
type RemoteClient interface {
	FetchCurrentUser(ctx context.Context, authToken string) (*remote.User, error)
	FetchCurrentPeriodUsage(ctx context.Context, bearerToken string) (*remote.Usage, error)
}

// IntegrationHandler exposes the remote API and machine-code operations.
type IntegrationHandler struct {
	Remote RemoteClient
	// Backup and Restore take an OS name; "" means the running OS.
	Backup  func(osName string) error
	Restore func(osName string) error
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// CurrentUser proxies the current-user request.
func (h *IntegrationHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Remote.FetchCurrentUser(r.Context(), bearer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// CurrentUsage proxies the current-period usage request.
func (h *IntegrationHandler) CurrentUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.Remote.FetchCurrentPeriodUsage(r.Context(), bearer(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

// MachineCode runs the backup or restore operation named by {op}.
// The optional "os" query parameter selects the target OS.
func (h *IntegrationHandler) MachineCode(w http.ResponseWriter, r *http.Request) {
	var run func(string) error
	switch chi.URLParam(r, "op") {
	case "backup":
		run = h.Backup
	case "restore":
		run = h.Restore
	default:
		http.NotFound(w, r)
		return
	}
	if err := run(r.URL.Query().Get("os")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
