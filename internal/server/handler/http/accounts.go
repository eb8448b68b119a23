package http

import (
	"net/http"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/go-chi/chi/v5"
)

// AccountService defines the account operations required by AccountHandler.
type AccountService interface {
	Accounts() []models.Account
	Account(id string) (models.Account, error)
	ImportAccounts(path string) (int, error)
	ExportAccounts(path string) error
	DeleteAccounts(ids []string) (int, error)
	SetAccountNote(id, note string) error
	SwitchAccount(id string) error
	ActiveAccountID() string
}

// AccountHandler handles the /api/accounts endpoints.
type AccountHandler struct {
	Service AccountService
}

// List returns every account and the active account id.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"accounts":  h.Service.Accounts(),
		"active_id": h.Service.ActiveAccountID(),
	})
}

// Active returns the active account, or 404 if none is active.
func (h *AccountHandler) Active(w http.ResponseWriter, r *http.Request) {
	acc, err := h.Service.Account(h.Service.ActiveAccountID())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// Import merges the accounts of the file named in the body.
func (h *AccountHandler) Import(w http.ResponseWriter, r *http.Request) {
	path, ok := decodePath(w, r)
	if !ok {
		return
	}
	added, err := h.Service.ImportAccounts(path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"added":    added,
		"accounts": h.Service.Accounts(),
	})
}

// Export writes the accounts to the file named in the body.
func (h *AccountHandler) Export(w http.ResponseWriter, r *http.Request) {
	path, ok := decodePath(w, r)
	if !ok {
		return
	}
	if err := h.Service.ExportAccounts(path); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes the accounts listed in the body.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decode(w, r, &req) {
		return
	}
	removed, err := h.Service.DeleteAccounts(req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// SetNote replaces the note of one account.
func (h *AccountHandler) SetNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Note string `json:"note"`
	}
	if !decode(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Service.SetAccountNote(id, req.Note); err != nil {
		writeError(w, err)
		return
	}
	acc, err := h.Service.Account(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// Activate marks one account as active.
func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.SwitchAccount(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
