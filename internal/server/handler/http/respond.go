package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/atinyakov/AccountKeeper/internal/machinecode"
	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/remote"
	"github.com/atinyakov/AccountKeeper/internal/repository"
	"github.com/atinyakov/AccountKeeper/internal/service"
)

var errPathRequired = errors.New("path is required")

// pathRequest is the body of every file-based operation.
type pathRequest struct {
	Path string `json:"path"`
}

// idsRequest is the body of the delete operations.
type idsRequest struct {
	IDs []string `json:"ids"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError turns err into a JSON notification with a matching status.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errPathRequired),
		errors.Is(err, repository.ErrMalformedFile),
		errors.Is(err, models.ErrEmptyID),
		errors.Is(err, service.ErrDuplicateID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoPath):
		return http.StatusConflict
	case errors.Is(err, remote.ErrNotImplemented),
		errors.Is(err, machinecode.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return false
	}
	return true
}

// decodeOptional is decode for bodies that may be left out entirely.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return false
	}
	return true
}

// decodePath reads a pathRequest and requires a non-empty path.
func decodePath(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req pathRequest
	if !decode(w, r, &req) {
		return "", false
	}
	if req.Path == "" {
		writeError(w, errPathRequired)
		return "", false
	}
	return req.Path, true
}
