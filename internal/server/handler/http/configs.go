package http

import (
	"net/http"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// MCPService defines the MCP server operations required by MCPHandler.
type MCPService interface {
	Servers() []models.ServerConfig
	ServersPath() string
	OpenServers(path string) error
	SaveServers() error
	SaveServersAs(path string) error
	BackupServers(path string) error
	PutServer(originalID string, cfg models.ServerConfig) error
	DeleteServers(ids []string) int
}

// RuleService defines the rule operations required by RuleHandler.
type RuleService interface {
	Rules() []models.RuleConfig
	RulesPath() string
	OpenRules(path string) error
	SaveRules() error
	SaveRulesAs(path string) error
	BackupRules(path string) error
	PutRule(originalID string, rule models.RuleConfig) error
	DeleteRules(ids []string) int
}

// MCPHandler handles the /api/mcp endpoints.
type MCPHandler struct {
	Service MCPService
}

func (h *MCPHandler) list(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{
		"path":    h.Service.ServersPath(),
		"servers": h.Service.Servers(),
	})
}

// List returns the session's MCP file and entries.
func (h *MCPHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w)
}

// Open loads the MCP file named in the body.
func (h *MCPHandler) Open(w http.ResponseWriter, r *http.Request) {
	path, ok := decodePath(w, r)
	if !ok {
		return
	}
	if err := h.Service.OpenServers(path); err != nil {
		writeError(w, err)
		return
	}
	h.list(w)
}

// Save writes the entries to the opened file, or to the body's path if one is given.
func (h *MCPHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	var err error
	if req.Path != "" {
		err = h.Service.SaveServersAs(req.Path)
	} else {
		err = h.Service.SaveServers()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Backup copies the entries to the file named in the body.
func (h *MCPHandler) Backup(w http.ResponseWriter, r *http.Request) {
	path, ok := decodePath(w, r)
	if !ok {
		return
	}
	if err := h.Service.BackupServers(path); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Put adds or replaces one entry.
func (h *MCPHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OriginalID string              `json:"original_id"`
		Server     models.ServerConfig `json:"server"`
	}
	req.Server.Enabled = true
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.PutServer(req.OriginalID, req.Server); err != nil {
		writeError(w, err)
		return
	}
	h.list(w)
}

// Delete removes the entries listed in the body.
func (h *MCPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": h.Service.DeleteServers(req.IDs)})
}

// RuleHandler handles the /api/rules endpoints.
type RuleHandler struct {
	Service RuleService
}

func (h *RuleHandler) list(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]any{
		"path":  h.Service.RulesPath(),
		"rules": h.Service.Rules(),
	})
}

// List returns the session's rules file and rules.
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w)
}

// Open loads the rules file named in the body.
func (h *RuleHandler) Open(w http.ResponseWriter, r *http.Request) {
	path, ok := decodePath(w, r)
	if !ok {
		return
	}
	if err := h.Service.OpenRules(path); err != nil {
		writeError(w, err)
		return
	}
	h.list(w)
}

// Save writes the rules to the opened file, or to the body's path if one is given.
func (h *RuleHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	var err error
	if req.Path != "" {
		err = h.Service.SaveRulesAs(req.Path)
	} else {
		err = h.Service.SaveRules()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Backup copies the rules to the file named in the body.
func (h *RuleHandler) Backup(w http.ResponseWriter, r *http.Request) {
	path, ok := decodePath(w, r)
	if !ok {
		return
	}
	if err := h.Service.BackupRules(path); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Put adds or replaces one rule.
func (h *RuleHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OriginalID string            `json:"original_id"`
		Rule       models.RuleConfig `json:"rule"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.PutRule(req.OriginalID, req.Rule); err != nil {
		writeError(w, err)
		return
	}
	h.list(w)
}

// Delete removes the rules listed in the body.
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": h.Service.DeleteRules(req.IDs)})
}
