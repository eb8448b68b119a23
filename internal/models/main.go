// Package models defines the records kept by AccountKeeper: accounts,
// MCP server entries and rule entries.
package models

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// ErrEmptyID is returned by Validate when a record has a blank id.
var ErrEmptyID = errors.New("id must not be empty")

// Account is a stored credential for the managed tool.
type Account struct {
	// ID is the opaque identity of the account, assigned on creation.
	ID string `json:"id"`
	// Email is the login and the key used when merging imports.
	Email string `json:"email"`
	// Password is stored as entered, unencrypted.
	Password string `json:"password"`
	// Note is a free-form user comment.
	Note string `json:"note"`

	// The fields below are filled in by the remote usage fetch only.
	PlanName          *string `json:"plan_name"`
	PlanTier          *string `json:"plan_tier"`
	PlanEnd           *string `json:"plan_end"`
	UsedPromptCredits *int    `json:"used_prompt_credits"`
	UsedFlowCredits   *int    `json:"used_flow_credits"`
	APIKey            *string `json:"api_key"`
	LastSyncTime      *string `json:"last_sync_time"`
}

// Clone returns a copy whose optional fields point to fresh values.
func (a Account) Clone() Account {
	out := a
	out.PlanName = clonePtr(a.PlanName)
	out.PlanTier = clonePtr(a.PlanTier)
	out.PlanEnd = clonePtr(a.PlanEnd)
	out.UsedPromptCredits = clonePtr(a.UsedPromptCredits)
	out.UsedFlowCredits = clonePtr(a.UsedFlowCredits)
	out.APIKey = clonePtr(a.APIKey)
	out.LastSyncTime = clonePtr(a.LastSyncTime)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ServerConfig describes one MCP server launch entry.
type ServerConfig struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
	Enabled bool              `json:"enabled"`
}

// Normalize replaces nil Args and Env with empty values so the record
// always serializes as [] and {}.
func (s *ServerConfig) Normalize() {
	if s.Args == nil {
		s.Args = []string{}
	}
	if s.Env == nil {
		s.Env = map[string]string{}
	}
}

// Validate reports ErrEmptyID when the id is blank.
func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrEmptyID
	}
	return nil
}

// RuleConfig is a named prompt rule.
type RuleConfig struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// Validate reports ErrEmptyID when the id is blank.
func (r RuleConfig) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	return nil
}

const previewLimit = 60

// Preview returns the prompt on a single line, cut to 60 characters.
func (r RuleConfig) Preview() string {
	s := strings.ReplaceAll(r.Prompt, "\n", " ")
	runes := []rune(s)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit-3]) + "..."
	}
	return s
}

// Clone returns a copy that shares no slices or maps with s.
func (s ServerConfig) Clone() ServerConfig {
	out := s
	out.Args = slices.Clone(s.Args)
	out.Env = maps.Clone(s.Env)
	out.Normalize()
	return out
}
