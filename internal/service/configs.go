package service

import (
	"fmt"
	"strings"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"go.uber.org/zap"
)

// OpenServers loads the MCP server file at path and makes it the session's
// MCP file. On failure the current list is kept.
func (s *Session) OpenServers(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.servers.open(path); err != nil {
		return fmt.Errorf("open MCP file: %w", err)
	}
	s.log.Info("MCP file opened", zap.String("path", path), zap.Int("count", len(s.servers.items)))
	return nil
}

// SaveServers writes the MCP list back to the opened file.
func (s *Session) SaveServers() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.servers.save(); err != nil {
		return fmt.Errorf("save MCP file: %w", err)
	}
	return nil
}

// SaveServersAs writes the MCP list to path and makes it the session's MCP file.
func (s *Session) SaveServersAs(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.servers.saveAs(path); err != nil {
		return fmt.Errorf("save MCP file: %w", err)
	}
	return nil
}

// BackupServers writes the MCP list to path without changing the session's MCP file.
func (s *Session) BackupServers(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.servers.backup(path); err != nil {
		return fmt.Errorf("backup MCP file: %w", err)
	}
	s.log.Info("MCP backup written", zap.String("path", path))
	return nil
}

// PutServer adds cfg when originalID is empty, or replaces the entry with
// id originalID. The entry may be renamed but its id must be unique.
func (s *Session) PutServer(originalID string, cfg models.ServerConfig) error {
	cfg.ID = strings.TrimSpace(cfg.ID)
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.servers.put(originalID, cfg); err != nil {
		return fmt.Errorf("MCP server %q: %w", cfg.ID, err)
	}
	return nil
}

// DeleteServers removes the MCP entries with the given ids.
func (s *Session) DeleteServers(ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.servers.remove(ids)
}

// Servers returns a copy of the MCP list.
func (s *Session) Servers() []models.ServerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.servers.snapshot()
}

// Server returns the MCP entry with the given id.
func (s *Session) Server(id string) (models.ServerConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.servers.find(id)
	if !ok {
		return models.ServerConfig{}, fmt.Errorf("MCP server %q: %w", id, ErrNotFound)
	}
	return cfg, nil
}

// ServersPath returns the session's MCP file, or "" if none.
func (s *Session) ServersPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.servers.path
}

// OpenRules loads the rules file at path and makes it the session's rules
// file. On failure the current list is kept.
func (s *Session) OpenRules(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rules.open(path); err != nil {
		return fmt.Errorf("open rules file: %w", err)
	}
	s.log.Info("rules file opened", zap.String("path", path), zap.Int("count", len(s.rules.items)))
	return nil
}

// SaveRules writes the rules back to the opened file.
func (s *Session) SaveRules() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rules.save(); err != nil {
		return fmt.Errorf("save rules file: %w", err)
	}
	return nil
}

// SaveRulesAs writes the rules to path and makes it the session's rules file.
func (s *Session) SaveRulesAs(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rules.saveAs(path); err != nil {
		return fmt.Errorf("save rules file: %w", err)
	}
	return nil
}

// BackupRules writes the rules to path without changing the session's rules file.
func (s *Session) BackupRules(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rules.backup(path); err != nil {
		return fmt.Errorf("backup rules file: %w", err)
	}
	s.log.Info("rules backup written", zap.String("path", path))
	return nil
}

// PutRule adds rule when originalID is empty, or replaces the rule with id
// originalID.
func (s *Session) PutRule(originalID string, rule models.RuleConfig) error {
	rule.ID = strings.TrimSpace(rule.ID)
	if err := rule.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rules.put(originalID, rule); err != nil {
		return fmt.Errorf("rule %q: %w", rule.ID, err)
	}
	return nil
}

// DeleteRules removes the rules with the given ids.
func (s *Session) DeleteRules(ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.remove(ids)
}

// Rules returns a copy of the rule list.
func (s *Session) Rules() []models.RuleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.snapshot()
}

// Rule returns the rule with the given id.
func (s *Session) Rule(id string) (models.RuleConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rules.find(id)
	if !ok {
		return models.RuleConfig{}, fmt.Errorf("rule %q: %w", id, ErrNotFound)
	}
	return r, nil
}

// RulesPath returns the session's rules file, or "" if none.
func (s *Session) RulesPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.path
}
