// Package service holds the in-memory working state of a keeper session
// and the workflows the shells run against it, delegating persistence to
// repository interfaces.
package service

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when an edit would give two records the same id.
	ErrDuplicateID = errors.New("id already in use")
	// ErrNoPath is returned by Save when no file has been opened or chosen yet.
	ErrNoPath = errors.New("no file chosen")
)

// AccountStore defines the persistence operations needed for accounts.
type AccountStore interface {
	// Load reads the accounts from the default file.
	Load() ([]models.Account, error)
	// Save rewrites the default file.
	Save(accounts []models.Account) error
	// Export writes accounts to an arbitrary path.
	Export(path string, accounts []models.Account) error
	// ImportFromExternal merges the accounts found at path into existing.
	ImportFromExternal(path string, existing []models.Account) ([]models.Account, error)
}

// ListStore loads and saves a list of records at a caller-chosen path.
type ListStore[T any] interface {
	Load(path string) ([]T, error)
	Save(path string, records []T) error
}

// Session owns the account, MCP server and rule lists of one running keeper.
// All methods are safe for concurrent use; accessors return copies.
type Session struct {
	mu  sync.Mutex
	log *zap.Logger

	accountStore AccountStore
	accounts     []models.Account
	activeID     string

	servers *collection[models.ServerConfig]
	rules   *collection[models.RuleConfig]
}

// NewSession constructs a Session with empty lists.
// Call LoadAccounts to read the stored accounts.
func NewSession(accounts AccountStore, servers ListStore[models.ServerConfig], rules ListStore[models.RuleConfig], log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		log:          log,
		accountStore: accounts,
		accounts:     []models.Account{},
		servers: newCollection(servers,
			func(s models.ServerConfig) string { return s.ID },
			models.ServerConfig.Clone),
		rules: newCollection(rules,
			func(r models.RuleConfig) string { return r.ID },
			func(r models.RuleConfig) models.RuleConfig { return r }),
	}
}

// LoadAccounts replaces the in-memory accounts with the stored ones.
func (s *Session) LoadAccounts() error {
	loaded, err := s.accountStore.Load()
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = loaded
	s.log.Debug("accounts loaded", zap.Int("count", len(loaded)))
	return nil
}

// Accounts returns a copy of the account list.
func (s *Session) Accounts() []models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAccounts(s.accounts)
}

// Account returns the account with the given id.
func (s *Session) Account(id string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.accountIndex(id)
	if i < 0 {
		return models.Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	return s.accounts[i].Clone(), nil
}

// ImportAccounts merges the accounts from an external file and saves the
// result to the default file. It returns the number of accounts added.
// On any failure the session keeps its previous accounts.
func (s *Session) ImportAccounts(path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := s.accountStore.ImportFromExternal(path, slices.Clone(s.accounts))
	if err != nil {
		return 0, fmt.Errorf("import accounts: %w", err)
	}
	if err := s.accountStore.Save(merged); err != nil {
		return 0, fmt.Errorf("save accounts: %w", err)
	}

	known := make(map[string]bool, len(s.accounts))
	for _, a := range s.accounts {
		known[a.ID] = true
	}
	added := 0
	for _, a := range merged {
		if !known[a.ID] {
			added++
		}
	}
	s.accounts = merged
	s.log.Info("accounts imported", zap.String("path", path), zap.Int("added", added))
	return added, nil
}

// ExportAccounts writes the current accounts to path.
func (s *Session) ExportAccounts(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.accountStore.Export(path, s.accounts); err != nil {
		return fmt.Errorf("export accounts: %w", err)
	}
	s.log.Info("accounts exported", zap.String("path", path), zap.Int("count", len(s.accounts)))
	return nil
}

// DeleteAccounts removes the accounts with the given ids and saves the
// rest. It returns how many were removed.
func (s *Session) DeleteAccounts(ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := toSet(ids)
	remaining := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if !drop[a.ID] {
			remaining = append(remaining, a)
		}
	}
	removed := len(s.accounts) - len(remaining)
	if removed == 0 {
		return 0, nil
	}
	if err := s.accountStore.Save(remaining); err != nil {
		return 0, fmt.Errorf("save accounts: %w", err)
	}
	s.accounts = remaining
	if drop[s.activeID] {
		s.activeID = ""
	}
	s.log.Info("accounts deleted", zap.Int("removed", removed))
	return removed, nil
}

// SetAccountNote changes the note of one account and saves.
func (s *Session) SetAccountNote(id, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.accountIndex(id)
	if i < 0 {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	updated := slices.Clone(s.accounts)
	updated[i].Note = note
	if err := s.accountStore.Save(updated); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	s.accounts = updated
	return nil
}

// SwitchAccount marks the account with the given id as active.
// The marker lives only as long as the session.
func (s *Session) SwitchAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accountIndex(id) < 0 {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	s.activeID = id
	return nil
}

// ActiveAccountID returns the active account id, or "" if none.
func (s *Session) ActiveAccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

func (s *Session) accountIndex(id string) int {
	return slices.IndexFunc(s.accounts, func(a models.Account) bool { return a.ID == id })
}

func cloneAccounts(accounts []models.Account) []models.Account {
	out := make([]models.Account, len(accounts))
	for i, a := range accounts {
		out[i] = a.Clone()
	}
	return out
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
