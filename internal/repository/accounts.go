package repository

import (
	"encoding/json"
	"errors"
	"io/fs"
	"slices"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountRepository stores accounts in a fixed file and handles
// merge-import and export to other files.
type AccountRepository struct {
	path  string
	file  *JSONFile[models.Account]
	log   *zap.Logger
	newID func() string
}

// NewAccountRepository creates an AccountRepository backed by path.
// The parent directory of path must already exist.
func NewAccountRepository(path string, log *zap.Logger) *AccountRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountRepository{
		path:  path,
		file:  NewJSONFile(models.AccountFromFields, log),
		log:   log,
		newID: uuid.NewString,
	}
}

// Path returns the default account file.
func (r *AccountRepository) Path() string {
	return r.path
}

// Load reads the accounts from the default file.
func (r *AccountRepository) Load() ([]models.Account, error) {
	return r.file.Load(r.path)
}

// Save rewrites the default file with accounts.
func (r *AccountRepository) Save(accounts []models.Account) error {
	return r.file.Save(r.path, accounts)
}

// Export writes accounts to path. The default file is not touched.
func (r *AccountRepository) Export(path string, accounts []models.Account) error {
	return r.file.Save(path, accounts)
}

// ImportFromExternal merges the accounts listed in the file at path into
// existing and returns the result.
//
// Entries are keyed by exact email. An entry whose email is empty or
// already known is dropped; every other entry becomes a new account with
// a fresh id. Existing accounts come first and are never modified.
// A missing file returns existing unchanged.
func (r *AccountRepository) ImportFromExternal(path string, existing []models.Account) ([]models.Account, error) {
	elems, err := readArray(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return slices.Clone(existing), nil
		}
		return nil, err
	}

	merged := make([]models.Account, 0, len(existing)+len(elems))
	byEmail := make(map[string]int, len(existing))
	for _, a := range existing {
		// duplicate emails collapse into the first slot, last record wins
		if i, ok := byEmail[a.Email]; ok {
			merged[i] = a
			continue
		}
		byEmail[a.Email] = len(merged)
		merged = append(merged, a)
	}

	added := 0
	for _, raw := range elems {
		obj, ok := asObject(raw)
		if !ok {
			continue
		}
		var email string
		if err := json.Unmarshal(obj["email"], &email); err != nil || email == "" {
			continue
		}
		if _, ok := byEmail[email]; ok {
			continue
		}
		var password string
		if raw, ok := obj["password"]; ok {
			_ = json.Unmarshal(raw, &password)
		}
		byEmail[email] = len(merged)
		merged = append(merged, models.Account{
			ID:       r.newID(),
			Email:    email,
			Password: password,
		})
		added++
	}

	r.log.Info("imported accounts",
		zap.String("path", path), zap.Int("added", added), zap.Int("total", len(merged)))
	return merged, nil
}
