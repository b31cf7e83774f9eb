package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"invoicer/internal/logger"
)

// Store errors.
var (
	// ErrNotFound is returned when no account exists under the given code.
	ErrNotFound = errors.New("no account by that code")

	// ErrDuplicate is returned when registering a code that is already taken.
	ErrDuplicate = errors.New("account code already registered")
)

// Store is the in-memory book of customer accounts, keyed by lower-cased
// account code. It is loaded wholesale from a JSON file at session start and
// rewritten wholesale on save; there are no incremental writes.
type Store struct {
	path     string
	accounts map[string]*Account
	log      zerolog.Logger
}

// Load reads the account store from path. A missing file is not an error;
// it yields an empty store that will be created on the first Save.
func Load(path string) (*Store, error) {
	const op = "Load"

	s := &Store{
		path:     path,
		accounts: make(map[string]*Account),
		log:      logger.WithComponent("account-store"),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info().Str("path", path).Msg("No account data found, starting with an empty store")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: reading %s: %w", op, path, err)
	}

	var records map[string]*Account
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: parsing %s: %w", op, path, err)
	}

	for _, acc := range records {
		s.accounts[strings.ToLower(acc.Code)] = acc
	}

	s.log.Info().
		Str("path", path).
		Int("accounts", len(s.accounts)).
		Msg("Account data loaded")

	return s, nil
}

// Save rewrites the whole store to its backing file.
func (s *Store) Save() error {
	const op = "Save"

	records := make(map[string]*Account, len(s.accounts))
	for _, acc := range s.accounts {
		records[acc.Code] = acc
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: encoding accounts: %w", op, err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%s: writing %s: %w", op, s.path, err)
	}

	s.log.Info().
		Str("path", s.path).
		Int("accounts", len(s.accounts)).
		Msg("Account data saved")

	return nil
}

// Add registers a new account. The code must not already be in use
// (codes are compared case-insensitively).
func (s *Store) Add(acc *Account) error {
	key := strings.ToLower(acc.Code)
	if _, ok := s.accounts[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, acc.Code)
	}
	s.accounts[key] = acc

	s.log.Info().Str("code", acc.Code).Msg("Customer account registered")
	return nil
}

// Get looks up an account by code, case-insensitively.
func (s *Store) Get(code string) (*Account, error) {
	acc, ok := s.accounts[strings.ToLower(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, code)
	}
	return acc, nil
}

// Codes returns all registered account codes, sorted alphabetically.
func (s *Store) Codes() []string {
	codes := make([]string, 0, len(s.accounts))
	for _, acc := range s.accounts {
		codes = append(codes, acc.Code)
	}
	sort.Strings(codes)
	return codes
}

// Len reports how many accounts are registered.
func (s *Store) Len() int {
	return len(s.accounts)
}
