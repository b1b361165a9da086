package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"prismslink/internal/crypto"
	"prismslink/internal/domain"
)

const (
	profilesDir = "profiles"
	profileExt  = ".json"
)

// ErrInvalidProfileName is returned for names that cannot be used as file
// names.
var ErrInvalidProfileName = errors.New("invalid profile name")

var profileName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ProfileFileStore stores profiles as JSON files under home/profiles.
type ProfileFileStore struct {
	dir  string
	cost scryptCost
	now  func() time.Time
	mu   sync.Mutex
}

// NewProfileFileStore returns a store rooted at home.
func NewProfileFileStore(home string) *ProfileFileStore {
	return &ProfileFileStore{
		dir:  filepath.Join(home, profilesDir),
		cost: defaultCost,
		now:  time.Now,
	}
}

var _ domain.ProfileStore = (*ProfileFileStore)(nil)

func (s *ProfileFileStore) path(name string) (string, error) {
	if !profileName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidProfileName, name)
	}
	return filepath.Join(s.dir, name+profileExt), nil
}

// SaveProfile writes p, stamping its update time.
func (s *ProfileFileStore) SaveProfile(p domain.Profile) error {
	path, err := s.path(p.Name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedUTC = s.now().UTC().Unix()
	if err := writeJSON(path, p, 0o600); err != nil {
		return fmt.Errorf("save profile %s: %w", p.Name, err)
	}
	return nil
}

// LoadProfile reads the named profile. It reports false if none is saved.
func (s *ProfileFileStore) LoadProfile(name string) (domain.Profile, bool, error) {
	path, err := s.path(name)
	if err != nil {
		return domain.Profile{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var p domain.Profile
	ok, err := readJSON(path, &p)
	if err != nil {
		return domain.Profile{}, false, fmt.Errorf("load profile %s: %w", name, err)
	}
	return p, ok, nil
}

// ListProfiles returns the saved profile names in order.
func (s *ProfileFileStore) ListProfiles() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), profileExt)
		if e.IsDir() || !ok || !profileName.MatchString(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// SealPassword encrypts password under passphrase for Profile.SealedPassword.
func (s *ProfileFileStore) SealPassword(passphrase, password string) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.New("seal password: empty passphrase")
	}
	return seal(passphrase, []byte(password), s.cost)
}

// OpenPassword recovers a password sealed by SealPassword. The caller
// should wipe the result once it has been handed to the session.
func (s *ProfileFileStore) OpenPassword(passphrase string, sealedPassword []byte) ([]byte, error) {
	pt, err := open(passphrase, sealedPassword)
	if err != nil {
		crypto.Wipe(pt)
		return nil, err
	}
	return pt, nil
}
