package store

import "prismslink/internal/domain"

// PasswordSealer protects saved passwords.
type PasswordSealer interface {
	SealPassword(passphrase, password string) ([]byte, error)
	OpenPassword(passphrase string, sealed []byte) ([]byte, error)
}

// Profiles is a profile store that can also seal passwords.
type Profiles interface {
	domain.ProfileStore
	PasswordSealer
}

var _ Profiles = (*ProfileFileStore)(nil)
