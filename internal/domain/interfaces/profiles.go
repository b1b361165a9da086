package interfaces

import domaintypes "prismslink/internal/domain/types"

// ProfileStore persists connection profiles.
type ProfileStore interface {
	SaveProfile(p domaintypes.Profile) error
	LoadProfile(name string) (domaintypes.Profile, bool, error)
	ListProfiles() ([]string, error)
}
