package domain

import (
	interfaces "prismslink/internal/domain/interfaces"
	types "prismslink/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Event       = types.Event
	Params      = types.Params
	WireRequest = types.WireRequest
	Hashing     = types.Hashing
	Credentials = types.Credentials
	VersionInfo = types.VersionInfo
	Profile     = types.Profile
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Cipher        = interfaces.Cipher
	Transport     = interfaces.Transport
	Plugin        = interfaces.Plugin
	PostProcessor = interfaces.PostProcessor
	UI            = interfaces.UI
	ProfileStore  = interfaces.ProfileStore
)
