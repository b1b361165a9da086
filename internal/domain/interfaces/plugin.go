package interfaces

import domaintypes "prismslink/internal/domain/types"

// Plugin receives the events addressed to its name.
type Plugin interface {
	Name() string
	ProcessEvent(event domaintypes.Event) error
}

// PostProcessor is implemented by plugins that want one notification after
// each batch in which they received at least one event.
type PostProcessor interface {
	PostProcessEvents()
}
