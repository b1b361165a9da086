// Package domain defines the data model and contracts shared by the session
// engine and its collaborators.
//
// It contains plain types (events, request maps, handshake parameters,
// credentials, profiles), the interfaces implemented outside the engine
// (cipher, transport, plugin, UI, profile store) and the error taxonomy.
package domain
