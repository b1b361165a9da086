package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocolViolation marks responses or events the engine cannot interpret.
	ErrProtocolViolation = errors.New("protocol violation")
	// ErrTransport marks network failures and timeouts.
	ErrTransport = errors.New("transport failure")
	// ErrDecryptionUnavailable is returned when a response looks encrypted but no key is held.
	ErrDecryptionUnavailable = errors.New("encryption not set")
	// ErrPluginDispatch marks a plugin handler failure during event processing.
	ErrPluginDispatch = errors.New("plugin dispatch failed")
	// ErrConfiguration marks unrecognized post-login or post-encryption actions.
	ErrConfiguration = errors.New("configuration error")
)

// ProtocolErrorf wraps ErrProtocolViolation with context.
func ProtocolErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrProtocolViolation, fmt.Sprintf(format, args...))
}

// TransportKind classifies transport failures.
type TransportKind int

const (
	// TransportOther covers failures that are neither unreachable nor timeouts.
	TransportOther TransportKind = iota
	// TransportUnreachable means the server could not be contacted at all.
	TransportUnreachable
	// TransportTimeout means the round trip exceeded its deadline.
	TransportTimeout
	// TransportStatus means the server answered with a non-success status.
	TransportStatus
)

func (k TransportKind) String() string {
	switch k {
	case TransportUnreachable:
		return "unreachable"
	case TransportTimeout:
		return "timeout"
	case TransportStatus:
		return "status"
	default:
		return "other"
	}
}

// TransportError is returned by transports.
type TransportError struct {
	Kind   TransportKind
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Kind == TransportStatus {
		return fmt.Sprintf("transport %s %d: %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
}

// Unwrap exposes both the cause and ErrTransport to errors.Is.
func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// PluginError records which plugin failed on which event.
type PluginError struct {
	Plugin string
	Event  Event
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %q failed to process event %q: %v", e.Plugin, e.Event.Method(), e.Err)
}

// Unwrap exposes both the cause and ErrPluginDispatch to errors.Is.
func (e *PluginError) Unwrap() []error { return []error{ErrPluginDispatch, e.Err} }
