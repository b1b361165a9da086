// Package app wires application dependencies for the CLI.
//
// It resolves the effective settings from the configuration file and an
// optional saved profile, builds the transport, cipher and profile store,
// and constructs session engines from them. Run drives one engine until its
// session ends; Supervise restarts sessions with exponential backoff.
package app
