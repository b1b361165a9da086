// Package commands defines the prismslink CLI.
//
// Commands
//
//   - connect   Open a session and print the events of chosen plugins
//   - hash      Compute the password hashes and key for given parameters
//   - profile   Save, show and list connection profiles
//
// # Implementation
//
// The root command resolves the home directory, loads the TOML
// configuration and initializes logging before any subcommand runs.
// connect builds a fresh engine per session and reconnects with
// exponential backoff when the server restarts the client or goes away.
package commands
