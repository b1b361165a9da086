// Package store persists connection profiles under the user's home
// directory.
//
// Each profile is one JSON file written atomically through a temp file and
// rename. A saved password never touches disk in the clear: it is sealed
// with a key stretched from a local passphrase by scrypt and encrypted with
// ChaCha20-Poly1305. All methods are safe for concurrent use.
package store
