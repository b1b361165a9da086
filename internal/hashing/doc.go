// Package hashing implements the password hash and key derivation used by
// the encryption handshake.
//
// The server picks the parameters: pairs of multipliers and moduli. The
// primary pairs fold the password's UTF-16 code units into one digit per
// pair; the secondary pairs scramble each digit further. DeriveKey turns the
// digits into a short base-64 key suitable for the session cipher.
//
// The scheme is deterministic and cheap. It is not a cryptographic hash and
// should not be used as one.
//
// All arithmetic runs on 64-bit unsigned values with a 128-bit intermediate
// product, so results are exact for any modulus that fits in an int64.
package hashing
