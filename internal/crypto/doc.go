// Package crypto provides the ciphers a session can encrypt its traffic with.
//
// Contents
//
//   - Cipher selection by Kind (ParseKind, New)
//   - Blowfish in ECB mode with base64 output, the default
//   - AES-128-CBC in the OpenSSL "Salted__" format with an MD5 key schedule
//   - A pass-through cipher for deployments with encryption disabled
//   - Short key fingerprints for logging (Fingerprint)
//   - Best-effort wiping of password buffers (Wipe)
//
// # Notes
//
// Keys are the short strings produced by the hashing package, used as raw
// key bytes. These ciphers exist for wire compatibility with the server and
// give no integrity protection; the session treats an undecodable response as
// a protocol violation.
package crypto
