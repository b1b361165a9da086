package interfaces

// Cipher encrypts request payloads and decrypts response bodies under the
// key derived during the handshake.
type Cipher interface {
	Encrypt(plaintext, key string) (string, error)
	Decrypt(ciphertext, key string) (string, error)
}
