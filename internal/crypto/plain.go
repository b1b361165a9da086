package crypto

import "prismslink/internal/domain"

// Plain leaves payloads untouched.
type Plain struct{}

func (Plain) Encrypt(plaintext, _ string) (string, error)  { return plaintext, nil }
func (Plain) Decrypt(ciphertext, _ string) (string, error) { return ciphertext, nil }

var _ domain.Cipher = Plain{}
