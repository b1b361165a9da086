package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/blowfish"

	"prismslink/internal/domain"
)

var errBlockSize = errors.New("ciphertext is not a whole number of blocks")

// BlowfishMaxKeyBits is the longest key Blowfish accepts, 56 bytes.
const BlowfishMaxKeyBits = 448

// Blowfish encrypts with Blowfish-ECB, pads to the block size with the pad
// length repeated, and encodes the result as standard base64.
type Blowfish struct{}

func (Blowfish) Encrypt(plaintext, key string) (string, error) {
	c, err := blowfish.NewCipher([]byte(key))
	if err != nil {
		return "", fmt.Errorf("blowfish key: %w", err)
	}
	src := pad([]byte(plaintext), blowfish.BlockSize)
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += blowfish.BlockSize {
		c.Encrypt(dst[i:i+blowfish.BlockSize], src[i:i+blowfish.BlockSize])
	}
	return b64(dst), nil
}

func (Blowfish) Decrypt(ciphertext, key string) (string, error) {
	c, err := blowfish.NewCipher([]byte(key))
	if err != nil {
		return "", fmt.Errorf("blowfish key: %w", err)
	}
	src, err := unb64(ciphertext)
	if err != nil {
		return "", err
	}
	if len(src) == 0 || len(src)%blowfish.BlockSize != 0 {
		return "", errBlockSize
	}
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += blowfish.BlockSize {
		c.Decrypt(dst[i:i+blowfish.BlockSize], src[i:i+blowfish.BlockSize])
	}
	return string(unpad(dst, blowfish.BlockSize)), nil
}

var _ domain.Cipher = Blowfish{}
