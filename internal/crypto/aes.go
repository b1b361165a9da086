package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" // #nosec G501 -- OpenSSL EVP_BytesToKey compatibility
	"errors"
	"fmt"
	"io"

	"prismslink/internal/domain"
)

const (
	saltHeader = "Salted__"
	saltBytes  = 8
	aesKeySize = 16
)

var errNotSalted = errors.New("ciphertext is missing the Salted__ header")

// AES is AES-128-CBC in the OpenSSL salted format:
// base64("Salted__" || salt || ciphertext), with key and IV derived from the
// key string and salt by EVP_BytesToKey over MD5.
type AES struct {
	// Rand supplies salts.
	Rand io.Reader
}

func (a *AES) Encrypt(plaintext, key string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := io.ReadFull(a.Rand, salt); err != nil {
		return "", fmt.Errorf("aes salt: %w", err)
	}
	k, iv := bytesToKey([]byte(key), salt)
	block, err := aes.NewCipher(k)
	if err != nil {
		return "", err
	}
	src := pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(saltHeader)+saltBytes+len(src))
	copy(out, saltHeader)
	copy(out[len(saltHeader):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(saltHeader)+saltBytes:], src)
	return b64(out), nil
}

func (a *AES) Decrypt(ciphertext, key string) (string, error) {
	raw, err := unb64(ciphertext)
	if err != nil {
		return "", err
	}
	if len(raw) < len(saltHeader)+saltBytes || !bytes.Equal(raw[:len(saltHeader)], []byte(saltHeader)) {
		return "", errNotSalted
	}
	salt := raw[len(saltHeader) : len(saltHeader)+saltBytes]
	body := raw[len(saltHeader)+saltBytes:]
	if len(body) == 0 || len(body)%aes.BlockSize != 0 {
		return "", errBlockSize
	}
	k, iv := bytesToKey([]byte(key), salt)
	block, err := aes.NewCipher(k)
	if err != nil {
		return "", err
	}
	dst := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(dst, body)
	return string(unpad(dst, aes.BlockSize)), nil
}

// bytesToKey is OpenSSL's EVP_BytesToKey with MD5, one iteration, producing
// a 128-bit key followed by a 128-bit IV.
func bytesToKey(pass, salt []byte) (key, iv []byte) {
	var out, prev []byte
	for len(out) < aesKeySize+aes.BlockSize {
		h := md5.New() // #nosec G401
		h.Write(prev)
		h.Write(pass)
		h.Write(salt)
		prev = h.Sum(nil)
		out = append(out, prev...)
	}
	return out[:aesKeySize], out[aesKeySize : aesKeySize+aes.BlockSize]
}

var _ domain.Cipher = (*AES)(nil)
