package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const sealFormatVersion = 1

// ErrWrongPassphrase is returned when a sealed password cannot be opened.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted password")

// sealed is the JSON envelope stored in Profile.SealedPassword.
type sealed struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Nonce  []byte `json:"nonce"`
	Cipher []byte `json:"cipher"`
}

// scryptCost is N, r and p for new envelopes.
type scryptCost struct{ N, R, P int }

var defaultCost = scryptCost{N: 1 << 15, R: 8, P: 1}

func seal(passphrase string, plaintext []byte, cost scryptCost) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt, cost.N, cost.R, cost.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return json.Marshal(sealed{
		V:      sealFormatVersion,
		Salt:   salt,
		N:      cost.N,
		R:      cost.R,
		P:      cost.P,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, plaintext, salt),
	})
}

func open(passphrase string, b []byte) ([]byte, error) {
	var env sealed
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode sealed password: %w", err)
	}
	if env.V != sealFormatVersion {
		return nil, fmt.Errorf("unsupported sealed password version %d", env.V)
	}
	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(env.Nonce) != aead.NonceSize() {
		return nil, ErrWrongPassphrase
	}
	pt, err := aead.Open(nil, env.Nonce, env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}
