package crypto

import (
	"crypto/rand"
	"fmt"
	"strings"

	"prismslink/internal/domain"
)

// Kind names a cipher implementation.
type Kind string

const (
	KindBlowfish Kind = "dojo-blowfish"
	KindAES      Kind = "AES"
	KindNone     Kind = "none"
)

// DefaultKind is used when no encryption type is configured.
const DefaultKind = KindBlowfish

// ParseKind maps a configured encryption type to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dojo-blowfish", "blowfish":
		return KindBlowfish, nil
	case "aes", "aes-128":
		return KindAES, nil
	case "none", "plain", "off":
		return KindNone, nil
	default:
		return "", fmt.Errorf("%w: unknown encryption type %q", domain.ErrConfiguration, s)
	}
}

// New returns the cipher for kind.
func New(kind Kind) (domain.Cipher, error) {
	switch kind {
	case KindBlowfish:
		return Blowfish{}, nil
	case KindAES:
		return &AES{Rand: rand.Reader}, nil
	case KindNone:
		return Plain{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown cipher kind %q", domain.ErrConfiguration, kind)
	}
}
