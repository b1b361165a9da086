package crypto_test

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prismslink/internal/crypto"
	"prismslink/internal/domain"
)

func TestParseKind(t *testing.T) {
	tests := map[string]crypto.Kind{
		"":              crypto.KindBlowfish,
		"dojo-blowfish": crypto.KindBlowfish,
		"AES":           crypto.KindAES,
		"aes":           crypto.KindAES,
		"none":          crypto.KindNone,
	}
	for in, want := range tests {
		got, err := crypto.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := crypto.ParseKind("rot13")
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestCiphers_RoundTrip(t *testing.T) {
	for _, kind := range []crypto.Kind{crypto.KindBlowfish, crypto.KindAES, crypto.KindNone} {
		c, err := crypto.New(kind)
		require.NoError(t, err)
		for _, msg := range []string{"", "x", "exactly8", `{"method":"init","serverPadding":"padding"}`, "héllo"} {
			ct, err := c.Encrypt(msg, "zJCVB")
			require.NoError(t, err, "%s encrypt %q", kind, msg)
			pt, err := c.Decrypt(ct, "zJCVB")
			require.NoError(t, err, "%s decrypt %q", kind, msg)
			assert.Equal(t, msg, pt, "%s", kind)
		}
	}
}

func TestBlowfish_KnownVector(t *testing.T) {
	// Schneier's first ECB vector: zero key, zero block -> 4EF997456198DD78.
	key := string(make([]byte, 8))
	ct, err := crypto.Blowfish{}.Encrypt(string(make([]byte, 8)), key)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ct)
	require.NoError(t, err)
	require.Len(t, raw, 16, "a full padding block follows an aligned plaintext")
	assert.Equal(t, "4ef997456198dd78", hex.EncodeToString(raw[:8]))
}

func TestBlowfish_EmptyKeyFails(t *testing.T) {
	_, err := crypto.Blowfish{}.Encrypt("data", "")
	assert.Error(t, err)
}

func TestBlowfish_WrongKeyDoesNotRecover(t *testing.T) {
	ct, err := crypto.Blowfish{}.Encrypt(`[{"method":"init"}]`, "right")
	require.NoError(t, err)
	pt, err := crypto.Blowfish{}.Decrypt(ct, "wrong")
	if err == nil {
		assert.NotEqual(t, `[{"method":"init"}]`, pt)
	}
}

func TestAES_OpenSSLVector(t *testing.T) {
	// openssl enc -aes-128-cbc -md md5 -S 0102030405060708 -pass pass:zJCVB
	const vector = "U2FsdGVkX18BAgMEBQYHCCBIFlzMnPvekm5hVH55lkQ="

	c := &crypto.AES{Rand: bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8})}
	ct, err := c.Encrypt("hello prisms", "zJCVB")
	require.NoError(t, err)
	assert.Equal(t, vector, ct)

	pt, err := (&crypto.AES{}).Decrypt(vector, "zJCVB")
	require.NoError(t, err)
	assert.Equal(t, "hello prisms", pt)
}

func TestAES_AcceptsWrappedBase64(t *testing.T) {
	const vector = "U2FsdGVkX18BAgMEBQYHCCBIFlzM\nnPvekm5hVH55lkQ="
	pt, err := (&crypto.AES{}).Decrypt(vector, "zJCVB")
	require.NoError(t, err)
	assert.Equal(t, "hello prisms", pt)
}

func TestAES_RejectsUnsalted(t *testing.T) {
	_, err := (&crypto.AES{}).Decrypt(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 32))), "k")
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "", crypto.Fingerprint(""))
	fp := crypto.Fingerprint("zJCVB")
	assert.Len(t, fp, 12)
	assert.Equal(t, fp, crypto.Fingerprint("zJCVB"))
	assert.NotEqual(t, fp, crypto.Fingerprint("zJCVC"))
}

func TestWipe(t *testing.T) {
	a, b := []byte("secret"), []byte("other")
	crypto.Wipe(a, b, nil)
	assert.Equal(t, make([]byte, 6), a)
	assert.Equal(t, make([]byte, 5), b)
}
