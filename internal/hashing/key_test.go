package hashing_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prismslink/internal/hashing"
)

func TestDeriveKey_WorkedExample(t *testing.T) {
	// Full hash 21 encodes as the single character 'V'.
	assert.Equal(t, "V", hashing.DeriveKey("ab", smallParams, hashing.DefaultMaxKeyBits))
}

func TestDeriveKey_Shrinks(t *testing.T) {
	tests := []struct {
		maxBits int
		want    string
	}{
		{1000, "IowzcmcJCsRBVB"},
		{hashing.DefaultMaxKeyBits, "zJCVB"},
		{16, "CB"},
		{8, "B"},
		{0, ""},
		{-8, ""},
	}
	for _, tc := range tests {
		got := hashing.DeriveKey("secret", wideParams, tc.maxBits)
		assert.Equal(t, tc.want, got, "maxBits=%d", tc.maxBits)
	}
}

func TestDeriveKey_NeverExceedsMax(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 300; i++ {
		maxBits := rng.Intn(200)
		key := hashing.DeriveKey(randomPassword(rng), randomParams(rng), maxBits)
		require.LessOrEqual(t, len(key)*8, maxBits)
	}
}

func TestDeriveKey_ZeroDigitEncodesEmpty(t *testing.T) {
	// "a" with multiplier 3 mod 97 folds to 0; the empty segment is dropped
	// without affecting the rest.
	h := smallParams
	h.SecondaryMultiples = nil
	h.SecondaryModulos = nil
	assert.Equal(t, "", hashing.DeriveKey("a", h, hashing.DefaultMaxKeyBits))
}
