package hashing

import (
	"strings"

	"prismslink/internal/domain"
)

// DefaultMaxKeyBits bounds derived keys; each key character counts as 8 bits.
const DefaultMaxKeyBits = 448 / 8

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// DeriveKey turns password into a cipher key under the handshake parameters.
//
// Each full-hash digit becomes a base-64 segment (least significant digit
// first). While the segments total more than maxKeyBits, the leading
// character of every multi-character segment is dropped; once all segments
// are a single character, the first segment is dropped instead. The result
// can be empty.
func DeriveKey(password string, h domain.Hashing, maxKeyBits int) string {
	digits := FullHash(password, h)
	segments := make([]string, len(digits))
	for i, d := range digits {
		segments[i] = to64(d)
	}
	for len(segments) > 0 && tooBig(segments, maxKeyBits) {
		segments = downsize(segments)
	}
	return strings.Join(segments, "")
}

func to64(v int64) string {
	var b strings.Builder
	for v > 0 {
		b.WriteByte(base64Alphabet[v%64])
		v /= 64
	}
	return b.String()
}

func tooBig(segments []string, maxKeyBits int) bool {
	size := 0
	for _, s := range segments {
		size += len(s) * 8
	}
	return size > maxKeyBits
}

func downsize(segments []string) []string {
	allSingle := true
	for i, s := range segments {
		if len(s) > 1 {
			segments[i] = s[1:]
			allSingle = false
		}
	}
	if allSingle {
		return segments[1:]
	}
	return segments
}
