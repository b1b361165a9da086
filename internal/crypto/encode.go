package crypto

import "encoding/base64"

// b64 returns standard base64 encoding without newlines.
func b64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// unb64 decodes standard base64; line breaks are ignored.
func unb64(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }

// pad appends n copies of byte n so the length is a multiple of size.
func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	for i := 0; i < n; i++ {
		out = append(out, byte(n))
	}
	return out
}

// unpad strips well-formed padding and leaves anything else as is.
func unpad(b []byte, size int) []byte {
	if len(b) == 0 {
		return b
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return b
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return b
		}
	}
	return b[:len(b)-n]
}
