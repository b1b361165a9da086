package hashing

import (
	"math/bits"
	"unicode/utf16"

	"prismslink/internal/domain"
)

// PartialHash folds password into one digit per primary (multiplier, modulus)
// pair: acc = ((acc + c) * m) mod n for every UTF-16 code unit c.
//
// It is also what a password change sends to the server.
func PartialHash(password string, h domain.Hashing) []int64 {
	n := min(len(h.PrimaryMultiples), len(h.PrimaryModulos))
	units := utf16.Encode([]rune(password))
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = primaryDigit(units, h.PrimaryMultiples[i], h.PrimaryModulos[i])
	}
	return out
}

// FullHash applies every secondary pair, in order, to each partial digit.
func FullHash(password string, h domain.Hashing) []int64 {
	out := PartialHash(password, h)
	n := min(len(h.SecondaryMultiples), len(h.SecondaryModulos))
	for i := range out {
		for j := 0; j < n; j++ {
			out[i] = mulMod(out[i], h.SecondaryMultiples[j], h.SecondaryModulos[j])
		}
	}
	return out
}

func primaryDigit(units []uint16, mult, mod int64) int64 {
	if mod <= 0 {
		return 0
	}
	m := uint64(mod)
	var acc uint64
	for _, c := range units {
		acc = (acc + uint64(c)) % m
		acc = mulModU(acc, reduce(mult, m), m)
	}
	return int64(acc)
}

// mulMod returns (digit * mult) mod mod, normalized into [0, mod).
func mulMod(digit, mult, mod int64) int64 {
	if mod <= 0 {
		return 0
	}
	m := uint64(mod)
	return int64(mulModU(reduce(digit, m), reduce(mult, m), m))
}

func mulModU(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}

// reduce maps v into [0, m), treating negative values mathematically.
func reduce(v int64, m uint64) uint64 {
	if v >= 0 {
		return uint64(v) % m
	}
	r := uint64(-(v + 1)) % m
	return (m - 1 - r) % m
}
