package types

// Hashing carries the server-chosen parameters of one handshake.
//
// The primary pairs fold the password into one digit each; the secondary
// pairs are then applied to every digit in order.
type Hashing struct {
	User               string  `json:"user,omitempty"`
	PrimaryMultiples   []int64 `json:"primaryMultiples"`
	PrimaryModulos     []int64 `json:"primaryModulos"`
	SecondaryMultiples []int64 `json:"secondaryMultiples"`
	SecondaryModulos   []int64 `json:"secondaryModulos"`
}

// IsZero reports whether no parameters were supplied.
func (h Hashing) IsZero() bool {
	return h.User == "" && len(h.PrimaryMultiples) == 0 && len(h.PrimaryModulos) == 0 &&
		len(h.SecondaryMultiples) == 0 && len(h.SecondaryModulos) == 0
}
