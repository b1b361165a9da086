package types

// Credentials are the user name and password currently held by a session.
//
// Password is kept as bytes so it can be wiped when replaced.
type Credentials struct {
	UserName string
	Password []byte
}

// HasPassword reports whether a non-empty password is held.
func (c *Credentials) HasPassword() bool { return c != nil && len(c.Password) > 0 }
