package types

// Profile is a saved connection setup for one server and user.
type Profile struct {
	Name           string `json:"name"`
	ServerURL      string `json:"server_url"`
	App            string `json:"app"`
	Client         string `json:"client"`
	User           string `json:"user,omitempty"`
	SealedPassword []byte `json:"sealed_password,omitempty"`
	UpdatedUTC     int64  `json:"updated_utc"`
}
