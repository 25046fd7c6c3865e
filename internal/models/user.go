package models

// User is a registered account. Username is unique case-insensitively.
type User struct {
	Username string `json:"username"` // Identity key, compared case-insensitively
	PIN      string `json:"pin"`      // Credential as stored (plain or hashed, see PIN_HASHING)
}

// CurrentUser is the persisted session pointer.
type CurrentUser struct {
	Username string `json:"username"`
}
