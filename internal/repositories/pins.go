package repositories

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PinMatcher controls how PINs are stored and compared.
type PinMatcher interface {
	// Seal turns a PIN into its stored form.
	Seal(pin string) (string, error)
	// Match reports whether pin is the exact PIN behind stored.
	Match(stored, pin string) bool
}

// PlainPins stores PINs as given and compares them byte for byte.
type PlainPins struct{}

func (PlainPins) Seal(pin string) (string, error) { return pin, nil }

func (PlainPins) Match(stored, pin string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) == 1
}

// BcryptPins stores bcrypt hashes of PINs.
type BcryptPins struct {
	Cost int // bcrypt.DefaultCost when zero
}

func (b BcryptPins) Seal(pin string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (BcryptPins) Match(stored, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pin)) == nil
}

// NewPinMatcher returns the matcher for a PIN_HASHING mode: "bcrypt" or anything else for plain.
func NewPinMatcher(mode string) PinMatcher {
	if mode == "bcrypt" {
		return BcryptPins{}
	}
	return PlainPins{}
}
