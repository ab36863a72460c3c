package helpers

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes plain with bcrypt. Inputs over 72 bytes are rejected by
// bcrypt rather than truncated.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches hash.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var decoyHash = sync.OnceValue(func() []byte {
	b, _ := bcrypt.GenerateFromPassword([]byte("decoy-password"), bcrypt.DefaultCost)
	return b
})

// SpendPasswordCheck runs one bcrypt comparison against a throwaway hash, so a
// login for an unknown email takes as long as a wrong password.
func SpendPasswordCheck(plain string) {
	_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(plain))
}
