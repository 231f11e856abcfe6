package password

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor; 12 keeps hashing around 250ms on current hardware
const cost = 12

// Hash hashes password using bcrypt
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(bytes), err
}

// Verify compares password with hash
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
