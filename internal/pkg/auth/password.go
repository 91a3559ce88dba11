package auth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the hashing cost for stored passwords
const BcryptCost = 12

// HashPassword hashes a plaintext password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a stored hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// DOBPassword derives the fallback student password from a date of birth
// (ddmmyyyy). Students who never set a password log in with this value.
func DOBPassword(dob time.Time) string {
	return fmt.Sprintf("%02d%02d%04d", dob.Day(), int(dob.Month()), dob.Year())
}
