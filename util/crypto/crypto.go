// Package crypto provides password hashing and verification.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used by HashPasswordAsBcrypt. Tests lower it.
var Cost = bcrypt.DefaultCost

// HashPasswordAsBcrypt returns a salted bcrypt hash of password.
func HashPasswordAsBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	return string(hash), err
}

// CheckPasswordHash reports whether password matches hash. The comparison
// runs in constant time.
func CheckPasswordHash(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
