package service

import "golang.org/x/crypto/bcrypt"

// hashPassword generates a bcrypt hash of the password. bcrypt embeds its
// own salt and cost in the digest, so verification needs no external state.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a plain text password with a stored hash.
// A malformed digest simply fails the comparison.
func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
