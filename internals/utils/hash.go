package utils

import "golang.org/x/crypto/bcrypt"

// Hasher is the one-way password hashing capability injected into the
// controllers. Check reports whether plain matches the stored hash.
type Hasher interface {
	Hash(plain string) (string, error)
	Check(hashed string, plain string) bool
}

// BcryptHasher is the production Hasher.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: 10}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Check(hashed string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
