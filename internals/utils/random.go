package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const tokenCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateTwoFactorCode returns a uniform random 4-digit code in the
// range 1000-9999, so the code never has a leading zero.
func GenerateTwoFactorCode() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(9000))
	return fmt.Sprintf("%d", n.Int64()+1000)
}

// GenerateResetToken returns a random alphanumeric string of the given
// length, used as the opaque password-reset token embedded in the
// emailed link.
func GenerateResetToken(length int) string {
	max := big.NewInt(int64(len(tokenCharset)))
	b := make([]byte, length)
	for i := range b {
		n, _ := rand.Int(rand.Reader, max)
		b[i] = tokenCharset[n.Int64()]
	}
	return string(b)
}
