package auth

import (
	"crypto/rand"
	"math/big"
)

// GenerateOTP returns a random numeric one-time password of n digits.
func GenerateOTP(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}

// HashOTP hashes an OTP the same way passwords are hashed; the plain code is
// never stored.
func HashOTP(otp string) (string, error) {
	return HashPassword(otp)
}

// CheckOTP verifies a plain OTP against its stored hash
func CheckOTP(hashedOTP, otp string) bool {
	return CheckPassword(hashedOTP, otp)
}
