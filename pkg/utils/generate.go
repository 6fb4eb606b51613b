package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeAlphabet is the character set for order and voucher codes.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const defaultCodeLength = 5

// GenerateCode returns a random code of the given length drawn from CodeAlphabet.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		length = defaultCodeLength
	}

	max := big.NewInt(int64(len(CodeAlphabet)))
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		code[i] = CodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// GenerateActivationCode returns a 32-character hex-like code for account activation.
func GenerateActivationCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return fmt.Sprintf("%x", buf), nil
}
