package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pquerna/otp"
)

// GenerateNumericCode draws a code uniformly from [10^(n-1), 10^n - 1] where n
// is digits.Length(), so codes never start with zero.
func GenerateNumericCode(digits otp.Digits) (string, error) {
	n := digits.Length()
	if n < 2 || n > 9 {
		return "", fmt.Errorf("cryptox: unsupported code length %d", n)
	}

	low := pow10(n - 1)
	span := big.NewInt(pow10(n) - low)

	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("cryptox: generate code: %w", err)
	}
	return digits.Format(int32(v.Int64() + low)), nil // #nosec G115
}

// ValidNumericCode reports whether code has exactly digits.Length() ASCII digits.
func ValidNumericCode(code string, digits otp.Digits) bool {
	if len(code) != digits.Length() {
		return false
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func pow10(n int) int64 {
	v := int64(1)
	for range n {
		v *= 10
	}
	return v
}
