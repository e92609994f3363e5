package utils

import "math/rand/v2"

const digits = "0123456789"

// RandomDigits returns n decimal digits, each drawn independently from
// intn(10). A nil intn uses math/rand/v2, which is not cryptographically
// secure.
func RandomDigits(n int, intn func(int) int) string {
	if intn == nil {
		intn = rand.IntN
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = digits[intn(len(digits))]
	}
	return string(buf)
}
