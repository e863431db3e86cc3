package util

import (
	"math/big"
	"strings"

	"github.com/pm1-tools/pm1/pm1"
)

// ParsePositive parses a decimal integer and rejects anything that is not
// strictly positive. Surrounding whitespace and a leading '+' are accepted.
func ParsePositive(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" || !isDigitsOnly(s) {
		return nil, pm1.ErrInvalidInput
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() <= 0 {
		return nil, pm1.ErrInvalidInput
	}
	return n, nil
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatFactors renders factors as "[a b c]".
func FormatFactors(fs []*big.Int) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func StringInSlice(val string, list []string) bool {
	for _, v := range list {
		if v == val {
			return true
		}
	}
	return false
}
