package util

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pm1-tools/pm1/pm1"
)

// ──────── ParsePositive ────────

func TestParsePositive_Valid(t *testing.T) {
	n, err := ParsePositive(" 8051\n")
	require.NoError(t, err)
	assert.Equal(t, int64(8051), n.Int64())

	n, err = ParsePositive("+15")
	require.NoError(t, err)
	assert.Equal(t, int64(15), n.Int64())

	n, err = ParsePositive("123456789012345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", n.String())
}

func TestParsePositive_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "0", "000", "-7", "12a", "1.5", "1e3", "0x10", "+", "١٢"} {
		_, err := ParsePositive(in)
		assert.ErrorIs(t, err, pm1.ErrInvalidInput, "input %q", in)
	}
}

// ──────── FormatFactors ────────

func TestFormatFactors(t *testing.T) {
	assert.Equal(t, "[97 83]", FormatFactors([]*big.Int{big.NewInt(97), big.NewInt(83)}))
	assert.Equal(t, "[]", FormatFactors(nil))
}

func TestStringInSlice(t *testing.T) {
	assert.True(t, StringInSlice("json", []string{"basic", "json"}))
	assert.False(t, StringInSlice("xml", []string{"basic", "json"}))
}
