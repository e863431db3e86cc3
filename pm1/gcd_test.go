package pm1

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkBezout(t *testing.T, a, b *big.Int) {
	t.Helper()
	g, s, u := ExtGCD(a, b)

	want := new(big.Int).GCD(nil, nil, a, b)
	require.Equal(t, 0, want.Cmp(g), "gcd(%s, %s)", a, b)

	lhs := new(big.Int).Mul(a, s)
	lhs.Add(lhs, new(big.Int).Mul(b, u))
	require.Equal(t, 0, lhs.Cmp(g), "bezout(%s, %s): s=%s t=%s", a, b, s, u)
}

func TestExtGCD_Grid(t *testing.T) {
	for a := int64(0); a <= 60; a++ {
		for b := int64(0); b <= 60; b++ {
			if a == 0 && b == 0 {
				continue
			}
			checkBezout(t, big.NewInt(a), big.NewInt(b))
		}
	}
}

func TestExtGCD_Large(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 100; i++ {
		a := randBig(r, 512)
		b := randBig(r, 384)
		if a.Sign() == 0 && b.Sign() == 0 {
			continue
		}
		checkBezout(t, a, b)
	}
}

func TestExtGCD_Known(t *testing.T) {
	g, _, _ := ExtGCD(big.NewInt(3), big.NewInt(15))
	assert.Equal(t, int64(3), g.Int64())

	g, s, u := ExtGCD(big.NewInt(0), big.NewInt(8051))
	assert.Equal(t, int64(8051), g.Int64())
	assert.Equal(t, int64(0), s.Int64())
	assert.Equal(t, int64(1), u.Int64())
}

func TestExtGCD_Preconditions(t *testing.T) {
	assert.Panics(t, func() { ExtGCD(big.NewInt(0), big.NewInt(0)) })
	assert.Panics(t, func() { ExtGCD(big.NewInt(-1), big.NewInt(4)) })
	assert.Panics(t, func() { ExtGCD(big.NewInt(4), big.NewInt(-1)) })
}
