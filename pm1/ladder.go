package pm1

import "math/big"

// PowMod computes base^exponent mod modulo with a two-accumulator ladder over
// the exponent bits, most significant first.
//
// The ladder mirrors the Montgomery ladder shape but big.Int arithmetic is
// not constant time; do not use it where timing matters.
func PowMod(base, exponent, modulo *big.Int) *big.Int {
	if modulo.Sign() <= 0 {
		panic("pm1: PowMod modulo must be >= 1")
	}
	if exponent.Sign() < 0 {
		panic("pm1: PowMod exponent must be >= 0")
	}

	x := big.NewInt(1)
	x.Mod(x, modulo)
	y := new(big.Int).Mod(base, modulo)

	for i := exponent.BitLen() - 1; i >= 0; i-- {
		if exponent.Bit(i) == 1 {
			x.Mul(x, y).Mod(x, modulo)
			y.Mul(y, y).Mod(y, modulo)
		} else {
			y.Mul(x, y).Mod(y, modulo)
			x.Mul(x, x).Mod(x, modulo)
		}
	}
	return x
}
