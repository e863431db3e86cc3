package pm1

import "math/big"

// ExtGCD returns g = gcd(a, b) together with Bézout coefficients s, t such
// that a*s + b*t = g. Both operands must be non-negative and not both zero.
func ExtGCD(a, b *big.Int) (g, s, t *big.Int) {
	if a.Sign() < 0 || b.Sign() < 0 {
		panic("pm1: ExtGCD operands must be non-negative")
	}
	if a.Sign() == 0 && b.Sign() == 0 {
		panic("pm1: ExtGCD(0, 0) is undefined")
	}

	r0, r1 := new(big.Int).Set(a), new(big.Int).Set(b)
	s0, s1 := big.NewInt(1), big.NewInt(0)
	t0, t1 := big.NewInt(0), big.NewInt(1)

	q, r, tmp := new(big.Int), new(big.Int), new(big.Int)
	for r1.Sign() != 0 {
		q.QuoRem(r0, r1, r)
		r0, r1 = r1, new(big.Int).Set(r)

		tmp.Mul(q, s1)
		s0, s1 = s1, new(big.Int).Sub(s0, tmp)

		tmp.Mul(q, t1)
		t0, t1 = t1, new(big.Int).Sub(t0, tmp)
	}
	return r0, s0, t0
}
