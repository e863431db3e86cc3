package pm1

import "math/big"

// MaxPrimePowers returns, for every prime p in primes, the largest power p^e
// that does not exceed n. The result is aligned index for index with primes.
// A prime larger than n contributes p^0 = 1.
func MaxPrimePowers(n int, primes []int) []int {
	powers := make([]int, len(primes))
	for i, p := range primes {
		pe := 1
		for p > 1 && pe <= n/p {
			pe *= p
		}
		powers[i] = pe
	}
	return powers
}

// leafSize is how many powers are multiplied with a running product before
// the halves are joined as a tree.
const leafSize = 32

// SmoothExponent multiplies the prime powers into the smooth exponent k.
// Halves are multiplied recursively so operands stay balanced. An empty list
// gives 1.
func SmoothExponent(powers []int) *big.Int {
	if len(powers) <= leafSize {
		k := big.NewInt(1)
		v := new(big.Int)
		for _, pe := range powers {
			k.Mul(k, v.SetInt64(int64(pe)))
		}
		return k
	}
	mid := len(powers) / 2
	left := SmoothExponent(powers[:mid])
	return left.Mul(left, SmoothExponent(powers[mid:]))
}
