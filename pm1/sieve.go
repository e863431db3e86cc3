package pm1

import "math"

// Sieve returns every prime <= bound in ascending order using the sieve of
// Eratosthenes. A bound below 2 yields an empty slice.
func Sieve(bound int) []int {
	if bound < 2 {
		return []int{}
	}

	composite := make([]bool, bound+1)
	composite[0], composite[1] = true, true

	primes := make([]int, 0, estimatePrimeCount(bound))
	for p := 2; p <= bound; p++ {
		if composite[p] {
			continue
		}
		primes = append(primes, p)
		// p*p overflows only for bounds no sieve could allocate anyway
		for m := p * p; m <= bound && m > 0; m += p {
			composite[m] = true
		}
	}
	return primes
}

// estimatePrimeCount returns an upper bound on pi(n) for n >= 2, so the
// result slice never grows. pi(x) < 1.25506 x / ln x holds for every x > 1.
func estimatePrimeCount(n int) int {
	if n < 17 {
		return n/2 + 1
	}
	return int(math.Ceil(1.26 * float64(n) / math.Log(float64(n))))
}

func containsPrime(primes []int, n int) bool {
	lo, hi := 0, len(primes)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case primes[mid] == n:
			return true
		case primes[mid] < n:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}
