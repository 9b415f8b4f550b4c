// Package hashsize holds the fixed prime sequence and load-factor trigger
// shared by chainhash and openhash. Both tables need the identical sizing
// policy; factoring it out once here mirrors the way qntx-gods factors
// shared comparator logic into its own cmp package rather than duplicating
// it per container.
package hashsize

// Primes is the fixed sequence of bucket/slot counts a hash table is ever
// sized to. Each is prime; the sequence roughly doubles.
var Primes = [...]uint64{
	11, 17, 37, 67, 131, 257, 521, 1031, 2053, 4099, 8209, 16411, 32771,
	65537, 131101, 262147, 524309, 1048583, 2097169, 4194319, 8388617,
	16777259, 33554467, 67108879, 134217757, 268435459, 536870923,
	1073741827, 2147483659, 4294967291,
}

// PrimeGEQ returns the smallest member of Primes that is >= n, or the
// largest member if n exceeds all of them.
func PrimeGEQ(n uint64) uint64 {
	for _, p := range Primes {
		if p >= n {
			return p
		}
	}

	return Primes[len(Primes)-1]
}

// ShouldGrow reports whether a table holding count entries across n
// buckets/slots has crossed the 2/3 load-factor trigger: 3*count >= 2*n.
func ShouldGrow(count, n uint64) bool {
	return 3*count >= 2*n
}

// MinSize is the smallest table size ever used — the first entry of Primes.
// Clear resets a table to this size rather than to zero, so the table
// tolerates being reused immediately without a special-cased "zero capacity"
// branch anywhere else in a chainhash/openhash table.
var MinSize = Primes[0]
