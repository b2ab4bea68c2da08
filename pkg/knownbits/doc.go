// Package knownbits recovers the two prime factors of a semiprime n = p*q
// when some bits of p and q are already known, e.g. from a cold-boot or
// side-channel leak.
//
// The engine explores partial assignments of p and q from the least
// significant bit upward and prunes every partial assignment whose low-order
// product bits disagree with n. Both factors are assumed to share the bit
// length ceil(bitlen(n)/2); unbalanced factor pairs are outside the contract
// and the search will simply exhaust without finding them.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/factor-known-bits/pkg/knownbits"
//
//	// 91 = 7 * 13; '_' marks an unknown bit, patterns are MSB-first.
//	client := knownbits.NewClient()
//
//	result, err := client.FactorString(big.NewInt(91), "110_", "011_")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Success {
//	    fmt.Printf("%v * %v\n", result.Factors.P, result.Factors.Q)
//	}
//
// The returned pair is unordered: P and Q multiply to n exactly but are not
// guaranteed to line up with the p/q input patterns.
//
// # Endianness
//
// Leaked-bit sources frequently number bits LSB-first without saying so.
// When the first attempt fails, the client automatically retries with both
// patterns reversed and notes the correction in the result's Suggestion.
// Disable this with WithTryReverse(false).
//
// # Diagnostics
//
//	client := knownbits.NewClient().WithVerbose(true)
//
// On failure the result carries per-attempt progress (deepest bit reached,
// nodes explored, prune depths); verbose mode additionally renders it to
// stderr. An attempt whose max depth stayed below the bit length had its
// whole subtree pruned early, which usually means wrong bits or wrong bit
// order; an attempt that completed at full depth without a match means the
// fixed bits are inconsistent with any factorization of n.
//
// # Custom strategies
//
// Implement the SearchStrategy interface to replace the search engine:
//
//	client := knownbits.NewClient().WithStrategy(&MyStrategy{})
//
// Searches run synchronously on the calling goroutine and can take time
// exponential in the number of unknown bits; callers are expected to bound
// the unknown-bit count or impose deadlines externally.
package knownbits
