package knownbits

import "math/big"

// SearchStrategy defines the interface for factor search engines.
// Implement this interface to plug a custom search into the Client.
type SearchStrategy interface {
	// Search looks for factors p, q of n whose bits agree with the given
	// LSB-first patterns. Both patterns must have exactly bitLen symbols.
	// The endianness label is carried into the outcome's progress report
	// so callers can tell attempts apart.
	Search(n *big.Int, pBits, qBits BitPattern, bitLen int, endianness string) *SearchOutcome

	// Name returns a human-readable name for this strategy.
	Name() string
}

// Progress records how much of the search space one attempt explored.
// A single Progress value is owned by exactly one attempt; it is threaded by
// pointer down the active call chain and never shared.
type Progress struct {
	// MaxDepth is the deepest bit index reached, including the final
	// verification call at bitLen. A value below the bit length means an
	// entire subtree was pruned before the search could complete.
	MaxDepth int `json:"max_depth_reached"`

	// Nodes counts every search call, base cases included.
	Nodes int `json:"total_nodes_explored"`

	// PrunedAt lists the depth of every combination rejected by the
	// low-order product check, in exploration order.
	PrunedAt []int `json:"pruned_at_depths"`

	// Endianness labels which bit-order attempt produced this progress.
	Endianness string `json:"endianness"`
}

// SearchOutcome is the raw result of one engine run.
type SearchOutcome struct {
	// P and Q are the verified factors; nil unless Found.
	P, Q *big.Int

	// Found reports whether a full-depth assignment passed the exact
	// product check.
	Found bool

	// Progress holds the attempt's exploration statistics.
	Progress Progress

	// BitLength is the assumed factor bit length the search ran with.
	BitLength int
}

// Completed reports whether the search reached full depth at least once.
// A completed failure means the fixed bits are inconsistent with any
// factorization; an incomplete one points at wrong bits or wrong bit order.
func (o *SearchOutcome) Completed() bool {
	return o.Progress.MaxDepth == o.BitLength
}
