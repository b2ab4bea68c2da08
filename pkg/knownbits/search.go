package knownbits

import (
	"errors"
	"math/big"
)

// MaxBitLength bounds the factor bit length (and therefore the recursion
// depth) a search will accept. Go grows goroutine stacks on demand, so the
// engine can recurse one frame per bit position; the cap keeps the depth
// well inside the runtime's stack ceiling and turns anything bigger into an
// explicit, reportable condition instead of a runtime abort.
const MaxBitLength = 1 << 22

// ErrBitLengthTooLarge is returned before any search work starts when the
// modulus would require more recursion depth than MaxBitLength provisions.
var ErrBitLengthTooLarge = errors.New("factor bit length exceeds MaxBitLength")

// DFSStrategy is the canonical search engine: a least-significant-bit-first
// depth-first search over partial assignments of p and q, pruning every
// combination whose low-order product bits disagree with n.
type DFSStrategy struct{}

// NewDFSStrategy creates the default branch-and-bound strategy.
func NewDFSStrategy() *DFSStrategy {
	return &DFSStrategy{}
}

// Name returns the name of this strategy.
func (s *DFSStrategy) Name() string {
	return "BranchAndBoundDFS"
}

// Search implements the SearchStrategy interface. pBits and qBits are
// LSB-first and must hold exactly bitLen symbols each.
//
// Invariant maintained at every depth k: the low k bits of the partial
// product already equal the low k bits of n, so the final exact check can
// only be reached through consistent prefixes.
func (s *DFSStrategy) Search(n *big.Int, pBits, qBits BitPattern, bitLen int, endianness string) *SearchOutcome {
	out := &SearchOutcome{
		BitLength: bitLen,
		Progress:  Progress{Endianness: endianness, PrunedAt: []int{}},
	}

	p, q := s.descend(n, pBits, qBits, bitLen, 0, new(big.Int), new(big.Int), &out.Progress)
	if p != nil {
		out.P, out.Q = p, q
		out.Found = true
	}
	return out
}

// choices expands a ternary bit into its candidate values, 0 before 1.
func choices(b Bit) []uint {
	if b == Unknown {
		return []uint{0, 1}
	}
	return []uint{uint(b)}
}

// descend explores bit position k given accumulators holding the low k bits
// of p and q. It returns the first verified factor pair or nil, nil.
func (s *DFSStrategy) descend(n *big.Int, pBits, qBits BitPattern, bitLen, k int, pAcc, qAcc *big.Int, tr *Progress) (*big.Int, *big.Int) {
	tr.Nodes++
	if k > tr.MaxDepth {
		tr.MaxDepth = k
	}

	if k == bitLen {
		if new(big.Int).Mul(pAcc, qAcc).Cmp(n) == 0 {
			return pAcc, qAcc
		}
		return nil, nil
	}

	pow := new(big.Int).Lsh(big.NewInt(1), uint(k))
	mask := new(big.Int).Lsh(big.NewInt(1), uint(k+1))
	mask.Sub(mask, big.NewInt(1))
	nMasked := new(big.Int).And(n, mask)

	product := new(big.Int)
	for _, pc := range choices(pBits[k]) {
		pNext := new(big.Int).Set(pAcc)
		if pc == 1 {
			pNext.Add(pNext, pow)
		}
		for _, qc := range choices(qBits[k]) {
			qNext := new(big.Int).Set(qAcc)
			if qc == 1 {
				qNext.Add(qNext, pow)
			}

			product.Mul(pNext, qNext)
			product.And(product, mask)
			if product.Cmp(nMasked) != 0 {
				tr.PrunedAt = append(tr.PrunedAt, k)
				continue
			}

			p, q := s.descend(n, pBits, qBits, bitLen, k+1, pNext, qNext, tr)
			if p != nil {
				return p, q
			}
		}
	}
	return nil, nil
}
