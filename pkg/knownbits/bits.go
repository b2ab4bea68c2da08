package knownbits

import (
	"math/big"
	"strings"
)

// Bit is a ternary bit value: fixed zero, fixed one, or unknown.
type Bit int8

const (
	Zero    Bit = 0
	One     Bit = 1
	Unknown Bit = -1
)

// String returns "0", "1" or "_" for display purposes.
func (b Bit) String() string {
	switch b {
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "_"
	}
}

// BitPattern is an ordered sequence of ternary bits, most-significant first,
// as supplied by callers. Patterns shorter than the target bit length are
// left-padded with Zero during normalization; patterns longer than the target
// keep their trailing (low-order) symbols and the leading excess is ignored.
type BitPattern []Bit

// ParseBitString converts a pattern string into a BitPattern. '0' and '1'
// are fixed bits; every other character (canonically '_', but '?' and
// friends work too) is an unknown bit.
func ParseBitString(s string) BitPattern {
	p := make(BitPattern, 0, len(s))
	for _, c := range s {
		switch c {
		case '0':
			p = append(p, Zero)
		case '1':
			p = append(p, One)
		default:
			p = append(p, Unknown)
		}
	}
	return p
}

// ParseBitVector converts an int slice into a BitPattern. 0 and 1 are fixed
// bits; any other value denotes an unknown bit.
func ParseBitVector(v []int) BitPattern {
	p := make(BitPattern, 0, len(v))
	for _, x := range v {
		switch x {
		case 0:
			p = append(p, Zero)
		case 1:
			p = append(p, One)
		default:
			p = append(p, Unknown)
		}
	}
	return p
}

// String renders the pattern MSB-first using the {0,1,_} alphabet.
func (p BitPattern) String() string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, b := range p {
		sb.WriteString(b.String())
	}
	return sb.String()
}

// Reversed returns a new pattern with the bit order flipped end to end.
// Used by the orchestration layer to retry inputs whose bits were numbered
// LSB-first instead of MSB-first.
func (p BitPattern) Reversed() BitPattern {
	r := make(BitPattern, len(p))
	for i, b := range p {
		r[len(p)-1-i] = b
	}
	return r
}

// Matches reports whether every fixed bit of the MSB-first pattern agrees
// with the corresponding bit of v, with the pattern's last symbol at bit 0.
func (p BitPattern) Matches(v *big.Int) bool {
	for i, b := range p {
		if b == Unknown {
			continue
		}
		if v.Bit(len(p)-1-i) != uint(b) {
			return false
		}
	}
	return true
}

// FactorBitLength derives the assumed common bit length of both factors,
// ceil(bitlen(n)/2). Valid only for balanced semiprimes; unbalanced factors
// are a precondition violation and the search will simply exhaust.
func FactorBitLength(n *big.Int) int {
	return (n.BitLen() + 1) / 2
}

// normalize pads the MSB-first pattern to exactly bitLen symbols and reverses
// it into the LSB-first order the search engine consumes.
func normalize(p BitPattern, bitLen int) BitPattern {
	padded := p
	if len(p) < bitLen {
		padded = make(BitPattern, bitLen)
		copy(padded[bitLen-len(p):], p)
	} else if len(p) > bitLen {
		padded = p[len(p)-bitLen:]
	}
	out := make(BitPattern, bitLen)
	for i, b := range padded {
		out[bitLen-1-i] = b
	}
	return out
}
