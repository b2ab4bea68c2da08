package knownbits

import (
	"math/big"
	"strings"
)

// bitString renders v as an MSB-first binary string left-padded with zeros
// to the given width. Used by tests to build fully-specified patterns.
func bitString(v *big.Int, width int) string {
	s := v.Text(2)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// punchUnknowns replaces the characters at the given MSB-first positions
// with '_', turning fixed bits of a pattern into unknowns.
func punchUnknowns(s string, positions ...int) string {
	b := []byte(s)
	for _, pos := range positions {
		b[pos] = '_'
	}
	return string(b)
}

// factorSet collects the two factors of a result into a comparable form;
// the engine's pair is unordered so tests compare sets, not positions.
func factorSet(pair *FactorPair) map[string]bool {
	return map[string]bool{
		pair.P.String(): true,
		pair.Q.String(): true,
	}
}
