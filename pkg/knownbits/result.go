package knownbits

import "math/big"

// Endianness labels for the two attempts the orchestration layer can make.
const (
	EndiannessBigEndian    = "big-endian"
	EndiannessLittleEndian = "little-endian (reversed)"
)

// FactorPair holds one verified factorization. The pair is unordered: the
// engine does not guarantee which value corresponds to which input pattern,
// only that P*Q == n exactly.
type FactorPair struct {
	P *big.Int `json:"p"`
	Q *big.Int `json:"q"`
}

// AttemptReport describes one bit-order attempt.
type AttemptReport struct {
	Endianness      string   `json:"endianness"`
	Progress        Progress `json:"progress"`
	SearchCompleted bool     `json:"search_completed"`
}

// Diagnostics carries the structured error/progress payload of a
// factorization call. Attempts holds one entry per bit order tried (one on
// first-attempt success or when the reversed retry is disabled, two when the
// retry ran).
type Diagnostics struct {
	BitLength       int             `json:"bit_length"`
	Attempts        []AttemptReport `json:"attempts"`
	Suggestion      string          `json:"suggestion,omitempty"`
	MaxDepthOverall int             `json:"max_depth_reached_overall"`
}

// FactorResult is the outward-facing result of one factorization call.
type FactorResult struct {
	Success     bool        `json:"success"`
	Factors     *FactorPair `json:"factors,omitempty"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// attemptReport converts a raw engine outcome into its report form.
func attemptReport(o *SearchOutcome) AttemptReport {
	return AttemptReport{
		Endianness:      o.Progress.Endianness,
		Progress:        o.Progress,
		SearchCompleted: o.Completed(),
	}
}
