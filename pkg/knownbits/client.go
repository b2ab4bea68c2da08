package knownbits

import (
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// Client provides the high-level API for known-bits factorization.
// The zero-value defaults are a DFS engine, JSON problem files, reversed
// retry enabled and diagnostics disabled.
type Client struct {
	strategy   SearchStrategy
	parser     ProblemParser
	tryReverse bool
	verbose    bool
	logger     *zap.Logger
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		strategy:   NewDFSStrategy(),
		parser:     &JSONParser{},
		tryReverse: true,
		logger:     zap.NewNop(),
	}
}

// WithStrategy sets a custom search strategy.
func (c *Client) WithStrategy(strategy SearchStrategy) *Client {
	c.strategy = strategy
	return c
}

// WithParser sets a custom problem-file parser.
func (c *Client) WithParser(parser ProblemParser) *Client {
	c.parser = parser
	return c
}

// WithTryReverse enables or disables the automatic reversed-bit-order retry
// after a failed first attempt. Enabled by default.
func (c *Client) WithTryReverse(enabled bool) *Client {
	c.tryReverse = enabled
	return c
}

// WithVerbose enables human-readable diagnostics on failure. Enabling it
// installs a console logger on stderr; call WithLogger afterwards to route
// the output elsewhere.
func (c *Client) WithVerbose(enabled bool) *Client {
	c.verbose = enabled
	if enabled {
		c.logger = newConsoleLogger()
	}
	return c
}

// WithLogger sets the logger used for diagnostics and attempt narration.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

// FactorString factors n given two MSB-first pattern strings over the
// alphabet {'0','1',other}, where any other character marks an unknown bit.
func (c *Client) FactorString(n *big.Int, pStr, qStr string) (*FactorResult, error) {
	return c.Factor(n, ParseBitString(pStr), ParseBitString(qStr))
}

// FactorVector factors n given two MSB-first int-vector patterns using
// {0, 1, -1} where -1 (or any value other than 0/1) marks an unknown bit.
func (c *Client) FactorVector(n *big.Int, pBits, qBits []int) (*FactorResult, error) {
	return c.Factor(n, ParseBitVector(pBits), ParseBitVector(qBits))
}

// Factor runs the full orchestration: normalize both patterns, search in the
// given bit order, and on failure retry with the bit order reversed (unless
// disabled). A failed search is not an error; errors are reserved for
// unusable inputs and exceeded capacity.
func (c *Client) Factor(n *big.Int, pPattern, qPattern BitPattern) (*FactorResult, error) {
	if n == nil || n.Sign() < 0 {
		return nil, fmt.Errorf("modulus must be a non-negative integer")
	}

	bitLen := FactorBitLength(n)
	if bitLen > MaxBitLength {
		return nil, fmt.Errorf("cannot provision search depth %d: %w", bitLen, ErrBitLengthTooLarge)
	}

	first := c.runAttempt(n, pPattern, qPattern, bitLen, EndiannessBigEndian)
	if first.Found {
		return c.successResult(bitLen, first, ""), nil
	}

	if !c.tryReverse {
		result := c.failureResult(bitLen,
			"no factorization found; the fixed bits may be wrong, or the pattern bit order may be reversed (retry disabled)",
			first)
		c.reportFailure(result)
		return result, nil
	}

	second := c.runAttempt(n, pPattern.Reversed(), qPattern.Reversed(), bitLen, EndiannessLittleEndian)
	if second.Found {
		result := c.successResult(bitLen, second,
			"factors found with reversed bit order; the input patterns appear to be numbered LSB-first")
		result.Diagnostics.Attempts = []AttemptReport{attemptReport(first), attemptReport(second)}
		result.Diagnostics.MaxDepthOverall = maxDepth(first, second)
		return result, nil
	}

	result := c.failureResult(bitLen,
		"no factorization found under either bit order; the fixed bits are inconsistent with any factor pair of n at this bit length",
		first, second)
	c.reportFailure(result)
	return result, nil
}

// FactorFile parses every problem in the given file with the configured
// parser and factors each in turn.
func (c *Client) FactorFile(source string) ([]*FactorResult, error) {
	problems, err := c.parser.ParseProblems(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse problems: %w", err)
	}

	results := make([]*FactorResult, 0, len(problems))
	for _, prob := range problems {
		res, err := c.Factor(prob.N, prob.PBits, prob.QBits)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// runAttempt normalizes one pattern pair and runs the engine once.
func (c *Client) runAttempt(n *big.Int, pPattern, qPattern BitPattern, bitLen int, endianness string) *SearchOutcome {
	c.logger.Debug("starting search attempt",
		zap.String("strategy", c.strategy.Name()),
		zap.String("endianness", endianness),
		zap.Int("bit_length", bitLen))

	outcome := c.strategy.Search(n, normalize(pPattern, bitLen), normalize(qPattern, bitLen), bitLen, endianness)

	c.logger.Debug("search attempt finished",
		zap.String("endianness", endianness),
		zap.Bool("found", outcome.Found),
		zap.Int("max_depth", outcome.Progress.MaxDepth),
		zap.Int("nodes", outcome.Progress.Nodes))
	return outcome
}

func (c *Client) successResult(bitLen int, o *SearchOutcome, suggestion string) *FactorResult {
	return &FactorResult{
		Success: true,
		Factors: &FactorPair{P: o.P, Q: o.Q},
		Diagnostics: Diagnostics{
			BitLength:       bitLen,
			Attempts:        []AttemptReport{attemptReport(o)},
			Suggestion:      suggestion,
			MaxDepthOverall: o.Progress.MaxDepth,
		},
	}
}

func (c *Client) failureResult(bitLen int, suggestion string, outcomes ...*SearchOutcome) *FactorResult {
	attempts := make([]AttemptReport, 0, len(outcomes))
	for _, o := range outcomes {
		attempts = append(attempts, attemptReport(o))
	}
	return &FactorResult{
		Success: false,
		Diagnostics: Diagnostics{
			BitLength:       bitLen,
			Attempts:        attempts,
			Suggestion:      suggestion,
			MaxDepthOverall: maxDepth(outcomes...),
		},
	}
}

// reportFailure renders a failed result's diagnostics when verbose mode is on.
func (c *Client) reportFailure(result *FactorResult) {
	if !c.verbose {
		return
	}
	d := result.Diagnostics
	c.logger.Warn("factorization failed",
		zap.Int("bit_length", d.BitLength),
		zap.Int("attempts", len(d.Attempts)),
		zap.Int("max_depth_reached_overall", d.MaxDepthOverall),
		zap.String("suggestion", d.Suggestion))
	for _, a := range d.Attempts {
		c.logger.Info("attempt exhausted",
			zap.String("endianness", a.Endianness),
			zap.Int("max_depth_reached", a.Progress.MaxDepth),
			zap.Int("total_nodes_explored", a.Progress.Nodes),
			zap.Int("prune_events", len(a.Progress.PrunedAt)),
			zap.Bool("search_completed", a.SearchCompleted))
	}
}

func maxDepth(outcomes ...*SearchOutcome) int {
	depth := 0
	for _, o := range outcomes {
		if o.Progress.MaxDepth > depth {
			depth = o.Progress.MaxDepth
		}
	}
	return depth
}

// newConsoleLogger builds the stderr logger behind WithVerbose.
func newConsoleLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// FromString is the backward-compatible thin wrapper over FactorString: it
// returns only the factor pair, or ok=false when no factorization was found.
func FromString(n *big.Int, pStr, qStr string) (p, q *big.Int, ok bool) {
	result, err := NewClient().FactorString(n, pStr, qStr)
	if err != nil || !result.Success {
		return nil, nil, false
	}
	return result.Factors.P, result.Factors.Q, true
}

// FromVector is the backward-compatible thin wrapper over FactorVector.
func FromVector(n *big.Int, pBits, qBits []int) (p, q *big.Int, ok bool) {
	result, err := NewClient().FactorVector(n, pBits, qBits)
	if err != nil || !result.Success {
		return nil, nil, false
	}
	return result.Factors.P, result.Factors.Q, true
}
