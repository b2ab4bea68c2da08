package knownbits

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_FactorString(t *testing.T) {
	client := NewClient()

	result, err := client.FactorString(big.NewInt(91), "110_", "011_")
	require.NoError(t, err)

	require.True(t, result.Success)
	require.NotNil(t, result.Factors)
	assert.Equal(t, map[string]bool{"7": true, "13": true}, factorSet(result.Factors))

	d := result.Diagnostics
	assert.Equal(t, 4, d.BitLength)
	require.Len(t, d.Attempts, 1)
	assert.Equal(t, EndiannessBigEndian, d.Attempts[0].Endianness)
	assert.True(t, d.Attempts[0].SearchCompleted)
	assert.Empty(t, d.Suggestion)
	assert.Equal(t, 4, d.MaxDepthOverall)
}

func TestClient_FactorString_ReversedRetry(t *testing.T) {
	client := NewClient()

	// Patterns numbered LSB-first: the first attempt must fail and the
	// reversed retry must recover 7 * 13.
	result, err := client.FactorString(big.NewInt(91), "_011", "111_")
	require.NoError(t, err)

	require.True(t, result.Success)
	assert.Equal(t, map[string]bool{"7": true, "13": true}, factorSet(result.Factors))

	d := result.Diagnostics
	require.Len(t, d.Attempts, 2)
	assert.Equal(t, EndiannessBigEndian, d.Attempts[0].Endianness)
	assert.Equal(t, EndiannessLittleEndian, d.Attempts[1].Endianness)
	assert.Contains(t, d.Suggestion, "reversed bit order")
}

func TestClient_FactorString_RetryDisabled(t *testing.T) {
	client := NewClient().WithTryReverse(false)

	result, err := client.FactorString(big.NewInt(91), "_011", "111_")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Nil(t, result.Factors)
	require.Len(t, result.Diagnostics.Attempts, 1)
	assert.Equal(t, EndiannessBigEndian, result.Diagnostics.Attempts[0].Endianness)
	assert.NotEmpty(t, result.Diagnostics.Suggestion)
}

func TestClient_FactorString_Impossible(t *testing.T) {
	client := NewClient()

	result, err := client.FactorString(big.NewInt(91), "000_", "000_")
	require.NoError(t, err)

	require.False(t, result.Success)
	d := result.Diagnostics
	require.Len(t, d.Attempts, 2)
	for _, a := range d.Attempts {
		// Either the attempt ran to full depth and the exact check failed,
		// or an entire subtree was pruned early. Never a false success.
		assert.True(t, a.SearchCompleted || a.Progress.MaxDepth < d.BitLength)
	}
	assert.Contains(t, d.Suggestion, "either bit order")
	assert.LessOrEqual(t, d.MaxDepthOverall, d.BitLength)
}

func TestClient_FactorVector(t *testing.T) {
	client := NewClient()

	result, err := client.FactorVector(big.NewInt(91), []int{1, 1, 0, -1}, []int{0, -1, -1, 1})
	require.NoError(t, err)

	require.True(t, result.Success)
	assert.Equal(t, map[string]bool{"7": true, "13": true}, factorSet(result.Factors))
}

func TestClient_RoundTrip_FullyKnown(t *testing.T) {
	p := big.NewInt(3557)
	q := big.NewInt(2579)
	n := new(big.Int).Mul(p, q)
	width := FactorBitLength(n)

	result, err := NewClient().FactorString(n, bitString(p, width), bitString(q, width))
	require.NoError(t, err)

	require.True(t, result.Success)
	product := new(big.Int).Mul(result.Factors.P, result.Factors.Q)
	assert.Zero(t, product.Cmp(n))
	assert.Equal(t, map[string]bool{"3557": true, "2579": true}, factorSet(result.Factors))
}

func TestClient_PartialKnowledge(t *testing.T) {
	p := big.NewInt(3557)
	q := big.NewInt(2579)
	n := new(big.Int).Mul(p, q)
	width := FactorBitLength(n)

	pStr := punchUnknowns(bitString(p, width), 2, 5, 9)
	qStr := punchUnknowns(bitString(q, width), 0, 4, 11)

	result, err := NewClient().FactorString(n, pStr, qStr)
	require.NoError(t, err)

	require.True(t, result.Success)
	assert.Equal(t, map[string]bool{"3557": true, "2579": true}, factorSet(result.Factors))

	// The fixed bits of each input pattern agree with one of the factors.
	assert.True(t, ParseBitString(pStr).Matches(p))
	assert.True(t, ParseBitString(qStr).Matches(q))
	t.Logf("recovered factors with 6 unknown bits, %d nodes",
		result.Diagnostics.Attempts[0].Progress.Nodes)
}

func TestClient_ShortPatternsArePadded(t *testing.T) {
	// "111" pads to "0111" = 7.
	result, err := NewClient().FactorString(big.NewInt(91), "110_", "111")
	require.NoError(t, err)

	require.True(t, result.Success)
	assert.Equal(t, map[string]bool{"7": true, "13": true}, factorSet(result.Factors))
}

func TestClient_InvalidModulus(t *testing.T) {
	client := NewClient()

	_, err := client.FactorString(nil, "1", "1")
	assert.Error(t, err)

	_, err = client.FactorString(big.NewInt(-91), "110_", "011_")
	assert.Error(t, err)
}

func TestClient_BitLengthCapacity(t *testing.T) {
	// A modulus wide enough that the factor bit length exceeds the
	// provisioned recursion depth must be rejected before searching.
	n := new(big.Int).Lsh(big.NewInt(1), 2*MaxBitLength)

	_, err := NewClient().FactorString(n, "1", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBitLengthTooLarge))
}

func TestClient_FactorFile_JSON(t *testing.T) {
	client := NewClient()

	results, err := client.FactorFile("../../fixtures/test_problems.json")
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.True(t, res.Success, "problem %d", i)
	}
	assert.Equal(t, map[string]bool{"7": true, "13": true}, factorSet(results[0].Factors))
	assert.Equal(t, map[string]bool{"233": true, "251": true}, factorSet(results[2].Factors))
}

func TestClient_FactorFile_ParseError(t *testing.T) {
	_, err := NewClient().FactorFile("../../fixtures/no_such_file.json")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to parse problems"))
}

func TestClient_Builders(t *testing.T) {
	strategy := NewDFSStrategy()
	client := NewClient().
		WithStrategy(strategy).
		WithParser(&YAMLParser{}).
		WithTryReverse(false).
		WithLogger(zap.NewNop())

	assert.Equal(t, "BranchAndBoundDFS", client.strategy.Name())
	assert.IsType(t, &YAMLParser{}, client.parser)
	assert.False(t, client.tryReverse)
}

func TestClient_VerboseFailureDoesNotPanic(t *testing.T) {
	client := NewClient().WithVerbose(true).WithLogger(zap.NewNop())

	result, err := client.FactorString(big.NewInt(91), "000_", "000_")
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestFromString(t *testing.T) {
	p, q, ok := FromString(big.NewInt(91), "110_", "011_")
	require.True(t, ok)

	product := new(big.Int).Mul(p, q)
	assert.Zero(t, product.Cmp(big.NewInt(91)))
}

func TestFromString_NotFound(t *testing.T) {
	p, q, ok := FromString(big.NewInt(91), "000_", "000_")
	assert.False(t, ok)
	assert.Nil(t, p)
	assert.Nil(t, q)
}

func TestFromVector(t *testing.T) {
	p, q, ok := FromVector(big.NewInt(91), []int{1, 1, 0, -1}, []int{0, -1, -1, 1})
	require.True(t, ok)
	assert.Equal(t, map[string]bool{"7": true, "13": true}, factorSet(&FactorPair{P: p, Q: q}))
}
