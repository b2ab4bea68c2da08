package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/factor-known-bits/pkg/knownbits"
)

// newSolveCommand builds the solve command for a single modulus.
func newSolveCommand() *cobra.Command {
	var (
		modulus   string
		pPattern  string
		qPattern  string
		vector    bool
		noReverse bool
		verbose   bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Factor a single semiprime from two bit patterns",
		Long: `Factor a single semiprime given its modulus and the partially known bit
patterns of both factors.

The modulus accepts decimal or 0x-prefixed hex. Patterns are MSB-first
strings like "110_"; with --vector they are comma-separated ternary values
like "1,1,0,-1" where -1 marks an unknown bit.`,
		Example: `  factor solve --n 91 --p "110_" --q "011_"
  factor solve --n 91 --p "1,1,0,-1" --q "0,-1,-1,1" --vector
  factor solve --n 0xE473 --p "1111_011" --q "111_100_" --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(modulus, pPattern, qPattern, vector, noReverse, verbose, asJSON)
		},
	}

	cmd.Flags().StringVar(&modulus, "n", "", "Modulus to factor (decimal or 0x-hex)")
	cmd.Flags().StringVar(&pPattern, "p", "", "MSB-first bit pattern of the first factor")
	cmd.Flags().StringVar(&qPattern, "q", "", "MSB-first bit pattern of the second factor")
	cmd.Flags().BoolVar(&vector, "vector", false, "Treat patterns as comma-separated {0,1,-1} vectors")
	cmd.Flags().BoolVar(&noReverse, "no-reverse", false, "Disable the automatic reversed-bit-order retry")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable diagnostics on failure")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full result as JSON on stdout")
	_ = cmd.MarkFlagRequired("n")
	_ = cmd.MarkFlagRequired("p")
	_ = cmd.MarkFlagRequired("q")

	return cmd
}

func runSolve(modulus, pPattern, qPattern string, vector, noReverse, verbose, asJSON bool) error {
	n, err := parseModulus(modulus)
	if err != nil {
		return err
	}

	client := knownbits.NewClient().
		WithTryReverse(!noReverse).
		WithVerbose(verbose)

	var result *knownbits.FactorResult
	if vector {
		pVec, err := parseVector(pPattern)
		if err != nil {
			return fmt.Errorf("invalid --p vector: %w", err)
		}
		qVec, err := parseVector(qPattern)
		if err != nil {
			return fmt.Errorf("invalid --q vector: %w", err)
		}
		result, err = client.FactorVector(n, pVec, qVec)
		if err != nil {
			return err
		}
	} else {
		result, err = client.FactorString(n, pPattern, qPattern)
		if err != nil {
			return err
		}
	}

	return printResult(os.Stdout, n, result, asJSON)
}

// printResult renders one result in human or JSON form.
func printResult(w *os.File, n *big.Int, result *knownbits.FactorResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.Success {
		fmt.Fprintf(w, "[+] %s = %s * %s\n", n, result.Factors.P, result.Factors.Q)
		if result.Diagnostics.Suggestion != "" {
			fmt.Fprintf(w, "    note: %s\n", result.Diagnostics.Suggestion)
		}
		return nil
	}

	fmt.Fprintf(w, "[-] no factorization found for %s\n", n)
	for _, a := range result.Diagnostics.Attempts {
		fmt.Fprintf(w, "    attempt %-24s depth %d/%d, %d nodes, %d prunes\n",
			a.Endianness+":", a.Progress.MaxDepth, result.Diagnostics.BitLength,
			a.Progress.Nodes, len(a.Progress.PrunedAt))
	}
	if result.Diagnostics.Suggestion != "" {
		fmt.Fprintf(w, "    suggestion: %s\n", result.Diagnostics.Suggestion)
	}
	return nil
}

func parseModulus(s string) (*big.Int, error) {
	v := strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(v, "0x") || strings.HasPrefix(v, "0X") {
		v = v[2:]
		base = 16
	}
	n := new(big.Int)
	if _, ok := n.SetString(v, base); !ok {
		return nil, fmt.Errorf("invalid modulus: %s", s)
	}
	return n, nil
}

func parseVector(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	vec := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		vec = append(vec, v)
	}
	return vec, nil
}
