package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/factor-known-bits/pkg/knownbits"
)

// newBatchCommand builds the batch command for problem files.
func newBatchCommand() *cobra.Command {
	var (
		format    string
		noReverse bool
		verbose   bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Factor every problem in a JSON, CSV or YAML problem file",
		Long: `Factor every problem in a problem file. Each record carries a modulus and
the two MSB-first bit patterns:

  JSON: [{"n": "91", "p_bits": "110_", "q_bits": "011_"}]
  CSV:  header row n,p_bits,q_bits
  YAML: - n: "91"
          p_bits: "110_"
          q_bits: "011_"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args[0], format, noReverse, verbose, asJSON)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Problem file format (json, csv or yaml)")
	cmd.Flags().BoolVar(&noReverse, "no-reverse", false, "Disable the automatic reversed-bit-order retry")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable diagnostics on failure")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit full results as JSON on stdout")

	return cmd
}

func runBatch(source, format string, noReverse, verbose, asJSON bool) error {
	var parser knownbits.ProblemParser
	switch format {
	case "json":
		parser = &knownbits.JSONParser{}
	case "csv":
		parser = &knownbits.CSVParser{}
	case "yaml", "yml":
		parser = &knownbits.YAMLParser{}
	default:
		return fmt.Errorf("unknown format %q (want json, csv or yaml)", format)
	}

	client := knownbits.NewClient().
		WithParser(parser).
		WithTryReverse(!noReverse).
		WithVerbose(verbose)

	problems, err := parser.ParseProblems(source)
	if err != nil {
		return fmt.Errorf("failed to parse problems: %w", err)
	}

	failed := 0
	for i, prob := range problems {
		result, err := client.Factor(prob.N, prob.PBits, prob.QBits)
		if err != nil {
			return fmt.Errorf("problem %d: %w", i+1, err)
		}
		fmt.Fprintf(os.Stdout, "problem %d/%d:\n", i+1, len(problems))
		if err := printResult(os.Stdout, prob.N, result, asJSON); err != nil {
			return err
		}
		if !result.Success {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d problems had no factorization", failed, len(problems))
	}
	return nil
}
