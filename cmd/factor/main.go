package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "factor",
		Short: "Recover the prime factors of a semiprime from partially known bits",
		Long: `factor reconstructs the two prime factors p and q of a semiprime n = p*q
when some bits of p and q are known, e.g. from a cold-boot or side-channel
leak. Bit patterns are given MSB-first over the alphabet {0,1,_}, where '_'
(or any character other than 0/1) marks an unknown bit.

When the search fails in the given bit order, the reversed order is tried
automatically; sources that number their bits LSB-first are recovered
without any caller-side conversion.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSolveCommand())
	rootCmd.AddCommand(newBatchCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
