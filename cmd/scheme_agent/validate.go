package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jatin/yojana-sahayak/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalog.json>",
	Short: "Validate a scheme catalog file",
	Long: `Checks every record in a catalog file against the scheme schema and
reports the entries that would be rejected at load time.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	result, err := catalog.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("✓ %d valid schemes\n", len(result.Schemes))
	if len(result.Rejected) == 0 {
		return nil
	}

	fmt.Fprintf(os.Stderr, "✗ %d rejected entries:\n", len(result.Rejected))
	for _, rej := range result.Rejected {
		fmt.Fprintf(os.Stderr, "  entry %d (%s): %v\n", rej.Index, rej.Name, rej.Err)
	}
	return fmt.Errorf("%d catalog entries failed validation", len(result.Rejected))
}
