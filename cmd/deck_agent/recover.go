package main

import (
	"fmt"
	"os"

	"github.com/jonathan/deck-generator/internal/observability"
	"github.com/jonathan/deck-generator/internal/recovery"
	"github.com/jonathan/deck-generator/internal/types"
	"github.com/spf13/cobra"
)

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover a document from raw generator output",
	Long: `Runs only the recovery engine on a file holding raw model output.

Always produces a valid document: valid JSON passes through, truncated JSON is repaired, and anything else degrades to title extraction or the emergency document.`,
	RunE: runRecover,
}

var (
	recoverInput   string
	recoverOut     string
	recoverVerbose bool
)

func init() {
	recoverCmd.Flags().StringVarP(&recoverInput, "input", "i", "", "Path to raw generator output file (required)")
	recoverCmd.Flags().StringVarP(&recoverOut, "out", "o", "", "Write the document JSON to this file instead of stdout")
	recoverCmd.Flags().BoolVarP(&recoverVerbose, "verbose", "v", false, "Print the recovery action trail")

	if err := recoverCmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}

	rootCmd.AddCommand(recoverCmd)
}

func runRecover(_ *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(recoverInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	record := types.NewPipelineRecord("")
	doc := recovery.NewEngine().Recover(string(raw), record)

	fmt.Printf("Recovered document at level %d with %d slides\n", record.RecoveryLevel, len(doc.Slides))
	if recoverVerbose {
		observability.NewPrinter(os.Stdout).PrintRecord(record)
	}

	return writeDocument(doc, recoverOut)
}
