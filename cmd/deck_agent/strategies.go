package main

import (
	"fmt"

	"github.com/jonathan/deck-generator/internal/strategy"
	"github.com/spf13/cobra"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available generation strategies",
	RunE:  runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func runStrategies(_ *cobra.Command, _ []string) error {
	registry := strategy.NewRegistry()
	defaultID := registry.Default().ID()

	for _, id := range registry.IDs() {
		if id == defaultID {
			fmt.Printf("%s (default)\n", id)
		} else {
			fmt.Println(id)
		}
	}
	return nil
}
