package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/deck-generator/internal/classify"
	"github.com/jonathan/deck-generator/internal/ingestion"
	"github.com/jonathan/deck-generator/internal/llm"
	"github.com/jonathan/deck-generator/internal/observability"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a topic without generating a deck",
	Long:  "Runs only the classification stage and prints the resulting category, confidence, suggested slide count and image consistency as JSON.",
	RunE:  runClassify,
}

var (
	classifyTopic     string
	classifyTopicFile string
	classifyAPIKey    string
	classifyVerbose   bool
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyTopic, "topic", "t", "", "Topic text (mutually exclusive with --topic-file)")
	classifyCmd.Flags().StringVar(&classifyTopicFile, "topic-file", "", "Path to topic material text file")
	classifyCmd.Flags().StringVar(&classifyAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	classifyCmd.Flags().BoolVarP(&classifyVerbose, "verbose", "v", false, "Print a formatted classification summary")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if classifyTopic == "" && classifyTopicFile == "" {
		return fmt.Errorf("either --topic or --topic-file is required")
	}
	if classifyTopic != "" && classifyTopicFile != "" {
		return fmt.Errorf("--topic and --topic-file are mutually exclusive; provide only one")
	}

	topic := classifyTopic
	if classifyTopicFile != "" {
		text, _, err := ingestion.IngestFromFile(classifyTopicFile)
		if err != nil {
			return fmt.Errorf("failed to ingest topic file: %w", err)
		}
		topic = text
	}

	apiKey := classifyAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	cls, err := classify.New(client).Classify(ctx, topic)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if classifyVerbose {
		observability.NewPrinter(os.Stdout).PrintClassification(cls)
	}

	data, err := json.MarshalIndent(cls, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal classification: %w", err)
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
