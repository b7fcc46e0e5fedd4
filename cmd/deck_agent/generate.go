package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/deck-generator/internal/config"
	"github.com/jonathan/deck-generator/internal/db"
	"github.com/jonathan/deck-generator/internal/ingestion"
	"github.com/jonathan/deck-generator/internal/llm"
	"github.com/jonathan/deck-generator/internal/pipeline"
	"github.com/jonathan/deck-generator/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a complete slide deck for a topic",
	Long: `Runs the full generation pipeline: classification -> strategy selection -> generation -> recovery -> assembly.

The topic can be given inline, read from a text file, or fetched from a URL.
Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	generateConfigPath  string
	generateTopic       string
	generateTopicFile   string
	generateTopicURL    string
	generateStrategy    string
	generateSlideCount  int
	generatePurpose     string
	generateTheme       string
	generateImages      bool
	generateConsistency string
	generateUseBrowser  bool
	generateVerbose     bool
	generateAPIKey      string
	generateDatabaseURL string
	generateOut         string
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&generateTopic, "topic", "t", "", "Topic text (mutually exclusive with --topic-file and --topic-url)")
	generateCmd.Flags().StringVar(&generateTopicFile, "topic-file", "", "Path to topic material text file")
	generateCmd.Flags().StringVar(&generateTopicURL, "topic-url", "", "URL to fetch topic material from")
	generateCmd.Flags().StringVarP(&generateStrategy, "strategy", "s", "", "Force a generation strategy (see 'strategies' for ids)")
	generateCmd.Flags().IntVar(&generateSlideCount, "slides", 0, "Requested content slide count (0 defers to classification)")
	generateCmd.Flags().StringVar(&generatePurpose, "purpose", "", "Free-text purpose hint passed to the generator")
	generateCmd.Flags().StringVar(&generateTheme, "theme", "", "Free-text theme hint passed to the generator")
	generateCmd.Flags().BoolVar(&generateImages, "images", false, "Attach image enhancements to slides")
	generateCmd.Flags().StringVar(&generateConsistency, "image-consistency", "", "Image style consistency: loose, medium or strict")
	generateCmd.Flags().BoolVar(&generateUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print detailed debug information")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Write the document JSON to this file instead of stdout")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	generateCmd.Flags().StringVar(&generateDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Load config file if provided
	var cfg config.Config
	if generateConfigPath != "" {
		loadedCfg, err := config.LoadConfig(generateConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if generateVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", generateConfigPath)
		}
	}

	// Apply CLI overrides; only override when the flag was explicitly set
	if cmd.Flags().Changed("topic-file") {
		cfg.TopicFile = generateTopicFile
	}
	if cmd.Flags().Changed("topic-url") {
		cfg.TopicURL = generateTopicURL
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = generateStrategy
	}
	if cmd.Flags().Changed("slides") {
		cfg.SlideCount = generateSlideCount
	}
	if cmd.Flags().Changed("images") {
		cfg.IncludeImages = generateImages
	}
	if cmd.Flags().Changed("image-consistency") {
		cfg.ImageConsistency = generateConsistency
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = generateAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = generateUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = generateVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = generateDatabaseURL
	}

	topic, err := resolveTopic(ctx, &cfg, generateTopic)
	if err != nil {
		return err
	}

	// API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	// Database is optional; deck generation works without persistence
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
	}

	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	req := &types.GenerationRequest{
		Topic:            topic,
		StrategyID:       cfg.Strategy,
		Purpose:          generatePurpose,
		Theme:            generateTheme,
		SlideCount:       cfg.SlideCount,
		IncludeImages:    cfg.IncludeImages,
		ImageConsistency: types.ConsistencyLevel(cfg.ImageConsistency),
	}

	p := pipeline.New(client, pipeline.Options{
		Database: database,
		Verbose:  cfg.Verbose,
	})
	doc, _, err := p.Run(ctx, req)
	if err != nil {
		return err
	}

	return writeDocument(doc, generateOut)
}

// resolveTopic produces the topic text from whichever source is configured.
// Exactly one of the inline topic, topic file or topic URL must be set.
func resolveTopic(ctx context.Context, cfg *config.Config, inline string) (string, error) {
	sources := 0
	for _, set := range []bool{inline != "", cfg.TopicFile != "", cfg.TopicURL != ""} {
		if set {
			sources++
		}
	}
	if sources == 0 {
		return "", fmt.Errorf("one of --topic, --topic-file or --topic-url must be provided (via flag or config)")
	}
	if sources > 1 {
		return "", fmt.Errorf("--topic, --topic-file and --topic-url are mutually exclusive; provide only one")
	}

	switch {
	case inline != "":
		return inline, nil
	case cfg.TopicFile != "":
		text, _, err := ingestion.IngestFromFile(cfg.TopicFile)
		if err != nil {
			return "", fmt.Errorf("failed to ingest topic file: %w", err)
		}
		return text, nil
	default:
		text, _, err := ingestion.IngestFromURL(ctx, cfg.TopicURL, cfg.UseBrowser, cfg.Verbose)
		if err != nil {
			return "", fmt.Errorf("failed to ingest topic URL: %w", err)
		}
		return text, nil
	}
}

// writeDocument marshals the document to the output file, or stdout when
// no path is given.
func writeDocument(doc *types.Document, outPath string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if outPath == "" {
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	fmt.Printf("Document written to %s\n", outPath)
	return nil
}
