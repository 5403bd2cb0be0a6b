package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/negotiation-harness/internal/catalog"
	"github.com/jonathan/negotiation-harness/internal/config"
	"github.com/jonathan/negotiation-harness/internal/llm"
	"github.com/jonathan/negotiation-harness/internal/observability"
	"github.com/jonathan/negotiation-harness/internal/pipeline"
	"github.com/jonathan/negotiation-harness/internal/results"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run a batch of negotiation experiments",
	Long: `Enumerates all trials for the requested parameters, variants, and repetition count, issues one model call per trial, and writes the result table as CSV.

Modes:
  quick   vary a single parameter against a single variant (--param, --variant)
  custom  vary the listed parameters and variants (--params, --variants)
  full    full factorial over every parameter and variant

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runExperimentsCmd,
}

var (
	runConfigPath  string
	runMode        string
	runParam       string
	runVariant     string
	runParams      []string
	runVariants    []string
	runRepetitions int
	runModel       string
	runOutput      string
	runAPIKey      string
	runDatabaseURL string
	runDelayMs     int
	runConcurrency int
	runVerbose     bool
	runYes         bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runMode, "mode", "m", "", "Run mode: quick, custom, or full (default quick)")
	runCommand.Flags().StringVar(&runParam, "param", "", "Parameter to vary in quick mode (default client_name)")
	runCommand.Flags().StringVar(&runVariant, "variant", "", "Prompt variant to use in quick mode (default on_behalf_human)")
	runCommand.Flags().StringSliceVar(&runParams, "params", nil, "Parameters to vary in custom mode")
	runCommand.Flags().StringSliceVar(&runVariants, "variants", nil, "Variants to test in custom mode (empty selects all)")
	runCommand.Flags().IntVarP(&runRepetitions, "repetitions", "r", 0, "Repetitions per trial (default 1)")
	runCommand.Flags().StringVar(&runModel, "model", "", "Model identifier (default "+llm.DefaultModel+")")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Output CSV path (default experiment_results_<timestamp>.csv)")
	runCommand.Flags().IntVar(&runDelayMs, "delay-ms", 0, "Delay between successive calls in milliseconds (default 500)")
	runCommand.Flags().IntVar(&runConcurrency, "concurrency", 0, "Maximum in-flight model calls (default 1, serial)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVarP(&runYes, "yes", "y", false, "Skip the full-mode confirmation prompt")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for optional result persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runExperimentsCmd(cmd *cobra.Command, _ []string) error {
	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if runVerbose {
			fmt.Printf("Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("mode") {
		cfg.Mode = runMode
	}
	if cmd.Flags().Changed("param") {
		cfg.Param = runParam
	}
	if cmd.Flags().Changed("variant") {
		cfg.Variant = runVariant
	}
	if cmd.Flags().Changed("params") {
		cfg.Params = runParams
	}
	if cmd.Flags().Changed("variants") {
		cfg.Variants = runVariants
	}
	if cmd.Flags().Changed("repetitions") {
		cfg.Repetitions = runRepetitions
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = runModel
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("delay-ms") {
		cfg.DelayMs = runDelayMs
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = runConcurrency
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Mode:        "quick",
		Param:       "client_name",
		Variant:     "on_behalf_human",
		Repetitions: 1,
		Model:       llm.DefaultModel,
		DelayMs:     500,
		Concurrency: 1,
	})

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: Resolve mode into parameter/variant selections
	var params, variants []string
	switch cfg.Mode {
	case "quick":
		params = []string{cfg.Param}
		variants = []string{cfg.Variant}
	case "custom":
		params = cfg.Params
		variants = cfg.Variants
	case "full":
		params = catalog.ParameterNames()
		variants = catalog.VariantNames()
		if !runYes && !confirmFullRun() {
			fmt.Println("Cancelled.")
			return nil
		}
	default:
		return fmt.Errorf("unknown mode %q (expected quick, custom, or full)", cfg.Mode)
	}

	// Step 5: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.Output == "" {
		cfg.Output = fmt.Sprintf("experiment_results_%s.csv", time.Now().Format("20060102_150405"))
	}

	// Interruption flushes the rows accumulated so far instead of losing them.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := llm.NewClient(ctx, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	table, err := pipeline.Run(ctx, llm.NewInvoker(client), pipeline.RunOptions{
		Params:      params,
		Variants:    variants,
		Repetitions: cfg.Repetitions,
		Model:       cfg.Model,
		Delay:       time.Duration(cfg.DelayMs) * time.Millisecond,
		Concurrency: cfg.Concurrency,
		Verbose:     cfg.Verbose,
		DatabaseURL: cfg.DatabaseURL,
	})
	if table != nil && len(table.Rows) > 0 {
		if writeErr := results.WriteCSVFile(table, cfg.Output); writeErr != nil {
			return fmt.Errorf("failed to write results: %w", writeErr)
		}
		fmt.Printf("\nResults saved to: %s\n", cfg.Output)
		observability.NewPrinter(os.Stdout).PrintRunSummary(table)
	}
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nRun interrupted; partial results were saved.")
		return nil
	}
	return err
}

// confirmFullRun warns about the size of a full factorial batch and asks for
// confirmation on stdin.
func confirmFullRun() bool {
	fmt.Println("WARNING: full mode runs every parameter/variant combination.")
	fmt.Println("This may take a very long time and cost significant API credits.")
	fmt.Print("Continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}
