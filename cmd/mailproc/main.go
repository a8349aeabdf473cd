// mailproc processes one exported mail message per invocation. A mail rule
// saves the message as a temporary .eml and invokes the subcommand for its
// category; the temp file is deleted here no matter how the run ends.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dvloznov/mail-processors/internal/config"
	"github.com/dvloznov/mail-processors/internal/extract"
	"github.com/dvloznov/mail-processors/internal/logger"
	"github.com/dvloznov/mail-processors/internal/mailbridge"
	"github.com/dvloznov/mail-processors/internal/markdown"
	"github.com/dvloznov/mail-processors/internal/pdfcrypt"
	"github.com/dvloznov/mail-processors/internal/pipeline"
)

// runTimeout generously bounds one full run, including the extraction
// backoff schedule and the mail bridge call.
const runTimeout = 10 * time.Minute

var messageID string

func main() {
	rootCmd := &cobra.Command{
		Use:           "mailproc",
		Short:         "Extract financial data from mail messages",
		Long:          "Extracts credit-card statement line items and taxi receipts from .eml files using Gemini and appends them to per-category CSV/JSON outputs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&messageID, "message-id", "", "Mail message id for mark-read/move/flag after processing")

	eeccCmd := &cobra.Command{
		Use:   "eecc <file.eml>",
		Short: "Process a credit-card statement message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], runStatement)
		},
	}

	taxiCmd := &cobra.Command{
		Use:   "taxi <file.eml>",
		Short: "Process a taxi receipt message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], runTaxi)
		},
	}

	rootCmd.AddCommand(eeccCmd, taxiCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type processFunc func(ctx context.Context, cfg *config.Config, emlPath string) (pipeline.Outcome, error)

// run loads config, executes the flow and deletes the temp .eml
// unconditionally. Skips exit 0; only failures exit nonzero.
func run(emlPath string, process processFunc) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)

	if _, err := os.Stat(emlPath); err != nil {
		return fmt.Errorf("eml file %s: %w", emlPath, err)
	}

	if err := cfg.EnsureFolders(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	outcome, runErr := process(ctx, cfg, emlPath)

	if err := os.Remove(emlPath); err != nil {
		log.Warn().Err(err).Msg("could not delete temp eml")
	} else {
		log.Info().Msg("temp eml deleted")
	}

	log.Info().Str("outcome", outcome.String()).Msg("run finished")

	if outcome == pipeline.OutcomeFailed {
		if runErr != nil {
			return runErr
		}
		return fmt.Errorf("processing failed")
	}
	return nil
}

func runStatement(ctx context.Context, cfg *config.Config, emlPath string) (pipeline.Outcome, error) {
	extractor, err := extract.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return pipeline.OutcomeFailed, err
	}

	proc := pipeline.NewStatementProcessor(
		cfg,
		extractor,
		pdfcrypt.NewTool(cfg.QpdfPath),
		mailbridge.New(cfg.MailBridgeTimeout),
	)
	return proc.Process(ctx, emlPath, messageID)
}

func runTaxi(ctx context.Context, cfg *config.Config, emlPath string) (pipeline.Outcome, error) {
	extractor, err := extract.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return pipeline.OutcomeFailed, err
	}

	proc := pipeline.NewTaxiProcessor(
		cfg,
		extractor,
		markdown.NewConverter(),
		mailbridge.New(cfg.MailBridgeTimeout),
	)
	return proc.Process(ctx, emlPath, messageID)
}
