// Command extract-tickers loads ticker symbols from a CSV file into one or more exchanges.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"company_backend/internal/app/di"
	"company_backend/internal/feature/tickers/usecase"
)

const (
	envKeyCSVPath = "TICKERS_CSV_PATH"
	runTimeout    = 10 * time.Minute
)

type options struct {
	file       string
	reset      bool
	skipHeader bool
}

// openDB is replaced in tests.
var openDB = di.OpenDatabase

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "extract-tickers MIC [MIC...]",
		Short: "Load tickers from a CSV file into the given exchanges",
		Long: `Reads "company name,symbol" rows from a CSV file and creates one active
ticker per row under each exchange given as an argument. Missing exchanges are
created. MICs may be separated by spaces or commas.

Examples:
  extract-tickers XNYS
  extract-tickers XNYS,XNAS --file ./tickers.csv --skip-header
  extract-tickers XNYS --reset`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", os.Getenv(envKeyCSVPath), "CSV file to read (default $"+envKeyCSVPath+")")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "delete every exchange with each MIC first, cascading to their tickers and companies")
	cmd.Flags().BoolVar(&opts.skipHeader, "skip-header", false, "ignore the first CSV row")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	if opts.file == "" {
		return fmt.Errorf("no CSV file: pass --file or set %s", envKeyCSVPath)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	uc := di.NewIngestUsecase(db, opts.file, opts.skipHeader)
	results, err := uc.Ingest(ctx, usecase.SplitMICs(args), usecase.IngestOptions{Reset: opts.reset})
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tickers created, %d rows skipped\n", r.MIC, r.Processed, r.Skipped)
	}
	return err
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
