// Command validate checks every question record in the bank against the
// schema and reports all violations at once. The whole batch fails if
// any record is invalid or if two records share an id.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quizbank/internal/bank"
	"quizbank/internal/config"
	"quizbank/internal/logger"
	"quizbank/internal/validation"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 2
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 2
	}
	defer logger.Sync()

	bankDir := flag.String("bank", cfg.Bank.Dir, "root directory of the question bank")
	flag.Parse()

	records, err := bank.LoadDir(*bankDir)
	if err != nil {
		logger.Get().Error("Failed to load bank", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if len(records) == 0 {
		fmt.Println("No question records found.")
		return 1
	}

	result := validation.ValidateBatch(context.Background(), records)
	for _, r := range result.Results {
		if len(r.Errors) == 0 {
			fmt.Printf("%s: OK\n", r.Source)
			continue
		}
		fmt.Printf("%s: FAIL\n", r.Source)
		for _, v := range r.Errors {
			fmt.Printf("  - %s\n", v.Error())
		}
	}

	failed := false
	if !result.OK() {
		failed = true
		logger.Get().Warn("Validation failed",
			zap.Int("records", len(records)),
			zap.Int("invalid", result.InvalidCount()),
		)
	}

	// The duplicate-id check is store-level and runs after all per-record
	// validations complete.
	if _, err := bank.NewStore(records); err != nil {
		failed = true
		fmt.Fprintln(os.Stderr, err)
	}

	if failed {
		return 1
	}
	logger.Get().Info("Bank is valid", zap.Int("records", len(records)))
	return 0
}
