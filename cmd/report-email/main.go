package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/phishguard/outlook-threat-reporter/internal/adapters/outlook"
	"github.com/phishguard/outlook-threat-reporter/internal/core"
	"github.com/phishguard/outlook-threat-reporter/internal/di"
	"github.com/phishguard/outlook-threat-reporter/internal/factory"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	tokens *factory.TokenFactory,
	service *core.ThreatReportService,
) error {
	defer logger.Sync()

	category := core.Category(flags.Category)
	if !category.IsValid() {
		logger.Fatal("Invalid report category",
			zap.String("category", flags.Category))
	}
	if flags.ItemID == "" || flags.Mailbox == "" {
		logger.Fatal("Both -item-id and -mailbox are required")
	}

	session := outlook.NewItemSession(flags.ItemID, flags.Mailbox)

	fmt.Printf("=== Threat Report ===\n")
	fmt.Printf("Category: %s\n", category)
	fmt.Printf("Mailbox: %s\n", flags.Mailbox)
	fmt.Printf("\n")

	startTime := time.Now()
	result, err := service.SubmitEmailThreat(context.Background(), tokens.Provider(), session, category)
	if err != nil {
		logger.Fatal("Failed to submit threat report", zap.Error(err))
	}

	fmt.Printf("=== Result ===\n")
	fmt.Printf("Message URL: %s\n", result.Report.MessageURL)
	fmt.Printf("Submitted at: %s\n", result.SubmittedAt.Format(time.RFC3339))
	fmt.Printf("Processing time: %v\n", time.Since(startTime))
	return nil
}
