package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/allanweber/trading-journal-entry-sub000/config"
	"github.com/allanweber/trading-journal-entry-sub000/models"
	"github.com/allanweber/trading-journal-entry-sub000/utils"
	"github.com/allanweber/trading-journal-entry-sub000/workflow"
)

func main() {
	journalID := flag.Int("journal-id", 0, "Optional: rebuild only one journal. If 0, rebuilds all journals.")
	continueOnError := flag.Bool("continue-on-error", true, "Continue when a journal fails")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	// Ensure schema is up-to-date (creates journals/entries if missing).
	models.MigrateTable()

	// No Redis here: recompute serializes on the advisory lock alone and
	// the cache helpers are no-ops without a client.
	ctx = utils.SetUserNameInContext(ctx, "BalanceRebuild")

	var journals []models.Journal
	query := db.WithContext(ctx).Model(&models.Journal{})
	if *journalID != 0 {
		query = query.Where("id = ?", *journalID)
	}
	if err := query.Find(&journals).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to list journals: %v\n", err)
		os.Exit(1)
	}
	if len(journals) == 0 {
		fmt.Fprintln(os.Stderr, "no journals found to rebuild")
		return
	}

	failed := 0
	for _, j := range journals {
		balance, err := workflow.RecomputeJournalBalance(ctx, j.ID)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "journal %d: recompute failed: %v\n", j.ID, err)
			if !*continueOnError {
				os.Exit(1)
			}
			continue
		}
		fmt.Printf("journal %d: account=%s closed=%s opened=%s\n",
			j.ID, balance.AccountBalance.String(), balance.ClosedPositions.String(), balance.OpenedPositions.String())
	}
	fmt.Printf("rebuilt %d journals, %d failed\n", len(journals)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
