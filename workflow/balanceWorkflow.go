package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/allanweber/trading-journal-entry-sub000/config"
	"github.com/allanweber/trading-journal-entry-sub000/models"
	"github.com/allanweber/trading-journal-entry-sub000/models/reports"
	"github.com/allanweber/trading-journal-entry-sub000/utils"
	"github.com/bsm/redislock"
	"gorm.io/gorm"
)

func balanceCacheKey(journalId int) string {
	return fmt.Sprintf("journal-balance:%d", journalId)
}

func balanceCacheTTL() time.Duration {
	// Env: BALANCE_CACHE_TTL_SECONDS (default 600s)
	ttl := 600
	if v := strings.TrimSpace(os.Getenv("BALANCE_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

// RecomputeJournalBalance rebuilds the journal's cached snapshot from its
// full entry history and persists it, serialized per journal.
//
// The Redis lock is a best-effort optimization. Correctness must not
// depend on Redis: the MySQL advisory lock inside the transaction is what
// actually serializes concurrent recomputes.
func RecomputeJournalBalance(ctx context.Context, journalId int) (*models.Balance, error) {
	logger := config.GetLogger()

	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, fmt.Sprintf("journal-recompute:%d", journalId), 30*time.Second, nil)
		if err == nil {
			defer lock.Release(ctx)
		} else if !errors.Is(err, redislock.ErrNotObtained) {
			config.LogError(logger, "balanceWorkflow.go", "RecomputeJournalBalance", "redislock.Obtain", journalId, err)
		}
	}

	db := config.GetDB()
	var result models.Balance
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := AcquireJournalPostingLock(tx, journalId); err != nil {
			return err
		}
		defer ReleaseJournalPostingLock(tx, journalId)

		var journal models.Journal
		if err := tx.First(&journal, journalId).Error; err != nil {
			return utils.ErrorRecordNotFound
		}

		var entries []*models.Entry
		err := tx.Where("journal_id = ?", journalId).
			Order("date asc, id asc").
			Find(&entries).Error
		if err != nil {
			return err
		}

		result = models.RecomputeBalance(&journal, entries)
		now := time.Now().UTC()
		journal.CurrentBalance = result
		journal.BalanceUpdatedAt = &now
		return tx.Save(&journal).Error
	})
	if err != nil {
		return nil, err
	}

	if err := config.SetRedisObject(balanceCacheKey(journalId), &result, balanceCacheTTL()); err != nil {
		config.LogError(logger, "balanceWorkflow.go", "RecomputeJournalBalance", "SetRedisObject", journalId, err)
	}
	// Finished entries changed, so any cached period report is stale.
	if err := reports.InvalidatePeriodCache(journalId); err != nil {
		config.LogError(logger, "balanceWorkflow.go", "RecomputeJournalBalance", "InvalidatePeriodCache", journalId, err)
	}
	return &result, nil
}

// RefreshJournalExposure refreshes only the unrealized side of the cached
// snapshot from currently open trades, skipping the full history scan.
func RefreshJournalExposure(ctx context.Context, journalId int) (*models.Balance, error) {
	logger := config.GetLogger()

	db := config.GetDB()
	var result models.Balance
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := AcquireJournalPostingLock(tx, journalId); err != nil {
			return err
		}
		defer ReleaseJournalPostingLock(tx, journalId)

		var journal models.Journal
		if err := tx.First(&journal, journalId).Error; err != nil {
			return utils.ErrorRecordNotFound
		}

		var openEntries []*models.Entry
		err := tx.Where("journal_id = ? AND type = ? AND net_result IS NULL", journalId, models.EntryTypeTrade).
			Order("date asc, id asc").
			Find(&openEntries).Error
		if err != nil {
			return err
		}

		result = models.RecomputeExposure(&journal, openEntries)
		now := time.Now().UTC()
		journal.CurrentBalance = result
		journal.BalanceUpdatedAt = &now
		return tx.Save(&journal).Error
	})
	if err != nil {
		return nil, err
	}

	if err := config.SetRedisObject(balanceCacheKey(journalId), &result, balanceCacheTTL()); err != nil {
		config.LogError(logger, "balanceWorkflow.go", "RefreshJournalExposure", "SetRedisObject", journalId, err)
	}
	return &result, nil
}

// GetJournalBalance is the cheap read: cached snapshot only, never a
// recompute. It may trail an in-flight recompute; that is accepted.
func GetJournalBalance(ctx context.Context, journalId int) (*models.Balance, error) {
	journal, err := models.GetJournal(ctx, journalId)
	if err != nil {
		return nil, err
	}

	var cached models.Balance
	if hit, err := config.GetRedisObject(balanceCacheKey(journal.ID), &cached); err == nil && hit {
		return &cached, nil
	}

	snapshot := journal.CurrentBalance
	return &snapshot, nil
}
