package workflow

import (
	"context"
	"errors"

	"github.com/allanweber/trading-journal-entry-sub000/config"
	"github.com/allanweber/trading-journal-entry-sub000/models"
	"github.com/shopspring/decimal"
)

// Write path for journal entries. Every mutation below that changes a
// finished entry's presence or value recomputes the journal balance
// synchronously before returning; mutations that leave an entry
// unfinished do not touch the cached snapshot at all (exposure refresh is
// a separate explicit command, see RefreshJournalExposure).

// RecomputeRequired is the trigger rule: a full recompute is needed iff
// the mutated entry was finished before, is finished after, or both.
func RecomputeRequired(wasFinished, isFinished bool) bool {
	return wasFinished || isFinished
}

// currentAccountBalance yields the prior balance fed to the calculator:
// the journal's cached account balance, computed first if it never was.
func currentAccountBalance(ctx context.Context, journal *models.Journal) (decimal.Decimal, error) {
	if journal.BalanceUpdatedAt == nil {
		balance, err := RecomputeJournalBalance(ctx, journal.ID)
		if err != nil {
			return decimal.Zero, err
		}
		return balance.AccountBalance.Decimal, nil
	}
	return journal.CurrentBalance.AccountBalance.Decimal, nil
}

func CreateTradeEntry(ctx context.Context, journalId int, input *models.NewTrade) (*models.Entry, error) {
	journal, err := models.GetJournal(ctx, journalId)
	if err != nil {
		return nil, err
	}

	prior, err := currentAccountBalance(ctx, journal)
	if err != nil {
		return nil, err
	}

	entry := models.NewTradeEntry(journal.ID, input)
	models.CalculateEntry(entry, prior)

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}

	if RecomputeRequired(false, entry.IsFinished()) {
		if _, err := RecomputeJournalBalance(ctx, journal.ID); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// CreateTransactionEntry records a deposit, withdrawal or tax charge.
// These are finished on creation, so the balance always recomputes.
func CreateTransactionEntry(ctx context.Context, journalId int, input *models.NewTransaction) (*models.Entry, error) {
	journal, err := models.GetJournal(ctx, journalId)
	if err != nil {
		return nil, err
	}

	prior, err := currentAccountBalance(ctx, journal)
	if err != nil {
		return nil, err
	}

	entryType, err := models.ParseEntryType(input.Type)
	if err != nil {
		return nil, err
	}

	var entry *models.Entry
	switch entryType {
	case models.EntryTypeDeposit:
		entry = models.NewDepositEntry(journal.ID, input.Date, input.Amount)
	case models.EntryTypeWithdrawal:
		entry = models.NewWithdrawalEntry(journal.ID, input.Date, input.Amount)
	case models.EntryTypeTaxes:
		entry = models.NewTaxesEntry(journal.ID, input.Date, input.Amount)
	default:
		return nil, errors.New("transaction entries must be DEPOSIT, WITHDRAWAL or TAXES")
	}
	models.CalculateEntry(entry, prior)

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}

	if _, err := RecomputeJournalBalance(ctx, journal.ID); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateTradeEntry replaces a trade's raw fields and recalculates its
// derived figures.
func UpdateTradeEntry(ctx context.Context, entryId int, input *models.NewTrade) (*models.Entry, error) {
	entry, journal, err := fetchTradeForChange(ctx, entryId)
	if err != nil {
		return nil, err
	}

	prior, err := currentAccountBalance(ctx, journal)
	if err != nil {
		return nil, err
	}

	wasFinished := entry.IsFinished()

	direction := models.EntryDirection(input.Direction)
	entry.Date = input.Date
	entry.Symbol = input.Symbol
	entry.Direction = &direction
	entry.Price = input.Price
	entry.Size = input.Size
	entry.ProfitPrice = input.ProfitPrice
	entry.LossPrice = input.LossPrice
	entry.Costs = input.Costs
	entry.ExitPrice = input.ExitPrice
	entry.ExitDate = input.ExitDate
	models.CalculateEntry(entry, prior)

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}

	if RecomputeRequired(wasFinished, entry.IsFinished()) {
		if _, err := RecomputeJournalBalance(ctx, journal.ID); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// CloseTradeEntry sets the exit price and date, finishing the trade.
func CloseTradeEntry(ctx context.Context, entryId int, input *models.CloseTrade) (*models.Entry, error) {
	entry, journal, err := fetchTradeForChange(ctx, entryId)
	if err != nil {
		return nil, err
	}

	prior, err := currentAccountBalance(ctx, journal)
	if err != nil {
		return nil, err
	}

	exitPrice := input.ExitPrice
	exitDate := input.ExitDate
	entry.ExitPrice = &exitPrice
	entry.ExitDate = &exitDate
	models.CalculateEntry(entry, prior)

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}

	// Closed means finished: always recompute.
	if _, err := RecomputeJournalBalance(ctx, journal.ID); err != nil {
		return nil, err
	}
	return entry, nil
}

func DeleteEntry(ctx context.Context, entryId int) error {
	entry, err := models.GetEntry(ctx, entryId)
	if err != nil {
		return err
	}
	journal, err := models.GetJournal(ctx, entry.JournalId)
	if err != nil {
		return err
	}

	wasFinished := entry.IsFinished()

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&models.Entry{}, entry.ID).Error; err != nil {
		return err
	}

	if RecomputeRequired(wasFinished, false) {
		if _, err := RecomputeJournalBalance(ctx, journal.ID); err != nil {
			return err
		}
	}
	return nil
}

func fetchTradeForChange(ctx context.Context, entryId int) (*models.Entry, *models.Journal, error) {
	entry, err := models.GetEntry(ctx, entryId)
	if err != nil {
		return nil, nil, err
	}
	if entry.Type != models.EntryTypeTrade {
		return nil, nil, errors.New("only TRADE entries can be edited")
	}
	journal, err := models.GetJournal(ctx, entry.JournalId)
	if err != nil {
		return nil, nil, err
	}
	return entry, journal, nil
}
