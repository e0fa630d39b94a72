package models

import (
	"context"
	"time"

	"github.com/allanweber/trading-journal-entry-sub000/config"
	"github.com/allanweber/trading-journal-entry-sub000/utils"
	"github.com/shopspring/decimal"
)

// Entry is one ledger record of a journal: a trade or a capital movement
// (deposit, withdrawal, tax charge).
//
// Raw fields are written by the factories below; derived fields
// (account_risked .. account_balance) are written only by CalculateEntry.
// An entry is finished once net_result is present: immediately for the
// non-trade types, and only after exit price + exit date for trades.
type Entry struct {
	ID        int       `gorm:"primary_key" json:"id"`
	JournalId int       `gorm:"not null;index;index:idx_entries_journal_date,priority:1" json:"journal_id"`
	Type      EntryType `gorm:"type:enum('TRADE','DEPOSIT','WITHDRAWAL','TAXES');not null" json:"type"`
	Date      time.Time `gorm:"not null;index:idx_entries_journal_date,priority:2" json:"date"`

	// Trade-only raw fields. For the other types Price carries the
	// sign-adjusted transaction magnitude and Size stays zero.
	Symbol      string           `gorm:"size:50" json:"symbol,omitempty"`
	Direction   *EntryDirection  `gorm:"type:enum('LONG','SHORT')" json:"direction,omitempty"`
	Price       decimal.Decimal  `gorm:"type:decimal(24,8);not null" json:"price"`
	Size        decimal.Decimal  `gorm:"type:decimal(24,8);default:0" json:"size"`
	ProfitPrice *decimal.Decimal `gorm:"type:decimal(24,8)" json:"profit_price,omitempty"`
	LossPrice   *decimal.Decimal `gorm:"type:decimal(24,8)" json:"loss_price,omitempty"`
	Costs       *decimal.Decimal `gorm:"type:decimal(20,2)" json:"costs,omitempty"`
	ExitPrice   *decimal.Decimal `gorm:"type:decimal(24,8)" json:"exit_price,omitempty"`
	ExitDate    *time.Time       `gorm:"index:idx_entries_journal_exit,priority:2" json:"exit_date,omitempty"`

	AccountRisked     *Decimal4 `gorm:"type:decimal(20,4)" json:"account_risked,omitempty"`
	PlannedRiskReward *Decimal2 `gorm:"type:decimal(20,2)" json:"planned_risk_reward,omitempty"`
	GrossResult       *Decimal2 `gorm:"type:decimal(20,2)" json:"gross_result,omitempty"`
	NetResult         *Decimal2 `gorm:"type:decimal(20,2);index:idx_entries_journal_exit,priority:1" json:"net_result,omitempty"`
	AccountChange     *Decimal4 `gorm:"type:decimal(20,4)" json:"account_change,omitempty"`
	AccountBalance    *Decimal2 `gorm:"type:decimal(20,2)" json:"account_balance,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Entry) IsFinished() bool {
	return e.NetResult != nil
}

func (e *Entry) GetId() int {
	return e.ID
}

type NewTrade struct {
	Date        time.Time        `json:"date" binding:"required"`
	Symbol      string           `json:"symbol" binding:"required"`
	Direction   string           `json:"direction" binding:"required,oneof=LONG SHORT"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Size        decimal.Decimal  `json:"size" binding:"required"`
	ProfitPrice *decimal.Decimal `json:"profit_price"`
	LossPrice   *decimal.Decimal `json:"loss_price"`
	Costs       *decimal.Decimal `json:"costs"`
	ExitPrice   *decimal.Decimal `json:"exit_price"`
	ExitDate    *time.Time       `json:"exit_date"`
}

type NewTransaction struct {
	Type   string          `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL TAXES"`
	Date   time.Time       `json:"date" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type CloseTrade struct {
	ExitPrice decimal.Decimal `json:"exit_price" binding:"required"`
	ExitDate  time.Time       `json:"exit_date" binding:"required"`
}

// NewTradeEntry builds an unsaved TRADE entry from raw inputs.
// Exit fields are optional: a trade may be recorded already closed.
func NewTradeEntry(journalId int, input *NewTrade) *Entry {
	direction := EntryDirection(input.Direction)
	return &Entry{
		JournalId:   journalId,
		Type:        EntryTypeTrade,
		Date:        input.Date,
		Symbol:      input.Symbol,
		Direction:   &direction,
		Price:       input.Price,
		Size:        input.Size,
		ProfitPrice: input.ProfitPrice,
		LossPrice:   input.LossPrice,
		Costs:       input.Costs,
		ExitPrice:   input.ExitPrice,
		ExitDate:    input.ExitDate,
	}
}

// The three transaction factories own the sign convention downstream code
// relies on: deposits are stored positive, withdrawals and taxes negative,
// whatever sign the caller handed in. Nothing after this point adjusts
// signs again.

func NewDepositEntry(journalId int, date time.Time, amount decimal.Decimal) *Entry {
	return &Entry{
		JournalId: journalId,
		Type:      EntryTypeDeposit,
		Date:      date,
		Price:     amount.Abs(),
	}
}

func NewWithdrawalEntry(journalId int, date time.Time, amount decimal.Decimal) *Entry {
	return &Entry{
		JournalId: journalId,
		Type:      EntryTypeWithdrawal,
		Date:      date,
		Price:     amount.Abs().Neg(),
	}
}

func NewTaxesEntry(journalId int, date time.Time, amount decimal.Decimal) *Entry {
	return &Entry{
		JournalId: journalId,
		Type:      EntryTypeTaxes,
		Date:      date,
		Price:     amount.Abs().Neg(),
	}
}

// GetEntry fetches one entry by id (may return RecordNotFound).
// Ownership is checked by the caller through the entry's journal.
func GetEntry(ctx context.Context, id int) (*Entry, error) {
	db := config.GetDB()
	var entry Entry
	if err := db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &entry, nil
}

// ListJournalEntries returns the journal's full entry history, ascending
// by entry date. This is the ordering the balance accumulator folds over.
func ListJournalEntries(ctx context.Context, journalId int) ([]*Entry, error) {
	db := config.GetDB()
	var entries []*Entry
	err := db.WithContext(ctx).
		Where("journal_id = ?", journalId).
		Order("date asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListOpenTrades returns the journal's unfinished trades only.
func ListOpenTrades(ctx context.Context, journalId int) ([]*Entry, error) {
	db := config.GetDB()
	var entries []*Entry
	err := db.WithContext(ctx).
		Where("journal_id = ? AND type = ? AND net_result IS NULL", journalId, EntryTypeTrade).
		Order("date asc, id asc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListFinishedTrades returns closed trades ordered by exit date ascending,
// optionally bounded inclusively by [from, until] on the exit date.
func ListFinishedTrades(ctx context.Context, journalId int, from, until *MyDateString) ([]*Entry, error) {
	db := config.GetDB()
	query := db.WithContext(ctx).
		Where("journal_id = ? AND type = ? AND net_result IS NOT NULL AND exit_date IS NOT NULL", journalId, EntryTypeTrade)
	if from != nil {
		query = query.Where("exit_date >= ?", from.Time())
	}
	if until != nil {
		query = query.Where("exit_date <= ?", until.Time())
	}
	var entries []*Entry
	if err := query.Order("exit_date asc, id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
