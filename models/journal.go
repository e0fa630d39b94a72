package models

import (
	"context"
	"errors"
	"time"

	"github.com/allanweber/trading-journal-entry-sub000/config"
	"github.com/allanweber/trading-journal-entry-sub000/utils"
	"github.com/shopspring/decimal"
)

// Journal owns a starting balance and date plus a cached Balance snapshot.
// The snapshot is only rewritten by the recompute workflow; plain reads
// return it as-is (BalanceUpdatedAt says how fresh it is, nil means it was
// never computed).
type Journal struct {
	ID           int             `gorm:"primary_key" json:"id"`
	UserId       int             `gorm:"index;not null" json:"user_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Currency     string          `gorm:"size:10;not null" json:"currency"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	StartBalance decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"start_balance"`

	CurrentBalance   Balance    `gorm:"embedded;embeddedPrefix:balance_" json:"current_balance"`
	BalanceUpdatedAt *time.Time `json:"balance_updated_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (j *Journal) GetId() int {
	return j.ID
}

type NewJournal struct {
	Name         string          `json:"name" binding:"required"`
	Currency     string          `json:"currency" binding:"required"`
	StartDate    time.Time       `json:"start_date" binding:"required"`
	StartBalance decimal.Decimal `json:"start_balance"`
}

func CreateJournal(ctx context.Context, input *NewJournal) (*Journal, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return nil, errors.New("user id is required")
	}

	journal := &Journal{
		UserId:       userId,
		Name:         input.Name,
		Currency:     input.Currency,
		StartDate:    input.StartDate,
		StartBalance: input.StartBalance.RoundBank(2),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(journal).Error; err != nil {
		return nil, err
	}
	return journal, nil
}

func ListJournals(ctx context.Context) ([]*Journal, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	var journals []*Journal
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at asc").
		Find(&journals).Error
	if err != nil {
		return nil, err
	}
	return journals, nil
}

// GetJournal fetches one journal scoped to the requesting user
// (may return RecordNotFound).
func GetJournal(ctx context.Context, id int) (*Journal, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return nil, errors.New("user id is required")
	}

	db := config.GetDB()
	var journal Journal
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		First(&journal, id).Error
	if err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	return &journal, nil
}

// DeleteJournal removes the journal and its whole entry history.
func DeleteJournal(ctx context.Context, id int) error {
	journal, err := GetJournal(ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Where("journal_id = ?", journal.ID).Delete(&Entry{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&Journal{}, journal.ID).Error
}
