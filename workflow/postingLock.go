package workflow

import (
	"fmt"

	"gorm.io/gorm"
)

// AcquireJournalPostingLock serializes balance recomputation per journal
// across instances using MySQL advisory locks.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB that will run the recompute transaction.
func AcquireJournalPostingLock(tx *gorm.DB, journalId int) error {
	lockName := fmt.Sprintf("journal-posting:%d", journalId)
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire posting lock for journal_id=%d", journalId)
	}
	return nil
}

func ReleaseJournalPostingLock(tx *gorm.DB, journalId int) {
	lockName := fmt.Sprintf("journal-posting:%d", journalId)
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}
