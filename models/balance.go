package models

import (
	"github.com/shopspring/decimal"
)

// Balance is a derived snapshot of a journal's account. It can always be
// rebuilt from the entry history, so it carries no identity of its own and
// is embedded into the journal row as a cache.
type Balance struct {
	AccountBalance  Decimal2 `gorm:"type:decimal(20,2);default:0" json:"account_balance"`
	ClosedPositions Decimal2 `gorm:"type:decimal(20,2);default:0" json:"closed_positions"`
	OpenedPositions Decimal2 `gorm:"type:decimal(20,2);default:0" json:"opened_positions"`
	Available       Decimal2 `gorm:"type:decimal(20,2);default:0" json:"available"`
	Deposits        Decimal2 `gorm:"type:decimal(20,2);default:0" json:"deposits"`
	Withdrawals     Decimal2 `gorm:"type:decimal(20,2);default:0" json:"withdrawals"`
	Taxes           Decimal2 `gorm:"type:decimal(20,2);default:0" json:"taxes"`
}

// RecomputeBalance folds the journal's full entry history, ordered by date
// ascending, into a fresh snapshot. One pass:
//
//   - finished trades add their net result to closed positions
//   - open trades add price x size (notional exposure) to opened positions
//   - deposits/withdrawals/taxes accumulate as non-negative magnitudes
//   - every present net result, whatever the type, moves the running
//     account balance, seeded at the journal's starting balance
//
// Each type's net result already carries its sign, so the running balance
// equals start + closed + deposits - withdrawals - taxes by construction.
// The function is pure over its inputs and therefore idempotent.
func RecomputeBalance(journal *Journal, entries []*Entry) Balance {
	closed := decimal.Zero
	opened := decimal.Zero
	deposits := decimal.Zero
	withdrawals := decimal.Zero
	taxes := decimal.Zero
	account := journal.StartBalance

	for _, entry := range entries {
		switch entry.Type {
		case EntryTypeTrade:
			if entry.NetResult != nil {
				closed = closed.Add(entry.NetResult.Decimal)
			} else {
				opened = opened.Add(entry.Price.Mul(entry.Size))
			}
		case EntryTypeDeposit:
			deposits = deposits.Add(entry.Price)
		case EntryTypeWithdrawal:
			withdrawals = withdrawals.Add(entry.Price.Abs())
		case EntryTypeTaxes:
			taxes = taxes.Add(entry.Price.Abs())
		}

		if entry.NetResult != nil {
			account = account.Add(entry.NetResult.Decimal)
		}
	}

	account = account.RoundBank(2)
	opened = opened.RoundBank(2)

	return Balance{
		AccountBalance:  Decimal2{Decimal: account},
		ClosedPositions: Decimal2{Decimal: closed.RoundBank(2)},
		OpenedPositions: Decimal2{Decimal: opened},
		Available:       Decimal2{Decimal: account.Sub(opened)},
		Deposits:        Decimal2{Decimal: deposits.RoundBank(2)},
		Withdrawals:     Decimal2{Decimal: withdrawals.RoundBank(2)},
		Taxes:           Decimal2{Decimal: taxes.RoundBank(2)},
	}
}

// RecomputeExposure refreshes only the unrealized side of the journal's
// cached snapshot from its currently open trades, trusting the cached
// realized totals. Used when exposure may have changed without any
// finished entry changing, to avoid the full history scan.
func RecomputeExposure(journal *Journal, openEntries []*Entry) Balance {
	snapshot := journal.CurrentBalance

	opened := decimal.Zero
	for _, entry := range openEntries {
		if entry.Type != EntryTypeTrade || entry.NetResult != nil {
			continue
		}
		opened = opened.Add(entry.Price.Mul(entry.Size))
	}
	opened = opened.RoundBank(2)

	snapshot.OpenedPositions = Decimal2{Decimal: opened}
	snapshot.Available = Decimal2{Decimal: snapshot.AccountBalance.Sub(opened)}
	return snapshot
}
