package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, str string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(str)
	if err != nil {
		t.Fatalf("decimal.NewFromString(%q): %v", str, err)
	}
	return d
}

func decPtr(t *testing.T, str string) *decimal.Decimal {
	t.Helper()
	d := dec(t, str)
	return &d
}

func tradeDate() time.Time {
	return time.Date(2022, 3, 1, 10, 0, 0, 0, time.UTC)
}

func TestCalculateEntryLongTrade(t *testing.T) {
	long := EntryDirectionLong
	entry := &Entry{
		Type:      EntryTypeTrade,
		Date:      tradeDate(),
		Symbol:    "MSFT",
		Direction: &long,
		Price:     dec(t, "200"),
		Size:      dec(t, "2"),
		LossPrice: decPtr(t, "180"),
		ExitPrice: decPtr(t, "240"),
	}

	CalculateEntry(entry, dec(t, "1000"))

	if entry.GrossResult == nil || entry.GrossResult.String() != "80.00" {
		t.Fatalf("GrossResult expected 80.00, got %v", entry.GrossResult)
	}
	if entry.NetResult == nil || entry.NetResult.String() != "80.00" {
		t.Fatalf("NetResult expected 80.00, got %v", entry.NetResult)
	}
	if entry.AccountChange == nil || entry.AccountChange.String() != "0.0800" {
		t.Fatalf("AccountChange expected 0.0800, got %v", entry.AccountChange)
	}
	if entry.AccountBalance == nil || entry.AccountBalance.String() != "1080.00" {
		t.Fatalf("AccountBalance expected 1080.00, got %v", entry.AccountBalance)
	}
	// risk leg 20 x size 2 over prior 1000
	if entry.AccountRisked == nil || entry.AccountRisked.String() != "0.0400" {
		t.Fatalf("AccountRisked expected 0.0400, got %v", entry.AccountRisked)
	}
}

func TestCalculateEntryShortTrade(t *testing.T) {
	short := EntryDirectionShort
	entry := &Entry{
		Type:        EntryTypeTrade,
		Date:        tradeDate(),
		Symbol:      "TSLA",
		Direction:   &short,
		Price:       dec(t, "100"),
		Size:        dec(t, "3"),
		LossPrice:   decPtr(t, "110"),
		ProfitPrice: decPtr(t, "80"),
		ExitPrice:   decPtr(t, "90"),
	}

	CalculateEntry(entry, dec(t, "1000"))

	// risk leg 10, reward leg 20
	if entry.AccountRisked == nil || entry.AccountRisked.String() != "0.0300" {
		t.Fatalf("AccountRisked expected 0.0300, got %v", entry.AccountRisked)
	}
	if entry.PlannedRiskReward == nil || entry.PlannedRiskReward.String() != "2.00" {
		t.Fatalf("PlannedRiskReward expected 2.00, got %v", entry.PlannedRiskReward)
	}
	if entry.GrossResult == nil || entry.GrossResult.String() != "30.00" {
		t.Fatalf("GrossResult expected 30.00, got %v", entry.GrossResult)
	}
}

func TestCalculateEntryUnfinishedTrade(t *testing.T) {
	long := EntryDirectionLong
	entry := &Entry{
		Type:      EntryTypeTrade,
		Date:      tradeDate(),
		Symbol:    "AAPL",
		Direction: &long,
		Price:     dec(t, "150"),
		Size:      dec(t, "4"),
		LossPrice: decPtr(t, "140"),
	}

	CalculateEntry(entry, dec(t, "2000"))

	if entry.AccountRisked == nil || entry.PlannedRiskReward == nil {
		t.Fatalf("planning figures expected on an open trade, got risked=%v rr=%v",
			entry.AccountRisked, entry.PlannedRiskReward)
	}
	if entry.GrossResult != nil || entry.NetResult != nil || entry.AccountChange != nil || entry.AccountBalance != nil {
		t.Fatalf("result figures must stay absent on an open trade, got gross=%v net=%v change=%v balance=%v",
			entry.GrossResult, entry.NetResult, entry.AccountChange, entry.AccountBalance)
	}
	if entry.IsFinished() {
		t.Fatal("open trade reported finished")
	}
}

func TestAccountRiskedAbsentWithoutPositiveBalance(t *testing.T) {
	for _, prior := range []string{"0", "-250.00"} {
		long := EntryDirectionLong
		entry := &Entry{
			Type:      EntryTypeTrade,
			Date:      tradeDate(),
			Direction: &long,
			Price:     dec(t, "200"),
			Size:      dec(t, "2"),
			LossPrice: decPtr(t, "180"),
		}
		CalculateEntry(entry, dec(t, prior))
		if entry.AccountRisked != nil {
			t.Fatalf("prior balance %s: AccountRisked expected absent, got %s", prior, entry.AccountRisked)
		}
	}
}

func TestAccountRiskedNonNegative(t *testing.T) {
	// A stop above a LONG entry price makes the raw risk leg negative;
	// the reported fraction is still its magnitude.
	long := EntryDirectionLong
	entry := &Entry{
		Type:      EntryTypeTrade,
		Date:      tradeDate(),
		Direction: &long,
		Price:     dec(t, "100"),
		Size:      dec(t, "1"),
		LossPrice: decPtr(t, "120"),
	}
	CalculateEntry(entry, dec(t, "1000"))
	if entry.AccountRisked == nil || entry.AccountRisked.IsNegative() {
		t.Fatalf("AccountRisked expected non-negative, got %v", entry.AccountRisked)
	}
}

func TestCostsReduceNetResult(t *testing.T) {
	long := EntryDirectionLong
	entry := &Entry{
		Type:      EntryTypeTrade,
		Date:      tradeDate(),
		Direction: &long,
		Price:     dec(t, "200"),
		Size:      dec(t, "2"),
		LossPrice: decPtr(t, "180"),
		Costs:     decPtr(t, "10.50"),
		ExitPrice: decPtr(t, "240"),
	}

	CalculateEntry(entry, dec(t, "1000"))

	if entry.GrossResult.String() != "80.00" {
		t.Fatalf("GrossResult expected 80.00, got %s", entry.GrossResult)
	}
	if entry.NetResult.String() != "69.50" {
		t.Fatalf("NetResult expected 69.50, got %s", entry.NetResult)
	}
	if entry.AccountBalance.String() != "1069.50" {
		t.Fatalf("AccountBalance expected 1069.50, got %s", entry.AccountBalance)
	}
}

func TestZeroBalanceAccountChange(t *testing.T) {
	// From a zero balance the reported change is +1.0000 whatever the
	// result's sign. Kept for compatibility with historical data.
	for _, amount := range []string{"500", "-500"} {
		entry := NewDepositEntry(1, tradeDate(), dec(t, "500"))
		if amount == "-500" {
			entry = NewWithdrawalEntry(1, tradeDate(), dec(t, "500"))
		}
		CalculateEntry(entry, decimal.Zero)
		if entry.AccountChange == nil || entry.AccountChange.String() != "1.0000" {
			t.Fatalf("amount %s: AccountChange expected 1.0000, got %v", amount, entry.AccountChange)
		}
	}
}

func TestAccountChangeCarriesResultSign(t *testing.T) {
	// Dividing by a negative prior balance flips the quotient's sign; the
	// reported change must still carry the result's own sign.
	entry := NewDepositEntry(1, tradeDate(), dec(t, "50"))
	CalculateEntry(entry, dec(t, "-100"))
	if entry.AccountChange == nil || entry.AccountChange.String() != "0.5000" {
		t.Fatalf("AccountChange expected 0.5000, got %v", entry.AccountChange)
	}

	entry = NewWithdrawalEntry(1, tradeDate(), dec(t, "50"))
	CalculateEntry(entry, dec(t, "-100"))
	if entry.AccountChange == nil || entry.AccountChange.String() != "-0.5000" {
		t.Fatalf("AccountChange expected -0.5000, got %v", entry.AccountChange)
	}
}

func TestZeroWidthRiskLegPanics(t *testing.T) {
	// A stop equal to the entry price is a caller bug; the division fault
	// must propagate instead of being swallowed.
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on zero-width risk leg")
		}
	}()
	long := EntryDirectionLong
	entry := &Entry{
		Type:      EntryTypeTrade,
		Date:      tradeDate(),
		Direction: &long,
		Price:     dec(t, "100"),
		Size:      dec(t, "1"),
		LossPrice: decPtr(t, "100"),
	}
	CalculateEntry(entry, dec(t, "1000"))
}

func TestAccountBalanceIsPriorPlusNet(t *testing.T) {
	entry := NewTaxesEntry(1, tradeDate(), dec(t, "55.99"))
	prior := dec(t, "139.96")
	CalculateEntry(entry, prior)
	if entry.NetResult == nil || entry.AccountBalance == nil {
		t.Fatal("taxes entry must finish immediately")
	}
	want := prior.Add(entry.NetResult.Decimal)
	if !entry.AccountBalance.Equal(want) {
		t.Fatalf("AccountBalance expected %s, got %s", want, entry.AccountBalance)
	}
}
