package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func moneyPtr(t *testing.T, str string) *Decimal2 {
	t.Helper()
	d := Decimal2{Decimal: dec(t, str)}
	return &d
}

func finishedTrade(t *testing.T, day int, net string) *Entry {
	t.Helper()
	exit := time.Date(2022, 3, day, 15, 0, 0, 0, time.UTC)
	return &Entry{
		Type:      EntryTypeTrade,
		Date:      exit.Add(-2 * time.Hour),
		Price:     dec(t, "100"),
		Size:      dec(t, "1"),
		ExitDate:  &exit,
		NetResult: moneyPtr(t, net),
	}
}

func openTrade(t *testing.T, price, size string) *Entry {
	t.Helper()
	return &Entry{
		Type:  EntryTypeTrade,
		Date:  time.Date(2022, 3, 20, 9, 0, 0, 0, time.UTC),
		Price: dec(t, price),
		Size:  dec(t, size),
	}
}

func transaction(t *testing.T, entryType EntryType, price, net string) *Entry {
	t.Helper()
	return &Entry{
		Type:      entryType,
		Date:      time.Date(2022, 3, 10, 0, 0, 0, 0, time.UTC),
		Price:     dec(t, price),
		NetResult: moneyPtr(t, net),
	}
}

func ledgerScenario(t *testing.T) (*Journal, []*Entry) {
	t.Helper()
	journal := &Journal{ID: 1, StartBalance: dec(t, "100")}
	entries := []*Entry{
		finishedTrade(t, 1, "50.31"),
		finishedTrade(t, 2, "-35.59"),
		finishedTrade(t, 3, "22.67"),
		transaction(t, EntryTypeDeposit, "71.23", "71.23"),
		transaction(t, EntryTypeWithdrawal, "-12.67", "-12.67"),
		transaction(t, EntryTypeTaxes, "-55.99", "-55.99"),
		openTrade(t, "148.14", "1"),
		openTrade(t, "781.89", "6"),
		openTrade(t, "2762.813", "1"),
		openTrade(t, "91.78", "2"),
	}
	return journal, entries
}

func TestRecomputeBalanceLedgerScenario(t *testing.T) {
	journal, entries := ledgerScenario(t)

	balance := RecomputeBalance(journal, entries)

	checks := []struct {
		name     string
		got      Decimal2
		expected string
	}{
		{"AccountBalance", balance.AccountBalance, "139.96"},
		{"ClosedPositions", balance.ClosedPositions, "37.39"},
		{"OpenedPositions", balance.OpenedPositions, "7785.85"},
		{"Available", balance.Available, "-7645.89"},
		{"Deposits", balance.Deposits, "71.23"},
		{"Withdrawals", balance.Withdrawals, "12.67"},
		{"Taxes", balance.Taxes, "55.99"},
	}
	for _, check := range checks {
		if check.got.String() != check.expected {
			t.Fatalf("%s expected %s, got %s", check.name, check.expected, check.got)
		}
	}
}

func TestRecomputeBalanceIdempotent(t *testing.T) {
	journal, entries := ledgerScenario(t)

	first := RecomputeBalance(journal, entries)
	journal.CurrentBalance = first
	second := RecomputeBalance(journal, entries)

	pairs := []struct {
		name string
		a, b decimal.Decimal
	}{
		{"AccountBalance", first.AccountBalance.Decimal, second.AccountBalance.Decimal},
		{"ClosedPositions", first.ClosedPositions.Decimal, second.ClosedPositions.Decimal},
		{"OpenedPositions", first.OpenedPositions.Decimal, second.OpenedPositions.Decimal},
		{"Available", first.Available.Decimal, second.Available.Decimal},
		{"Deposits", first.Deposits.Decimal, second.Deposits.Decimal},
		{"Withdrawals", first.Withdrawals.Decimal, second.Withdrawals.Decimal},
		{"Taxes", first.Taxes.Decimal, second.Taxes.Decimal},
	}
	for _, pair := range pairs {
		if !pair.a.Equal(pair.b) {
			t.Fatalf("recompute not idempotent on %s: first %s, second %s", pair.name, pair.a, pair.b)
		}
	}
}

func TestRecomputeBalanceIdentity(t *testing.T) {
	journal, entries := ledgerScenario(t)

	balance := RecomputeBalance(journal, entries)

	want := journal.StartBalance.
		Add(balance.ClosedPositions.Decimal).
		Add(balance.Deposits.Decimal).
		Sub(balance.Withdrawals.Decimal).
		Sub(balance.Taxes.Decimal)
	if !balance.AccountBalance.Equal(want) {
		t.Fatalf("AccountBalance expected %s (start + closed + deposits - withdrawals - taxes), got %s",
			want, balance.AccountBalance)
	}
}

func TestRecomputeBalanceEmptyHistory(t *testing.T) {
	journal := &Journal{ID: 2, StartBalance: dec(t, "2500.00")}

	balance := RecomputeBalance(journal, nil)

	if balance.AccountBalance.String() != "2500.00" {
		t.Fatalf("AccountBalance expected 2500.00, got %s", balance.AccountBalance)
	}
	if !balance.Available.Equal(balance.AccountBalance.Decimal) {
		t.Fatalf("Available expected %s with no open trades, got %s",
			balance.AccountBalance, balance.Available)
	}
	if !balance.ClosedPositions.IsZero() || !balance.Deposits.IsZero() {
		t.Fatalf("expected zero totals, got %+v", balance)
	}
}

func TestRecomputeExposureKeepsRealizedTotals(t *testing.T) {
	journal, _ := ledgerScenario(t)
	journal.CurrentBalance = Balance{
		AccountBalance:  Decimal2{Decimal: dec(t, "139.96")},
		ClosedPositions: Decimal2{Decimal: dec(t, "37.39")},
		OpenedPositions: Decimal2{Decimal: dec(t, "7785.85")},
		Available:       Decimal2{Decimal: dec(t, "-7645.89")},
		Deposits:        Decimal2{Decimal: dec(t, "71.23")},
		Withdrawals:     Decimal2{Decimal: dec(t, "12.67")},
		Taxes:           Decimal2{Decimal: dec(t, "55.99")},
	}

	balance := RecomputeExposure(journal, []*Entry{openTrade(t, "50", "2")})

	if balance.OpenedPositions.String() != "100.00" {
		t.Fatalf("OpenedPositions expected 100.00, got %s", balance.OpenedPositions)
	}
	if balance.Available.String() != "39.96" {
		t.Fatalf("Available expected 39.96, got %s", balance.Available)
	}
	if balance.AccountBalance.String() != "139.96" || balance.ClosedPositions.String() != "37.39" {
		t.Fatalf("realized totals must not change, got %+v", balance)
	}
}
