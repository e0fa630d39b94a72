package models

import (
	"testing"
	"time"
)

func TestTransactionFactoriesNormalizeSign(t *testing.T) {
	date := time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		entry    *Entry
		expected string
	}{
		{"deposit positive input", NewDepositEntry(1, date, dec(t, "50")), "50"},
		{"deposit negative input", NewDepositEntry(1, date, dec(t, "-50")), "50"},
		{"withdrawal positive input", NewWithdrawalEntry(1, date, dec(t, "50")), "-50"},
		{"withdrawal negative input", NewWithdrawalEntry(1, date, dec(t, "-50")), "-50"},
		{"taxes positive input", NewTaxesEntry(1, date, dec(t, "12.30")), "-12.30"},
		{"taxes negative input", NewTaxesEntry(1, date, dec(t, "-12.30")), "-12.30"},
	}
	for _, tc := range cases {
		if !tc.entry.Price.Equal(dec(t, tc.expected)) {
			t.Fatalf("%s: Price expected %s, got %s", tc.name, tc.expected, tc.entry.Price)
		}
	}
}

func TestNewTradeEntryCopiesRawFields(t *testing.T) {
	date := time.Date(2022, 5, 1, 14, 30, 0, 0, time.UTC)
	input := &NewTrade{
		Date:      date,
		Symbol:    "MSFT",
		Direction: "SHORT",
		Price:     dec(t, "305.50"),
		Size:      dec(t, "2"),
		LossPrice: decPtr(t, "310"),
		Costs:     decPtr(t, "1.20"),
	}

	entry := NewTradeEntry(7, input)

	if entry.JournalId != 7 || entry.Type != EntryTypeTrade {
		t.Fatalf("unexpected identity fields: %+v", entry)
	}
	if entry.Direction == nil || *entry.Direction != EntryDirectionShort {
		t.Fatalf("Direction expected SHORT, got %v", entry.Direction)
	}
	if entry.ExitPrice != nil || entry.ExitDate != nil {
		t.Fatalf("exit fields must stay absent, got %+v", entry)
	}
	if entry.IsFinished() {
		t.Fatal("new trade reported finished")
	}
}

func TestMyDateStringParse(t *testing.T) {
	var d MyDateString
	if err := d.Parse("2022-03-02"); err != nil {
		t.Fatalf("Parse(date-only): %v", err)
	}
	if got := d.Time(); got.Year() != 2022 || got.Month() != time.March || got.Day() != 2 {
		t.Fatalf("Parse(date-only) got %v", got)
	}

	if err := d.Parse("2022-03-02T14:30:05"); err != nil {
		t.Fatalf("Parse(datetime): %v", err)
	}
	if got := d.Time(); got.Hour() != 14 || got.Minute() != 30 {
		t.Fatalf("Parse(datetime) got %v", got)
	}

	if err := d.Parse("02/03/2022"); err == nil {
		t.Fatal("Parse expected error on unsupported layout")
	}
}

func TestMyDateStringDayBounds(t *testing.T) {
	var d MyDateString
	if err := d.Parse("2022-03-02T14:30:05"); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	d.StartOfDayUTCTime()
	start := d.Time()
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		t.Fatalf("StartOfDayUTCTime got %v", start)
	}

	d.EndOfDayUTCTime()
	end := d.Time()
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("EndOfDayUTCTime got %v", end)
	}
	if end.Day() != 2 || end.Location() != time.UTC {
		t.Fatalf("EndOfDayUTCTime moved day or zone: %v", end)
	}

	// nil receiver is a no-op, not a panic
	var nilDate *MyDateString
	nilDate.StartOfDayUTCTime()
	nilDate.EndOfDayUTCTime()
	if !nilDate.Time().IsZero() {
		t.Fatal("nil MyDateString must read as zero time")
	}
}
