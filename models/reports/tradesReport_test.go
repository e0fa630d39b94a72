package reports

import (
	"testing"

	"github.com/allanweber/trading-journal-entry-sub000/models"
)

func TestBuildDayGroups(t *testing.T) {
	first := closedTrade(t, "2022-03-02", "120.50")
	first.Symbol = "MSFT"
	second := closedTrade(t, "2022-03-02", "-35.10")
	second.Symbol = "AAPL"
	third := closedTrade(t, "2022-03-03", "40")
	third.Symbol = "TSLA"

	groups := buildDayGroups([]*models.Entry{first, second, third})

	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}
	if groups[0].Date != "2022-03-03" || groups[1].Date != "2022-03-02" {
		t.Fatalf("day order expected [2022-03-03 2022-03-02], got [%s %s]",
			groups[0].Date, groups[1].Date)
	}

	day := groups[1]
	if day.Count != 2 || len(day.Trades) != 2 {
		t.Fatalf("2022-03-02 expected 2 trades, got count %d len %d", day.Count, len(day.Trades))
	}
	// in-day order follows the input order
	if day.Trades[0].Symbol != "MSFT" || day.Trades[1].Symbol != "AAPL" {
		t.Fatalf("in-day order expected [MSFT AAPL], got [%s %s]",
			day.Trades[0].Symbol, day.Trades[1].Symbol)
	}
	if day.Trades[1].NetResult.String() != "-35.10" {
		t.Fatalf("NetResult expected -35.10, got %s", day.Trades[1].NetResult)
	}
}

func TestBuildDayGroupsSkipsUnfinished(t *testing.T) {
	open := closedTrade(t, "2022-03-02", "10")
	open.NetResult = nil

	groups := buildDayGroups([]*models.Entry{open})
	if len(groups) != 0 {
		t.Fatalf("expected no groups for open trades, got %+v", groups)
	}
}
