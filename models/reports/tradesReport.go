package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/allanweber/trading-journal-entry-sub000/models"
)

type TradeResult struct {
	Symbol    string          `json:"symbol"`
	NetResult models.Decimal2 `json:"net_result"`
}

type DayTrades struct {
	Date   string          `json:"date"`
	Count  int             `json:"count"`
	Trades []*TradeResult  `json:"trades"`
}

// GetTradesByDay lists the journal's closed trades whose exit date falls
// within [from, until] inclusive, grouped by exit day. Day groups come
// most recent first; inside a day, trades keep the query order
// (exit date ascending, then id).
func GetTradesByDay(ctx context.Context, journalId int, from, until *models.MyDateString) ([]*DayTrades, error) {
	started := time.Now()

	from.StartOfDayUTCTime()
	until.EndOfDayUTCTime()

	trades, err := models.ListFinishedTrades(ctx, journalId, from, until)
	if err != nil {
		return nil, err
	}

	groups := buildDayGroups(trades)
	logSlowReport(ctx, "trades_by_day", started, map[string]any{"journal_id": journalId})
	return groups, nil
}

func buildDayGroups(trades []*models.Entry) []*DayTrades {
	byDay := make(map[periodKey]*DayTrades)
	keys := make([]periodKey, 0)

	for _, trade := range trades {
		if trade.NetResult == nil || trade.ExitDate == nil {
			continue
		}
		exit := *trade.ExitDate
		key := periodKey{year: exit.Year(), month: exit.Month(), day: exit.Day()}

		group, ok := byDay[key]
		if !ok {
			group = &DayTrades{
				Date: fmt.Sprintf("%04d-%02d-%02d", key.year, int(key.month), key.day),
			}
			byDay[key] = group
			keys = append(keys, key)
		}
		group.Count++
		group.Trades = append(group.Trades, &TradeResult{
			Symbol:    trade.Symbol,
			NetResult: *trade.NetResult,
		})
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[j].before(keys[i])
	})

	groups := make([]*DayTrades, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, byDay[key])
	}
	return groups
}
