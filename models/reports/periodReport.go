package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/allanweber/trading-journal-entry-sub000/config"
	"github.com/allanweber/trading-journal-entry-sub000/models"
	"github.com/shopspring/decimal"
)

const DefaultPageSize = 10

type AggregateUnit string

const (
	AggregateUnitDay   AggregateUnit = "DAY"
	AggregateUnitWeek  AggregateUnit = "WEEK"
	AggregateUnitMonth AggregateUnit = "MONTH"
)

func ParseAggregateUnit(str string) (AggregateUnit, error) {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case "DAY":
		return AggregateUnitDay, nil
	case "WEEK":
		return AggregateUnitWeek, nil
	case "MONTH":
		return AggregateUnitMonth, nil
	}
	return "", errors.New("invalid aggregate unit")
}

// periodKey is the typed period identifier used while grouping. Unused
// components stay zero; keys are only formatted to calendar strings at the
// response boundary.
type periodKey struct {
	year  int
	month time.Month
	week  int
	day   int
}

// before orders keys by calendar recency.
func (k periodKey) before(other periodKey) bool {
	if k.year != other.year {
		return k.year < other.year
	}
	if k.month != other.month {
		return k.month < other.month
	}
	if k.week != other.week {
		return k.week < other.week
	}
	return k.day < other.day
}

// fineKeyFor buckets an exit date at the aggregation unit itself.
// The WEEK key pairs the date's own calendar year with its ISO week
// number; the calendar month is never part of the week key, so week
// arithmetic cannot move an entry across a month boundary (the coarse key
// below takes care of month attribution).
func fineKeyFor(unit AggregateUnit, t time.Time) periodKey {
	switch unit {
	case AggregateUnitWeek:
		_, week := t.ISOWeek()
		return periodKey{year: t.Year(), week: week}
	case AggregateUnitMonth:
		return periodKey{year: t.Year(), month: t.Month()}
	default:
		return periodKey{year: t.Year(), month: t.Month(), day: t.Day()}
	}
}

// coarseKeyFor buckets one calendar level above the unit: months contain
// days and weeks, years contain months.
func coarseKeyFor(unit AggregateUnit, t time.Time) periodKey {
	if unit == AggregateUnitMonth {
		return periodKey{year: t.Year()}
	}
	return periodKey{year: t.Year(), month: t.Month()}
}

func formatFineKey(unit AggregateUnit, k periodKey) string {
	switch unit {
	case AggregateUnitWeek:
		return fmt.Sprintf("%04d-%02d", k.year, k.week)
	case AggregateUnitMonth:
		return fmt.Sprintf("%04d-%02d", k.year, int(k.month))
	default:
		return fmt.Sprintf("%04d-%02d-%02d", k.year, int(k.month), k.day)
	}
}

func formatCoarseKey(unit AggregateUnit, k periodKey) string {
	if unit == AggregateUnitMonth {
		return fmt.Sprintf("%04d", k.year)
	}
	return fmt.Sprintf("%04d-%02d", k.year, int(k.month))
}

// PeriodBucket is one node of the two-level aggregation: a coarse bucket
// carries its fine buckets in Items, a fine bucket carries none.
type PeriodBucket struct {
	Period string          `json:"period"`
	Count  int             `json:"count"`
	Result models.Decimal2 `json:"result"`
	Items  []*PeriodBucket `json:"items,omitempty"`
}

type PeriodAggregateResponse struct {
	Page    int             `json:"page"`
	Size    int             `json:"size"`
	Total   int64           `json:"total"`
	Buckets []*PeriodBucket `json:"buckets"`
}

// periodAggregate is the cached form: the full unpaginated coarse list,
// so one cache entry per (journal, unit) serves every page and can be
// dropped wholesale on mutation.
type periodAggregate struct {
	Total   int64           `json:"total"`
	Buckets []*PeriodBucket `json:"buckets"`
}

func periodCacheKey(journalId int, unit AggregateUnit) string {
	return fmt.Sprintf("report:periods:%d:%s", journalId, unit)
}

// InvalidatePeriodCache drops the journal's cached period aggregates for
// every unit. Called by the write path whenever a finished entry changed.
func InvalidatePeriodCache(journalId int) error {
	return config.RemoveRedisKey(
		periodCacheKey(journalId, AggregateUnitDay),
		periodCacheKey(journalId, AggregateUnitWeek),
		periodCacheKey(journalId, AggregateUnitMonth),
	)
}

// GetPeriodAggregate groups the journal's closed trades into nested time
// buckets by exit date: page/size paginate the coarse bucket list
// (0-based), Total reports the number of distinct fine buckets across the
// whole result regardless of pagination.
func GetPeriodAggregate(ctx context.Context, journalId int, unit AggregateUnit, page, size int) (*PeriodAggregateResponse, error) {
	started := time.Now()

	cacheKey := periodCacheKey(journalId, unit)
	if reportCacheEnabled() {
		var cached periodAggregate
		if hit, err := cacheGet(cacheKey, &cached); err == nil && hit {
			return paginatePeriods(&cached, page, size), nil
		}
	}

	trades, err := models.ListFinishedTrades(ctx, journalId, nil, nil)
	if err != nil {
		return nil, err
	}

	full := aggregatePeriods(trades, unit)

	if reportCacheEnabled() {
		_ = cacheSet(cacheKey, full, reportCacheTTL())
	}
	logSlowReport(ctx, "period_aggregate", started, map[string]any{"journal_id": journalId, "unit": unit})
	return paginatePeriods(full, page, size), nil
}

type fineAggregate struct {
	key    periodKey
	count  int
	result decimal.Decimal
}

type coarseAggregate struct {
	key    periodKey
	count  int
	result decimal.Decimal
	fine   map[periodKey]*fineAggregate
}

func buildPeriodBuckets(trades []*models.Entry, unit AggregateUnit, page, size int) *PeriodAggregateResponse {
	return paginatePeriods(aggregatePeriods(trades, unit), page, size)
}

// aggregatePeriods builds the full, unpaginated two-level bucket list,
// most recent first on both levels.
func aggregatePeriods(trades []*models.Entry, unit AggregateUnit) *periodAggregate {
	coarse := make(map[periodKey]*coarseAggregate)
	for _, trade := range trades {
		if trade.NetResult == nil || trade.ExitDate == nil {
			continue
		}
		exit := *trade.ExitDate

		coarseKey := coarseKeyFor(unit, exit)
		group, ok := coarse[coarseKey]
		if !ok {
			group = &coarseAggregate{key: coarseKey, result: decimal.Zero, fine: make(map[periodKey]*fineAggregate)}
			coarse[coarseKey] = group
		}
		group.count++
		group.result = group.result.Add(trade.NetResult.Decimal)

		fineKey := fineKeyFor(unit, exit)
		fine, ok := group.fine[fineKey]
		if !ok {
			fine = &fineAggregate{key: fineKey, result: decimal.Zero}
			group.fine[fineKey] = fine
		}
		fine.count++
		fine.result = fine.result.Add(trade.NetResult.Decimal)
	}

	groups := make([]*coarseAggregate, 0, len(coarse))
	var total int64
	for _, group := range coarse {
		groups = append(groups, group)
		total += int64(len(group.fine))
	}
	// Most recent first, on both levels.
	sort.Slice(groups, func(i, j int) bool {
		return groups[j].key.before(groups[i].key)
	})

	buckets := make([]*PeriodBucket, 0, len(groups))
	for _, group := range groups {
		fines := make([]*fineAggregate, 0, len(group.fine))
		for _, fine := range group.fine {
			fines = append(fines, fine)
		}
		sort.Slice(fines, func(i, j int) bool {
			return fines[j].key.before(fines[i].key)
		})

		items := make([]*PeriodBucket, 0, len(fines))
		for _, fine := range fines {
			items = append(items, &PeriodBucket{
				Period: formatFineKey(unit, fine.key),
				Count:  fine.count,
				Result: models.Decimal2{Decimal: fine.result.RoundBank(2)},
			})
		}
		buckets = append(buckets, &PeriodBucket{
			Period: formatCoarseKey(unit, group.key),
			Count:  group.count,
			Result: models.Decimal2{Decimal: group.result.RoundBank(2)},
			Items:  items,
		})
	}

	return &periodAggregate{Total: total, Buckets: buckets}
}

// paginatePeriods slices the coarse list. page and size come straight
// from the query string, so the offset arithmetic must not trust them:
// the product is computed only when it provably fits inside the list.
func paginatePeriods(full *periodAggregate, page, size int) *PeriodAggregateResponse {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	start := len(full.Buckets)
	if page <= len(full.Buckets)/size {
		start = page * size
	}
	end := start + size
	if end < start || end > len(full.Buckets) {
		end = len(full.Buckets)
	}

	return &PeriodAggregateResponse{
		Page:    page,
		Size:    size,
		Total:   full.Total,
		Buckets: full.Buckets[start:end],
	}
}
