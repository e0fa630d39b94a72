package models

import (
	"errors"
	"strings"
	"time"
)

type EntryType string

const (
	EntryTypeTrade      EntryType = "TRADE"
	EntryTypeDeposit    EntryType = "DEPOSIT"
	EntryTypeWithdrawal EntryType = "WITHDRAWAL"
	EntryTypeTaxes      EntryType = "TAXES"
)

func ParseEntryType(str string) (EntryType, error) {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case "TRADE":
		return EntryTypeTrade, nil
	case "DEPOSIT":
		return EntryTypeDeposit, nil
	case "WITHDRAWAL":
		return EntryTypeWithdrawal, nil
	case "TAXES":
		return EntryTypeTaxes, nil
	}
	return "", errors.New("invalid entry type")
}

type EntryDirection string

const (
	EntryDirectionLong  EntryDirection = "LONG"
	EntryDirectionShort EntryDirection = "SHORT"
)

func ParseEntryDirection(str string) (EntryDirection, error) {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case "LONG":
		return EntryDirectionLong, nil
	case "SHORT":
		return EntryDirectionShort, nil
	}
	return "", errors.New("invalid entry direction")
}

// MyDateString accepts both date-only and datetime inputs from query params.
type MyDateString time.Time

func (t *MyDateString) Parse(str string) error {
	str = strings.TrimSpace(str)
	if str == "" {
		return errors.New("empty date string")
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, str); err == nil {
			*t = MyDateString(parsed)
			return nil
		}
	}
	return errors.New("error parsing datetime")
}

func (t *MyDateString) Time() time.Time {
	if t == nil {
		return time.Time{}
	}
	return time.Time(*t)
}

// StartOfDayUTCTime truncates to 00:00:00 UTC of the same calendar day.
// Entries reach the engine already normalized to UTC, so there is no
// per-journal timezone to honor here.
func (t *MyDateString) StartOfDayUTCTime() {
	if t == nil {
		return
	}
	localTime := time.Time(*t)
	*t = MyDateString(time.Date(
		localTime.Year(), localTime.Month(), localTime.Day(),
		0, 0, 0, 0,
		time.UTC,
	))
}

// EndOfDayUTCTime moves to 23:59:59.999999999 UTC of the same calendar day
// so BETWEEN-style filters stay inclusive on the until side.
func (t *MyDateString) EndOfDayUTCTime() {
	if t == nil {
		return
	}
	localTime := time.Time(*t)
	*t = MyDateString(time.Date(
		localTime.Year(), localTime.Month(), localTime.Day(),
		23, 59, 59, int(time.Second-time.Nanosecond),
		time.UTC,
	))
}
