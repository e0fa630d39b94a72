package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Derived figures carry a fixed scale: two fractional digits for money
// and results, four for account fractions. shopspring trims trailing
// zeros when rendering, so a bare decimal would come out as "80" or "1"
// instead of "80.00" / "1.0000". These wrappers pin the rendered scale
// on String and JSON while keeping the embedded decimal for arithmetic,
// gorm and redis round-trips.

type Decimal2 struct {
	decimal.Decimal
}

func (d Decimal2) String() string {
	return d.StringFixedBank(2)
}

func (d Decimal2) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.StringFixedBank(2))), nil
}

type Decimal4 struct {
	decimal.Decimal
}

func (d Decimal4) String() string {
	return d.StringFixedBank(4)
}

func (d Decimal4) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.StringFixedBank(4))), nil
}
