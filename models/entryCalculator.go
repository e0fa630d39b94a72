package models

import (
	"github.com/shopspring/decimal"
)

// Money values are fixed at 2 decimal places, ratios at 4, the planned
// risk/reward ratio at 2. Every scale-fixing operation rounds
// half-to-even (RoundBank) so repeated recalculation is deterministic.

// CalculateEntry fills the entry's derived fields from its raw fields and
// the account balance prior to the entry. Pure and total for well-formed
// input; it never touches storage.
//
// Known contract violation: a trade whose loss price equals its entry
// price has a zero-width risk leg, and the planned risk/reward division
// panics. That is a programming error upstream and is left to propagate.
func CalculateEntry(entry *Entry, priorBalance decimal.Decimal) {
	if entry.Type == EntryTypeTrade {
		calculateTradeFigures(entry, priorBalance)
	} else {
		// Capital movements arrive with the sign already applied by their
		// factory, so the raw price is the gross result.
		entry.GrossResult = &Decimal2{Decimal: entry.Price.RoundBank(2)}
	}
	calculateResultFigures(entry, priorBalance)
}

func calculateTradeFigures(entry *Entry, priorBalance decimal.Decimal) {
	price := entry.Price
	size := entry.Size
	loss := decimalOrZero(entry.LossPrice)
	profit := decimalOrZero(entry.ProfitPrice)

	short := entry.Direction != nil && *entry.Direction == EntryDirectionShort

	var riskLeg, rewardLeg decimal.Decimal
	if short {
		riskLeg = loss.Sub(price)
		rewardLeg = price.Sub(profit)
	} else {
		riskLeg = price.Sub(loss)
		rewardLeg = profit.Sub(price)
	}

	entry.AccountRisked = nil
	if priorBalance.IsPositive() {
		risked := riskLeg.Mul(size).Div(priorBalance).Abs().RoundBank(4)
		entry.AccountRisked = &Decimal4{Decimal: risked}
	}

	riskReward := rewardLeg.Mul(size).Div(riskLeg.Mul(size)).RoundBank(2)
	entry.PlannedRiskReward = &Decimal2{Decimal: riskReward}

	entry.GrossResult = nil
	if entry.ExitPrice != nil {
		var gross decimal.Decimal
		if short {
			gross = price.Sub(*entry.ExitPrice).Mul(size)
		} else {
			gross = entry.ExitPrice.Sub(price).Mul(size)
		}
		entry.GrossResult = &Decimal2{Decimal: gross.RoundBank(2)}
	}
}

func calculateResultFigures(entry *Entry, priorBalance decimal.Decimal) {
	if entry.GrossResult == nil {
		entry.NetResult = nil
		entry.AccountChange = nil
		entry.AccountBalance = nil
		return
	}

	net := entry.GrossResult.Decimal.Sub(decimalOrZero(entry.Costs)).RoundBank(2)
	entry.NetResult = &Decimal2{Decimal: net}

	var change decimal.Decimal
	if priorBalance.IsZero() {
		// Historical behavior: any result landing on a zero balance
		// reports +1.0000, gain or loss alike. Kept for compatibility.
		change = decimal.New(10000, -4)
	} else {
		change = net.Div(priorBalance).RoundBank(4)
		if net.Sign() != 0 && change.Sign() != net.Sign() {
			// A negative prior balance flips the quotient; the reported
			// change must carry the result's own sign.
			change = change.Neg()
		}
	}
	entry.AccountChange = &Decimal4{Decimal: change}

	// The operands are already at their fixed scales; no extra rounding.
	entry.AccountBalance = &Decimal2{Decimal: priorBalance.Add(net)}
}

func decimalOrZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}
