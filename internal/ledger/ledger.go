// Package ledger computes fee applicability and house balances. It is
// a pure library: no I/O, no clock, no mutation of its inputs. Callers
// supply consistent snapshots of the house, fee catalog and payment
// log; every function recomputes from scratch on each call.
//
// Months are 0-indexed (0 = January) to match the stored data.
package ledger

import (
	"github.com/condomaster/api/internal/models"
)

// Applicable reports whether a fee is charged to a house for the given
// (year, month) period. All conditions are AND-combined:
//
//  1. the period falls inside the fee's validity window;
//  2. parking charges require the house to have a parking slot;
//  3. a non-empty month mask restricts the charge to listed months;
//  4. a fine with an explicit target list (even an empty one) applies
//     only to listed houses;
//  5. board members are categorically exempt from the "gasto comun"
//     concept; this overrides every other rule.
func Applicable(fee models.FeeConfig, house models.House, year, month int) bool {
	target := year*12 + month
	start := fee.StartYear*12 + fee.StartMonth
	if target < start {
		return false
	}
	if fee.Closed() && target > *fee.EndYear*12+*fee.EndMonth {
		return false
	}

	if IsParking(fee.Name) && !house.HasParking {
		return false
	}

	if len(fee.ApplicableMonths) > 0 && !containsInt(fee.ApplicableMonths, month) {
		return false
	}

	// A nil target list means the fine is untargeted; a present list,
	// empty included, excludes every house not on it.
	if fee.IsFine() && fee.TargetHouseIDs != nil && !containsID(fee.TargetHouseIDs, house.ID) {
		return false
	}

	if house.IsBoardMember && IsCommonExpense(fee.Name) {
		return false
	}

	return true
}

// ExpectedAmount sums the default amounts of every fee applicable to
// the house for the period. A zero result means either no charge
// exists or every charge was exempted; the ledger does not distinguish.
func ExpectedAmount(house models.House, year, month int, fees []models.FeeConfig) int {
	total := 0
	for _, fee := range fees {
		if Applicable(fee, house, year, month) {
			total += fee.DefaultAmount
		}
	}
	return total
}

// AmountPaid sums the amounts of every payment recorded for the exact
// (house, year, month) triple. Partial payments accumulate.
func AmountPaid(houseID models.EntityID, year, month int, payments []models.Payment) int {
	total := 0
	for _, p := range payments {
		if p.HouseID == houseID && p.Year == year && p.Month == month {
			total += p.Amount
		}
	}
	return total
}

// AmountPaidForFee sums the breakdown amounts recorded against one fee
// across every payment for the (house, year, month) triple. A house may
// settle a month in several installments with different concept mixes,
// so the remainder owed for one concept needs this granularity.
func AmountPaidForFee(houseID models.EntityID, year, month int, feeID models.EntityID, payments []models.Payment) int {
	total := 0
	for _, p := range payments {
		if p.HouseID != houseID || p.Year != year || p.Month != month {
			continue
		}
		for _, b := range p.Breakdown {
			if b.FeeID == feeID {
				total += b.Amount
			}
		}
	}
	return total
}

// AccumulatedDebt sums monthly shortfalls (expected minus paid, floored
// at zero) for the given year, from January through either December or
// the as-of month, whichever comes first. An overpayment in one month
// never offsets a shortfall in another: credits do not carry forward.
//
// The as-of bound is an explicit parameter so the computation stays
// clock-free; callers pass "today" from the outside.
func AccumulatedDebt(house models.House, year int, fees []models.FeeConfig, payments []models.Payment, asOfYear, asOfMonth int) int {
	last := -1
	switch {
	case year < asOfYear:
		last = 11
	case year == asOfYear:
		last = asOfMonth
	}

	debt := 0
	for m := 0; m <= last; m++ {
		expected := ExpectedAmount(house, year, m, fees)
		paid := AmountPaid(house.ID, year, m, payments)
		if paid < expected {
			debt += expected - paid
		}
	}
	return debt
}

// PerConceptRemainder returns how much of one fee remains owed by the
// house for the period, floored at zero. An exempted concept has a
// remainder of exactly zero regardless of the configured amount: the
// exemption is absolute, not merely an amount that computes to zero.
func PerConceptRemainder(house models.House, year, month int, fee models.FeeConfig, payments []models.Payment) int {
	if house.IsBoardMember && IsCommonExpense(fee.Name) {
		return 0
	}
	paid := AmountPaidForFee(house.ID, year, month, fee.ID, payments)
	if rem := fee.DefaultAmount - paid; rem > 0 {
		return rem
	}
	return 0
}

func containsInt(list []int, v int) bool {
	for _, m := range list {
		if m == v {
			return true
		}
	}
	return false
}

func containsID(list []models.EntityID, id models.EntityID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
