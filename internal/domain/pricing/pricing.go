// Package pricing implements the pure derivation logic of the reservation
// engine: date-range validation, inclusive durations, age computation and
// the age-tiered coverage/rate table. Everything here is side-effect free;
// the "as of" date is always an explicit parameter so callers inject the
// clock instead of the package reading it.
package pricing

import (
	"time"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"

	"github.com/shopspring/decimal"
)

// Age tier boundaries. The tiers are closed, ordered and non-overlapping:
// age < 25 is Young Driver, 25..65 is Standard, above 65 is Senior/Premium.
const (
	youngDriverMaxAge = 24
	standardMaxAge    = 65
)

var (
	rateYoungDriver = decimal.NewFromFloat(1.50)
	rateStandard    = decimal.NewFromInt(1)
	rateSenior      = decimal.NewFromFloat(1.20)
)

// Quote is the derived part of a reservation: the coverage label, the rate
// multiplier and the total price rounded to two fractional digits.
type Quote struct {
	Coverage   entity.Coverage
	Rate       decimal.Decimal
	TotalPrice decimal.Decimal
}

// Date truncates t to calendar-date precision in UTC. All engine inputs are
// normalized through this so time-of-day and zone never influence a result.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Age returns the full years between birth and asOf, decremented by one when
// the birthday has not yet occurred in the asOf year.
func Age(birth, asOf time.Time) int {
	age := asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() ||
		(asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		age--
	}

	return age
}

// DurationDays returns the number of calendar days in the inclusive range
// [start, end]. A one-day rental where start equals end counts as 1.
func DurationDays(start, end time.Time) int {
	return int(Date(end).Sub(Date(start)).Hours()/24) + 1
}

// Overlaps reports whether two inclusive date ranges share at least one
// calendar day. Adjacent ranges (aEnd the day before bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !Date(aStart).After(Date(bEnd)) && !Date(bStart).After(Date(aEnd))
}

// Tier returns the coverage label and rate multiplier for a renter age.
func Tier(age int) (entity.Coverage, decimal.Decimal) {
	switch {
	case age <= youngDriverMaxAge:
		return entity.CoverageYoungDriver, rateYoungDriver
	case age <= standardMaxAge:
		return entity.CoverageStandard, rateStandard
	default:
		return entity.CoverageSenior, rateSenior
	}
}

// Compute validates the requested date range and derives coverage, rate and
// total price for a renter born on birthDate, priced as of asOf. The total is
// duration x dailyPrice x rate in exact decimal arithmetic, rounded to two
// fractional digits only at the end.
//
// Overlap detection against existing bookings is deliberately not part of
// this function; it is a storage query the caller runs in the same
// transaction as the write.
func Compute(birthDate, asOf, start, end time.Time, dailyPrice decimal.Decimal) (*Quote, error) {
	start, end = Date(start), Date(end)
	if end.Before(start) {
		return nil, domainerrors.ErrInvalidDateRange
	}

	coverage, rate := Tier(Age(Date(birthDate), Date(asOf)))
	days := decimal.NewFromInt(int64(DurationDays(start, end)))

	return &Quote{
		Coverage:   coverage,
		Rate:       rate,
		TotalPrice: days.Mul(dailyPrice).Mul(rate).Round(2),
	}, nil
}
