package pricing

import (
	"testing"
	"time"

	"fleet/internal/domain/entity"
	domainerrors "fleet/internal/domain/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge_BirthdayBoundaries(t *testing.T) {
	birth := date(2000, time.June, 15)

	// Day before the birthday the renter is still 24.
	assert.Equal(t, 24, Age(birth, date(2025, time.June, 14)))
	// On the birthday the renter turns 25.
	assert.Equal(t, 25, Age(birth, date(2025, time.June, 15)))
	assert.Equal(t, 25, Age(birth, date(2025, time.December, 31)))
	// Earlier month in the asOf year.
	assert.Equal(t, 24, Age(birth, date(2025, time.January, 1)))
}

func TestTier_Boundaries(t *testing.T) {
	tests := []struct {
		age      int
		coverage entity.Coverage
		rate     string
	}{
		{age: 18, coverage: entity.CoverageYoungDriver, rate: "1.5"},
		{age: 24, coverage: entity.CoverageYoungDriver, rate: "1.5"},
		{age: 25, coverage: entity.CoverageStandard, rate: "1"},
		{age: 65, coverage: entity.CoverageStandard, rate: "1"},
		{age: 66, coverage: entity.CoverageSenior, rate: "1.2"},
		{age: 90, coverage: entity.CoverageSenior, rate: "1.2"},
	}

	for _, tt := range tests {
		coverage, rate := Tier(tt.age)
		assert.Equal(t, tt.coverage, coverage, "age %d", tt.age)
		assert.Equal(t, tt.rate, rate.String(), "age %d", tt.age)
	}
}

func TestDurationDays_InclusiveBothEnds(t *testing.T) {
	assert.Equal(t, 5, DurationDays(date(2026, time.February, 1), date(2026, time.February, 5)))
	assert.Equal(t, 1, DurationDays(date(2026, time.February, 1), date(2026, time.February, 1)))
	// Across a month boundary.
	assert.Equal(t, 3, DurationDays(date(2026, time.January, 31), date(2026, time.February, 2)))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{
			name:   "identical ranges",
			aStart: date(2026, time.March, 1), aEnd: date(2026, time.March, 5),
			bStart: date(2026, time.March, 1), bEnd: date(2026, time.March, 5),
			want: true,
		},
		{
			name:   "single shared day",
			aStart: date(2026, time.March, 1), aEnd: date(2026, time.March, 5),
			bStart: date(2026, time.March, 5), bEnd: date(2026, time.March, 9),
			want: true,
		},
		{
			name:   "contained range",
			aStart: date(2026, time.March, 1), aEnd: date(2026, time.March, 10),
			bStart: date(2026, time.March, 3), bEnd: date(2026, time.March, 4),
			want: true,
		},
		{
			name:   "adjacent but not touching",
			aStart: date(2026, time.March, 1), aEnd: date(2026, time.March, 4),
			bStart: date(2026, time.March, 5), bEnd: date(2026, time.March, 9),
			want: false,
		},
		{
			name:   "disjoint",
			aStart: date(2026, time.March, 1), aEnd: date(2026, time.March, 2),
			bStart: date(2026, time.April, 1), bEnd: date(2026, time.April, 2),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// The predicate is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestCompute_RejectsInvalidRange(t *testing.T) {
	quote, err := Compute(
		date(1990, time.January, 1),
		date(2026, time.January, 1),
		date(2026, time.March, 5),
		date(2026, time.March, 4),
		decimal.NewFromInt(50),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDateRange)
	assert.Nil(t, quote)
}

func TestCompute_PriceDeterminism(t *testing.T) {
	// 5 days x 50.00 x 1.00 must be exactly 250.00, no rounding drift.
	quote, err := Compute(
		date(1990, time.January, 1),
		date(2026, time.January, 1),
		date(2026, time.February, 1),
		date(2026, time.February, 5),
		decimal.RequireFromString("50.00"),
	)

	require.NoError(t, err)
	assert.Equal(t, entity.CoverageStandard, quote.Coverage)
	assert.True(t, quote.TotalPrice.Equal(decimal.RequireFromString("250.00")),
		"got %s", quote.TotalPrice)
}

func TestCompute_YoungDriverSurcharge(t *testing.T) {
	// Renter is 22 on the as-of date: 3 days x 40.00 x 1.50 = 180.00.
	quote, err := Compute(
		date(2004, time.January, 10),
		date(2026, time.March, 1),
		date(2026, time.March, 10),
		date(2026, time.March, 12),
		decimal.RequireFromString("40.00"),
	)

	require.NoError(t, err)
	assert.Equal(t, entity.CoverageYoungDriver, quote.Coverage)
	assert.Equal(t, "1.5", quote.Rate.String())
	assert.True(t, quote.TotalPrice.Equal(decimal.RequireFromString("180.00")))
}

func TestCompute_SeniorRateRounding(t *testing.T) {
	// 1 day x 33.33 x 1.20 = 39.996, rounded to 40.00 at the boundary only.
	quote, err := Compute(
		date(1950, time.January, 1),
		date(2026, time.March, 1),
		date(2026, time.March, 10),
		date(2026, time.March, 10),
		decimal.RequireFromString("33.33"),
	)

	require.NoError(t, err)
	assert.Equal(t, entity.CoverageSenior, quote.Coverage)
	assert.True(t, quote.TotalPrice.Equal(decimal.RequireFromString("40.00")),
		"got %s", quote.TotalPrice)
}

func TestCompute_EndToEndScenario(t *testing.T) {
	// Renter born 2000-01-01, priced as of 2026-02-01 (age 26), car at
	// 80.00/day, 2026-03-10 to 2026-03-12: Standard, rate 1.00, 240.00.
	quote, err := Compute(
		date(2000, time.January, 1),
		date(2026, time.February, 1),
		date(2026, time.March, 10),
		date(2026, time.March, 12),
		decimal.RequireFromString("80.00"),
	)

	require.NoError(t, err)
	assert.Equal(t, entity.CoverageStandard, quote.Coverage)
	assert.Equal(t, "1", quote.Rate.String())
	assert.True(t, quote.TotalPrice.Equal(decimal.RequireFromString("240.00")))
}

func TestCompute_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	quote, err := Compute(
		time.Date(1990, time.January, 1, 23, 30, 0, 0, loc),
		time.Date(2026, time.January, 1, 1, 0, 0, 0, loc),
		time.Date(2026, time.February, 1, 18, 0, 0, 0, loc),
		time.Date(2026, time.February, 5, 6, 0, 0, 0, loc),
		decimal.RequireFromString("50.00"),
	)

	require.NoError(t, err)
	assert.True(t, quote.TotalPrice.Equal(decimal.RequireFromString("250.00")))
}
