package services

import (
	"testing"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalculateTotalAppliesTaxToRoomAndServices(t *testing.T) {
	b := CalculateTotal(PriceInput{
		BasePrice: 100,
		Nights:    3,
		Strategy:  models.StrategyNormal,
		Services:  []models.ReservationService{{Quantity: 1, UnitPrice: 20, Subtotal: 20}},
		ApplyTax:  true,
		TaxRate:   16,
	})
	assert.Equal(t, 300.0, b.RoomSubtotal)
	assert.Equal(t, 20.0, b.ServicesTotal)
	assert.Equal(t, 320.0, b.Subtotal)
	assert.Equal(t, 51.2, b.TaxAmount)
	assert.Equal(t, 371.2, b.Total)
}

func TestCalculateTotalWithoutTax(t *testing.T) {
	b := CalculateTotal(PriceInput{BasePrice: 100, Nights: 2, Strategy: models.StrategyLoyalty, TaxRate: 16})
	assert.Equal(t, 90.0, b.AdjustedBase)
	assert.Equal(t, 180.0, b.Total)
	assert.Zero(t, b.TaxAmount)
}

func TestMultipliers(t *testing.T) {
	assert.Equal(t, 1.0, Multiplier(models.StrategyNormal))
	assert.Equal(t, 1.2, Multiplier(models.StrategySeason))
	assert.Equal(t, 0.9, Multiplier(models.StrategyLoyalty))
	assert.Equal(t, 0.85, Multiplier(models.StrategyLastMinute))
	assert.Equal(t, 1.0, Multiplier("unknown"))
	assert.Equal(t, 85.0, AdjustBasePrice(100, models.StrategyLastMinute))
}

func TestCalculateTotalUnknownStrategyFallsBackToNormal(t *testing.T) {
	b := CalculateTotal(PriceInput{BasePrice: 50, Nights: 1, Strategy: "bogus"})
	assert.Equal(t, models.StrategyNormal, b.Strategy)
	assert.Equal(t, 50.0, b.Total)
}

func TestSelectStrategyPrecedence(t *testing.T) {
	now := day("2026-06-28")
	cases := []struct {
		name      string
		completed int64
		checkIn   time.Time
		want      models.PricingStrategy
	}{
		{"loyalty beats last minute", 3, day("2026-06-29"), models.StrategyLoyalty},
		{"last minute beats season", 0, day("2026-07-01"), models.StrategyLastMinute},
		{"same day is last minute", 0, day("2026-06-28"), models.StrategyLastMinute},
		{"season in july", 0, day("2026-07-20"), models.StrategySeason},
		{"season in december", 2, day("2026-12-20"), models.StrategySeason},
		{"normal otherwise", 2, day("2026-09-10"), models.StrategyNormal},
		{"four days out is not last minute", 0, day("2026-07-02"), models.StrategySeason},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectStrategy(StrategyContext{CompletedReservations: tc.completed, CheckIn: tc.checkIn, Now: now})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(day("2026-04-10"), day("2026-04-13")))
	assert.Equal(t, 3, Nights(day("2026-04-13"), day("2026-04-10")))
	assert.Equal(t, 0, Nights(day("2026-04-10"), day("2026-04-10")))
}

func TestRefundPercentage(t *testing.T) {
	assert.Equal(t, 100, RefundPercentage(30))
	assert.Equal(t, 100, RefundPercentage(7))
	assert.Equal(t, 75, RefundPercentage(6))
	assert.Equal(t, 75, RefundPercentage(3))
	assert.Equal(t, 50, RefundPercentage(2))
	assert.Equal(t, 50, RefundPercentage(0))
	assert.Equal(t, 50, RefundPercentage(-4))
}

func TestOverlaps(t *testing.T) {
	base := DateRange{Start: day("2026-04-10"), End: day("2026-04-13")}
	cases := []struct {
		name string
		r    DateRange
		want bool
	}{
		{"inside", DateRange{day("2026-04-11"), day("2026-04-12")}, true},
		{"covers", DateRange{day("2026-04-09"), day("2026-04-14")}, true},
		{"same start", DateRange{day("2026-04-10"), day("2026-04-11")}, true},
		{"same end", DateRange{day("2026-04-12"), day("2026-04-13")}, true},
		{"back to back after", DateRange{day("2026-04-13"), day("2026-04-15")}, false},
		{"back to back before", DateRange{day("2026-04-08"), day("2026-04-10")}, false},
		{"disjoint", DateRange{day("2026-05-01"), day("2026-05-03")}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(base, tc.r))
			assert.Equal(t, tc.want, Overlaps(tc.r, base))
		})
	}
}
