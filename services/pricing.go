package services

import (
	"math"
	"time"

	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/models"
	"github.com/22161183-afk/HotelOaxacaPatrones-sub001/utils"
)

const (
	// LoyaltyThreshold is the number of completed stays that unlocks loyalty pricing
	LoyaltyThreshold = 3
	// LastMinuteDays is how close check-in must be for last minute pricing
	LastMinuteDays = 3
)

var strategyMultipliers = map[models.PricingStrategy]float64{
	models.StrategyNormal:     1.00,
	models.StrategySeason:     1.20,
	models.StrategyLoyalty:    0.90,
	models.StrategyLastMinute: 0.85,
}

var seasonMonths = map[time.Month]bool{
	time.July:     true,
	time.August:   true,
	time.December: true,
}

// Nights is the absolute whole-day distance between start and end
func Nights(start, end time.Time) int {
	n := utils.DaysBetween(start, end)
	if n < 0 {
		return -n
	}
	return n
}

// Multiplier returns the factor a strategy applies to the base room price
func Multiplier(strategy models.PricingStrategy) float64 {
	if m, ok := strategyMultipliers[strategy]; ok {
		return m
	}
	return 1
}

// AdjustBasePrice applies the strategy multiplier to a room's nightly price
func AdjustBasePrice(base float64, strategy models.PricingStrategy) float64 {
	return round2(base * Multiplier(strategy))
}

// StrategyContext is what automatic strategy selection looks at
type StrategyContext struct {
	CompletedReservations int64
	CheckIn               time.Time
	Now                   time.Time
}

// SelectStrategy picks the first matching strategy: loyalty, last minute, season, normal
func SelectStrategy(sc StrategyContext) models.PricingStrategy {
	if sc.CompletedReservations >= LoyaltyThreshold {
		return models.StrategyLoyalty
	}
	if days := utils.DaysBetween(sc.Now, sc.CheckIn); days >= 0 && days <= LastMinuteDays {
		return models.StrategyLastMinute
	}
	if seasonMonths[sc.CheckIn.Month()] {
		return models.StrategySeason
	}
	return models.StrategyNormal
}

type PriceInput struct {
	BasePrice float64
	Nights    int
	Strategy  models.PricingStrategy
	Services  []models.ReservationService
	ApplyTax  bool
	// TaxRate is a percentage, 16 means 16%
	TaxRate float64
}

type PriceBreakdown struct {
	Strategy      models.PricingStrategy `json:"strategy"`
	BasePrice     float64                `json:"basePrice"`
	AdjustedBase  float64                `json:"adjustedBase"`
	Nights        int                    `json:"nights"`
	RoomSubtotal  float64                `json:"roomSubtotal"`
	ServicesTotal float64                `json:"servicesTotal"`
	Subtotal      float64                `json:"subtotal"`
	TaxRate       float64                `json:"taxRate"`
	TaxAmount     float64                `json:"taxAmount"`
	Total         float64                `json:"total"`
}

// CalculateTotal computes adjusted_base * nights + services, plus tax when requested
func CalculateTotal(in PriceInput) PriceBreakdown {
	strategy := in.Strategy
	if !strategy.IsValid() {
		strategy = models.StrategyNormal
	}
	adjusted := AdjustBasePrice(in.BasePrice, strategy)

	var services float64
	for _, s := range in.Services {
		services += s.Subtotal
	}

	b := PriceBreakdown{
		Strategy:      strategy,
		BasePrice:     in.BasePrice,
		AdjustedBase:  adjusted,
		Nights:        in.Nights,
		RoomSubtotal:  round2(adjusted * float64(in.Nights)),
		ServicesTotal: round2(services),
	}
	b.Subtotal = round2(b.RoomSubtotal + b.ServicesTotal)
	if in.ApplyTax {
		b.TaxRate = in.TaxRate
		b.TaxAmount = round2(b.Subtotal * in.TaxRate / 100)
	}
	b.Total = round2(b.Subtotal + b.TaxAmount)
	return b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
