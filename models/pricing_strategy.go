package models

// PricingStrategy selects how the base room price is adjusted
type PricingStrategy string

const (
	StrategyNormal     PricingStrategy = "normal"
	StrategySeason     PricingStrategy = "season"
	StrategyLoyalty    PricingStrategy = "loyalty"
	StrategyLastMinute PricingStrategy = "last_minute"
)

// IsValid reports whether s is a known strategy
func (s PricingStrategy) IsValid() bool {
	switch s {
	case StrategyNormal, StrategySeason, StrategyLoyalty, StrategyLastMinute:
		return true
	}
	return false
}
