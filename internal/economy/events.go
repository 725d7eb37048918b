// Market events — randomly triggered shocks that push prices and demand
// for a few days, then expire.
package economy

import "github.com/talgya/bakehouse/internal/catalog"

// EventDef configures one triggerable market event. At most one instance of
// an event id is active at a time.
type EventDef struct {
	ID           string                       `json:"id"`
	Name         string                       `json:"name"`
	DailyChance  float64                      `json:"daily_chance"`
	MinDays      int                          `json:"min_days"`
	MaxDays      int                          `json:"max_days"`
	PriceEffects map[catalog.Category]float64 `json:"price_effects"` // multiplier per category
	DemandEffect float64                      `json:"demand_effect"` // multiplier on customer demand
}

// ActiveEvent is a triggered event counting down to expiry.
type ActiveEvent struct {
	EventID       string                       `json:"event_id"`
	Name          string                       `json:"name"`
	PriceEffects  map[catalog.Category]float64 `json:"price_effects"`
	DemandEffect  float64                      `json:"demand_effect"`
	DaysRemaining int                          `json:"days_remaining"`
}

// DefaultEvents returns the built-in market event table.
func DefaultEvents() []EventDef {
	return []EventDef{
		{
			ID: "WHEAT_SHORTAGE", Name: "Regional wheat shortage",
			DailyChance: 0.02, MinDays: 3, MaxDays: 7,
			PriceEffects: map[catalog.Category]float64{catalog.CategoryGrain: 1.35},
			DemandEffect: 1.0,
		},
		{
			ID: "DAIRY_GLUT", Name: "Dairy surplus dumping",
			DailyChance: 0.02, MinDays: 2, MaxDays: 5,
			PriceEffects: map[catalog.Category]float64{catalog.CategoryDairy: 0.80},
			DemandEffect: 1.0,
		},
		{
			ID: "FUEL_SPIKE", Name: "Fuel price spike",
			DailyChance: 0.015, MinDays: 4, MaxDays: 9,
			PriceEffects: map[catalog.Category]float64{
				catalog.CategoryGrain:   1.10,
				catalog.CategoryDairy:   1.10,
				catalog.CategorySweet:   1.10,
				catalog.CategoryProduce: 1.12,
				catalog.CategoryDry:     1.08,
			},
			DemandEffect: 0.95,
		},
		{
			ID: "FOOD_FESTIVAL", Name: "Downtown food festival",
			DailyChance: 0.01, MinDays: 2, MaxDays: 3,
			DemandEffect: 1.30,
		},
		{
			ID: "AVIAN_FLU", Name: "Avian flu outbreak",
			DailyChance: 0.008, MinDays: 5, MaxDays: 12,
			PriceEffects: map[catalog.Category]float64{catalog.CategoryProduce: 1.50},
			DemandEffect: 1.0,
		},
		{
			ID: "ROAD_CLOSURE", Name: "Main street construction",
			DailyChance: 0.012, MinDays: 3, MaxDays: 6,
			DemandEffect: 0.80,
		},
	}
}
