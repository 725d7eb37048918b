// Snapshot round-tripping for the persistence layer.
package economy

import "github.com/talgya/bakehouse/internal/catalog"

// Snapshot is the serializable form of the economic state. Everything a
// restored simulator needs to produce identical subsequent output (given
// the same random source state) is carried here.
type Snapshot struct {
	Day         int                                          `json:"day"`
	Season      uint8                                        `json:"season"`
	DayOfWeek   int                                          `json:"day_of_week"`
	Inflation   Inflation                                    `json:"inflation"`
	Multipliers map[catalog.IngredientType]float64           `json:"ingredient_price_multipliers"`
	Market      map[catalog.Category]MarketCondition         `json:"market_conditions"`
	Active      []ActiveEvent                                `json:"active_events"`
	History     []HistoryPoint                               `json:"history"`
}

// Snapshot captures the current economic state.
func (c *Conditions) Snapshot() Snapshot {
	s := Snapshot{
		Day:         c.day,
		Season:      uint8(c.season),
		DayOfWeek:   c.dayOfWeek,
		Inflation:   c.inflation,
		Multipliers: make(map[catalog.IngredientType]float64, len(c.multipliers)),
		Market:      make(map[catalog.Category]MarketCondition, len(c.market)),
		Active:      append([]ActiveEvent(nil), c.active...),
		History:     append([]HistoryPoint(nil), c.history...),
	}
	for k, v := range c.multipliers {
		s.Multipliers[k] = v
	}
	for k, v := range c.market {
		s.Market[k] = v
	}
	return s
}

// Restore replaces the current state with a snapshot.
func (c *Conditions) Restore(s Snapshot) {
	c.day = s.Day
	c.season = Season(s.Season)
	c.dayOfWeek = s.DayOfWeek
	c.inflation = s.Inflation
	c.multipliers = make(map[catalog.IngredientType]float64, len(s.Multipliers))
	for k, v := range s.Multipliers {
		c.multipliers[k] = v
	}
	c.market = make(map[catalog.Category]MarketCondition, len(s.Market))
	for k, v := range s.Market {
		c.market[k] = v
	}
	c.active = append([]ActiveEvent(nil), s.Active...)
	c.history = append([]HistoryPoint(nil), s.History...)
}
