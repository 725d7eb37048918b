// Package economy simulates the daily price and demand environment the
// bakery trades in: inflation, per-category supply/demand, seasonal drift,
// and randomly triggered market events. State advances once per simulated
// day and is a pure function of prior state plus the injected random
// source, so a run replays exactly from its seed.
package economy

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/bakehouse/internal/catalog"
	"github.com/talgya/bakehouse/internal/entropy"
	"github.com/talgya/bakehouse/internal/money"
)

// Config bounds every stochastic process in the simulator.
type Config struct {
	MinInflationRate  float64 // annualized-equivalent daily floor
	MaxInflationRate  float64
	InflationMomentum float64 // weight of the prior trend in the walk
	TrendStep         float64 // scale of the daily random step
	ReversalChance    float64 // independent chance the trend flips sign

	SupplyReversion float64 // mean-reversion rate toward seasonal target
	SupplyNoise     float64
	DemandReversion float64
	DemandNoise     float64

	ScarcityImpact  float64 // price response when demand exceeds supply
	AbundanceImpact float64 // weaker response when supply exceeds demand

	PriceSmoothing      float64 // exponential smoothing alpha for new multipliers
	DailyNoiseAmplitude float64
	MinMultiplier       float64
	MaxMultiplier       float64

	DeliveryDays     []int // days of week vendors run routes (0 = Monday)
	DeliveryDiscount float64

	Events     []EventDef
	HistoryCap int
}

// DefaultConfig returns tuned defaults for a playable market.
func DefaultConfig() Config {
	return Config{
		MinInflationRate:  -0.02,
		MaxInflationRate:  0.08,
		InflationMomentum: 0.7,
		TrendStep:         0.004,
		ReversalChance:    0.06,

		SupplyReversion: 0.15,
		SupplyNoise:     0.05,
		DemandReversion: 0.20,
		DemandNoise:     0.04,

		ScarcityImpact:  0.8,
		AbundanceImpact: 0.4,

		PriceSmoothing:      0.35,
		DailyNoiseAmplitude: 0.03,
		MinMultiplier:       0.6,
		MaxMultiplier:       2.5,

		DeliveryDays:     []int{1, 4}, // Tuesday and Friday routes
		DeliveryDiscount: 0.03,

		Events:     DefaultEvents(),
		HistoryCap: 120,
	}
}

// Inflation tracks the current rate and its drift direction.
type Inflation struct {
	Current float64 `json:"current"`
	Trend   float64 `json:"trend"`
}

// MarketCondition is the supply/demand level for one ingredient category.
// Supply is clamped to [0.5, 1.5], demand to [0.7, 1.3].
type MarketCondition struct {
	Supply float64 `json:"supply"`
	Demand float64 `json:"demand"`
}

// HistoryPoint is one day's summary kept for trend reporting.
type HistoryPoint struct {
	Day           int     `json:"day"`
	AvgMultiplier float64 `json:"avg_multiplier"`
	Demand        float64 `json:"demand"`
	Inflation     float64 `json:"inflation"`
}

// Conditions simulates the daily economic environment.
type Conditions struct {
	cfg   Config
	cat   *catalog.Catalog
	rng   entropy.Source
	noise opensimplex.Noise

	day         int
	season      Season
	dayOfWeek   int
	inflation   Inflation
	multipliers map[catalog.IngredientType]float64
	market      map[catalog.Category]MarketCondition
	active      []ActiveEvent
	history     []HistoryPoint
}

// New creates a Conditions simulator. The seed drives the smooth noise
// field; day-to-day randomness comes from rng.
func New(cat *catalog.Catalog, cfg Config, seed int64, rng entropy.Source) *Conditions {
	c := &Conditions{
		cfg:         cfg,
		cat:         cat,
		rng:         rng,
		noise:       opensimplex.New(seed),
		season:      SeasonSpring,
		multipliers: make(map[catalog.IngredientType]float64),
		market:      make(map[catalog.Category]MarketCondition),
	}
	for _, t := range cat.IngredientTypes() {
		c.multipliers[t] = 1.0
	}
	for _, cc := range catalog.Categories() {
		c.market[cc] = MarketCondition{Supply: 1.0, Demand: 1.0}
	}
	return c
}

// AdvanceDay moves the environment to the given day number and recomputes
// every multiplier. Call exactly once per simulated day.
func (c *Conditions) AdvanceDay(day int) {
	c.day = day
	c.season = SeasonForDay(day)
	c.dayOfWeek = DayOfWeek(day)

	c.advanceInflation()
	c.advanceMarkets()
	c.rollEvents()
	c.recomputeMultipliers()
	c.recordHistory()
}

// advanceInflation runs the momentum-weighted random walk on the trend and
// folds it into the current rate, clamped to configured bounds.
func (c *Conditions) advanceInflation() {
	step := (c.rng.Float()*2 - 1) * c.cfg.TrendStep
	trend := c.cfg.InflationMomentum*c.inflation.Trend + (1-c.cfg.InflationMomentum)*step
	if c.rng.Float() < c.cfg.ReversalChance {
		trend = -trend
	}
	c.inflation.Trend = trend
	c.inflation.Current = clamp(c.inflation.Current+trend, c.cfg.MinInflationRate, c.cfg.MaxInflationRate)
}

// advanceMarkets mean-reverts each category's supply and demand toward its
// seasonal target with bounded noise.
func (c *Conditions) advanceMarkets() {
	for cat, mc := range c.market {
		supplyTarget := seasonalSupplyTarget(c.season, cat)
		mc.Supply += c.cfg.SupplyReversion * (supplyTarget - mc.Supply)
		mc.Supply += (c.rng.Float()*2 - 1) * c.cfg.SupplyNoise
		mc.Supply = clamp(mc.Supply, 0.5, 1.5)

		demandTarget := seasonalDemand(c.season)
		mc.Demand += c.cfg.DemandReversion * (demandTarget - mc.Demand)
		mc.Demand += (c.rng.Float()*2 - 1) * c.cfg.DemandNoise
		mc.Demand = clamp(mc.Demand, 0.7, 1.3)

		c.market[cat] = mc
	}
}

// rollEvents triggers new events (at most one live instance per id), then
// counts down events that were already active and drops the expired.
func (c *Conditions) rollEvents() {
	liveIDs := make(map[string]bool, len(c.active))
	for _, ev := range c.active {
		liveIDs[ev.EventID] = true
	}

	var triggered []ActiveEvent
	for _, def := range c.cfg.Events {
		if liveIDs[def.ID] {
			continue
		}
		if c.rng.Float() >= def.DailyChance {
			continue
		}
		days := def.MinDays
		if span := def.MaxDays - def.MinDays; span > 0 {
			days += c.rng.IntN(span + 1)
		}
		triggered = append(triggered, ActiveEvent{
			EventID:       def.ID,
			Name:          def.Name,
			PriceEffects:  def.PriceEffects,
			DemandEffect:  def.DemandEffect,
			DaysRemaining: days,
		})
	}

	kept := c.active[:0]
	for _, ev := range c.active {
		ev.DaysRemaining--
		if ev.DaysRemaining > 0 {
			kept = append(kept, ev)
		}
	}
	c.active = append(kept, triggered...)
}

// recomputeMultipliers rebuilds every ingredient's price multiplier from
// inflation, category supply/demand, season, delivery-day discount, events,
// and smooth bounded noise, then exponentially smooths against yesterday.
func (c *Conditions) recomputeMultipliers() {
	delivery := 1.0
	if c.isDeliveryDay() {
		delivery = 1 - c.cfg.DeliveryDiscount
	}

	for idx, t := range c.cat.IngredientTypes() {
		ing, ok := c.cat.Ingredient(t)
		if !ok {
			continue
		}
		mc := c.market[ing.Category]

		inflationFactor := 1 + c.inflation.Current

		// Scarcity raises price harder than abundance lowers it.
		gap := mc.Demand - mc.Supply
		sdFactor := 1 + c.cfg.AbundanceImpact*gap
		if gap > 0 {
			sdFactor = 1 + c.cfg.ScarcityImpact*gap
		}

		seasonFactor := 1 / seasonalSupplyTarget(c.season, ing.Category)

		eventFactor := 1.0
		for _, ev := range c.active {
			if m, ok := ev.PriceEffects[ing.Category]; ok {
				eventFactor *= m
			}
		}

		n := c.noise.Eval2(float64(c.day)*0.35, float64(idx)*7.13)
		noiseFactor := 1 + n*c.cfg.DailyNoiseAmplitude

		raw := inflationFactor * sdFactor * seasonFactor * delivery * eventFactor * noiseFactor
		prev := c.multipliers[t]
		next := c.cfg.PriceSmoothing*raw + (1-c.cfg.PriceSmoothing)*prev
		c.multipliers[t] = clamp(next, c.cfg.MinMultiplier, c.cfg.MaxMultiplier)
	}
}

func (c *Conditions) recordHistory() {
	sum := 0.0
	for _, m := range c.multipliers {
		sum += m
	}
	avg := 1.0
	if len(c.multipliers) > 0 {
		avg = sum / float64(len(c.multipliers))
	}
	c.history = append(c.history, HistoryPoint{
		Day:           c.day,
		AvgMultiplier: avg,
		Demand:        c.DemandMultiplier(),
		Inflation:     c.inflation.Current,
	})
	if limit := c.cfg.HistoryCap; limit > 0 && len(c.history) > limit {
		c.history = c.history[len(c.history)-limit:]
	}
}

func (c *Conditions) isDeliveryDay() bool {
	for _, d := range c.cfg.DeliveryDays {
		if d == c.dayOfWeek {
			return true
		}
	}
	return false
}

// IngredientUnitPrice returns today's unit price for an ingredient from a
// vendor, rounded to cents. The second return is false for unknown
// ingredient or vendor keys.
func (c *Conditions) IngredientUnitPrice(t catalog.IngredientType, vendorID string) (float64, bool) {
	ing, ok := c.cat.Ingredient(t)
	if !ok {
		return 0, false
	}
	vendor, ok := c.cat.Vendor(vendorID)
	if !ok {
		return 0, false
	}
	mult, ok := c.multipliers[t]
	if !ok {
		mult = 1.0
	}
	return money.RoundCents(ing.BasePrice * vendor.PriceMultiplier * mult), true
}

// DemandMultiplier returns today's customer-demand factor: the seasonal
// baseline times every active event's demand effect.
func (c *Conditions) DemandMultiplier() float64 {
	m := seasonalDemand(c.season)
	for _, ev := range c.active {
		if ev.DemandEffect > 0 {
			m *= ev.DemandEffect
		}
	}
	return m
}

// Day returns the most recently advanced day number.
func (c *Conditions) Day() int { return c.day }

// CurrentSeason returns the season band for the current day.
func (c *Conditions) CurrentSeason() Season { return c.season }

// InflationState returns the current inflation rate and trend.
func (c *Conditions) InflationState() Inflation { return c.inflation }

// Multiplier returns the current price multiplier for an ingredient
// (1.0 for unknown keys).
func (c *Conditions) Multiplier(t catalog.IngredientType) float64 {
	if m, ok := c.multipliers[t]; ok {
		return m
	}
	return 1.0
}

// MarketConditions returns a copy of the per-category supply/demand map.
func (c *Conditions) MarketConditions() map[catalog.Category]MarketCondition {
	out := make(map[catalog.Category]MarketCondition, len(c.market))
	for k, v := range c.market {
		out[k] = v
	}
	return out
}

// ActiveEvents returns a copy of the live event list.
func (c *Conditions) ActiveEvents() []ActiveEvent {
	out := make([]ActiveEvent, len(c.active))
	copy(out, c.active)
	return out
}

// History returns the retained daily summary points, oldest first.
func (c *Conditions) History() []HistoryPoint {
	out := make([]HistoryPoint, len(c.history))
	copy(out, c.history)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
