package autopilot

import (
	"fmt"
	"strings"
)

// IngredientPolicy is the par-level rule for one raw ingredient.
type IngredientPolicy struct {
	Ingredient   string
	ReorderPoint float64 // order when on-hand plus in-transit falls below
	OrderUpTo    float64
	MinOrderQty  float64 // vendor minimum, so small top-ups are not rejected
	PriceCeiling float64 // skip non-urgent buys above this price multiplier
}

// BakePolicy is the par-level rule for one recipe.
type BakePolicy struct {
	Recipe   string
	ParLevel int // bake up to this many finished units each morning
}

// Policy is the full rule set the planner runs each morning.
type Policy struct {
	Vendor      string
	Ingredients []IngredientPolicy
	Bakes       []BakePolicy
}

// DefaultPolicy returns a conservative bread-and-pastry operation.
func DefaultPolicy() Policy {
	return Policy{
		Vendor: "RESTAURANT_DEPOT",
		Ingredients: []IngredientPolicy{
			{Ingredient: "FLOUR_AP", ReorderPoint: 60, OrderUpTo: 150, MinOrderQty: 25, PriceCeiling: 1.4},
			{Ingredient: "BUTTER", ReorderPoint: 8, OrderUpTo: 20, MinOrderQty: 5, PriceCeiling: 1.4},
			{Ingredient: "SUGAR", ReorderPoint: 10, OrderUpTo: 30, MinOrderQty: 10, PriceCeiling: 1.5},
			{Ingredient: "YEAST", ReorderPoint: 1, OrderUpTo: 3, MinOrderQty: 1, PriceCeiling: 1.6},
			{Ingredient: "SALT", ReorderPoint: 2, OrderUpTo: 5, MinOrderQty: 2, PriceCeiling: 2.0},
			{Ingredient: "MILK", ReorderPoint: 2, OrderUpTo: 5, MinOrderQty: 2, PriceCeiling: 1.4},
			{Ingredient: "EGGS", ReorderPoint: 5, OrderUpTo: 15, MinOrderQty: 5, PriceCeiling: 1.4},
			{Ingredient: "CHOCOLATE", ReorderPoint: 3, OrderUpTo: 8, MinOrderQty: 2, PriceCeiling: 1.3},
		},
		Bakes: []BakePolicy{
			{Recipe: "BASIC_BREAD", ParLevel: 30},
			{Recipe: "CROISSANT", ParLevel: 20},
			{Recipe: "CHOC_CHIP_COOKIE", ParLevel: 25},
			{Recipe: "MUFFIN", ParLevel: 15},
		},
	}
}

// BakeOrder is one planned production run.
type BakeOrder struct {
	Recipe   string
	Quantity int
}

// DayPlan is the planner's output for one cycle.
type DayPlan struct {
	Purchases []PurchaseLine
	Bakes     []BakeOrder
	OpenShop  bool
	NextDay   bool
	Rationale string
}

// Plan derives the next actions from an observed snapshot. Morning phases
// get a restock-bake-open plan; the day summary advances the calendar;
// the sales floor and terminal phases are left alone.
func Plan(policy Policy, snap *ShopSnapshot) *DayPlan {
	switch snap.Status.Phase {
	case "PURCHASING", "PRODUCTION":
		return planMorning(policy, snap)
	case "DAY_SUMMARY":
		return &DayPlan{NextDay: true, Rationale: "day closed, advancing calendar"}
	default:
		return &DayPlan{Rationale: fmt.Sprintf("nothing to do during %s", snap.Status.Phase)}
	}
}

func planMorning(policy Policy, snap *ShopSnapshot) *DayPlan {
	plan := &DayPlan{OpenShop: true}
	var notes []string

	for _, p := range policy.Ingredients {
		position := snap.RawStock(p.Ingredient) + snap.OnOrder(p.Ingredient)
		if position >= p.ReorderPoint {
			continue
		}
		// Above the price ceiling, wait out the market unless the shelf is
		// nearly bare.
		mult := snap.Economy.Multipliers[p.Ingredient]
		if mult > p.PriceCeiling && position > p.ReorderPoint/2 {
			notes = append(notes, fmt.Sprintf("deferring %s (price x%.2f)", p.Ingredient, mult))
			continue
		}
		qty := p.OrderUpTo - position
		if qty < p.MinOrderQty {
			qty = p.MinOrderQty
		}
		plan.Purchases = append(plan.Purchases, PurchaseLine{Ingredient: p.Ingredient, Quantity: qty})
	}

	for _, b := range policy.Bakes {
		short := b.ParLevel - snap.FinishedStock(b.Recipe)
		if short <= 0 {
			continue
		}
		plan.Bakes = append(plan.Bakes, BakeOrder{Recipe: b.Recipe, Quantity: short})
	}

	notes = append(notes, fmt.Sprintf("%d purchase lines, %d bake runs",
		len(plan.Purchases), len(plan.Bakes)))
	plan.Rationale = strings.Join(notes, "; ")
	return plan
}
