// Package catalog holds the static reference data for the bakery:
// ingredient definitions, recipes, and vendors. Components receive a
// *Catalog at construction time; nothing reads it through a global.
package catalog

import "math"

// IngredientType identifies a raw ingredient ("FLOUR_AP", "BUTTER", ...).
type IngredientType string

// RecipeID identifies a sellable product ("BASIC_BREAD", "CROISSANT", ...).
type RecipeID string

// Category groups ingredients for supply-chain lead times and market
// supply/demand tracking.
type Category string

const (
	CategoryGrain   Category = "GRAIN"
	CategoryDairy   Category = "DAIRY"
	CategorySweet   Category = "SWEETENER"
	CategoryProduce Category = "PRODUCE"
	CategoryDry     Category = "DRY_GOODS"
)

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{CategoryGrain, CategoryDairy, CategorySweet, CategoryProduce, CategoryDry}
}

// DiscountTier is one rung of a bulk-discount ladder. Ordering a quantity
// at or above MinQty earns the Discount fraction off the unit price.
type DiscountTier struct {
	MinQty   float64 `json:"min_qty"`
	Discount float64 `json:"discount"` // 0.05 = 5% off
}

// Ingredient is the static definition of a purchasable raw ingredient.
type Ingredient struct {
	Type          IngredientType `json:"type"`
	Name          string         `json:"name"`
	Category      Category       `json:"category"`
	Unit          string         `json:"unit"` // "lb", "dozen", "gal"
	BasePrice     float64        `json:"base_price"`
	ShelfLifeDays int            `json:"shelf_life_days"`
	MinOrderQty   float64        `json:"min_order_qty"`
	BulkTiers     []DiscountTier `json:"bulk_tiers"` // ascending MinQty
}

// RecipeIngredient is one line of a recipe's bill of materials.
type RecipeIngredient struct {
	Type   IngredientType `json:"type"`
	Amount float64        `json:"amount"` // per unit produced
}

// Recipe is the static definition of a producible, sellable product.
type Recipe struct {
	ID            RecipeID           `json:"id"`
	Name          string             `json:"name"`
	SalePrice     float64            `json:"sale_price"`
	ShelfLifeDays int                `json:"shelf_life_days"`
	Ingredients   []RecipeIngredient `json:"ingredients"`
}

// Vendor is a supplier with its own price level and delivery days.
type Vendor struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PriceMultiplier float64 `json:"price_multiplier"`
}

// Catalog is the immutable bundle of reference data handed to each
// engine component.
type Catalog struct {
	ingredients map[IngredientType]Ingredient
	recipes     map[RecipeID]Recipe
	vendors     map[string]Vendor

	ingredientOrder []IngredientType
	recipeOrder     []RecipeID
}

// New builds a catalog from definition slices. Later entries with a
// duplicate key overwrite earlier ones.
func New(ingredients []Ingredient, recipes []Recipe, vendors []Vendor) *Catalog {
	c := &Catalog{
		ingredients: make(map[IngredientType]Ingredient, len(ingredients)),
		recipes:     make(map[RecipeID]Recipe, len(recipes)),
		vendors:     make(map[string]Vendor, len(vendors)),
	}
	for _, ing := range ingredients {
		if _, ok := c.ingredients[ing.Type]; !ok {
			c.ingredientOrder = append(c.ingredientOrder, ing.Type)
		}
		c.ingredients[ing.Type] = ing
	}
	for _, r := range recipes {
		if _, ok := c.recipes[r.ID]; !ok {
			c.recipeOrder = append(c.recipeOrder, r.ID)
		}
		c.recipes[r.ID] = r
	}
	for _, v := range vendors {
		c.vendors[v.ID] = v
	}
	return c
}

// Ingredient looks up an ingredient definition.
func (c *Catalog) Ingredient(t IngredientType) (Ingredient, bool) {
	ing, ok := c.ingredients[t]
	return ing, ok
}

// Recipe looks up a recipe definition.
func (c *Catalog) Recipe(id RecipeID) (Recipe, bool) {
	r, ok := c.recipes[id]
	return r, ok
}

// Vendor looks up a vendor definition.
func (c *Catalog) Vendor(id string) (Vendor, bool) {
	v, ok := c.vendors[id]
	return v, ok
}

// IngredientTypes returns all ingredient keys in definition order.
func (c *Catalog) IngredientTypes() []IngredientType {
	out := make([]IngredientType, len(c.ingredientOrder))
	copy(out, c.ingredientOrder)
	return out
}

// RecipeIDs returns all recipe keys in definition order.
func (c *Catalog) RecipeIDs() []RecipeID {
	out := make([]RecipeID, len(c.recipeOrder))
	copy(out, c.recipeOrder)
	return out
}

// BulkDiscount returns the discount fraction for ordering qty units of an
// ingredient. The highest qualifying tier wins; zero if none qualify.
func (ing Ingredient) BulkDiscount(qty float64) float64 {
	best := 0.0
	bestMin := math.Inf(-1)
	for _, tier := range ing.BulkTiers {
		if qty >= tier.MinQty && tier.MinQty > bestMin {
			bestMin = tier.MinQty
			best = tier.Discount
		}
	}
	return best
}
