package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkDiscountHighestTierWins(t *testing.T) {
	ing := Ingredient{
		Type: "FLOUR_AP",
		BulkTiers: []DiscountTier{
			{MinQty: 50, Discount: 0.05},
			{MinQty: 100, Discount: 0.10},
			{MinQty: 250, Discount: 0.15},
		},
	}

	assert.Zero(t, ing.BulkDiscount(49))
	assert.InDelta(t, 0.05, ing.BulkDiscount(50), 1e-9)
	assert.InDelta(t, 0.05, ing.BulkDiscount(99), 1e-9)
	assert.InDelta(t, 0.10, ing.BulkDiscount(100), 1e-9)
	assert.InDelta(t, 0.15, ing.BulkDiscount(250), 1e-9)
	assert.InDelta(t, 0.15, ing.BulkDiscount(1000), 1e-9)
}

func TestBulkDiscountUnsortedTiers(t *testing.T) {
	// Tier order in the table must not matter; the highest qualifying
	// minimum still wins.
	ing := Ingredient{
		Type: "FLOUR_AP",
		BulkTiers: []DiscountTier{
			{MinQty: 250, Discount: 0.15},
			{MinQty: 50, Discount: 0.05},
			{MinQty: 100, Discount: 0.10},
		},
	}

	assert.Zero(t, ing.BulkDiscount(10))
	assert.Equal(t, 0.05, ing.BulkDiscount(60))
	assert.Equal(t, 0.10, ing.BulkDiscount(120))
	assert.Equal(t, 0.15, ing.BulkDiscount(300))
}

func TestBulkDiscountWithoutTiers(t *testing.T) {
	ing := Ingredient{Type: "SALT"}
	assert.Zero(t, ing.BulkDiscount(500))
}

func TestDefaultCatalogIsInternallyConsistent(t *testing.T) {
	c := Default()

	// Every recipe line references a defined ingredient.
	for _, id := range c.RecipeIDs() {
		recipe, ok := c.Recipe(id)
		require.True(t, ok)
		assert.Greater(t, recipe.SalePrice, 0.0, string(id))
		assert.Greater(t, recipe.ShelfLifeDays, 0, string(id))
		require.NotEmpty(t, recipe.Ingredients, string(id))
		for _, line := range recipe.Ingredients {
			_, ok := c.Ingredient(line.Type)
			assert.True(t, ok, "%s references undefined %s", id, line.Type)
			assert.Greater(t, line.Amount, 0.0)
		}
	}

	// Every ingredient has sane pricing and shelf life.
	for _, typ := range c.IngredientTypes() {
		ing, ok := c.Ingredient(typ)
		require.True(t, ok)
		assert.Greater(t, ing.BasePrice, 0.0, string(typ))
		assert.Greater(t, ing.ShelfLifeDays, 0, string(typ))
		assert.Greater(t, ing.MinOrderQty, 0.0, string(typ))
		// Bulk tiers ascend.
		for i := 1; i < len(ing.BulkTiers); i++ {
			assert.Greater(t, ing.BulkTiers[i].MinQty, ing.BulkTiers[i-1].MinQty)
			assert.Greater(t, ing.BulkTiers[i].Discount, ing.BulkTiers[i-1].Discount)
		}
	}
}

func TestLookupOrderIsStable(t *testing.T) {
	c := Default()
	assert.Equal(t, c.IngredientTypes(), c.IngredientTypes())
	assert.Equal(t, c.RecipeIDs(), c.RecipeIDs())

	_, ok := c.Vendor("RESTAURANT_DEPOT")
	assert.True(t, ok)
	_, ok = c.Vendor("NOBODY")
	assert.False(t, ok)
}
