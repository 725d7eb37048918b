package catalog

// Default reference data so the simulation runs out of the box.
// Prices are wholesale per-unit figures in dollars.

// DefaultIngredients returns the built-in ingredient table.
func DefaultIngredients() []Ingredient {
	return []Ingredient{
		{
			Type: "FLOUR_AP", Name: "All-Purpose Flour", Category: CategoryGrain,
			Unit: "lb", BasePrice: 0.45, ShelfLifeDays: 180, MinOrderQty: 25,
			BulkTiers: []DiscountTier{{MinQty: 50, Discount: 0.05}, {MinQty: 100, Discount: 0.10}, {MinQty: 250, Discount: 0.15}},
		},
		{
			Type: "FLOUR_BREAD", Name: "Bread Flour", Category: CategoryGrain,
			Unit: "lb", BasePrice: 0.55, ShelfLifeDays: 180, MinOrderQty: 25,
			BulkTiers: []DiscountTier{{MinQty: 50, Discount: 0.05}, {MinQty: 100, Discount: 0.10}},
		},
		{
			Type: "SUGAR", Name: "Granulated Sugar", Category: CategorySweet,
			Unit: "lb", BasePrice: 0.60, ShelfLifeDays: 365, MinOrderQty: 10,
			BulkTiers: []DiscountTier{{MinQty: 25, Discount: 0.05}, {MinQty: 50, Discount: 0.10}},
		},
		{
			Type: "BUTTER", Name: "Unsalted Butter", Category: CategoryDairy,
			Unit: "lb", BasePrice: 3.20, ShelfLifeDays: 30, MinOrderQty: 5,
			BulkTiers: []DiscountTier{{MinQty: 10, Discount: 0.04}, {MinQty: 25, Discount: 0.08}},
		},
		{
			Type: "EGGS", Name: "Eggs", Category: CategoryProduce,
			Unit: "dozen", BasePrice: 2.10, ShelfLifeDays: 21, MinOrderQty: 5,
			BulkTiers: []DiscountTier{{MinQty: 15, Discount: 0.05}},
		},
		{
			Type: "MILK", Name: "Whole Milk", Category: CategoryDairy,
			Unit: "gal", BasePrice: 3.50, ShelfLifeDays: 7, MinOrderQty: 2,
			BulkTiers: []DiscountTier{{MinQty: 5, Discount: 0.05}},
		},
		{
			Type: "YEAST", Name: "Active Dry Yeast", Category: CategoryDry,
			Unit: "lb", BasePrice: 4.80, ShelfLifeDays: 120, MinOrderQty: 1,
			BulkTiers: []DiscountTier{{MinQty: 5, Discount: 0.08}},
		},
		{
			Type: "SALT", Name: "Fine Sea Salt", Category: CategoryDry,
			Unit: "lb", BasePrice: 0.80, ShelfLifeDays: 730, MinOrderQty: 2,
		},
		{
			Type: "CHOCOLATE", Name: "Dark Chocolate", Category: CategoryDry,
			Unit: "lb", BasePrice: 6.50, ShelfLifeDays: 365, MinOrderQty: 2,
			BulkTiers: []DiscountTier{{MinQty: 10, Discount: 0.06}, {MinQty: 25, Discount: 0.12}},
		},
		{
			Type: "VANILLA", Name: "Vanilla Extract", Category: CategoryDry,
			Unit: "oz", BasePrice: 1.90, ShelfLifeDays: 730, MinOrderQty: 4,
		},
	}
}

// DefaultRecipes returns the built-in recipe table.
func DefaultRecipes() []Recipe {
	return []Recipe{
		{
			ID: "BASIC_BREAD", Name: "Basic Bread", SalePrice: 3.50, ShelfLifeDays: 1,
			Ingredients: []RecipeIngredient{
				{Type: "FLOUR_AP", Amount: 1.2},
				{Type: "YEAST", Amount: 0.02},
				{Type: "SALT", Amount: 0.03},
			},
		},
		{
			ID: "SOURDOUGH", Name: "Sourdough Loaf", SalePrice: 6.00, ShelfLifeDays: 2,
			Ingredients: []RecipeIngredient{
				{Type: "FLOUR_BREAD", Amount: 1.4},
				{Type: "SALT", Amount: 0.04},
			},
		},
		{
			ID: "CROISSANT", Name: "Croissant", SalePrice: 3.25, ShelfLifeDays: 1,
			Ingredients: []RecipeIngredient{
				{Type: "FLOUR_AP", Amount: 0.25},
				{Type: "BUTTER", Amount: 0.3},
				{Type: "SUGAR", Amount: 0.05},
				{Type: "YEAST", Amount: 0.01},
				{Type: "MILK", Amount: 0.02},
			},
		},
		{
			ID: "CHOC_CHIP_COOKIE", Name: "Chocolate Chip Cookie", SalePrice: 2.00, ShelfLifeDays: 3,
			Ingredients: []RecipeIngredient{
				{Type: "FLOUR_AP", Amount: 0.1},
				{Type: "BUTTER", Amount: 0.08},
				{Type: "SUGAR", Amount: 0.08},
				{Type: "CHOCOLATE", Amount: 0.1},
				{Type: "EGGS", Amount: 0.05},
			},
		},
		{
			ID: "CHOC_CAKE", Name: "Chocolate Cake", SalePrice: 22.00, ShelfLifeDays: 2,
			Ingredients: []RecipeIngredient{
				{Type: "FLOUR_AP", Amount: 0.8},
				{Type: "SUGAR", Amount: 0.9},
				{Type: "BUTTER", Amount: 0.5},
				{Type: "CHOCOLATE", Amount: 0.6},
				{Type: "EGGS", Amount: 0.33},
				{Type: "MILK", Amount: 0.06},
				{Type: "VANILLA", Amount: 0.5},
			},
		},
		{
			ID: "MUFFIN", Name: "Blueberry Muffin", SalePrice: 2.75, ShelfLifeDays: 2,
			Ingredients: []RecipeIngredient{
				{Type: "FLOUR_AP", Amount: 0.15},
				{Type: "SUGAR", Amount: 0.1},
				{Type: "BUTTER", Amount: 0.06},
				{Type: "EGGS", Amount: 0.08},
				{Type: "MILK", Amount: 0.03},
			},
		},
	}
}

// DefaultVendors returns the built-in vendor table.
func DefaultVendors() []Vendor {
	return []Vendor{
		{ID: "RESTAURANT_DEPOT", Name: "Restaurant Depot", PriceMultiplier: 1.00},
		{ID: "SYSCO", Name: "Sysco Foodservice", PriceMultiplier: 1.08},
		{ID: "LOCAL_FARM", Name: "Greenway Farm Co-op", PriceMultiplier: 1.15},
	}
}

// Default returns a catalog built from the built-in tables.
func Default() *Catalog {
	return New(DefaultIngredients(), DefaultRecipes(), DefaultVendors())
}
