// Customer traffic simulation during the sales floor phase.
package sim

import (
	"math"

	"github.com/talgya/bakehouse/internal/ledger"
)

// hourlyDemandShare is the fraction of the day's customers arriving in each
// clock hour. Morning rush around opening, lunch bump, after-work tail.
// Shares over the 7:00-19:00 trading window sum to ~1.
var hourlyDemandShare = [24]float64{
	7:  0.12,
	8:  0.14,
	9:  0.10,
	10: 0.07,
	11: 0.09,
	12: 0.11,
	13: 0.08,
	14: 0.05,
	15: 0.04,
	16: 0.05,
	17: 0.07,
	18: 0.08,
}

// dayOfWeekShare scales traffic by weekday (0 = Monday). Weekends run hot.
var dayOfWeekShare = [7]float64{0.85, 0.90, 0.95, 1.00, 1.10, 1.35, 1.25}

// accumulateCustomers advances the fractional arrival counter over the
// clock-hour window [fromHour, toHour) and spawns a customer each time it
// crosses an integer boundary. A tick spanning several hours is integrated
// hour segment by hour segment so fast-forward keeps the demand curve
// instead of stretching the final hour's share over the whole window.
func (b *Bakery) accumulateCustomers(fromHour, toHour float64) {
	dayShare := dayOfWeekShare[b.dayOfWeek()] * b.econ.DemandMultiplier()

	for fromHour < toHour {
		hour := int(fromHour)
		if hour < 0 || hour > 23 {
			return
		}
		segEnd := math.Min(float64(hour+1), toHour)
		rate := b.cfg.BaseCustomersPerDay * hourlyDemandShare[hour] * dayShare
		b.customerAccum += rate * (segEnd - fromHour)

		for b.customerAccum >= 1 {
			b.customerAccum--
			b.spawnCustomer()
		}
		fromHour = segEnd
	}
}

// spawnCustomer simulates one walk-in buying 1-3 randomly selected
// in-stock items. A customer who finds nothing in stock is a lost sale and
// produces no transaction.
func (b *Bakery) spawnCustomer() {
	wants := 1 + b.rng.IntN(b.cfg.MaxItemsPerCustomer)
	bought := 0
	for i := 0; i < wants; i++ {
		inStock := b.inv.InStockRecipes()
		if len(inStock) == 0 {
			break
		}
		id := inStock[b.rng.IntN(len(inStock))]
		recipe, ok := b.cat.Recipe(id)
		if !ok {
			continue
		}
		cogs, err := b.inv.Sell(id, 1)
		if err != nil {
			continue
		}
		b.books.RecordSale(ledger.Sale{
			Day:      b.day,
			Item:     string(id),
			Quantity: 1,
			Price:    recipe.SalePrice,
			COGS:     cogs,
		})
		b.today.ItemsSold++
		b.today.Revenue += recipe.SalePrice
		b.today.COGS += cogs
		b.events.emitCustomerPurchase(CustomerPurchase{
			Day:      b.day,
			Hour:     int(b.hour),
			Recipe:   id,
			Quantity: 1,
			Price:    recipe.SalePrice,
			COGS:     cogs,
		})
		bought++
	}
	if bought > 0 {
		b.today.Customers++
	} else {
		// Stockout: the customer walked on an empty case.
		b.today.LostSales++
	}
}
