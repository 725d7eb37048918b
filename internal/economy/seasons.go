// Seasonal calendar and seasonal supply/demand targets.
package economy

import "github.com/talgya/bakehouse/internal/catalog"

// Season constants. The simulated year is 360 days split into four fixed
// 90-day bands.
type Season uint8

const (
	SeasonSpring Season = iota
	SeasonSummer
	SeasonAutumn
	SeasonWinter
)

const (
	// DaysPerSeason is the length of one calendar band.
	DaysPerSeason = 90
	// DaysPerYear is four bands.
	DaysPerYear = 4 * DaysPerSeason
	// DaysPerWeek drives the day-of-week cycle for vendor deliveries
	// and customer traffic.
	DaysPerWeek = 7
)

// SeasonForDay maps a 1-based day number onto its calendar band.
func SeasonForDay(day int) Season {
	if day < 1 {
		day = 1
	}
	return Season(((day - 1) % DaysPerYear) / DaysPerSeason)
}

// DayOfWeek maps a 1-based day number onto 0..6 (0 = Monday).
func DayOfWeek(day int) int {
	if day < 1 {
		day = 1
	}
	return (day - 1) % DaysPerWeek
}

// Name returns a human-readable season name.
func (s Season) Name() string {
	switch s {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// seasonalSupplyTarget is the mean-reversion target for a category's supply
// level. Harvest season floods grain, winter squeezes produce and dairy.
func seasonalSupplyTarget(season Season, cat catalog.Category) float64 {
	switch season {
	case SeasonWinter:
		switch cat {
		case catalog.CategoryProduce:
			return 0.75
		case catalog.CategoryDairy:
			return 0.85
		case catalog.CategoryGrain:
			return 0.90
		default:
			return 0.95
		}
	case SeasonSpring:
		switch cat {
		case catalog.CategoryProduce:
			return 1.05
		case catalog.CategoryDairy:
			return 1.10
		default:
			return 1.0
		}
	case SeasonSummer:
		switch cat {
		case catalog.CategoryProduce:
			return 1.15
		case catalog.CategorySweet:
			return 1.05
		default:
			return 1.0
		}
	case SeasonAutumn:
		switch cat {
		case catalog.CategoryGrain:
			return 1.20
		case catalog.CategoryProduce:
			return 1.10
		default:
			return 1.0
		}
	}
	return 1.0
}

// seasonalDemand is the baseline customer-demand factor per season.
// Holiday baking pushes winter up; summer slumps.
func seasonalDemand(season Season) float64 {
	switch season {
	case SeasonWinter:
		return 1.15
	case SeasonSpring:
		return 1.0
	case SeasonSummer:
		return 0.9
	case SeasonAutumn:
		return 1.05
	default:
		return 1.0
	}
}
