package domain

import "github.com/shopspring/decimal"

const (
	// ReinforcementRatePerKm is the flat pay per kilometre on reinforcement routes.
	ReinforcementRatePerKm int64 = 1100

	// PayDaysPerMonth normalises a monthly rate to a daily one. It is fixed at
	// 30 whatever the calendar month length.
	PayDaysPerMonth int64 = 30
)

var hundred = decimal.NewFromInt(100)

// TripPay returns the pay earned by a single trip. Reinforcement trips are
// paid per kilometre using the trip distance, or the route distance when the
// trip has none; standard trips earn monthlySalary / 30. Missing inputs give 0.
func TripPay(category RouteCategory, tripDistance, routeDistance, monthlySalary float64) float64 {
	if category == CategoryReinforcement {
		dist := tripDistance
		if dist <= 0 {
			dist = routeDistance
		}
		if dist <= 0 {
			return 0
		}
		return decimal.NewFromFloat(dist).
			Mul(decimal.NewFromInt(ReinforcementRatePerKm)).
			InexactFloat64()
	}

	if monthlySalary <= 0 {
		return 0
	}
	return decimal.NewFromFloat(monthlySalary).
		Div(decimal.NewFromInt(PayDaysPerMonth)).
		InexactFloat64()
}

// FuelCost is round(pricePerLiter × liters).
func FuelCost(pricePerLiter, liters float64) int64 {
	return decimal.NewFromFloat(pricePerLiter).
		Mul(decimal.NewFromFloat(liters)).
		Round(0).
		IntPart()
}

// FinanceTotal applies the discount first and VAT on the discounted amount,
// rounded to whole currency units.
func FinanceTotal(amount, vatPercent, discountPercent float64) float64 {
	a := decimal.NewFromFloat(amount)
	disc := hundred.Sub(decimal.NewFromFloat(discountPercent)).Div(hundred)
	vat := hundred.Add(decimal.NewFromFloat(vatPercent)).Div(hundred)
	return a.Mul(disc).Mul(vat).Round(0).InexactFloat64()
}
