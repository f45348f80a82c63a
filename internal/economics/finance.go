package economics

import "math"

// ROI returns the discounted return over the horizon as a fraction of the
// investment: annual benefits are discounted year by year, the investment
// subtracted, and the remainder divided by the investment. A zero investment
// yields zero rather than dividing by zero.
func ROI(investment, annualBenefit float64, years int, rate float64) float64 {
	if investment == 0 {
		return 0
	}

	var discounted float64
	for t := 1; t <= years; t++ {
		discounted += annualBenefit / math.Pow(1+rate, float64(t))
	}

	return (discounted - investment) / investment
}

// PaybackPeriodMonths returns the months of undiscounted annual savings
// needed to recover the investment, +Inf when savings are zero.
func PaybackPeriodMonths(investment, annualSavings float64) float64 {
	if annualSavings == 0 {
		return math.Inf(1)
	}
	return investment / annualSavings * 12
}

// NPV returns the net present value of a cashflow stream against an initial
// investment. Cashflow t is discounted over t+1 periods.
func NPV(investment float64, cashflows []float64, rate float64) float64 {
	npv := -investment
	for t, cf := range cashflows {
		npv += cf / math.Pow(1+rate, float64(t+1))
	}
	return npv
}

// OpportunityCost returns the cumulative cost of delaying for the given
// number of months, with the monthly loss compounding at the monthly rate.
// The first month is uncompounded.
func OpportunityCost(months int, monthlyLoss, monthlyRate float64) float64 {
	var total float64
	for m := 1; m <= months; m++ {
		total += monthlyLoss * math.Pow(1+monthlyRate, float64(m-1))
	}
	return total
}
