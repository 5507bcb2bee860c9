package wsfolio

import "math"

// Static 2024 income-tax brackets for a Canadian resident of Ontario. Each
// bracket taxes the income below its ceiling at its rate.
type taxBracket struct {
	below float64
	rate  float64
}

var federalTaxBrackets = []taxBracket{
	{below: 55867, rate: 0.15},
	{below: 111733, rate: 0.205},
	{below: 173205, rate: 0.26},
	{below: 246752, rate: 0.29},
	{below: math.Inf(1), rate: 0.33},
}

var ontarioTaxBrackets = []taxBracket{
	{below: 51446, rate: 0.0505},
	{below: 102894, rate: 0.0915},
	{below: 150000, rate: 0.1116},
	{below: 220000, rate: 0.1216},
	{below: math.Inf(1), rate: 0.1316},
}

// IncomeTax is the estimated tax owed, split by jurisdiction.
type IncomeTax struct {
	Federal float64
	Ontario float64
}

// Total returns the combined federal and provincial tax.
func (t IncomeTax) Total() float64 { return t.Federal + t.Ontario }

// CalculateIncomeTax estimates the income tax on employment income plus
// taxable capital gains, after an RRSP deduction.
func CalculateIncomeTax(employmentIncome, rrspDeduction, capitalGains float64) IncomeTax {
	taxable := employmentIncome + capitalGains - rrspDeduction
	return IncomeTax{
		Federal: bracketTax(taxable, federalTaxBrackets),
		Ontario: bracketTax(taxable, ontarioTaxBrackets),
	}
}

func bracketTax(income float64, brackets []taxBracket) float64 {
	var tax, taxedSoFar float64
	remaining := income
	for _, b := range brackets {
		if remaining <= 0 {
			break
		}
		size := math.Min(remaining, b.below-taxedSoFar)
		tax += size * b.rate
		remaining -= size
		taxedSoFar += size
	}
	return tax
}

// MarginalTaxRates returns the federal and Ontario rates that would apply to
// the next dollar of income.
func MarginalTaxRates(income float64) (federal, ontario float64) {
	return marginalRate(income, federalTaxBrackets), marginalRate(income, ontarioTaxBrackets)
}

func marginalRate(income float64, brackets []taxBracket) float64 {
	for _, b := range brackets {
		if income < b.below {
			return b.rate
		}
	}
	return brackets[len(brackets)-1].rate
}
