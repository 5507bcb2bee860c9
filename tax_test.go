package wsfolio

import "testing"

func TestCalculateIncomeTax(t *testing.T) {
	tax := CalculateIncomeTax(100000, 0, 0)
	checkAlmost(t, "Federal", tax.Federal, 55867*0.15+44133*0.205)
	checkAlmost(t, "Ontario", tax.Ontario, 51446*0.0505+48554*0.0915)
	checkAlmost(t, "Total", tax.Total(), tax.Federal+tax.Ontario)
}

func TestCalculateIncomeTaxDeduction(t *testing.T) {
	// An RRSP contribution shrinks taxable income dollar for dollar.
	tax := CalculateIncomeTax(100000, 10000, 0)
	checkAlmost(t, "Federal", tax.Federal, 55867*0.15+34133*0.205)
	checkAlmost(t, "Ontario", tax.Ontario, 51446*0.0505+38554*0.0915)
}

func TestCalculateIncomeTaxCapitalGains(t *testing.T) {
	with := CalculateIncomeTax(100000, 0, 5000)
	without := CalculateIncomeTax(100000, 0, 0)
	// The whole gain lands in the 20.5%/9.15% brackets.
	checkAlmost(t, "federal difference", with.Federal-without.Federal, 5000*0.205)
	checkAlmost(t, "ontario difference", with.Ontario-without.Ontario, 5000*0.0915)
}

func TestCalculateIncomeTaxZero(t *testing.T) {
	tax := CalculateIncomeTax(0, 0, 0)
	checkAlmost(t, "Total", tax.Total(), 0)
}

func TestMarginalTaxRates(t *testing.T) {
	tests := []struct {
		income           float64
		federal, ontario float64
	}{
		{50000, 0.15, 0.0505},
		{100000, 0.205, 0.0915},
		{160000, 0.26, 0.1216},
		{300000, 0.33, 0.1316},
	}
	for _, tt := range tests {
		federal, ontario := MarginalTaxRates(tt.income)
		checkAlmost(t, "federal", federal, tt.federal)
		checkAlmost(t, "ontario", ontario, tt.ontario)
	}
}
