package renderer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Rhymond/go-money"
)

// cad formats a currency amount the way the brokerage displays CAD.
func cad(v float64) string {
	return money.New(int64(math.Round(v*100)), money.CAD).Display()
}

// cadChange formats a signed currency amount, signing everything but zero.
func cadChange(v float64) string {
	if v > 0 {
		return "+" + cad(v)
	}
	if v < 0 {
		return "-" + cad(-v)
	}
	return cad(0)
}

// percent formats a fraction as a percentage with two decimals.
func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", 100*v)
}

// percentChange formats a signed fraction, signing everything but zero.
func percentChange(v float64) string {
	if v > 0 {
		return "+" + percent(v)
	}
	return percent(v)
}

// quantity formats a share count with one decimal.
func quantity(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// quantityChange formats a signed share count. When round is set the count
// is rounded to whole shares, matching what a submitted order would carry.
func quantityChange(v float64, round bool) string {
	if round {
		v = math.Round(v)
	}
	var s string
	if round {
		s = strconv.FormatFloat(v, 'f', 0, 64)
	} else {
		s = strconv.FormatFloat(v, 'f', 2, 64)
	}
	if v > 0 {
		return "+" + s
	}
	return s
}
