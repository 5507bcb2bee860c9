package date

import "time"

// TradingDays returns the approximate number of trading days from 'from'
// (exclusive) to 'to' (inclusive), assuming 5 trading days per 7 calendar
// days. The approximation removes two weekend days per started week and
// ignores market holidays. The result is negative when 'to' is in the past.
func TradingDays(from, to Date) int {
	days := to.Sub(from)
	return days - floorDiv(days, 7)*2
}

// floorDiv divides rounding towards negative infinity, unlike Go's
// truncating integer division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// PreviousTradingDay returns the most recent weekday strictly before 'on'.
// Saturday and Sunday resolve to the preceding Friday, Monday to the
// previous Friday as well.
func PreviousTradingDay(on Date) Date {
	switch on.Weekday() {
	case time.Monday:
		return on.Add(-3)
	case time.Saturday:
		return on.Add(-1)
	case time.Sunday:
		return on.Add(-2)
	default:
		return on.Add(-1)
	}
}
