package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-07-01", want: New(2025, time.July, 1)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "not-a-date", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSub(t *testing.T) {
	a := New(2025, time.January, 1)
	b := New(2025, time.January, 31)
	if got := b.Sub(a); got != 30 {
		t.Errorf("Sub() = %d, want 30", got)
	}
	if got := a.Sub(b); got != -30 {
		t.Errorf("Sub() = %d, want -30", got)
	}
}

func TestTradingDays(t *testing.T) {
	from := New(2025, time.September, 1) // a Monday
	tests := []struct {
		to   Date
		want int
	}{
		{to: from, want: 0},
		{to: from.Add(7), want: 5},   // one full week
		{to: from.Add(14), want: 10}, // two full weeks
		{to: from.Add(3), want: 3},   // partial week, no weekend removed
		{to: from.Add(-7), want: -5}, // past target stays symmetric
	}
	for _, tt := range tests {
		if got := TradingDays(from, tt.to); got != tt.want {
			t.Errorf("TradingDays(%v, %v) = %d, want %d", from, tt.to, got, tt.want)
		}
	}
}

func TestPreviousTradingDay(t *testing.T) {
	tests := []struct {
		on   Date
		want Date
	}{
		{on: New(2025, time.September, 1), want: New(2025, time.August, 29)},  // Monday -> Friday
		{on: New(2025, time.September, 2), want: New(2025, time.September, 1)}, // Tuesday -> Monday
		{on: New(2025, time.September, 6), want: New(2025, time.September, 5)}, // Saturday -> Friday
		{on: New(2025, time.September, 7), want: New(2025, time.September, 5)}, // Sunday -> Friday
	}
	for _, tt := range tests {
		if got := PreviousTradingDay(tt.on); got != tt.want {
			t.Errorf("PreviousTradingDay(%v) = %v, want %v", tt.on, got, tt.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := New(2025, time.March, 9)
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(b) != `"2025-03-09"` {
		t.Errorf("MarshalJSON() = %s, want %q", b, `"2025-03-09"`)
	}
	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
