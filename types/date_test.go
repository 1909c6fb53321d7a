package types

import (
	"testing"
	"time"
)

func TestParseDateRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"Valid", "2026-09-01", false},
		{"LeapDay", "2024-02-29", false},
		{"BadLeapDay", "2023-02-29", true},
		{"WrongLayout", "01/09/2026", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", d)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if d.String() != tt.in {
				t.Errorf("round trip: got %s, want %s", d.String(), tt.in)
			}
		})
	}
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		name string
		from Date
		n    int
		want Date
	}{
		{"Forward", NewDate(2026, time.September, 1), 1, NewDate(2026, time.September, 2)},
		{"MonthRollover", NewDate(2026, time.August, 31), 1, NewDate(2026, time.September, 1)},
		{"YearRollover", NewDate(2025, time.December, 31), 1, NewDate(2026, time.January, 1)},
		{"Backward", NewDate(2026, time.September, 1), -7, NewDate(2026, time.August, 25)},
		{"NoOp", NewDate(2026, time.September, 1), 0, NewDate(2026, time.September, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.AddDays(tt.n); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2026, time.August, 25)
	b := NewDate(2026, time.September, 1)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before misordered")
	}
	if !b.After(a) {
		t.Error("After misordered")
	}
	if got := a.DaysUntil(b); got != 7 {
		t.Errorf("DaysUntil: got %d, want 7", got)
	}
	if got := b.DaysUntil(a); got != -7 {
		t.Errorf("DaysUntil reversed: got %d, want -7", got)
	}
}

func TestDateTextMarshaling(t *testing.T) {
	d := NewDate(2026, time.September, 1)
	text, err := d.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back Date
	if err := back.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip: got %v, want %v", back, d)
	}

	var zero Date
	if err := zero.UnmarshalText(nil); err != nil {
		t.Fatal(err)
	}
	if !zero.IsZero() {
		t.Error("empty text should unmarshal to zero Date")
	}
}
