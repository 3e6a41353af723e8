package engine

import (
	"testing"
	"time"
)

func TestCurrentDayRespectsResetTime(t *testing.T) {
	reset := DefaultResetTime
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2024, 3, 10, 2, 59, 0, 0, time.UTC), "2024-03-09"},
		{time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC), "2024-03-10"},
		{time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC), "2024-03-10"},
		{time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC), "2023-12-31"},
	}
	for _, tc := range cases {
		if got := CurrentDay(tc.at, time.UTC, reset); got != tc.want {
			t.Fatalf("CurrentDay(%s)=%s, want %s", tc.at, got, tc.want)
		}
	}
}

func TestCurrentDayUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 23:00 UTC is 04:00 the next day at UTC+5, past the 03:00 reset.
	at := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	if got := CurrentDay(at, loc, DefaultResetTime); got != "2024-03-11" {
		t.Fatalf("CurrentDay=%s, want 2024-03-11", got)
	}
	if got := CurrentDay(at, nil, DefaultResetTime); got != "2024-03-10" {
		t.Fatalf("CurrentDay(nil loc)=%s, want 2024-03-10", got)
	}
}

func TestNextReset(t *testing.T) {
	before := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	if got := NextReset(before, time.UTC, DefaultResetTime); !got.Equal(time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)) {
		t.Fatalf("NextReset(before)=%s", got)
	}
	after := time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)
	if got := NextReset(after, time.UTC, DefaultResetTime); !got.Equal(time.Date(2024, 3, 11, 3, 0, 0, 0, time.UTC)) {
		t.Fatalf("NextReset(after)=%s", got)
	}
}

func TestLoadLocationFallsBack(t *testing.T) {
	if LoadLocation("") != time.UTC {
		t.Fatalf("empty name should be UTC")
	}
	if LoadLocation("Not/AZone") != time.UTC {
		t.Fatalf("unknown zone should be UTC")
	}
}
