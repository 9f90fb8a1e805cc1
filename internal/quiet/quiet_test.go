package quiet

import (
	"testing"
	"time"
)

func utcHour(h int) time.Time {
	return time.Date(2026, 8, 31, h, 30, 0, 0, time.UTC)
}

func TestIsQuietVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		start   int
		end     int
		offset  int
		utcHour int
		want    bool
	}{
		{name: "wrapping inside late evening", start: 22, end: 7, offset: 2, utcHour: 21, want: true},
		{name: "wrapping inside early morning", start: 22, end: 7, offset: 2, utcHour: 2, want: true},
		{name: "wrapping outside midday", start: 22, end: 7, offset: 2, utcHour: 10, want: false},
		{name: "wrapping boundary at end", start: 22, end: 7, offset: 0, utcHour: 7, want: false},
		{name: "wrapping boundary at start", start: 22, end: 7, offset: 0, utcHour: 22, want: true},
		{name: "non-wrapping inside", start: 9, end: 17, offset: 0, utcHour: 12, want: true},
		{name: "non-wrapping before", start: 9, end: 17, offset: 0, utcHour: 8, want: false},
		{name: "non-wrapping boundary at end", start: 9, end: 17, offset: 0, utcHour: 17, want: false},
		{name: "negative offset wraps day", start: 22, end: 7, offset: -3, utcHour: 1, want: true},
		{name: "offset pushes past midnight", start: 22, end: 7, offset: 3, utcHour: 23, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{StartHour: tt.start, EndHour: tt.end, TimezoneOffsetHours: tt.offset}
			if got := IsQuiet(utcHour(tt.utcHour), p); got != tt.want {
				t.Fatalf("IsQuiet(utc=%d, start=%d, end=%d, offset=%d) = %v, want %v",
					tt.utcHour, tt.start, tt.end, tt.offset, got, tt.want)
			}
		})
	}
}

func TestLocalTime(t *testing.T) {
	t.Parallel()
	p := Policy{StartHour: 22, EndHour: 7, TimezoneOffsetHours: 2}
	got := LocalTime(time.Date(2026, 8, 31, 21, 15, 0, 0, time.UTC), p)
	if got.Hour() != 23 || got.Minute() != 15 {
		t.Fatalf("LocalTime = %v, want 23:15 local", got)
	}
}
