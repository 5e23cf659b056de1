package schedule

import (
	"testing"
	"time"
)

func weekdayCalendar(t *testing.T) *ServiceCalendar {
	t.Helper()
	return NewServiceCalendar(
		"WEEKDAY",
		WeekdayPattern(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
		NewDate(2024, time.January, 1),
		NewDate(2024, time.December, 31),
	)
}

func TestServiceCalendar_ActiveOn(t *testing.T) {
	cal := weekdayCalendar(t)
	cal.RemoveException(NewDate(2024, time.July, 4))

	tests := []struct {
		name string
		date Date
		want bool
	}{
		{
			name: "removed exception overrides thursday pattern",
			date: NewDate(2024, time.July, 4),
			want: false,
		},
		{
			name: "following thursday is active",
			date: NewDate(2024, time.July, 11),
			want: true,
		},
		{
			name: "saturday outside pattern",
			date: NewDate(2024, time.July, 6),
			want: false,
		},
		{
			name: "before valid range",
			date: NewDate(2023, time.December, 29),
			want: false,
		},
		{
			name: "after valid range",
			date: NewDate(2025, time.January, 6),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.ActiveOn(tt.date); got != tt.want {
				t.Errorf("ActiveOn(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestServiceCalendar_AddedExceptionOverridesPattern(t *testing.T) {
	cal := weekdayCalendar(t)
	saturday := NewDate(2024, time.July, 6)
	if cal.ActiveOn(saturday) {
		t.Fatal("saturday should be inactive before the exception")
	}
	cal.AddException(saturday)
	if !cal.ActiveOn(saturday) {
		t.Error("added exception should override the weekday pattern")
	}
}

func TestServiceCalendar_AddedExceptionOutsideRange(t *testing.T) {
	cal := weekdayCalendar(t)
	outside := NewDate(2025, time.March, 3) // a Monday, but past the range
	if cal.ActiveOn(outside) {
		t.Fatal("date past the range should be inactive")
	}
	cal.AddException(outside)
	if !cal.ActiveOn(outside) {
		t.Error("added exception should override the valid date range")
	}
}

func TestServiceCalendar_VerdictIsIdempotent(t *testing.T) {
	cal := weekdayCalendar(t)
	cal.RemoveException(NewDate(2024, time.July, 4))
	cal.AddException(NewDate(2024, time.July, 6))

	dates := []Date{
		NewDate(2024, time.July, 4),
		NewDate(2024, time.July, 5),
		NewDate(2024, time.July, 6),
		NewDate(2024, time.July, 7),
	}
	// record first verdicts, then re-query in different orders
	want := map[Date]bool{}
	for _, d := range dates {
		want[d] = cal.ActiveOn(d)
	}
	for i := 0; i < 50; i++ {
		for j := len(dates) - 1; j >= 0; j-- {
			d := dates[j]
			if got := cal.ActiveOn(d); got != want[d] {
				t.Fatalf("verdict for %s changed across calls: %v -> %v", d, want[d], got)
			}
		}
	}
}
