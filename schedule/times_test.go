package schedule

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "morning", in: "08:15:00", want: 8*3600 + 15*60},
		{name: "midnight", in: "00:00:00", want: 0},
		{name: "past 24h", in: "25:30:00", want: 25*3600 + 30*60},
		{name: "whitespace tolerated", in: " 07:00:00 ", want: 7 * 3600},
		{name: "missing seconds", in: "08:15", wantErr: true},
		{name: "minute out of range", in: "08:61:00", wantErr: true},
		{name: "garbage", in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimeOfDay(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_Codec(t *testing.T) {
	d := NewDate(2024, time.July, 4)
	if d != 20240704 {
		t.Errorf("NewDate packed to %d, want 20240704", d)
	}
	if d.Weekday() != time.Thursday {
		t.Errorf("2024-07-04 weekday = %v, want Thursday", d.Weekday())
	}
	if got := d.AddDays(-1); got != 20240703 {
		t.Errorf("AddDays(-1) = %d, want 20240703", got)
	}
	if got := NewDate(2024, time.December, 31).AddDays(1); got != 20250101 {
		t.Errorf("year rollover = %d, want 20250101", got)
	}
	parsed, err := ParseDate("20240704")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if parsed != d {
		t.Errorf("ParseDate = %d, want %d", parsed, d)
	}
	if _, err := ParseDate("2024-07-04"); err == nil {
		t.Error("ParseDate should reject dashed form")
	}
}

func TestDate_At_PastMidnight(t *testing.T) {
	d := NewDate(2024, time.July, 3)
	tod := TimeOfDay(25 * 3600) // 25:00:00 on the 3rd
	at := d.At(tod, time.UTC)
	want := time.Date(2024, time.July, 4, 1, 0, 0, 0, time.UTC)
	if !at.Equal(want) {
		t.Errorf("At(25:00:00) = %v, want %v", at, want)
	}
}
