package domain

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"09/03/2025", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), false},
		{"9/3/2025", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), false},
		{"31/01/2025", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), false},
		{"2025-03-09", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), false},
		{"2025-03-09T12:30:00Z", time.Date(2025, 3, 9, 12, 30, 0, 0, time.UTC), false},
		{"31/02/2025", time.Time{}, true},
		{"13/13/2025", time.Time{}, true},
		{"soon", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Slash dates are day-first by pattern, never locale: 05/04 is 5 April.
func TestParseDate_DayFirst(t *testing.T) {
	got, err := ParseDate("05/04/2025")
	if err != nil {
		t.Fatal(err)
	}
	if got.Day() != 5 || got.Month() != time.April {
		t.Errorf("05/04/2025 parsed as %v, want 5 April 2025", got)
	}
}
