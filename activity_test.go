package goldencheetah

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseActivityIndex(t *testing.T) {
	t.Run("merges date and time and normalizes columns", func(tc *testing.T) {
		body := " Date, Time,filename,1RM\n" +
			"2015/04/29,09:03:16,2015_04_29_09_03_16.json,42\n"

		index, err := parseActivityIndex(body)
		if err != nil {
			tc.Fatalf("unexpected error: %s", err)
		}

		want := []string{"datetime", "filename", "_1rm", "has_hr", "has_spd", "has_pwr", "has_cad"}
		if !reflect.DeepEqual(index.Columns, want) {
			tc.Errorf("expected columns %v, got %v", want, index.Columns)
		}

		a := index.Activities[0]
		if got, want := a.Datetime, time.Date(2015, 4, 29, 9, 3, 16, 0, time.UTC); !got.Equal(want) {
			tc.Errorf("expected datetime %v, got %v", want, got)
		}
		if a.Filename != "2015_04_29_09_03_16.json" {
			tc.Errorf("unexpected filename %q", a.Filename)
		}
		if a.Metrics["_1rm"] != "42" {
			tc.Errorf("expected _1rm 42, got %q", a.Metrics["_1rm"])
		}
		// The raw date and time columns are consumed by the merge.
		if _, ok := a.Metrics["date"]; ok {
			tc.Error("expected no raw date column")
		}
		if _, ok := a.Metrics["time"]; ok {
			tc.Error("expected no raw time column")
		}
	})

	t.Run("derives sensor presence flags", func(tc *testing.T) {
		body := "date, time,filename,average_heart_rate,average_speed,average_power,average_cadence\n" +
			"2015/04/29,09:03:16,a.json,142,28.5,0,\n" +
			"2015/04/30,10:00:00,b.json,0,0,185,87\n"

		index, err := parseActivityIndex(body)
		if err != nil {
			tc.Fatalf("unexpected error: %s", err)
		}

		first, second := index.Activities[0], index.Activities[1]
		if !first.HasHR || !first.HasSpd || first.HasPwr || first.HasCad {
			tc.Errorf("unexpected flags for first record: %+v", first)
		}
		if second.HasHR || second.HasSpd || !second.HasPwr || !second.HasCad {
			tc.Errorf("unexpected flags for second record: %+v", second)
		}
	})

	t.Run("preserves server row order", func(tc *testing.T) {
		body := "date, time,filename\n" +
			"2015/04/29,09:00:00,old.json\n" +
			"2015/04/30,09:00:00,recent.json\n"

		index, err := parseActivityIndex(body)
		if err != nil {
			tc.Fatalf("unexpected error: %s", err)
		}
		if index.Len() != 2 {
			tc.Fatalf("expected 2 activities, got %d", index.Len())
		}

		last, err := index.Last()
		if err != nil {
			tc.Fatalf("unexpected error: %s", err)
		}
		if last.Filename != "recent.json" {
			tc.Errorf("expected last activity recent.json, got %q", last.Filename)
		}
	})

	t.Run("empty index", func(tc *testing.T) {
		index, err := parseActivityIndex("date, time,filename\n")
		if err != nil {
			tc.Fatalf("unexpected error: %s", err)
		}
		if index.Len() != 0 {
			tc.Errorf("expected empty index, got %d activities", index.Len())
		}
		if _, err := index.Last(); !errors.Is(err, ErrEmptyActivityIndex) {
			tc.Errorf("expected ErrEmptyActivityIndex, got %v", err)
		}
	})

	t.Run("dashed datetime layout", func(tc *testing.T) {
		index, err := parseActivityIndex("date, time,filename\n2015-04-29,09:03:16,a.json\n")
		if err != nil {
			tc.Fatalf("unexpected error: %s", err)
		}
		if got, want := index.Activities[0].Datetime, time.Date(2015, 4, 29, 9, 3, 16, 0, time.UTC); !got.Equal(want) {
			tc.Errorf("expected datetime %v, got %v", want, got)
		}
	})

	t.Run("unparseable datetime", func(tc *testing.T) {
		if _, err := parseActivityIndex("date, time,filename\nyesterday,morning,a.json\n"); err == nil {
			tc.Error("expected error, got nil")
		}
	})

	t.Run("invalid CSV", func(tc *testing.T) {
		if _, err := parseActivityIndex("date, time\n\"unterminated,09:00:00\n"); err == nil {
			tc.Error("expected error, got nil")
		}
	})
}

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{" Time", "time"},
		{"Date", "date"},
		{"1RM", "_1rm"},
		{" 30_min_peak_power", "_30_min_peak_power"},
		{"average_heart_rate", "average_heart_rate"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeColumn(tt.in); got != tt.out {
			t.Errorf("normalizeColumn(%q) = %q, expected %q", tt.in, got, tt.out)
		}
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"  ", false},
		{"0", false},
		{"0.0", false},
		{"185", true},
		{"28.5", true},
		{"-1", true},
		{"n/a", true},
	}
	for _, tt := range tests {
		if got := truthy(tt.in); got != tt.want {
			t.Errorf("truthy(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}
