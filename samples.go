package goldencheetah

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// channelNames maps the server's short channel codes to semantic column names.
var channelNames = map[string]string{
	"SECS":  "time",
	"HR":    "heartrate",
	"KPH":   "speed",
	"WATTS": "power",
	"CAD":   "cadence",
	"KM":    "distance",
	"ALT":   "altitude",
	"SLOPE": "slope",
	"LAT":   "latitude",
	"LON":   "longitude",
}

// columnOrder is the canonical column ordering for sample series. The raw
// seconds channel is consumed into the index and never appears as a column.
var columnOrder = []string{
	"heartrate", "speed", "power", "cadence", "distance",
	"altitude", "slope", "latitude", "longitude",
}

// SampleSeries is one activity's sensor data, indexed by elapsed time since
// activity start. Columns is the canonical ordering restricted to the
// channels the server actually reported; absent channels are omitted, never
// synthesized. Values is row-major and aligned with Columns; a channel the
// server skipped for an individual sample is NaN.
type SampleSeries struct {
	Offsets []time.Duration
	Columns []string
	Values  [][]float64
}

func (s *SampleSeries) Len() int { return len(s.Offsets) }

// Column returns the values of one named channel across all samples.
func (s *SampleSeries) Column(name string) ([]float64, bool) {
	for i, col := range s.Columns {
		if col != name {
			continue
		}
		out := make([]float64, len(s.Values))
		for j, row := range s.Values {
			out[j] = row[i]
		}
		return out, true
	}
	return nil, false
}

type rideFile struct {
	Ride struct {
		Samples []map[string]float64 `json:"SAMPLES"`
	} `json:"RIDE"`
}

// parseSampleSeries normalizes an activity's JSON body: rows live at
// RIDE.SAMPLES keyed by channel codes, SECS becomes the duration index, and
// the remaining channels are translated and projected onto columnOrder.
// Untranslated channels are dropped by the projection.
func parseSampleSeries(body string) (*SampleSeries, error) {
	var ride rideFile
	if err := json.Unmarshal([]byte(body), &ride); err != nil {
		return nil, fmt.Errorf("parsing activity samples JSON: %w", err)
	}
	samples := ride.Ride.Samples

	present := make(map[string]bool)
	for _, sample := range samples {
		for code := range sample {
			if name, ok := channelNames[code]; ok {
				present[name] = true
			}
		}
	}

	series := &SampleSeries{}
	colIndex := make(map[string]int)
	for _, name := range columnOrder {
		if present[name] {
			colIndex[name] = len(series.Columns)
			series.Columns = append(series.Columns, name)
		}
	}

	for i, sample := range samples {
		secs, ok := sample["SECS"]
		if !ok {
			return nil, fmt.Errorf("sample %d has no SECS channel", i)
		}
		row := make([]float64, len(series.Columns))
		for j := range row {
			row[j] = math.NaN()
		}
		for code, value := range sample {
			if j, ok := colIndex[channelNames[code]]; ok {
				row[j] = value
			}
		}
		series.Offsets = append(series.Offsets, time.Duration(secs*float64(time.Second)))
		series.Values = append(series.Values, row)
	}
	return series, nil
}
