package goldencheetah

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Datetime layouts observed across server builds. The first two CSV columns
// carry the date and time halves separately.
var datetimeLayouts = []string{
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02 15:04",
}

// derivedColumns are appended to every normalized index, after the
// passthrough columns.
var derivedColumns = []string{"has_hr", "has_spd", "has_pwr", "has_cad"}

// Activity is one row of an athlete's activity index. Records are immutable
// once returned: callers wanting to attach sample data build a new
// ActivityDetail instead of writing into the cached index.
type Activity struct {
	Datetime time.Time
	Filename string

	// Sensor presence flags derived from the averaged metric columns.
	HasHR  bool
	HasSpd bool
	HasPwr bool
	HasCad bool

	// Metrics holds every server-reported column under its normalized name,
	// values verbatim as served.
	Metrics map[string]string
}

// ActivityIndex is an athlete's activity list in server-supplied order,
// oldest first. Columns records the normalized column set in its final order:
// datetime, the passthrough columns, then the derived sensor flags.
type ActivityIndex struct {
	Columns    []string
	Activities []Activity
}

func (idx *ActivityIndex) Len() int { return len(idx.Activities) }

// Last returns the most recent activity, which the server serves last.
func (idx *ActivityIndex) Last() (Activity, error) {
	if len(idx.Activities) == 0 {
		return Activity{}, ErrEmptyActivityIndex
	}
	return idx.Activities[len(idx.Activities)-1], nil
}

// ActivityDetail pairs an index record with its fetched sample data. It is a
// separate value so the cached ActivityIndex is never mutated.
type ActivityDetail struct {
	Activity Activity
	Samples  *SampleSeries
}

// parseActivityIndex normalizes the activity-index CSV: the leading date and
// time columns merge into one datetime, the remaining column names are
// left-trimmed and lowercased with digit-led names prefixed by an underscore,
// and four boolean sensor-presence columns are derived from the averaged
// metrics. Row order is preserved as served.
func parseActivityIndex(body string) (*ActivityIndex, error) {
	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing activity index CSV: %w", err)
	}
	if len(records) == 0 {
		return &ActivityIndex{Columns: append([]string{"datetime"}, derivedColumns...)}, nil
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("activity index header has %d columns, want at least date and time", len(header))
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = normalizeColumn(h)
	}

	columns := []string{"datetime"}
	columns = append(columns, names[2:]...)
	columns = append(columns, derivedColumns...)

	index := &ActivityIndex{Columns: columns}
	for _, row := range records[1:] {
		dt, err := parseDatetime(row[0], row[1])
		if err != nil {
			return nil, err
		}
		metrics := make(map[string]string, len(row)-2)
		for i := 2; i < len(row) && i < len(names); i++ {
			metrics[names[i]] = row[i]
		}
		index.Activities = append(index.Activities, Activity{
			Datetime: dt,
			Filename: strings.TrimSpace(metrics["filename"]),
			HasHR:    truthy(metrics["average_heart_rate"]),
			HasSpd:   truthy(metrics["average_speed"]),
			HasPwr:   truthy(metrics["average_power"]),
			HasCad:   truthy(metrics["average_cadence"]),
			Metrics:  metrics,
		})
	}
	return index, nil
}

func parseDatetime(date, tm string) (time.Time, error) {
	joined := strings.TrimSpace(date) + " " + strings.TrimSpace(tm)
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, joined); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized activity datetime %q", joined)
}

// normalizeColumn left-trims whitespace, lowercases, and prefixes digit-led
// names with an underscore so every column name is a valid identifier.
func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimLeftFunc(name, unicode.IsSpace))
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// truthy implements the sensor-presence coercion: missing, empty, or numeric
// zero means absent; anything else means present.
func truthy(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v != 0
	}
	return true
}
