package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"
)

// missingSentinel is the vendor's marker for "no measurement available".
const missingSentinel = "-"

// datetimeLayout is the station-local display format, minute precision.
const datetimeLayout = "2006-01-02 15:04"

// ErrMalformedDay marks a stored day whose payload is not shaped as a
// sensor-group map (typically an API error body saved verbatim).
var ErrMalformedDay = errors.New("day payload is not a sensor map")

// RawDay is one unprocessed vendor response from the raw store.
type RawDay struct {
	Date string // ISO YYYY-MM-DD, from the file name
	Body []byte // verbatim response body
}

// measureSeries mirrors one measure block of the vendor payload:
// {"unit": "ºC", "list": {"1700000000": "12.3", ...}}.
type measureSeries struct {
	Unit string         `json:"unit"`
	List map[string]any `json:"list"`
}

// ParseDay flattens one day's nested payload into readings, outer-joining
// every measure series on its epoch-second timestamp. A timestamp present
// for one sensor group but absent for another simply leaves the other
// group's measures unset (NaN through Reading.Value).
func ParseDay(body []byte, loc *time.Location, logger *slog.Logger) ([]Reading, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode day payload: %w", err)
	}

	var groups map[string]map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Data, &groups); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDay, truncateForLog(envelope.Data))
	}

	rows := make(map[int64]*Reading)
	for group, measures := range groups {
		if !knownGroup(group) {
			logger.Warn("ignoring unknown sensor group", "group", group)
			continue
		}
		for name, raw := range measures {
			m, ok := knownMeasure(group, name)
			if !ok {
				logger.Warn("ignoring unknown measure", "group", group, "measure", name)
				continue
			}

			var series measureSeries
			if err := json.Unmarshal(raw, &series); err != nil {
				logger.Warn("ignoring undecodable measure", "group", group, "measure", name, "error", err)
				continue
			}
			if series.List == nil {
				continue
			}

			for key, value := range series.List {
				ts, err := strconv.ParseInt(key, 10, 64)
				if err != nil {
					logger.Warn("ignoring non-numeric timestamp", "measure", name, "key", key)
					continue
				}
				row, ok := rows[ts]
				if !ok {
					row = newReading(ts, loc)
					rows[ts] = row
				}
				row.Values[m] = coerceValue(value)
				row.Units[m] = series.Unit
			}
		}
	}

	readings := make([]Reading, 0, len(rows))
	for _, row := range rows {
		readings = append(readings, *row)
	}
	sort.Slice(readings, func(i, j int) bool { return readings[i].Timestamp < readings[j].Timestamp })
	return readings, nil
}

// BuildCorpus concatenates all days into one table sorted by timestamp.
// Malformed days are skipped with a warning; an empty or fully-malformed
// store yields an empty corpus, never an error.
func BuildCorpus(days []RawDay, loc *time.Location, logger *slog.Logger) Corpus {
	var corpus Corpus
	for _, day := range days {
		readings, err := ParseDay(day.Body, loc, logger)
		if err != nil {
			logger.Warn("skipping day", "date", day.Date, "error", err)
			continue
		}
		corpus = append(corpus, readings...)
	}
	// Days are disjoint in timestamp range under normal operation, but the
	// downstream aggregation assumes global ordering, so sort the whole table.
	sort.Slice(corpus, func(i, j int) bool { return corpus[i].Timestamp < corpus[j].Timestamp })
	return corpus
}

func newReading(ts int64, loc *time.Location) *Reading {
	local := time.Unix(ts, 0).In(loc)
	datetime := local.Format(datetimeLayout)
	return &Reading{
		Timestamp: ts,
		Datetime:  datetime,
		Date:      datetime[:10],
		Values:    make(map[Measure]float64),
		Units:     make(map[Measure]string),
	}
}

// coerceValue turns a raw JSON list value into a float64, mapping the
// vendor's dash sentinel and anything unparsable to NaN rather than failing.
func coerceValue(v any) float64 {
	switch value := v.(type) {
	case string:
		if value == missingSentinel {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case float64:
		return value
	default:
		return math.NaN()
	}
}

func truncateForLog(data []byte) string {
	const maxLen = 120
	s := string(data)
	if len(s) > maxLen {
		return s[:maxLen] + "…"
	}
	return s
}
