package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoData is returned when an extremum is requested for a measure the
// corpus never reported a value for.
var ErrNoData = errors.New("no data for measure")

// RecordEntry is one named all-time extremum. Date holds the exact reading
// datetime for per-reading records and the calendar date for per-day ones.
type RecordEntry struct {
	Name  string
	Value float64
	Unit  string
	Date  string
}

// ComputeRecords derives the fixed catalog of nine all-time records from the
// corpus. Ties break toward the first occurrence in timestamp order.
func ComputeRecords(corpus Corpus) ([]RecordEntry, error) {
	tempMin, err := extremum(corpus, "Température min", MeasureTemperature, less)
	if err != nil {
		return nil, err
	}
	tempMax, err := extremum(corpus, "Température max", MeasureTemperature, greater)
	if err != nil {
		return nil, err
	}
	coldest, warmest, err := dailyTemperatureRecords(corpus)
	if err != nil {
		return nil, err
	}
	gustMax, err := extremum(corpus, "Rafale de vent max", MeasureWindGust, greater)
	if err != nil {
		return nil, err
	}
	rain1h, err := extremum(corpus, "Pluie max en 1h", MeasureRain1Hour, greater)
	if err != nil {
		return nil, err
	}
	rain24h, err := extremum(corpus, "Pluie max en 24h", MeasureRain24Hours, greater)
	if err != nil {
		return nil, err
	}
	pressureMin, err := extremum(corpus, "Pression min", MeasurePressureAbs, less)
	if err != nil {
		return nil, err
	}
	pressureMax, err := extremum(corpus, "Pression max", MeasurePressureAbs, greater)
	if err != nil {
		return nil, err
	}

	return []RecordEntry{
		tempMin, tempMax,
		coldest, warmest,
		gustMax,
		rain1h, rain24h,
		pressureMin, pressureMax,
	}, nil
}

func less(a, b float64) bool    { return a < b }
func greater(a, b float64) bool { return a > b }

// extremum finds the first reading, in ascending timestamp order, at which
// the measure attains its extreme value.
func extremum(corpus Corpus, name string, m Measure, better func(a, b float64) bool) (RecordEntry, error) {
	best := math.NaN()
	var at string
	for _, r := range corpus {
		v := r.Value(m)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) || better(v, best) {
			best = v
			at = r.Datetime
		}
	}
	if math.IsNaN(best) {
		return RecordEntry{}, fmt.Errorf("%w: %s", ErrNoData, m)
	}
	return RecordEntry{Name: name, Value: best, Unit: corpus.Unit(m), Date: at}, nil
}

// dailyTemperatureRecords groups readings by calendar date, averages each
// day's temperature, and returns the coldest and warmest days. Values are
// rounded to one decimal; the record carries the date, not a timestamp.
func dailyTemperatureRecords(corpus Corpus) (coldest, warmest RecordEntry, err error) {
	byDate := corpus.GroupByDate()
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	minMean, maxMean := math.NaN(), math.NaN()
	var minDate, maxDate string
	for _, date := range dates {
		mean := nanMean(byDate[date], MeasureTemperature)
		if math.IsNaN(mean) {
			continue
		}
		if math.IsNaN(minMean) || mean < minMean {
			minMean = mean
			minDate = date
		}
		if math.IsNaN(maxMean) || mean > maxMean {
			maxMean = mean
			maxDate = date
		}
	}
	if math.IsNaN(minMean) {
		return RecordEntry{}, RecordEntry{}, fmt.Errorf("%w: %s (daily mean)", ErrNoData, MeasureTemperature)
	}

	unit := corpus.Unit(MeasureTemperature)
	coldest = RecordEntry{Name: "Jour le plus froid", Value: round1(minMean), Unit: unit, Date: minDate}
	warmest = RecordEntry{Name: "Jour le plus chaud", Value: round1(maxMean), Unit: unit, Date: maxDate}
	return coldest, warmest, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
