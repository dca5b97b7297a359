package domain

import (
	"math"
	"strings"
	"time"
)

// rateToHourly converts a sum of 5-minute-cadence rate samples into an
// hourly-equivalent total (each sample covers 5/60 of an hour).
const rateToHourly = 5.0 / 60.0

// DailySummary is the derived per-day aggregate row. Float fields use NaN
// for "no data"; they are recomputed from the corpus on every run.
type DailySummary struct {
	Date         string
	Completeness int // row count, ≈288 for a full 5-minute day

	TempMin  float64
	TempMean float64
	TempMax  float64

	RainMM      float64
	RainFrom24h bool // true when the midnight 24-hour total was used

	SolarWhM2     float64 // truncated to an integer value
	WindMeanKMH   float64
	WindGustMax   float64 // truncated to an integer value
	WindDirection string  // dominant compass sector, "" when unknown
}

// SummarizeDays produces one summary per requested date, in request order.
//
// Rainfall uses two competing estimators. The default integrates the
// 5-minute rain_rate samples. But when a day starts exactly at local
// midnight, the station's own 24-hour cumulative value at that first row
// describes the day that just ended and is more accurate than our
// integration, so it overrides the previous date's estimate. This runs as
// two passes so the override wins regardless of the order dates are
// requested in: pass one collects overrides keyed by the target date, pass
// two computes summaries preferring an override when present.
func SummarizeDays(corpus Corpus, dates []string) []DailySummary {
	byDate := corpus.GroupByDate()
	overrides := rainOverrides(byDate)

	summaries := make([]DailySummary, 0, len(dates))
	for _, date := range dates {
		rows := byDate[date]

		s := DailySummary{
			Date:          date,
			Completeness:  len(rows),
			TempMin:       nanMin(rows, MeasureTemperature),
			TempMean:      nanMean(rows, MeasureTemperature),
			TempMax:       nanMax(rows, MeasureTemperature),
			SolarWhM2:     math.Trunc(nanSum(rows, MeasureSolar) * rateToHourly),
			WindMeanKMH:   nanMean(rows, MeasureWindSpeed),
			WindGustMax:   truncOrNaN(nanMax(rows, MeasureWindGust)),
			WindDirection: dominantWindDirection(rows),
		}

		if override, ok := overrides[date]; ok {
			s.RainMM = override
			s.RainFrom24h = true
		} else {
			s.RainMM = nanSum(rows, MeasureRainRate) * rateToHourly
		}

		summaries = append(summaries, s)
	}
	return summaries
}

// rainOverrides scans every day whose first chronological row lands exactly
// on local midnight and records its 24-hour cumulative rainfall against the
// previous calendar date. A missing 24_hours value records nothing, leaving
// the previous day on the default estimator.
func rainOverrides(byDate map[string][]Reading) map[string]float64 {
	overrides := make(map[string]float64)
	for date, rows := range byDate {
		if len(rows) == 0 {
			continue
		}
		if !strings.HasSuffix(rows[0].Datetime, "00:00") {
			continue
		}
		total := rows[0].Value(MeasureRain24Hours)
		if math.IsNaN(total) {
			continue
		}
		previous, err := previousDate(date)
		if err != nil {
			continue
		}
		overrides[previous] = total
	}
	return overrides
}

func previousDate(date string) (string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return day.AddDate(0, 0, -1).Format("2006-01-02"), nil
}

func truncOrNaN(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Trunc(v)
}
