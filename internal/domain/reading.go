package domain

import "math"

// Measure identifies one telemetry channel reported by the station.
// The string value matches the measure key used in the vendor payload.
type Measure string

const (
	MeasureTemperature   Measure = "temperature"
	MeasureFeelsLike     Measure = "feels_like"
	MeasureAppTemp       Measure = "app_temp"
	MeasureDewPoint      Measure = "dew_point"
	MeasureHumidity      Measure = "humidity"
	MeasureRainRate      Measure = "rain_rate"
	MeasureRain1Hour     Measure = "1_hour"
	MeasureRain24Hours   Measure = "24_hours"
	MeasureRainDaily     Measure = "daily"
	MeasureRainEvent     Measure = "event"
	MeasureRainWeekly    Measure = "weekly"
	MeasureRainMonthly   Measure = "monthly"
	MeasureRainYearly    Measure = "yearly"
	MeasurePressureAbs   Measure = "absolute"
	MeasurePressureRel   Measure = "relative"
	MeasureWindSpeed     Measure = "wind_speed"
	MeasureWindGust      Measure = "wind_gust"
	MeasureWindDirection Measure = "10_minute_average_wind_direction"
	MeasureSolar         Measure = "solar"
	MeasureUVI           Measure = "uvi"
)

// Reading is one 5-minute observation after unification across sensor groups.
// Measures absent at this timestamp read as NaN through Value.
type Reading struct {
	Timestamp int64             // epoch seconds, the natural key
	Datetime  string            // station-local, minute precision, "2006-01-02 15:04"
	Date      string            // leading 10 characters of Datetime
	Values    map[Measure]float64
	Units     map[Measure]string
}

// Value returns the measurement for m, or NaN when the station did not
// report it at this timestamp.
func (r Reading) Value(m Measure) float64 {
	v, ok := r.Values[m]
	if !ok {
		return math.NaN()
	}
	return v
}

// Corpus is the unified reading table covering every valid day in the raw
// store, ordered by timestamp ascending.
type Corpus []Reading

// Unit returns the unit string of the first reading that carries one for m.
// Days whose payload lacked the measure contribute nothing, so a corpus with
// the measure present anywhere still resolves a unit.
func (c Corpus) Unit(m Measure) string {
	for _, r := range c {
		if u, ok := r.Units[m]; ok && u != "" {
			return u
		}
	}
	return ""
}

// GroupByDate splits the corpus into per-day slices. Within each slice the
// corpus ordering (timestamp ascending) is preserved.
func (c Corpus) GroupByDate() map[string][]Reading {
	byDate := make(map[string][]Reading)
	for _, r := range c {
		byDate[r.Date] = append(byDate[r.Date], r)
	}
	return byDate
}
