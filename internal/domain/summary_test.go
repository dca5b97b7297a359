package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mkReading builds one reading at the given UTC wall-clock time.
func mkReading(t *testing.T, datetime string, vals map[Measure]float64) Reading {
	t.Helper()
	wall, err := time.ParseInLocation(datetimeLayout, datetime, time.UTC)
	require.NoError(t, err)

	r := newReading(wall.Unix(), time.UTC)
	for m, v := range vals {
		r.Values[m] = v
	}
	return *r
}

func TestSummarizeDays(t *testing.T) {
	t.Run("temperature stats ignore missing samples", func(t *testing.T) {
		corpus := Corpus{
			mkReading(t, "2025-06-01 10:00", map[Measure]float64{MeasureTemperature: math.NaN()}),
			mkReading(t, "2025-06-01 10:05", map[Measure]float64{MeasureTemperature: 10}),
			mkReading(t, "2025-06-01 10:10", map[Measure]float64{MeasureTemperature: 20}),
		}

		got := SummarizeDays(corpus, []string{"2025-06-01"})
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].Completeness)
		assert.Equal(t, 10.0, got[0].TempMin)
		assert.Equal(t, 15.0, got[0].TempMean)
		assert.Equal(t, 20.0, got[0].TempMax)
	})

	t.Run("rain defaults to integrated rate", func(t *testing.T) {
		// Two samples at 6 mm/hr over 5 minutes each: 12 * 5/60 = 1 mm.
		corpus := Corpus{
			mkReading(t, "2025-06-01 08:00", map[Measure]float64{MeasureRainRate: 6}),
			mkReading(t, "2025-06-01 08:05", map[Measure]float64{MeasureRainRate: 6}),
		}

		got := SummarizeDays(corpus, []string{"2025-06-01"})
		require.Len(t, got, 1)
		assert.InDelta(t, 1.0, got[0].RainMM, 1e-9)
		assert.False(t, got[0].RainFrom24h)
	})

	t.Run("midnight 24h total overrides previous day", func(t *testing.T) {
		corpus := Corpus{
			// June 1st integrates to 8 mm by rate.
			mkReading(t, "2025-06-01 12:00", map[Measure]float64{MeasureRainRate: 96}),
			// June 2nd starts at midnight carrying the station's own total.
			mkReading(t, "2025-06-02 00:00", map[Measure]float64{MeasureRain24Hours: 12.3, MeasureRainRate: 0}),
			mkReading(t, "2025-06-02 00:05", map[Measure]float64{MeasureRainRate: 0}),
		}

		got := SummarizeDays(corpus, []string{"2025-06-01", "2025-06-02"})
		require.Len(t, got, 2)

		assert.Equal(t, 12.3, got[0].RainMM)
		assert.True(t, got[0].RainFrom24h)

		// June 2nd itself stays on the default estimator.
		assert.InDelta(t, 0.0, got[1].RainMM, 1e-9)
		assert.False(t, got[1].RainFrom24h)
	})

	t.Run("override wins regardless of request order", func(t *testing.T) {
		corpus := Corpus{
			mkReading(t, "2025-06-01 12:00", map[Measure]float64{MeasureRainRate: 96}),
			mkReading(t, "2025-06-02 00:00", map[Measure]float64{MeasureRain24Hours: 12.3}),
		}

		got := SummarizeDays(corpus, []string{"2025-06-02", "2025-06-01"})
		require.Len(t, got, 2)
		assert.Equal(t, "2025-06-01", got[1].Date)
		assert.Equal(t, 12.3, got[1].RainMM)
	})

	t.Run("no override when day starts after midnight", func(t *testing.T) {
		corpus := Corpus{
			mkReading(t, "2025-06-01 12:00", map[Measure]float64{MeasureRainRate: 96}),
			mkReading(t, "2025-06-02 00:05", map[Measure]float64{MeasureRain24Hours: 12.3}),
		}

		got := SummarizeDays(corpus, []string{"2025-06-01"})
		require.Len(t, got, 1)
		assert.InDelta(t, 8.0, got[0].RainMM, 1e-9)
		assert.False(t, got[0].RainFrom24h)
	})

	t.Run("no override when midnight 24h value is missing", func(t *testing.T) {
		corpus := Corpus{
			mkReading(t, "2025-06-01 12:00", map[Measure]float64{MeasureRainRate: 96}),
			mkReading(t, "2025-06-02 00:00", map[Measure]float64{MeasureRain24Hours: math.NaN()}),
		}

		got := SummarizeDays(corpus, []string{"2025-06-01"})
		require.Len(t, got, 1)
		assert.InDelta(t, 8.0, got[0].RainMM, 1e-9)
		assert.False(t, got[0].RainFrom24h)
	})

	t.Run("solar energy integrates and truncates", func(t *testing.T) {
		// A full day of 600 W/m²: 288 samples × 600 × 5/60 = 14400 Wh/m².
		corpus := Corpus{}
		for i := 0; i < 288; i++ {
			corpus = append(corpus, mkReading(t,
				time.Date(2025, 6, 1, 0, i*5, 0, 0, time.UTC).Format(datetimeLayout),
				map[Measure]float64{MeasureSolar: 600},
			))
		}

		got := SummarizeDays(corpus, []string{"2025-06-01"})
		require.Len(t, got, 1)
		assert.Equal(t, 14400.0, got[0].SolarWhM2)
		assert.Equal(t, 288, got[0].Completeness)

		// Fractional watt-hours truncate.
		small := Corpus{
			mkReading(t, "2025-06-02 12:00", map[Measure]float64{MeasureSolar: 500}),
		}
		got = SummarizeDays(small, []string{"2025-06-02"})
		require.Len(t, got, 1)
		assert.Equal(t, 41.0, got[0].SolarWhM2) // trunc(500 * 5/60)
	})

	t.Run("gust max truncates, missing gusts stay NaN", func(t *testing.T) {
		corpus := Corpus{
			mkReading(t, "2025-06-01 10:00", map[Measure]float64{MeasureWindGust: 37.8}),
			mkReading(t, "2025-06-01 10:05", map[Measure]float64{MeasureWindGust: 12.1}),
			mkReading(t, "2025-06-02 10:00", map[Measure]float64{MeasureTemperature: 15}),
		}

		got := SummarizeDays(corpus, []string{"2025-06-01", "2025-06-02"})
		require.Len(t, got, 2)
		assert.Equal(t, 37.0, got[0].WindGustMax)
		assert.True(t, math.IsNaN(got[1].WindGustMax))
	})

	t.Run("date with no rows yields empty summary", func(t *testing.T) {
		got := SummarizeDays(Corpus{}, []string{"2025-06-01"})
		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Completeness)
		assert.True(t, math.IsNaN(got[0].TempMin))
		assert.True(t, math.IsNaN(got[0].TempMean))
		assert.Equal(t, 0.0, got[0].RainMM) // empty sum reads as no rain
		assert.Equal(t, "", got[0].WindDirection)
	})
}

func TestNanReductions(t *testing.T) {
	rows := []Reading{
		{Values: map[Measure]float64{MeasureTemperature: 3}},
		{Values: map[Measure]float64{}},
		{Values: map[Measure]float64{MeasureTemperature: -1}},
	}

	assert.Equal(t, 2.0, nanSum(rows, MeasureTemperature))
	assert.Equal(t, 1.0, nanMean(rows, MeasureTemperature))
	assert.Equal(t, -1.0, nanMin(rows, MeasureTemperature))
	assert.Equal(t, 3.0, nanMax(rows, MeasureTemperature))

	assert.Equal(t, 0.0, nanSum(nil, MeasureTemperature))
	assert.True(t, math.IsNaN(nanMean(nil, MeasureTemperature)))
	assert.True(t, math.IsNaN(nanMin(nil, MeasureTemperature)))
	assert.True(t, math.IsNaN(nanMax(nil, MeasureTemperature)))
}
