package render

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ombrelab/pws-dashboard/internal/domain"
	"github.com/ombrelab/pws-dashboard/internal/observability"
)

func testRenderer(t *testing.T) (*Renderer, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("Météo de la station", time.UTC, logger, metrics), metrics
}

// reading builds a corpus row directly, bypassing the loader.
func reading(datetime string, vals map[domain.Measure]float64, units map[domain.Measure]string) domain.Reading {
	wall, _ := time.ParseInLocation("2006-01-02 15:04", datetime, time.UTC)
	return domain.Reading{
		Timestamp: wall.Unix(),
		Datetime:  datetime,
		Date:      datetime[:10],
		Values:    vals,
		Units:     units,
	}
}

func fullCorpus() domain.Corpus {
	units := map[domain.Measure]string{
		domain.MeasureTemperature: "ºC",
		domain.MeasureWindGust:    "km/h",
		domain.MeasureRain1Hour:   "mm",
		domain.MeasureRain24Hours: "mm",
		domain.MeasurePressureAbs: "hPa",
	}
	return domain.Corpus{
		reading("2025-06-01 08:00", map[domain.Measure]float64{
			domain.MeasureTemperature:   12.5,
			domain.MeasureRainRate:      0,
			domain.MeasureRain1Hour:     0,
			domain.MeasureRain24Hours:   0,
			domain.MeasurePressureAbs:   1013.2,
			domain.MeasureWindSpeed:     10,
			domain.MeasureWindGust:      22,
			domain.MeasureWindDirection: 90,
			domain.MeasureSolar:         300,
		}, units),
		reading("2025-06-01 14:00", map[domain.Measure]float64{
			domain.MeasureTemperature:   24.1,
			domain.MeasureRainRate:      2,
			domain.MeasureRain1Hour:     0.5,
			domain.MeasureRain24Hours:   0.5,
			domain.MeasurePressureAbs:   1009.8,
			domain.MeasureWindSpeed:     14,
			domain.MeasureWindGust:      41,
			domain.MeasureWindDirection: 95,
			domain.MeasureSolar:         750,
		}, units),
	}
}

func TestPage(t *testing.T) {
	fixed := time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	t.Run("renders every panel", func(t *testing.T) {
		r, _ := testRenderer(t)

		page, err := r.Page(fullCorpus(), []string{"2025-06-01"})
		require.NoError(t, err)
		html := string(page)

		assert.Contains(t, html, "<title>Météo de la station</title>")
		assert.Contains(t, html, "Last update : 2025-06-02 07:30:00")

		// Daily table row.
		assert.Contains(t, html, "<th>Date</th>")
		assert.Contains(t, html, "<td>2025-06-01</td>")
		assert.Contains(t, html, ">12.5</td>") // Tmin
		assert.Contains(t, html, ">24.1</td>") // Tmax
		assert.Contains(t, html, "<td>E</td>") // dominant direction

		// Records panel.
		assert.Contains(t, html, "Température min")
		assert.Contains(t, html, "Pression max")
		assert.Contains(t, html, "Rafale de vent max")
	})

	t.Run("a failing stage degrades to inline error text", func(t *testing.T) {
		r, metrics := testRenderer(t)

		// No pressure anywhere: the records stage fails, the rest renders.
		corpus := domain.Corpus{
			reading("2025-06-01 08:00", map[domain.Measure]float64{
				domain.MeasureTemperature: 12.5,
				domain.MeasureWindGust:    22,
				domain.MeasureRain1Hour:   0,
				domain.MeasureRain24Hours: 0,
			}, nil),
		}

		page, err := r.Page(corpus, []string{"2025-06-01"})
		require.NoError(t, err)
		html := string(page)

		assert.Contains(t, html, "Error loading records data:")
		assert.NotContains(t, html, "Température min")
		assert.Contains(t, html, "<td>2025-06-01</td>")
		assert.Contains(t, html, "Last update :")

		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StageFailures.WithLabelValues("records")))
		assert.Equal(t, 0.0, testutil.ToFloat64(metrics.StageFailures.WithLabelValues("days")))
	})

	t.Run("missing values render as empty cells", func(t *testing.T) {
		r, _ := testRenderer(t)

		corpus := domain.Corpus{
			reading("2025-06-01 08:00", map[domain.Measure]float64{
				domain.MeasureRainRate: 0,
			}, nil),
		}

		page, err := r.Page(corpus, []string{"2025-06-01"})
		require.NoError(t, err)

		// Temperature cells carry the white fallback style and no text.
		assert.Contains(t, string(page), `style="background-color: #ffffffff; color: black;"></td>`)
	})

	t.Run("identical input produces identical output", func(t *testing.T) {
		r, _ := testRenderer(t)

		first, err := r.Page(fullCorpus(), []string{"2025-06-01"})
		require.NoError(t, err)
		second, err := r.Page(fullCorpus(), []string{"2025-06-01"})
		require.NoError(t, err)

		assert.Equal(t, string(first), string(second))
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "12.3", fmt1(12.34))
	assert.Equal(t, "", fmt1(math.NaN()))
	assert.Equal(t, "12", fmt0(12.4))
	assert.Equal(t, "", fmt0(math.NaN()))
}
