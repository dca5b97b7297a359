package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemperatureColor(t *testing.T) {
	tests := []struct {
		name    string
		celsius float64
		want    string
	}{
		{"heat wave", 41, "#8c0b00ff"},
		{"hot", 32, "#ff6600ff"},
		{"mild lower bound", 15, "#ffff66ff"},
		{"zero lands in 0-5", 0, "#00ffccff"},
		{"just below zero", -0.1, "#00ccffff"},
		{"deep cold", -30, "#480080ff"},
		{"above scale", 61, white},
		{"below scale", -61, white},
		{"missing", math.NaN(), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TemperatureColor(tt.celsius))
		})
	}
}

func TestRainColor(t *testing.T) {
	t.Run("dry day on white", func(t *testing.T) {
		bg, fg := RainColor(0)
		assert.Equal(t, white, bg)
		assert.Equal(t, black, fg)
	})

	t.Run("heavy rain flips text to white", func(t *testing.T) {
		bg, fg := RainColor(25)
		assert.Equal(t, "#001e80ff", bg)
		assert.Equal(t, "white", fg)
	})

	t.Run("missing value on white", func(t *testing.T) {
		bg, fg := RainColor(math.NaN())
		assert.Equal(t, white, bg)
		assert.Equal(t, black, fg)
	})
}

func TestSolarColor(t *testing.T) {
	t.Run("dim day keeps black text", func(t *testing.T) {
		bg, fg := SolarColor(50)
		assert.Equal(t, "#d3d3d3ff", bg)
		assert.Equal(t, black, fg)
	})

	t.Run("dark background flips text to white", func(t *testing.T) {
		bg, fg := SolarColor(6000)
		assert.Equal(t, "#552200ff", bg)
		assert.Equal(t, "white", fg)
	})

	t.Run("missing value on white", func(t *testing.T) {
		bg, fg := SolarColor(math.NaN())
		assert.Equal(t, white, bg)
		assert.Equal(t, black, fg)
	})
}

func TestTextColorFor(t *testing.T) {
	assert.Equal(t, black, textColorFor("#ffffffff"))
	assert.Equal(t, "white", textColorFor("#000000ff"))
	assert.Equal(t, black, textColorFor("#ffcc00ff"))
	assert.Equal(t, black, textColorFor("#zzzzzz"))
}
