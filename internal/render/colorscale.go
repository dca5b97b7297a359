package render

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
)

// Color lookup tables for the daily table cells. Bands are half-open
// [lo, hi); anything out of range or NaN renders on white.

const (
	white = "#ffffffff"
	black = "black"
)

type colorBand struct {
	lo, hi float64
	bg     string
	fg     string
}

var temperatureBands = []colorBand{
	{40, 60, "#8c0b00ff", black},
	{35, 40, "#ff3300ff", black},
	{30, 35, "#ff6600ff", black},
	{25, 30, "#ff9933ff", black},
	{20, 25, "#ffcc00ff", black},
	{15, 20, "#ffff66ff", black},
	{10, 15, "#ccff00ff", black},
	{5, 10, "#00ff99ff", black},
	{0, 5, "#00ffccff", black},
	{-5, 0, "#00ccffff", black},
	{-10, -5, "#0099ccff", black},
	{-15, -10, "#0036a3ff", black},
	{-20, -15, "#0000ffff", black},
	{-25, -20, "#000080ff", black},
	{-60, -25, "#480080ff", black},
}

var rainBands = []colorBand{
	{0, 0.1, white, black},
	{0.1, 1, "#00ccffff", black},
	{1, 5, "#359cd8ff", black},
	{5, 10, "#2a70caff", black},
	{10, 20, "#213fc5ff", "white"},
	{20, 50, "#001e80ff", "white"},
	{50, 100, "#260080ff", "white"},
	{100, 10000, "#8208a7ff", "white"},
}

// solarThresholds maps an upper Wh/m² bound to a background; the text color
// is derived from the background's luminance.
var solarThresholds = []struct {
	below float64
	bg    string
}{
	{100, "#d3d3d3ff"},
	{200, "#e7e7e7ff"},
	{400, "#ffe6d5ff"},
	{800, "#ffccaaff"},
	{1600, "#ffb380ff"},
	{2400, "#ff9955ff"},
	{3200, "#ff7f2aff"},
	{4000, "#ff6600ff"},
	{4800, "#d45500ff"},
	{5600, "#aa4400ff"},
	{6400, "#552200ff"},
	{10000, "#2b1100ff"},
}

// TemperatureColor maps degrees Celsius to a cell background.
func TemperatureColor(celsius float64) string {
	if math.IsNaN(celsius) || celsius > 60 || celsius < -60 {
		return white
	}
	for _, b := range temperatureBands {
		if celsius >= b.lo && celsius < b.hi {
			return b.bg
		}
	}
	return white
}

// RainColor maps millimeters of rain to cell background and text colors.
func RainColor(mm float64) (bg, fg string) {
	if math.IsNaN(mm) || mm < 0 {
		return white, black
	}
	for _, b := range rainBands {
		if mm >= b.lo && mm < b.hi {
			return b.bg, b.fg
		}
	}
	return white, black
}

// SolarColor maps Wh/m² to cell background and text colors, picking black or
// white text from the background's luminance.
func SolarColor(wh float64) (bg, fg string) {
	if math.IsNaN(wh) || wh < 0 {
		return white, black
	}
	for _, t := range solarThresholds {
		if wh < t.below {
			return t.bg, textColorFor(t.bg)
		}
	}
	return white, black
}

// textColorFor computes perceived luminance of a #rrggbb(aa) color and
// returns black for light backgrounds, white for dark ones.
func textColorFor(hexColor string) string {
	r, errR := strconv.ParseInt(hexColor[1:3], 16, 0)
	g, errG := strconv.ParseInt(hexColor[3:5], 16, 0)
	b, errB := strconv.ParseInt(hexColor[5:7], 16, 0)
	if errR != nil || errG != nil || errB != nil {
		return black
	}
	brightness := (float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114) / 255
	if brightness > 0.5 {
		return black
	}
	return "white"
}

func cellStyle(bg, fg string) template.CSS {
	return template.CSS(fmt.Sprintf("background-color: %s; color: %s;", bg, fg)) //nolint:gosec // values come from the tables above
}
