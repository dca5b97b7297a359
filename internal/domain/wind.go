package domain

import "math"

// compassSectors divides the wind rose into eight 45º sectors. North wraps
// around 0º and is handled separately in compassLabel.
var compassSectors = []struct {
	from, to float64
	label    string
}{
	{22.5, 67.5, "NE"},
	{67.5, 112.5, "E"},
	{112.5, 157.5, "SE"},
	{157.5, 202.5, "S"},
	{202.5, 247.5, "SW"},
	{247.5, 292.5, "W"},
	{292.5, 337.5, "NW"},
}

var compassOrder = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func compassLabel(degrees float64) string {
	if degrees >= 337.5 || degrees < 22.5 {
		return "N"
	}
	for _, sector := range compassSectors {
		if degrees >= sector.from && degrees < sector.to {
			return sector.label
		}
	}
	return ""
}

// dominantWindDirection buckets each row's 10-minute-average direction into
// a compass sector, weighted by wind speed so calm readings barely count,
// and returns the heaviest sector. Ties break toward north, clockwise.
func dominantWindDirection(rows []Reading) string {
	weights := make(map[string]float64, len(compassOrder))
	var any bool
	for _, r := range rows {
		dir := r.Value(MeasureWindDirection)
		if math.IsNaN(dir) || dir < 0 || dir >= 360 {
			continue
		}
		speed := r.Value(MeasureWindSpeed)
		if math.IsNaN(speed) || speed < 0 {
			speed = 0
		}
		weights[compassLabel(dir)] += speed
		any = true
	}
	if !any {
		return ""
	}

	best := ""
	bestWeight := math.Inf(-1)
	for _, label := range compassOrder {
		if w := weights[label]; w > bestWeight {
			best = label
			bestWeight = w
		}
	}
	return best
}
