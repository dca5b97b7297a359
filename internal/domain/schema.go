package domain

// sensorSchema enumerates the sensor groups and measures the loader accepts,
// with the unit each one is expected to report under the metric unit ids we
// request. Groups or measures outside this table are logged and ignored
// instead of being blindly traversed.
var sensorSchema = map[string]map[Measure]string{
	"outdoor": {
		MeasureTemperature: "ºC",
		MeasureFeelsLike:   "ºC",
		MeasureAppTemp:     "ºC",
		MeasureDewPoint:    "ºC",
		MeasureHumidity:    "%",
	},
	"rainfall": {
		MeasureRainRate:    "mm/hr",
		MeasureRain1Hour:   "mm",
		MeasureRain24Hours: "mm",
		MeasureRainDaily:   "mm",
		MeasureRainEvent:   "mm",
		MeasureRainWeekly:  "mm",
		MeasureRainMonthly: "mm",
		MeasureRainYearly:  "mm",
	},
	"pressure": {
		MeasurePressureAbs: "hPa",
		MeasurePressureRel: "hPa",
	},
	"wind": {
		MeasureWindSpeed:     "km/h",
		MeasureWindGust:      "km/h",
		MeasureWindDirection: "º",
	},
	"solar_and_uvi": {
		MeasureSolar: "W/m²",
		MeasureUVI:   "",
	},
}

// knownGroup reports whether the loader accepts the sensor group at all.
func knownGroup(group string) bool {
	_, ok := sensorSchema[group]
	return ok
}

// knownMeasure resolves a (group, measure) pair against the schema.
func knownMeasure(group, measure string) (Measure, bool) {
	measures, ok := sensorSchema[group]
	if !ok {
		return "", false
	}
	m := Measure(measure)
	if _, ok := measures[m]; !ok {
		return "", false
	}
	return m, true
}
