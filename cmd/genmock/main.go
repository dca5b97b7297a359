// Command genmock fills a raw day store with synthetic Ecowitt-shaped
// payloads so the dashboard can be developed and demoed without API keys.
// Output is deterministic for a given start date and day count.
//
// Usage:
//
//	go run ./cmd/genmock -data-dir data -start 2025-06-01 -days 14
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/ombrelab/pws-dashboard/internal/store"
)

const intervalSeconds = 300 // station cadence, one reading per 5 minutes

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dataDir := flag.String("data-dir", "data", "raw store directory to fill")
	start := flag.String("start", "", "first date to generate, YYYY-MM-DD")
	days := flag.Int("days", 7, "number of consecutive days to generate")
	tz := flag.String("tz", "Europe/Paris", "station timezone")
	flag.Parse()

	if *start == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -start")
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		return fmt.Errorf("invalid -tz: %w", err)
	}
	first, err := time.ParseInLocation("2006-01-02", *start, loc)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}

	st, err := store.New(*dataDir)
	if err != nil {
		return err
	}

	for i := 0; i < *days; i++ {
		day := first.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		body, err := dayPayload(day, i)
		if err != nil {
			return fmt.Errorf("generating %s: %w", date, err)
		}
		if err := st.WriteDay(date, body); err != nil {
			return err
		}
		log.Printf("wrote %s", date)
	}

	log.Printf("generated %d days in %s", *days, *dataDir)
	return nil
}

type series struct {
	Unit string            `json:"unit"`
	List map[string]string `json:"list"`
}

// dayPayload builds one vendor-shaped response covering midnight to midnight
// at the 5-minute cadence. dayIdx seeds the curves so consecutive days differ
// but reruns reproduce the same bytes.
func dayPayload(midnight time.Time, dayIdx int) ([]byte, error) {
	groups := map[string]map[string]series{
		"outdoor": {
			"temperature": {Unit: "ºC", List: map[string]string{}},
			"humidity":    {Unit: "%", List: map[string]string{}},
		},
		"rainfall": {
			"rain_rate": {Unit: "mm/hr", List: map[string]string{}},
			"1_hour":    {Unit: "mm", List: map[string]string{}},
			"24_hours":  {Unit: "mm", List: map[string]string{}},
		},
		"pressure": {
			"absolute": {Unit: "hPa", List: map[string]string{}},
			"relative": {Unit: "hPa", List: map[string]string{}},
		},
		"wind": {
			"wind_speed":                       {Unit: "km/h", List: map[string]string{}},
			"wind_gust":                        {Unit: "km/h", List: map[string]string{}},
			"10_minute_average_wind_direction": {Unit: "º", List: map[string]string{}},
		},
		"solar_and_uvi": {
			"solar": {Unit: "W/m²", List: map[string]string{}},
			"uvi":   {Unit: "", List: map[string]string{}},
		},
	}

	const perDay = 24 * 3600 / intervalSeconds
	rain24 := 0.0
	for n := 0; n < perDay; n++ {
		ts := midnight.Unix() + int64(n*intervalSeconds)
		key := strconv.FormatInt(ts, 10)
		hour := float64(n) * float64(intervalSeconds) / 3600

		// Diurnal temperature curve, coldest near 05:00, shifted per day.
		temp := 12 + 2*float64(dayIdx%5) + 7*math.Sin((hour-11)*math.Pi/12)
		set(groups, "outdoor", "temperature", key, round1(temp))
		set(groups, "outdoor", "humidity", key, round1(70-temp))

		// Rain on every third day, a morning shower.
		rate := 0.0
		if dayIdx%3 == 0 && hour >= 6 && hour < 9 {
			rate = 4 + 2*math.Sin(hour*math.Pi)
		}
		rain24 += rate * float64(intervalSeconds) / 3600
		set(groups, "rainfall", "rain_rate", key, round1(rate))
		set(groups, "rainfall", "1_hour", key, round1(math.Min(rain24, rate*1)))
		set(groups, "rainfall", "24_hours", key, round1(rain24))

		set(groups, "pressure", "absolute", key, round1(1013+3*math.Sin(hour*math.Pi/24+float64(dayIdx))))
		set(groups, "pressure", "relative", key, round1(1015+3*math.Sin(hour*math.Pi/24+float64(dayIdx))))

		wind := 8 + 6*math.Sin(hour*math.Pi/12+float64(dayIdx))
		if wind < 0 {
			wind = 0
		}
		set(groups, "wind", "wind_speed", key, round1(wind))
		set(groups, "wind", "wind_gust", key, round1(wind*1.8))
		set(groups, "wind", "10_minute_average_wind_direction", key, strconv.Itoa((dayIdx*45+n)%360))

		// Solar follows daylight; the station reports "-" at night.
		if hour >= 7 && hour < 21 {
			set(groups, "solar_and_uvi", "solar", key, round1(600*math.Sin((hour-7)*math.Pi/14)))
			set(groups, "solar_and_uvi", "uvi", key, round1(5*math.Sin((hour-7)*math.Pi/14)))
		} else {
			set(groups, "solar_and_uvi", "solar", key, "-")
			set(groups, "solar_and_uvi", "uvi", key, "-")
		}
	}

	envelope := map[string]any{
		"code": 0,
		"msg":  "success",
		"time": strconv.FormatInt(midnight.Unix(), 10),
		"data": groups,
	}
	return json.MarshalIndent(envelope, "", "  ")
}

func set(groups map[string]map[string]series, group, measure, key, value string) {
	groups[group][measure].List[key] = value
}

func round1(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}
