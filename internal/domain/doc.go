// Package domain models personal weather station telemetry and the derived
// climatology tables built from it.
//
// # Data Source
//
// Telemetry comes from the station vendor's history API, fetched one
// calendar day at a time and stored verbatim by the acquisition layer. A
// day's payload nests sensor group → measure → series:
//
//	{"code":0, "msg":"success", "data":{
//	    "outdoor":  {"temperature": {"unit":"ºC", "list":{"1714089600":"12.4", ...}}, ...},
//	    "rainfall": {"rain_rate":   {"unit":"mm/hr", "list":{...}}, ...},
//	    ...
//	}}
//
// Series keys are epoch seconds at a 5-minute cadence (≈288 samples per full
// day). Values are decimal strings; the dash "-" is the vendor's sentinel
// for "no measurement available" and maps to NaN, never to zero. An API
// error saved to disk has a non-object "data" field and is rejected as a
// malformed day.
//
// # Unit Conversions
//
// rain_rate and solar are instantaneous rates (mm/hr, W/m²) sampled every
// five minutes; summing a day and multiplying by 5/60 yields the daily
// depth (mm) and energy (Wh/m²).
//
// # The Midnight Rain Override
//
// The station reports its own cumulative 24-hour rainfall. Read at exactly
// local midnight, that value describes the day that just ended and beats
// integrating rain_rate samples, so it overrides the previous date's
// estimate. See [SummarizeDays] for the two-pass implementation.
package domain
