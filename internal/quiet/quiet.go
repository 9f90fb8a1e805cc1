// Package quiet decides whether doorbell notifications are currently
// suppressed by the configured quiet-hours window.
package quiet

import "time"

// Policy is a recurring daily suppression window in local time,
// derived from UTC plus a fixed hour offset.
//
// Hour values must be in [0,23] and the offset in [-12,14]; both are
// enforced at config load, not here.
type Policy struct {
	StartHour           int
	EndHour             int
	TimezoneOffsetHours int
}

// IsQuiet reports whether now falls inside the policy window.
//
// When EndHour > StartHour the window does not cross midnight
// (e.g. 9→17). Otherwise it wraps (e.g. 22→7).
func IsQuiet(now time.Time, p Policy) bool {
	h := (now.UTC().Hour() + p.TimezoneOffsetHours + 24) % 24
	if p.EndHour > p.StartHour {
		return h >= p.StartHour && h < p.EndHour
	}
	return h >= p.StartHour || h < p.EndHour
}

// LocalTime returns now shifted into the policy's fixed-offset zone.
// Used when rendering the timestamp line on outgoing messages.
func LocalTime(now time.Time, p Policy) time.Time {
	zone := time.FixedZone("", p.TimezoneOffsetHours*3600)
	return now.In(zone)
}
