package moon

import (
	"math"
	"time"
)

// epoch is a known new moon: 2000-01-06 18:14 UTC.
var epoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// SynodicDays is the mean length of a lunar cycle in days.
const SynodicDays = 29.530588853

// names lists the eight phase buckets in cycle order.
var names = [8]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// Phase describes the moon at a single instant. Derived only, never stored.
type Phase struct {
	Name         string  `json:"name"`
	Cycle        float64 `json:"cycle"`     // position within the synodic period, [0,1)
	Illumination float64 `json:"illum"`     // illuminated fraction, [0,1]
	IllumPercent float64 `json:"illum_pct"` // illumination percentage, one decimal
	UTC          string  `json:"utc"`       // instant the phase was computed for
}

// At computes the phase for an arbitrary instant.
func At(t time.Time) Phase {
	t = t.UTC()
	days := t.Sub(epoch).Seconds() / 86400.0
	cycle := math.Mod(days, SynodicDays) / SynodicDays
	if cycle < 0 {
		cycle++
	}
	illum := 0.5 * (1 - math.Cos(2*math.Pi*cycle))
	idx := int(math.Floor(cycle*8+0.5)) % 8
	return Phase{
		Name:         names[idx],
		Cycle:        cycle,
		Illumination: illum,
		IllumPercent: math.Round(illum*1000) / 10,
		UTC:          t.Format("2006-01-02 15:04 UTC"),
	}
}

// Now computes the phase for the current UTC time.
func Now() Phase {
	return At(time.Now())
}
