package moon

import (
	"math"
	"testing"
	"time"
)

func synodicDuration() time.Duration {
	return time.Duration(SynodicDays * 24 * float64(time.Hour))
}

func TestNewMoonAtEpoch(t *testing.T) {
	p := At(epoch)
	if p.Cycle != 0 {
		t.Errorf("Cycle = %v, want 0", p.Cycle)
	}
	if p.Name != "New Moon" {
		t.Errorf("Name = %q, want New Moon", p.Name)
	}
	if p.IllumPercent != 0 {
		t.Errorf("IllumPercent = %v, want 0", p.IllumPercent)
	}
	if p.UTC != "2000-01-06 18:14 UTC" {
		t.Errorf("UTC = %q", p.UTC)
	}
}

func TestFullMoonMidCycle(t *testing.T) {
	p := At(epoch.Add(synodicDuration() / 2))
	if p.Name != "Full Moon" {
		t.Errorf("Name = %q, want Full Moon", p.Name)
	}
	if math.Abs(p.IllumPercent-100) > 0.1 {
		t.Errorf("IllumPercent = %v, want ~100", p.IllumPercent)
	}
}

func TestPeriodicity(t *testing.T) {
	t1 := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	p1 := At(t1)
	p2 := At(t1.Add(synodicDuration()))
	if p1.Name != p2.Name {
		t.Errorf("phase name changed over one synodic period: %q vs %q", p1.Name, p2.Name)
	}
	if math.Abs(p1.IllumPercent-p2.IllumPercent) > 0.1 {
		t.Errorf("illumination drifted over one period: %v vs %v", p1.IllumPercent, p2.IllumPercent)
	}
}

func TestCycleAlwaysInRange(t *testing.T) {
	instants := []time.Time{
		time.Date(1969, time.July, 20, 20, 17, 0, 0, time.UTC), // before the epoch
		time.Date(1999, time.December, 31, 23, 59, 0, 0, time.UTC),
		epoch,
		time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC),
		epoch.Add(1000 * synodicDuration()),
	}
	for _, in := range instants {
		p := At(in)
		if p.Cycle < 0 || p.Cycle >= 1 {
			t.Errorf("At(%v).Cycle = %v, out of [0,1)", in, p.Cycle)
		}
		if p.Illumination < 0 || p.Illumination > 1 {
			t.Errorf("At(%v).Illumination = %v, out of [0,1]", in, p.Illumination)
		}
	}
}

func TestEndOfCycleWrapsToNewMoon(t *testing.T) {
	// Just before the next new moon the bucket rounds back to index 0.
	p := At(epoch.Add(synodicDuration() - time.Minute))
	if p.Name != "New Moon" {
		t.Errorf("Name = %q, want New Moon near cycle end", p.Name)
	}
}
