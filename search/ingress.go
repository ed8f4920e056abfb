package search

import (
	"math"

	ephem "github.com/Mr-Pental21/ctara-eph-core"
)

// A sankranti is the Sun's ingress into a 30° sidereal sign: the epoch
// where its sidereal longitude (tropical longitude minus ayanamsha) crosses
// a multiple of 30. The Sun advances ~1°/day, so the default scan step is
// one day.

const ingressStepDays = 1.0

// SankrantiEvent is one refined solar ingress.
type SankrantiEvent struct {
	JDTDB float64
	// Sign is the entered sign index, 0 (Mesha/Aries) through 11 (Meena/Pisces).
	Sign int
	// SiderealLonDeg is the Sun's sidereal longitude at the event, which
	// sits on the sign boundary to within the convergence width.
	SiderealLonDeg float64
}

// sunSiderealLon is the observable λ_sid(t) = λ_trop(t) - ayanamsha(t).
func sunSiderealLon(e *ephem.Engine, system ephem.AyanamshaSystem) func(jd float64) (float64, error) {
	return func(jd float64) (float64, error) {
		s, err := BodyEclipticState(e, ephem.Sun, jd)
		if err != nil {
			return 0, err
		}
		t := ephem.JDToCenturies(jd)
		lon := s.LonDeg - ephem.AyanamshaMeanDeg(system, t)
		return math.Mod(math.Mod(lon, 360)+360, 360), nil
	}
}

// NextSankranti finds the Sun's next sign ingress after jdTDB, or nil when
// the scan range ends first (it never should: ingresses are at most ~31
// days apart).
func NextSankranti(e *ephem.Engine, system ephem.AyanamshaSystem, jdTDB float64, cfg Config) (*SankrantiEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	lonAt := sunSiderealLon(e, system)
	lon0, err := lonAt(jdTDB)
	if err != nil {
		return nil, err
	}
	// The next boundary ahead of the current longitude.
	boundary := 30 * math.Floor(lon0/30+1)
	f := func(jd float64) (float64, error) {
		lon, err := lonAt(jd)
		if err != nil {
			return 0, err
		}
		return WrapTo180(lon - boundary), nil
	}
	searchCfg := cfg
	searchCfg.MaxJump = wrapGuardDeg
	ev, err := NextZero(f, jdTDB, searchCfg)
	if err != nil || ev == nil {
		return nil, err
	}
	lon, err := lonAt(ev.JDTDB)
	if err != nil {
		return nil, err
	}
	sign := int(math.Mod(boundary, 360) / 30)
	return &SankrantiEvent{JDTDB: ev.JDTDB, Sign: sign % 12, SiderealLonDeg: lon}, nil
}

// Sankrantis finds every solar ingress in [jd0, jd1], ascending.
func Sankrantis(e *ephem.Engine, system ephem.AyanamshaSystem, jd0, jd1 float64, cfg Config) ([]SankrantiEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	var events []SankrantiEvent
	jd := jd0
	for {
		ev, err := NextSankranti(e, system, jd, cfg)
		if err != nil {
			return nil, err
		}
		if ev == nil || ev.JDTDB > jd1 {
			return events, nil
		}
		events = append(events, *ev)
		// Step past the found event; the next boundary is ~30 days out.
		jd = ev.JDTDB + cfg.StepDays
	}
}

// DefaultIngressConfig returns the search defaults tuned for solar motion.
func DefaultIngressConfig() Config {
	return DefaultConfig(ingressStepDays)
}
