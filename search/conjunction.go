package search

import (
	"fmt"
	"math"

	ephem "github.com/Mr-Pental21/ctara-eph-core"
)

// wrapGuardDeg rejects sign changes wider than this as wrap-around jumps
// of the normalized separation function.
const wrapGuardDeg = 270

// ConjunctionConfig parameterizes an angular-separation search between two
// bodies: the target geocentric ecliptic longitude difference (0 for
// conjunction, 180 for opposition, anything else for an aspect) and the
// scan/bisection tuning.
type ConjunctionConfig struct {
	TargetSeparationDeg float64
	Search              Config
}

// Conjunction returns a config for a 0° separation search.
func Conjunction(stepDays float64) ConjunctionConfig {
	return Aspect(0, stepDays)
}

// Opposition returns a config for a 180° separation search.
func Opposition(stepDays float64) ConjunctionConfig {
	return Aspect(180, stepDays)
}

// Aspect returns a config for an arbitrary separation in [0, 360).
func Aspect(separationDeg, stepDays float64) ConjunctionConfig {
	cfg := DefaultConfig(stepDays)
	cfg.MaxJump = wrapGuardDeg
	return ConjunctionConfig{TargetSeparationDeg: separationDeg, Search: cfg}
}

func (c ConjunctionConfig) validate() error {
	if c.TargetSeparationDeg < 0 || c.TargetSeparationDeg >= 360 {
		return fmt.Errorf("%w: target separation %g outside [0, 360)", ephem.ErrInvalidSearchConfig, c.TargetSeparationDeg)
	}
	return c.Search.validate()
}

// ConjunctionEvent is one refined separation event.
type ConjunctionEvent struct {
	JDTDB float64
	// SeparationDeg is the achieved lon1-lon2, reported in the branch
	// closest to the target so a conjunction never reads as ~360°.
	SeparationDeg float64
	Body1, Body2  ephem.Body
	Lon1Deg       float64
	Lon2Deg       float64
	Lat1Deg       float64
	Lat2Deg       float64
}

// separation builds the observable f(t) = wrap(lon1 - lon2 - target).
func separation(e *ephem.Engine, b1, b2 ephem.Body, targetDeg float64) Observable {
	return func(jd float64) (float64, error) {
		s1, err := BodyEclipticState(e, b1, jd)
		if err != nil {
			return 0, err
		}
		s2, err := BodyEclipticState(e, b2, jd)
		if err != nil {
			return 0, err
		}
		return WrapTo180(s1.LonDeg - s2.LonDeg - targetDeg), nil
	}
}

func conjunctionAt(e *ephem.Engine, b1, b2 ephem.Body, targetDeg float64, ev *Event) (*ConjunctionEvent, error) {
	s1, err := BodyEclipticState(e, b1, ev.JDTDB)
	if err != nil {
		return nil, err
	}
	s2, err := BodyEclipticState(e, b2, ev.JDTDB)
	if err != nil {
		return nil, err
	}
	raw := math.Mod(math.Mod(s1.LonDeg-s2.LonDeg, 360)+360, 360)
	return &ConjunctionEvent{
		JDTDB:         ev.JDTDB,
		SeparationDeg: targetDeg + WrapTo180(raw-targetDeg),
		Body1:         b1,
		Body2:         b2,
		Lon1Deg:       s1.LonDeg,
		Lon2Deg:       s2.LonDeg,
		Lat1Deg:       s1.LatDeg,
		Lat2Deg:       s2.LatDeg,
	}, nil
}

// NextConjunction finds the first separation event after jdTDB, or nil when
// none occurs within the scan range.
func NextConjunction(e *ephem.Engine, b1, b2 ephem.Body, jdTDB float64, cfg ConjunctionConfig) (*ConjunctionEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ev, err := NextZero(separation(e, b1, b2, cfg.TargetSeparationDeg), jdTDB, cfg.Search)
	if err != nil || ev == nil {
		return nil, err
	}
	return conjunctionAt(e, b1, b2, cfg.TargetSeparationDeg, ev)
}

// PrevConjunction finds the last separation event before jdTDB.
func PrevConjunction(e *ephem.Engine, b1, b2 ephem.Body, jdTDB float64, cfg ConjunctionConfig) (*ConjunctionEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ev, err := PrevZero(separation(e, b1, b2, cfg.TargetSeparationDeg), jdTDB, cfg.Search)
	if err != nil || ev == nil {
		return nil, err
	}
	return conjunctionAt(e, b1, b2, cfg.TargetSeparationDeg, ev)
}

// Conjunctions finds every separation event in [jd0, jd1], ascending.
func Conjunctions(e *ephem.Engine, b1, b2 ephem.Body, jd0, jd1 float64, cfg ConjunctionConfig) ([]ConjunctionEvent, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	zeros, err := Zeros(separation(e, b1, b2, cfg.TargetSeparationDeg), jd0, jd1, cfg.Search)
	if err != nil {
		return nil, err
	}
	events := make([]ConjunctionEvent, 0, len(zeros))
	for i := range zeros {
		ev, err := conjunctionAt(e, b1, b2, cfg.TargetSeparationDeg, &zeros[i])
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, nil
}
