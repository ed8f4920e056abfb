package search

import (
	ephem "github.com/Mr-Pental21/ctara-eph-core"
)

// Lunar phases are Moon-Sun elongation events: 0° for new moon, 180° for
// full moon. They are specialized separation searches with a half-day scan
// step (the Moon gains ~12°/day on the Sun).

const phaseStepDays = 0.5

// LunarPhase selects the phase to search for.
type LunarPhase uint8

const (
	// NewMoon is 0° elongation (amavasya).
	NewMoon LunarPhase = iota
	// FullMoon is 180° elongation (purnima).
	FullMoon
)

func (p LunarPhase) String() string {
	if p == NewMoon {
		return "new moon"
	}
	return "full moon"
}

func (p LunarPhase) elongationDeg() float64 {
	if p == FullMoon {
		return 180
	}
	return 0
}

// PhaseEvent is one refined lunar phase.
type PhaseEvent struct {
	JDTDB      float64
	Phase      LunarPhase
	MoonLonDeg float64
	SunLonDeg  float64
}

func phaseConfig(p LunarPhase) ConjunctionConfig {
	return Aspect(p.elongationDeg(), phaseStepDays)
}

func phaseEvent(p LunarPhase, c *ConjunctionEvent) *PhaseEvent {
	if c == nil {
		return nil
	}
	return &PhaseEvent{JDTDB: c.JDTDB, Phase: p, MoonLonDeg: c.Lon1Deg, SunLonDeg: c.Lon2Deg}
}

// NextPhase finds the first occurrence of the phase after jdTDB.
func NextPhase(e *ephem.Engine, p LunarPhase, jdTDB float64) (*PhaseEvent, error) {
	c, err := NextConjunction(e, ephem.Moon, ephem.Sun, jdTDB, phaseConfig(p))
	if err != nil {
		return nil, err
	}
	return phaseEvent(p, c), nil
}

// PrevPhase finds the last occurrence of the phase before jdTDB.
func PrevPhase(e *ephem.Engine, p LunarPhase, jdTDB float64) (*PhaseEvent, error) {
	c, err := PrevConjunction(e, ephem.Moon, ephem.Sun, jdTDB, phaseConfig(p))
	if err != nil {
		return nil, err
	}
	return phaseEvent(p, c), nil
}

// Phases finds every occurrence of the phase in [jd0, jd1], ascending.
func Phases(e *ephem.Engine, p LunarPhase, jd0, jd1 float64) ([]PhaseEvent, error) {
	cs, err := Conjunctions(e, ephem.Moon, ephem.Sun, jd0, jd1, phaseConfig(p))
	if err != nil {
		return nil, err
	}
	events := make([]PhaseEvent, len(cs))
	for i := range cs {
		events[i] = *phaseEvent(p, &cs[i])
	}
	return events, nil
}
