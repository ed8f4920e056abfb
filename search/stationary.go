package search

import (
	"fmt"

	ephem "github.com/Mr-Pental21/ctara-eph-core"
)

// StationType distinguishes the two stations of a planet's apparent motion.
type StationType uint8

const (
	// StationRetrograde is direct motion turning retrograde (speed + to -).
	StationRetrograde StationType = iota
	// StationDirect is retrograde motion turning direct (speed - to +).
	StationDirect
)

func (s StationType) String() string {
	if s == StationRetrograde {
		return "retrograde station"
	}
	return "direct station"
}

// StationaryEvent is a refined zero crossing of the geocentric ecliptic
// longitude speed.
type StationaryEvent struct {
	JDTDB  float64
	Body   ephem.Body
	Type   StationType
	LonDeg float64 // longitude at the station
}

// MaxSpeedEvent is a local extremum of the longitude speed.
type MaxSpeedEvent struct {
	JDTDB       float64
	Body        ephem.Body
	SpeedDegDay float64
}

// validateStationaryBody rejects bodies that never go retrograde as seen
// from Earth (Sun, Moon) or cannot be observed from Earth at all (Earth).
func validateStationaryBody(b ephem.Body) error {
	switch b.Code {
	case ephem.Sun.Code, ephem.Moon.Code, ephem.Earth.Code:
		return fmt.Errorf("%w: %s has no stationary points", ephem.ErrInvalidSearchConfig, b.Name)
	}
	return nil
}

func validateMaxSpeedBody(b ephem.Body) error {
	if b.Code == ephem.Earth.Code {
		return fmt.Errorf("%w: cannot search %s from an Earth observer", ephem.ErrInvalidSearchConfig, b.Name)
	}
	return nil
}

// lonSpeed is the observable v(t) = dλ/dt in deg/day.
func lonSpeed(e *ephem.Engine, b ephem.Body) Observable {
	return func(jd float64) (float64, error) {
		s, err := BodyEclipticState(e, b, jd)
		if err != nil {
			return 0, err
		}
		return s.LonSpeed * radSecToDegDay, nil
	}
}

func stationAt(e *ephem.Engine, b ephem.Body, ev *Event, before float64) (*StationaryEvent, error) {
	s, err := BodyEclipticState(e, b, ev.JDTDB)
	if err != nil {
		return nil, err
	}
	typ := StationRetrograde
	if before < 0 {
		typ = StationDirect
	}
	return &StationaryEvent{JDTDB: ev.JDTDB, Body: b, Type: typ, LonDeg: s.LonDeg}, nil
}

// NextStationary finds the body's first station after jdTDB, or nil when no
// station occurs within the scan range.
func NextStationary(e *ephem.Engine, b ephem.Body, jdTDB float64, cfg Config) (*StationaryEvent, error) {
	if err := validateStationaryBody(b); err != nil {
		return nil, err
	}
	f := lonSpeed(e, b)
	before, err := f(jdTDB)
	if err != nil {
		return nil, err
	}
	ev, err := NextZero(f, jdTDB, cfg)
	if err != nil || ev == nil {
		return nil, err
	}
	return stationAt(e, b, ev, before)
}

// PrevStationary finds the body's last station before jdTDB. The station
// type reflects the motion leading into the event.
func PrevStationary(e *ephem.Engine, b ephem.Body, jdTDB float64, cfg Config) (*StationaryEvent, error) {
	if err := validateStationaryBody(b); err != nil {
		return nil, err
	}
	f := lonSpeed(e, b)
	ev, err := PrevZero(f, jdTDB, cfg)
	if err != nil || ev == nil {
		return nil, err
	}
	before, err := f(ev.JDTDB - cfg.StepDays)
	if err != nil {
		return nil, err
	}
	return stationAt(e, b, ev, before)
}

// Stationaries finds every station in [jd0, jd1], ascending.
func Stationaries(e *ephem.Engine, b ephem.Body, jd0, jd1 float64, cfg Config) ([]StationaryEvent, error) {
	if err := validateStationaryBody(b); err != nil {
		return nil, err
	}
	f := lonSpeed(e, b)
	zeros, err := Zeros(f, jd0, jd1, cfg)
	if err != nil {
		return nil, err
	}
	events := make([]StationaryEvent, 0, len(zeros))
	for i := range zeros {
		before, err := f(zeros[i].JDTDB - cfg.StepDays)
		if err != nil {
			return nil, err
		}
		ev, err := stationAt(e, b, &zeros[i], before)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, nil
}

// NextMaxSpeed finds the next local extremum of the body's longitude speed
// after jdTDB, or nil when none occurs within the scan range.
func NextMaxSpeed(e *ephem.Engine, b ephem.Body, jdTDB float64, cfg Config) (*MaxSpeedEvent, error) {
	if err := validateMaxSpeedBody(b); err != nil {
		return nil, err
	}
	ev, err := NextExtremum(lonSpeed(e, b), jdTDB, cfg)
	if err != nil || ev == nil {
		return nil, err
	}
	return &MaxSpeedEvent{JDTDB: ev.JDTDB, Body: b, SpeedDegDay: ev.Value}, nil
}
