// Package search locates events against the ephemeris: zero-crossings and
// extrema of caller-provided scalar observables of time, refined by bracket
// scanning plus bisection. Conjunctions, stations, ingresses, lunar phases
// and eclipses are built from this primitive; sunrise, sunset and twilight
// use their own hour-angle iteration. Searches are
// synchronous and deterministic; they hold a read-only reference to the
// engine and bound their work by iteration count, never by wall clock.
package search

import (
	"fmt"
	"math"

	ephem "github.com/Mr-Pental21/ctara-eph-core"
)

// Observable is a scalar function of time (Julian Date, TDB). Event
// searches locate the epochs where it crosses zero.
type Observable func(jdTDB float64) (float64, error)

// Config tunes the bracket scan and bisection.
type Config struct {
	// StepDays is the coarse scan step.
	StepDays float64
	// ConvergenceDays stops the bisection once the bracket is this narrow.
	ConvergenceDays float64
	// MaxIterations bounds the bisection; exceeding it without converging
	// fails with ErrNoConvergence.
	MaxIterations int
	// MaxScanDays bounds the directional scan range.
	MaxScanDays float64
	// MaxJump guards observables wrapped onto a circle: a sign change whose
	// magnitude exceeds this is a wrap-around discontinuity, not a
	// crossing. Zero disables the guard.
	MaxJump float64
}

// DefaultConfig returns the search defaults for a given coarse step:
// 1e-8 day convergence (~0.9 ms), 50 bisection iterations, an 800-day scan
// range covering every synodic period.
func DefaultConfig(stepDays float64) Config {
	return Config{
		StepDays:        stepDays,
		ConvergenceDays: 1e-8,
		MaxIterations:   50,
		MaxScanDays:     800,
	}
}

func (c Config) validate() error {
	if c.StepDays <= 0 {
		return fmt.Errorf("%w: step must be positive, have %g days", ephem.ErrInvalidSearchConfig, c.StepDays)
	}
	if c.ConvergenceDays <= 0 {
		return fmt.Errorf("%w: convergence must be positive, have %g days", ephem.ErrInvalidSearchConfig, c.ConvergenceDays)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("%w: at least one iteration is required", ephem.ErrInvalidSearchConfig)
	}
	if c.MaxScanDays <= 0 {
		return fmt.Errorf("%w: scan range must be positive, have %g days", ephem.ErrInvalidSearchConfig, c.MaxScanDays)
	}
	return nil
}

// Event is one refined root: the epoch and the observable's value there.
type Event struct {
	JDTDB float64
	Value float64
}

// genuineCrossing reports whether a sign change between two samples is a
// real zero crossing under the configured wrap guard. A later sample that is
// exactly zero counts as the crossing; an earlier one does not, so a zero
// that lands on a scan point is reported once.
func (c Config) genuineCrossing(fa, fb float64) bool {
	if fa*fb > 0 || fa == 0 {
		return false
	}
	return c.MaxJump == 0 || math.Abs(fa-fb) < c.MaxJump
}

// bisect refines a bracketing pair (ta, tb) with sign(f(ta)) != sign(f(tb))
// down to the convergence width. Requires ta < tb.
func bisect(f Observable, ta, fa, tb float64, cfg Config) (*Event, error) {
	for i := 0; i < cfg.MaxIterations; i++ {
		tm := 0.5 * (ta + tb)
		fm, err := f(tm)
		if err != nil {
			return nil, err
		}
		if fa*fm <= 0 {
			tb = tm
		} else {
			ta = tm
			fa = fm
		}
		if tb-ta < cfg.ConvergenceDays {
			t := 0.5 * (ta + tb)
			v, err := f(t)
			if err != nil {
				return nil, err
			}
			return &Event{JDTDB: t, Value: v}, nil
		}
	}
	return nil, fmt.Errorf("%w: bracket [%g, %g] still %g days wide after %d iterations",
		ephem.ErrNoConvergence, ta, tb, tb-ta, cfg.MaxIterations)
}

// scanZero walks from jdStart in the given direction (+1 forward, -1
// backward) until a bracket appears, then bisects it. A nil event means the
// scan range ended without a crossing; that is a normal empty result, not
// an error.
func scanZero(f Observable, jdStart, direction float64, cfg Config) (*Event, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	step := direction * cfg.StepDays
	maxSteps := int(math.Ceil(cfg.MaxScanDays / cfg.StepDays))
	tPrev := jdStart
	fPrev, err := f(tPrev)
	if err != nil {
		return nil, err
	}
	for i := 0; i < maxSteps; i++ {
		tCurr := tPrev + step
		fCurr, err := f(tCurr)
		if err != nil {
			return nil, err
		}
		if cfg.genuineCrossing(fPrev, fCurr) {
			ta, fa, tb := tPrev, fPrev, tCurr
			if tb < ta {
				ta, fa, tb = tCurr, fCurr, tPrev
			}
			return bisect(f, ta, fa, tb, cfg)
		}
		tPrev, fPrev = tCurr, fCurr
	}
	return nil, nil
}

// NextZero finds the first zero crossing of f after jdStart.
func NextZero(f Observable, jdStart float64, cfg Config) (*Event, error) {
	return scanZero(f, jdStart, +1, cfg)
}

// PrevZero finds the last zero crossing of f before jdStart.
func PrevZero(f Observable, jdStart float64, cfg Config) (*Event, error) {
	return scanZero(f, jdStart, -1, cfg)
}

// Zeros finds every zero crossing of f in [jd0, jd1], ascending.
func Zeros(f Observable, jd0, jd1 float64, cfg Config) ([]Event, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if jd1 <= jd0 {
		return nil, fmt.Errorf("%w: interval end %g is not after start %g", ephem.ErrInvalidSearchConfig, jd1, jd0)
	}
	var events []Event
	tPrev := jd0
	fPrev, err := f(tPrev)
	if err != nil {
		return nil, err
	}
	for tPrev < jd1 {
		tCurr := math.Min(tPrev+cfg.StepDays, jd1)
		fCurr, err := f(tCurr)
		if err != nil {
			return nil, err
		}
		if cfg.genuineCrossing(fPrev, fCurr) {
			ev, err := bisect(f, tPrev, fPrev, tCurr, cfg)
			if err != nil {
				return nil, err
			}
			if ev.JDTDB >= jd0 && ev.JDTDB <= jd1 {
				events = append(events, *ev)
			}
		}
		tPrev, fPrev = tCurr, fCurr
	}
	return events, nil
}

// Derivative turns an observable into its numerical derivative by central
// differences with half-width delta days. Extremum searches look for zero
// crossings of this.
func Derivative(f Observable, delta float64) Observable {
	return func(jd float64) (float64, error) {
		fp, err := f(jd + delta)
		if err != nil {
			return 0, err
		}
		fm, err := f(jd - delta)
		if err != nil {
			return 0, err
		}
		return (fp - fm) / (2 * delta), nil
	}
}

// NextExtremum finds the first local extremum of f after jdStart, as the
// next zero of the central-difference derivative. The refined event carries
// f's value at the extremum, not the derivative's.
func NextExtremum(f Observable, jdStart float64, cfg Config) (*Event, error) {
	ev, err := NextZero(Derivative(f, cfg.StepDays/16), jdStart, cfg)
	if err != nil || ev == nil {
		return ev, err
	}
	v, err := f(ev.JDTDB)
	if err != nil {
		return nil, err
	}
	return &Event{JDTDB: ev.JDTDB, Value: v}, nil
}

// radSecToDegDay converts an angular rate from rad/s (the frame layer's
// unit) to degrees per day.
const radSecToDegDay = 180 / math.Pi * 86400

// WrapTo180 normalizes an angle in degrees to (-180, 180].
func WrapTo180(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// BodyEclipticState queries a body's geocentric ecliptic longitude and
// latitude (degrees) and its angular rates (rad/s, per the frame layer) at
// a TDB Julian Date.
func BodyEclipticState(e *ephem.Engine, body ephem.Body, jdTDB float64) (ephem.SphericalState, error) {
	sv, err := e.Query(ephem.Query{
		Target:   body,
		Observer: ephem.Earth,
		Frame:    ephem.EclipticJ2000,
		EpochJD:  jdTDB,
	})
	if err != nil {
		return ephem.SphericalState{}, err
	}
	return ephem.Cartesian2SphericalState(sv.R[:], sv.V[:]), nil
}
