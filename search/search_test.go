package search

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
	ephem "github.com/Mr-Pental21/ctara-eph-core"
)

// sine returns an observable with zeros at t0 + k*period/2.
func sine(t0, period float64) Observable {
	return func(jd float64) (float64, error) {
		return math.Sin(2 * math.Pi * (jd - t0) / period), nil
	}
}

func TestNextZeroFindsRoot(t *testing.T) {
	f := sine(100.5, 30)
	ev, err := NextZero(f, 101, DefaultConfig(1))
	if err != nil {
		t.Fatal(err)
	}
	if ev == nil {
		t.Fatal("expected an event")
	}
	// First zero after 101 is at 115.5.
	if !floats.EqualWithinAbs(ev.JDTDB, 115.5, 1e-7) {
		t.Fatalf("zero at %f, expected 115.5", ev.JDTDB)
	}
	if math.Abs(ev.Value) > 1e-6 {
		t.Fatalf("observable at the root = %g", ev.Value)
	}
}

func TestPrevZeroFindsRoot(t *testing.T) {
	f := sine(100.5, 30)
	ev, err := PrevZero(f, 114, DefaultConfig(1))
	if err != nil {
		t.Fatal(err)
	}
	if ev == nil || !floats.EqualWithinAbs(ev.JDTDB, 100.5, 1e-7) {
		t.Fatalf("previous zero = %+v, expected 100.5", ev)
	}
}

func TestZerosInRange(t *testing.T) {
	f := sine(100.5, 30)
	events, err := Zeros(f, 100.7, 190, DefaultConfig(1))
	if err != nil {
		t.Fatal(err)
	}
	// Zeros at 115.5, 130.5, 145.5, 160.5, 175.5.
	if len(events) != 5 {
		t.Fatalf("found %d zeros", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].JDTDB <= events[i-1].JDTDB {
			t.Fatal("events must ascend in time")
		}
	}
	if !floats.EqualWithinAbs(events[0].JDTDB, 115.5, 1e-7) {
		t.Fatalf("first zero at %f", events[0].JDTDB)
	}
}

func TestScanRangeExhausted(t *testing.T) {
	// No zero anywhere: a nil event, not an error.
	f := func(jd float64) (float64, error) { return 1.0, nil }
	ev, err := NextZero(f, 0, DefaultConfig(1))
	if err != nil || ev != nil {
		t.Fatalf("expected empty result, got %+v, %v", ev, err)
	}
}

func TestNoConvergence(t *testing.T) {
	f := sine(100.5, 30)
	cfg := DefaultConfig(1)
	cfg.MaxIterations = 2
	cfg.ConvergenceDays = 1e-12
	if _, err := NextZero(f, 101, cfg); !errors.Is(err, ephem.ErrNoConvergence) {
		t.Fatalf("expected no convergence, got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	bad := []Config{
		{StepDays: 0, ConvergenceDays: 1e-8, MaxIterations: 50, MaxScanDays: 800},
		{StepDays: 1, ConvergenceDays: 0, MaxIterations: 50, MaxScanDays: 800},
		{StepDays: 1, ConvergenceDays: 1e-8, MaxIterations: 0, MaxScanDays: 800},
		{StepDays: 1, ConvergenceDays: 1e-8, MaxIterations: 50, MaxScanDays: 0},
	}
	for i, cfg := range bad {
		if _, err := NextZero(func(float64) (float64, error) { return 0, nil }, 0, cfg); !errors.Is(err, ephem.ErrInvalidSearchConfig) {
			t.Fatalf("config %d should fail validation, got %v", i, err)
		}
	}
	if _, err := Zeros(func(float64) (float64, error) { return 0, nil }, 10, 5, DefaultConfig(1)); !errors.Is(err, ephem.ErrInvalidSearchConfig) {
		t.Fatalf("reversed interval should fail, got %v", err)
	}
}

func TestWrapGuard(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.MaxJump = 270
	if !cfg.genuineCrossing(5, -3) || !cfg.genuineCrossing(-10, 10) {
		t.Fatal("small sign changes are genuine")
	}
	if cfg.genuineCrossing(170, -170) || cfg.genuineCrossing(-170, 170) {
		t.Fatal("wrap-around jumps are not crossings")
	}
	open := DefaultConfig(1)
	if !open.genuineCrossing(170, -170) {
		t.Fatal("guard disabled should accept any sign change")
	}
}

func TestNextExtremum(t *testing.T) {
	// cos has a maximum at t0 and a minimum at t0 + period/2.
	f := func(jd float64) (float64, error) {
		return math.Cos(2 * math.Pi * (jd - 50) / 40), nil
	}
	ev, err := NextExtremum(f, 51, DefaultConfig(1))
	if err != nil {
		t.Fatal(err)
	}
	if ev == nil || !floats.EqualWithinAbs(ev.JDTDB, 70, 1e-5) {
		t.Fatalf("extremum = %+v, expected minimum at 70", ev)
	}
	if !floats.EqualWithinAbs(ev.Value, -1, 1e-8) {
		t.Fatalf("extremum value = %f, expected -1", ev.Value)
	}
}

func TestWrapTo180(t *testing.T) {
	cases := map[float64]float64{0: 0, 180: 180, -180: 180, 270: -90, -270: 90, 360: 0, 450: 90}
	for in, exp := range cases {
		if got := WrapTo180(in); !floats.EqualWithinAbs(got, exp, 1e-10) {
			t.Fatalf("WrapTo180(%f) = %f, expected %f", in, got, exp)
		}
	}
}

func TestDeterminism(t *testing.T) {
	f := sine(100.5, 30)
	cfg := DefaultConfig(1)
	a, err := NextZero(f, 101, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NextZero(f, 101, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if *a != *b {
		t.Fatal("identical inputs must give identical output")
	}
}
