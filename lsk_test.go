package ephem

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

const sampleLSK = `KPL/LSK

This is a comment outside the data section.

\begindata

DELTET/DELTA_T_A       =   32.184
DELTET/K               =    1.657D-3
DELTET/EB              =    1.671D-2
DELTET/M               = (  6.239996   1.99096871D-7 )

DELTET/DELTA_AT        = ( 10,   @1972-JAN-1
                           20,   @1985-JUL-1
                           30,   @1996-JAN-1
                           31,   @1997-JUL-1
                           32,   @1999-JAN-1
                           33,   @2006-JAN-1
                           34,   @2009-JAN-1
                           35,   @2012-JUL-1
                           36,   @2015-JUL-1
                           37,   @2017-JAN-1 )

\begintext
`

func loadSampleLSK(t *testing.T) *LeapSeconds {
	t.Helper()
	l, err := ParseLeapSeconds(sampleLSK)
	if err != nil {
		t.Fatalf("sample LSK failed to parse: %v", err)
	}
	return l
}

func TestParseLeapSecondsValues(t *testing.T) {
	l := loadSampleLSK(t)
	if !floats.EqualWithinAbs(l.deltaTA, 32.184, 1e-12) {
		t.Fatalf("DELTA_T_A = %f", l.deltaTA)
	}
	if !floats.EqualWithinAbs(l.k, 1.657e-3, 1e-15) {
		t.Fatalf("K = %g (D exponent not handled?)", l.k)
	}
	if !floats.EqualWithinAbs(l.eb, 1.671e-2, 1e-15) {
		t.Fatalf("EB = %g", l.eb)
	}
	if !floats.EqualWithinAbs(l.m0, 6.239996, 1e-10) || !floats.EqualWithinAbs(l.m1, 1.99096871e-7, 1e-18) {
		t.Fatalf("M = (%g, %g)", l.m0, l.m1)
	}
	if len(l.table) != 10 {
		t.Fatalf("leap table has %d entries", len(l.table))
	}
	// 1972-Jan-01 is JD 2441317.5.
	exp := (2441317.5 - J2000JD) * SecondsPerDay
	if !floats.EqualWithinAbs(l.table[0].epochS, exp, 1) {
		t.Fatalf("first leap epoch %f != %f", l.table[0].epochS, exp)
	}
}

func TestParseLeapSecondsErrors(t *testing.T) {
	if _, err := ParseLeapSeconds("no data section at all"); !errors.Is(err, ErrKernelLoad) {
		t.Fatalf("missing \\begindata should fail, got %v", err)
	}
	if _, err := ParseLeapSeconds("\\begindata\nDELTET/K = 1.0\n"); !errors.Is(err, ErrKernelLoad) {
		t.Fatalf("missing keys should fail, got %v", err)
	}
}

func TestDeltaAT(t *testing.T) {
	l := loadSampleLSK(t)
	// 2000-01-01 is after the 1999 entry (32 s) and before 2006 (33 s).
	dat, err := l.deltaAT(0)
	if err != nil {
		t.Fatal(err)
	}
	if dat != 32 {
		t.Fatalf("TAI-UTC at J2000 = %f, expected 32", dat)
	}
	// 2020 falls in the 37 s regime.
	dat, err = l.deltaAT(20 * 365.25 * SecondsPerDay)
	if err != nil {
		t.Fatal(err)
	}
	if dat != 37 {
		t.Fatalf("TAI-UTC in 2020 = %f, expected 37", dat)
	}
	if _, err := l.deltaAT(-2e9); !errors.Is(err, ErrTimeConversion) {
		t.Fatalf("pre-1972 UTC should fail time conversion, got %v", err)
	}
}

func TestUTCToTDBAtJ2000(t *testing.T) {
	// 2000-01-01T12:00:00 UTC: TAI-UTC = 32 s, TT-TAI = 32.184 s, and the
	// TDB periodic term is about -73 µs, so TDB is 64.1839273 s past J2000
	// (JD TDB 2451545.00074287).
	l := loadSampleLSK(t)
	u := UTCTime{Year: 2000, Month: 1, Day: 1, Hour: 12}
	e, err := l.EpochFromUTC(u)
	if err != nil {
		t.Fatal(err)
	}
	// A float64 JD near 2.45e6 resolves only ~40 µs, so the 1 µs check is
	// made on TDB seconds.
	if !floats.EqualWithinAbs(e.TDBSeconds(), 64.1839273, 1e-6) {
		t.Fatalf("TDB = %.9f s, expected 64.1839273 s", e.TDBSeconds())
	}
}

func TestUTCTDBRoundTrip(t *testing.T) {
	l := loadSampleLSK(t)
	for year := 1975; year <= 2095; year += 10 {
		u := UTCTime{Year: year, Month: 6, Day: 15, Hour: 3, Minute: 27, Second: 11.5}
		utcS := JDToTDBSeconds(u.JDUTC())
		tdbS, err := l.UTCToTDB(utcS)
		if err != nil {
			t.Fatalf("year %d: %v", year, err)
		}
		back, err := l.TDBToUTC(tdbS)
		if err != nil {
			t.Fatalf("year %d: %v", year, err)
		}
		if !floats.EqualWithinAbs(back, utcS, 1e-6) {
			t.Fatalf("year %d: round trip off by %g s", year, math.Abs(back-utcS))
		}
	}
}

func TestTDBMinusTTBounded(t *testing.T) {
	// The periodic term never exceeds its amplitude K (~1.7 ms).
	l := loadSampleLSK(t)
	for tt := -4e9; tt < 4e9; tt += 1e8 {
		if d := math.Abs(l.tdbMinusTT(tt)); d > l.k {
			t.Fatalf("TDB-TT = %g s exceeds K at tt=%g", d, tt)
		}
	}
}
