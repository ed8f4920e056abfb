package ephem

import "math"

const (
	twoPi = 2 * math.Pi
	// arcsec2rad converts arcseconds to radians.
	arcsec2rad = math.Pi / (180 * 3600)
	// siderealRate is the ratio of the sidereal to the solar day,
	// revolutions of ERA per UT1 day.
	siderealRate = 1.00273781191135448
)

// EarthRotationAngle returns the ERA in radians, normalized to [0, 2π),
// for a UT1 Julian Date (IERS Conventions 2010, Eq. 5.15).
func EarthRotationAngle(jdUT1 float64) float64 {
	du := jdUT1 - J2000JD
	θ := twoPi * (0.7790572732640 + siderealRate*du)
	return math.Mod(math.Mod(θ, twoPi)+twoPi, twoPi)
}

// GMST returns the Greenwich Mean Sidereal Time in radians, normalized to
// [0, 2π), for a UT1 Julian Date. GMST = ERA + the Capitaine 2003
// polynomial in Julian centuries from J2000.
func GMST(jdUT1 float64) float64 {
	era := EarthRotationAngle(jdUT1)
	t := (jdUT1 - J2000JD) / 36525
	poly := ((((-0.0000000368*t-0.000029956)*t-0.00000044)*t+1.3915817)*t+4612.156534)*t + 0.014506
	g := era + poly*arcsec2rad
	return math.Mod(math.Mod(g, twoPi)+twoPi, twoPi)
}

// LST returns the local sidereal time for an east longitude in radians,
// normalized to [0, 2π).
func LST(gmst, eastLongitude float64) float64 {
	return math.Mod(math.Mod(gmst+eastLongitude, twoPi)+twoPi, twoPi)
}
