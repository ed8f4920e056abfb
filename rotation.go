package ephem

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

const (
	// ObliquityJ2000Deg is the J2000.0 mean obliquity of the ecliptic.
	ObliquityJ2000Deg = 23.4392911111
	obliquityJ2000Rad = ObliquityJ2000Deg * deg2rad
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// The two frame rotations are fixed matrices, built once. Position and
// velocity rotate identically.
var (
	icrf2Ecl = R1(obliquityJ2000Rad)
	ecl2ICRF = R1(-obliquityJ2000Rad)
)

// ICRF2Ecliptic rotates a 3-vector from the ICRF equatorial frame to the
// mean ecliptic of J2000.
func ICRF2Ecliptic(v []float64) []float64 {
	return MxV33(icrf2Ecl, v)
}

// Ecliptic2ICRF rotates a 3-vector from the mean ecliptic of J2000 back to
// the ICRF equatorial frame.
func Ecliptic2ICRF(v []float64) []float64 {
	return MxV33(ecl2ICRF, v)
}
