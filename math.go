package ephem

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180
)

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// unit returns the unit vector of a given vector.
func unit(a []float64) (b []float64) {
	n := norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// dot performs the inner product via mat64/BLAS.
func dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// cross performs the cross product.
func cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}

// Spherical holds spherical coordinates: longitude in degrees in [0, 360)
// measured in the x-y plane from +x toward +y, latitude in degrees in
// [-90, 90] above that plane, distance in km.
type Spherical struct {
	LonDeg float64
	LatDeg float64
	DistKM float64
}

// SphericalState adds the time derivatives: longitude and latitude rates in
// rad/s (callers convert to degrees per day as needed), radial rate in km/s.
type SphericalState struct {
	Spherical
	LonSpeed  float64 // rad/s
	LatSpeed  float64 // rad/s
	DistSpeed float64 // km/s
}

// Cartesian2Spherical converts a position vector in km to spherical
// coordinates. The zero vector maps to the zero value.
func Cartesian2Spherical(a []float64) Spherical {
	r := norm(a)
	if r == 0 {
		return Spherical{}
	}
	lon := math.Atan2(a[1], a[0])
	if lon < 0 {
		lon += 2 * math.Pi
	}
	return Spherical{
		LonDeg: lon / deg2rad,
		LatDeg: math.Asin(a[2]/r) / deg2rad,
		DistKM: r,
	}
}

// Spherical2Cartesian converts spherical coordinates back to a position
// vector in km.
func Spherical2Cartesian(s Spherical) []float64 {
	sLon, cLon := math.Sincos(s.LonDeg * deg2rad)
	sLat, cLat := math.Sincos(s.LatDeg * deg2rad)
	return []float64{
		s.DistKM * cLat * cLon,
		s.DistKM * cLat * sLon,
		s.DistKM * sLat,
	}
}

// Cartesian2SphericalState converts a full state (position km, velocity
// km/s) to spherical coordinates with angular rates. The rates follow from
// differentiating lon = atan2(y, x) and lat = asin(z/r); degenerate radii
// zero the speeds.
func Cartesian2SphericalState(pos, vel []float64) SphericalState {
	const tiny = 1e-30
	x, y, z := pos[0], pos[1], pos[2]
	vx, vy, vz := vel[0], vel[1], vel[2]
	rSq := x*x + y*y + z*z
	r := math.Sqrt(rSq)
	if r < tiny {
		return SphericalState{}
	}
	rxySq := x*x + y*y
	rxy := math.Sqrt(rxySq)
	out := SphericalState{Spherical: Cartesian2Spherical(pos)}
	out.DistSpeed = (x*vx + y*vy + z*vz) / r
	if rxySq >= tiny {
		out.LonSpeed = (x*vy - y*vx) / rxySq
		out.LatSpeed = (vz*rxySq - z*(x*vx+y*vy)) / (rSq * rxy)
	}
	return out
}
