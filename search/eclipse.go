package search

import (
	"math"

	ephem "github.com/Mr-Pental21/ctara-eph-core"
)

// A lunar eclipse is a full moon close enough to a lunar node that the
// Moon crosses Earth's shadow. The search refines full moons, then
// classifies each against the penumbral and umbral shadow radii at the
// Moon's distance. Radii use the classical geometry with the conventional
// 2% umbral enlargement for Earth's atmosphere.

// LunarEclipseType classifies how deep the Moon enters the shadow.
type LunarEclipseType uint8

const (
	// NoEclipse means the full moon misses the penumbra entirely.
	NoEclipse LunarEclipseType = iota
	// PenumbralEclipse touches only the penumbra.
	PenumbralEclipse
	// PartialEclipse enters the umbra without being swallowed.
	PartialEclipse
	// TotalEclipse is fully inside the umbra.
	TotalEclipse
)

var eclipseNames = [...]string{"none", "penumbral", "partial", "total"}

func (t LunarEclipseType) String() string {
	if int(t) < len(eclipseNames) {
		return eclipseNames[t]
	}
	return "unknown"
}

// LunarEclipse is a classified full moon.
type LunarEclipse struct {
	JDTDB float64
	Type  LunarEclipseType
	// MoonLatDeg is the Moon's ecliptic latitude at the instant of
	// opposition.
	MoonLatDeg float64
	// UmbralMagnitude is the fraction of the Moon's diameter inside the
	// umbra (negative when it misses the umbra).
	UmbralMagnitude float64
	// PenumbralMagnitude is the same fraction against the penumbra.
	PenumbralMagnitude float64
}

// umbralEnlargement is the conventional atmospheric enlargement factor.
const umbralEnlargement = 1.02

// classifyLunarEclipse runs the shadow geometry at a refined full moon.
func classifyLunarEclipse(e *ephem.Engine, jdTDB float64) (*LunarEclipse, error) {
	moon, err := e.Query(ephem.Query{Target: ephem.Moon, Observer: ephem.Earth, Frame: ephem.EclipticJ2000, EpochJD: jdTDB})
	if err != nil {
		return nil, err
	}
	sun, err := e.Query(ephem.Query{Target: ephem.Sun, Observer: ephem.Earth, Frame: ephem.EclipticJ2000, EpochJD: jdTDB})
	if err != nil {
		return nil, err
	}
	moonSph := ephem.Cartesian2Spherical(moon.R[:])
	dMoon := moonSph.DistKM
	dSun := ephem.Cartesian2Spherical(sun.R[:]).DistKM

	// Angular radii seen from Earth's center, in radians.
	moonSD := math.Asin(ephem.Moon.Radius / dMoon)
	sunSD := math.Asin(ephem.Sun.Radius / dSun)
	parallaxMoon := math.Asin(ephem.Earth.Radius / dMoon)
	parallaxSun := math.Asin(ephem.Earth.Radius / dSun)

	// Shadow radii at the Moon's distance (Chauvenet's approximation).
	umbra := umbralEnlargement*(parallaxMoon+parallaxSun) - sunSD
	penumbra := umbralEnlargement*(parallaxMoon+parallaxSun) + sunSD

	// Angular separation between the Moon's center and the shadow axis.
	// At opposition the longitudes differ by 180 degrees up to the search
	// convergence, so the latitude carries the whole offset.
	sep := math.Abs(moonSph.LatDeg) * math.Pi / 180

	ec := &LunarEclipse{
		JDTDB:              jdTDB,
		MoonLatDeg:         moonSph.LatDeg,
		UmbralMagnitude:    (umbra + moonSD - sep) / (2 * moonSD),
		PenumbralMagnitude: (penumbra + moonSD - sep) / (2 * moonSD),
	}
	switch {
	case sep+moonSD <= umbra:
		ec.Type = TotalEclipse
	case sep-moonSD < umbra:
		ec.Type = PartialEclipse
	case sep-moonSD < penumbra:
		ec.Type = PenumbralEclipse
	default:
		ec.Type = NoEclipse
	}
	return ec, nil
}

// NextLunarEclipse finds the first full moon after jdTDB that produces an
// eclipse of at least the requested depth. Full moons that miss the shadow
// are skipped; a nil result means the scan range held none.
func NextLunarEclipse(e *ephem.Engine, jdTDB float64, minType LunarEclipseType) (*LunarEclipse, error) {
	if minType == NoEclipse {
		minType = PenumbralEclipse
	}
	// Each pass refines the next full moon; at most 20 full moons (about
	// 19 months) are examined.
	jd := jdTDB
	for i := 0; i < 20; i++ {
		phase, err := NextPhase(e, FullMoon, jd)
		if err != nil {
			return nil, err
		}
		if phase == nil {
			return nil, nil
		}
		ec, err := classifyLunarEclipse(e, phase.JDTDB)
		if err != nil {
			return nil, err
		}
		if ec.Type >= minType {
			return ec, nil
		}
		jd = phase.JDTDB + 1
	}
	return nil, nil
}

// LunarEclipses classifies every full moon in [jd0, jd1] and returns the
// ones reaching at least minType, ascending.
func LunarEclipses(e *ephem.Engine, jd0, jd1 float64, minType LunarEclipseType) ([]LunarEclipse, error) {
	if minType == NoEclipse {
		minType = PenumbralEclipse
	}
	phases, err := Phases(e, FullMoon, jd0, jd1)
	if err != nil {
		return nil, err
	}
	var out []LunarEclipse
	for _, p := range phases {
		ec, err := classifyLunarEclipse(e, p.JDTDB)
		if err != nil {
			return nil, err
		}
		if ec.Type >= minType {
			out = append(out, *ec)
		}
	}
	return out, nil
}
