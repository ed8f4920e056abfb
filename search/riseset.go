package search

import (
	"fmt"
	"math"

	ephem "github.com/Mr-Pental21/ctara-eph-core"
)

const (
	// riseSetMaxIterations bounds the refinement loop; it converges to
	// ~0.1 s well inside this.
	riseSetMaxIterations = 5
	// riseSetConvergenceDays is ~0.086 s.
	riseSetConvergenceDays = 1e-6
	// earthRadiusM is the mean Earth radius for the geometric dip.
	earthRadiusM = 6371000.0
	// standardRefractionArcmin is the conventional horizontal refraction.
	standardRefractionArcmin = 34.0
	// siderealRateRad is the hour-angle advance in rad per UT1 day.
	siderealRateRad = 2 * math.Pi * 1.00273781191135448
)

// Site is an observer location on Earth's surface.
type Site struct {
	Name string
	// LatΦ and Longθ are stored in radians! Longitude is east positive.
	LatΦ, Longθ float64
	// Altitude is meters above mean sea level.
	Altitude float64
}

// NewSite builds a site from degrees and meters, validating physical range.
func NewSite(name string, latDeg, longDeg, altitudeM float64) (Site, error) {
	if latDeg < -90 || latDeg > 90 {
		return Site{}, fmt.Errorf("%w: latitude %g outside [-90, 90]", ephem.ErrInvalidLocation, latDeg)
	}
	if longDeg < -180 || longDeg > 360 {
		return Site{}, fmt.Errorf("%w: longitude %g outside [-180, 360]", ephem.ErrInvalidLocation, longDeg)
	}
	if altitudeM < -500 || altitudeM > 15000 {
		return Site{}, fmt.Errorf("%w: altitude %g m outside [-500, 15000]", ephem.ErrInvalidLocation, altitudeM)
	}
	if longDeg > 180 {
		longDeg -= 360
	}
	return Site{Name: name, LatΦ: latDeg * math.Pi / 180, Longθ: longDeg * math.Pi / 180, Altitude: altitudeM}, nil
}

// LongitudeDeg returns the east longitude in degrees.
func (s Site) LongitudeDeg() float64 { return s.Longθ * 180 / math.Pi }

// RiseSetEvent is the solar event searched for.
type RiseSetEvent uint8

const (
	// Sunrise is the upper limb reaching the horizon, with refraction.
	Sunrise RiseSetEvent = iota
	// Sunset is the upper limb leaving the horizon.
	Sunset
	// CivilDawn is the Sun's center at -6°.
	CivilDawn
	// CivilDusk is the Sun's center at -6°.
	CivilDusk
	// NauticalDawn is the Sun's center at -12°.
	NauticalDawn
	// NauticalDusk is the Sun's center at -12°.
	NauticalDusk
	// AstronomicalDawn is the Sun's center at -18°.
	AstronomicalDawn
	// AstronomicalDusk is the Sun's center at -18°.
	AstronomicalDusk
)

var riseSetNames = [...]string{
	"sunrise", "sunset", "civil dawn", "civil dusk",
	"nautical dawn", "nautical dusk", "astronomical dawn", "astronomical dusk",
}

func (e RiseSetEvent) String() string {
	if int(e) < len(riseSetNames) {
		return riseSetNames[e]
	}
	return fmt.Sprintf("RiseSetEvent(%d)", uint8(e))
}

// IsRising reports whether this is a morning event.
func (e RiseSetEvent) IsRising() bool {
	switch e {
	case Sunrise, CivilDawn, NauticalDawn, AstronomicalDawn:
		return true
	}
	return false
}

// isSunEvent reports whether refraction/semidiameter/dip apply (sunrise and
// sunset) rather than a fixed twilight depression.
func (e RiseSetEvent) isSunEvent() bool {
	return e == Sunrise || e == Sunset
}

// depressionDeg is the twilight depression below the horizon. Zero for
// sunrise/sunset, whose target altitude is assembled by the config.
func (e RiseSetEvent) depressionDeg() float64 {
	switch e {
	case CivilDawn, CivilDusk:
		return 6
	case NauticalDawn, NauticalDusk:
		return 12
	case AstronomicalDawn, AstronomicalDusk:
		return 18
	}
	return 0
}

// SunLimb selects which part of the solar disk defines the event.
type SunLimb uint8

const (
	// UpperLimb is the conventional definition.
	UpperLimb SunLimb = iota
	// CenterLimb uses the disk center.
	CenterLimb
	// LowerLimb uses the lower edge.
	LowerLimb
)

// RiseSetConfig tunes the horizon model.
type RiseSetConfig struct {
	// UseRefraction applies the standard 34' horizontal refraction.
	UseRefraction bool
	// Limb selects the disk reference for sunrise/sunset.
	Limb SunLimb
	// AltitudeDip applies the geometric horizon dip √(2h/R) for elevated
	// sites.
	AltitudeDip bool
}

// DefaultRiseSetConfig is refraction on, upper limb, dip on.
func DefaultRiseSetConfig() RiseSetConfig {
	return RiseSetConfig{UseRefraction: true, Limb: UpperLimb, AltitudeDip: true}
}

// targetAltitudeDeg assembles the Sun-center altitude defining the event:
// -(R + S)/60 - dip for sunrise/sunset, the fixed depression for twilight.
// S is the solar semidiameter in arcminutes, computed dynamically from the
// Sun-observer distance by the caller.
func (c RiseSetConfig) targetAltitudeDeg(event RiseSetEvent, semidiameterArcmin, altitudeM float64) float64 {
	if !event.isSunEvent() {
		return -event.depressionDeg()
	}
	refraction := 0.0
	if c.UseRefraction {
		refraction = standardRefractionArcmin
	}
	var sd float64
	switch c.Limb {
	case UpperLimb:
		sd = semidiameterArcmin
	case LowerLimb:
		sd = -semidiameterArcmin
	}
	h0 := -(refraction + sd) / 60
	if c.AltitudeDip && altitudeM > 0 {
		dipRad := math.Sqrt(2 * altitudeM / earthRadiusM)
		h0 -= dipRad * 180 / math.Pi
	}
	return h0
}

// RiseSetKind tags the outcome: an event epoch, or a polar day/night where
// the Sun never reaches the target altitude. The polar cases are results,
// not errors.
type RiseSetKind uint8

const (
	// EventFound carries a refined epoch.
	EventFound RiseSetKind = iota
	// NeverRises is polar night for this event and date.
	NeverRises
	// NeverSets is midnight sun for this event and date.
	NeverSets
)

// RiseSetResult is the outcome of one rise/set computation.
type RiseSetResult struct {
	Kind  RiseSetKind
	Event RiseSetEvent
	// JDTDB is the refined event epoch, valid when Kind == EventFound.
	JDTDB float64
}

// ApproxLocalNoonJD estimates the UTC JD of local solar noon from the 0h UT
// JD of the date and the site's east longitude in degrees.
func ApproxLocalNoonJD(jdUTMidnight, longitudeDeg float64) float64 {
	return jdUTMidnight + 0.5 - longitudeDeg/360
}

// sunRADecDist returns the Sun's geocentric RA and declination in radians
// and its distance in km at a TDB Julian Date.
func sunRADecDist(e *ephem.Engine, jdTDB float64) (ra, dec, distKM float64, err error) {
	sv, err := e.Query(ephem.Query{Target: ephem.Sun, Observer: ephem.Earth, Frame: ephem.ICRF, EpochJD: jdTDB})
	if err != nil {
		return 0, 0, 0, err
	}
	sph := ephem.Cartesian2Spherical(sv.R[:])
	return sph.LonDeg * math.Pi / 180, sph.LatDeg * math.Pi / 180, sph.DistKM, nil
}

// solarSemidiameterArcmin derives the angular semidiameter from the
// Sun-observer distance; it swings ~15.7' to ~16.3' over the year.
func solarSemidiameterArcmin(distKM float64) float64 {
	return math.Asin(ephem.Sun.Radius/distKM) * 180 / math.Pi * 60
}

func wrapPlusMinusPi(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}

// RiseSet computes one solar event for the site on the solar day anchored
// at jdUTCNoon (use ApproxLocalNoonJD). It needs the engine's leap-second
// kernel and EOP table; the iteration re-queries the Sun and the sidereal
// time until the hour-angle correction falls under ~0.1 s.
func RiseSet(e *ephem.Engine, site Site, event RiseSetEvent, jdUTCNoon float64, cfg RiseSetConfig) (RiseSetResult, error) {
	eop := e.EOP()
	if eop == nil {
		return RiseSetResult{}, fmt.Errorf("%w: rise/set requires an EOP table for UT1", ephem.ErrInvalidSearchConfig)
	}
	lsk := e.LeapSeconds()
	φ := site.LatΦ

	utcToTDBJD := func(jdUTC float64) (float64, error) {
		tdbS, err := lsk.UTCToTDB(ephem.JDToTDBSeconds(jdUTC))
		if err != nil {
			return 0, err
		}
		return ephem.TDBSecondsToJD(tdbS), nil
	}

	// Hour angle of the Sun at a UTC instant, normalized to [-π, π).
	sunHourAngle := func(jdUTC, ra float64) (float64, error) {
		jdUT1, err := eop.UTCToUT1JD(jdUTC)
		if err != nil {
			return 0, err
		}
		lst := ephem.LST(ephem.GMST(jdUT1), site.Longθ)
		return wrapPlusMinusPi(lst - ra), nil
	}

	jdTDBNoon, err := utcToTDBJD(jdUTCNoon)
	if err != nil {
		return RiseSetResult{}, err
	}
	ra, dec, dist, err := sunRADecDist(e, jdTDBNoon)
	if err != nil {
		return RiseSetResult{}, err
	}
	h0 := cfg.targetAltitudeDeg(event, solarSemidiameterArcmin(dist), site.Altitude) * math.Pi / 180

	cosH0 := (math.Sin(h0) - math.Sin(φ)*math.Sin(dec)) / (math.Cos(φ) * math.Cos(dec))
	if cosH0 > 1 {
		return RiseSetResult{Kind: NeverRises, Event: event}, nil
	}
	if cosH0 < -1 {
		return RiseSetResult{Kind: NeverSets, Event: event}, nil
	}
	H0 := math.Acos(cosH0)

	// Transit correction from the hour angle at noon, then the first event
	// estimate: transit -H0/rate for rising, +H0/rate for setting.
	haNoon, err := sunHourAngle(jdUTCNoon, ra)
	if err != nil {
		return RiseSetResult{}, err
	}
	jdUTCTransit := jdUTCNoon - haNoon/siderealRateRad
	jdUTCEvent := jdUTCTransit + H0/siderealRateRad
	if event.IsRising() {
		jdUTCEvent = jdUTCTransit - H0/siderealRateRad
	}

	for i := 0; i < riseSetMaxIterations; i++ {
		jdTDBEvent, err := utcToTDBJD(jdUTCEvent)
		if err != nil {
			return RiseSetResult{}, err
		}
		raI, decI, distI, err := sunRADecDist(e, jdTDBEvent)
		if err != nil {
			return RiseSetResult{}, err
		}
		h0I := cfg.targetAltitudeDeg(event, solarSemidiameterArcmin(distI), site.Altitude) * math.Pi / 180
		cosHI := (math.Sin(h0I) - math.Sin(φ)*math.Sin(decI)) / (math.Cos(φ) * math.Cos(decI))
		if cosHI > 1 {
			return RiseSetResult{Kind: NeverRises, Event: event}, nil
		}
		if cosHI < -1 {
			return RiseSetResult{Kind: NeverSets, Event: event}, nil
		}
		haTarget := math.Acos(cosHI)
		if event.IsRising() {
			haTarget = -haTarget
		}
		haActual, err := sunHourAngle(jdUTCEvent, raI)
		if err != nil {
			return RiseSetResult{}, err
		}
		correction := wrapPlusMinusPi(haTarget-haActual) / siderealRateRad
		jdUTCEvent += correction
		if math.Abs(correction) < riseSetConvergenceDays {
			break
		}
	}

	jdTDBFinal, err := utcToTDBJD(jdUTCEvent)
	if err != nil {
		return RiseSetResult{}, err
	}
	return RiseSetResult{Kind: EventFound, Event: event, JDTDB: jdTDBFinal}, nil
}

// AllDayEvents computes the eight solar events of one day in chronological
// order: astronomical, nautical, civil dawn, sunrise, sunset, then the
// dusks. Polar outcomes are reported per event, not as failures.
func AllDayEvents(e *ephem.Engine, site Site, jdUTCNoon float64, cfg RiseSetConfig) ([]RiseSetResult, error) {
	order := []RiseSetEvent{
		AstronomicalDawn, NauticalDawn, CivilDawn, Sunrise,
		Sunset, CivilDusk, NauticalDusk, AstronomicalDusk,
	}
	results := make([]RiseSetResult, 0, len(order))
	for _, event := range order {
		r, err := RiseSet(e, site, event, jdUTCNoon, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
