package ephem

import "fmt"

// Ayanamsha is the angular offset between the tropical zodiac (anchored to
// the precessing equinox) and a sidereal zodiac (anchored to the fixed
// stars). Each supported system reduces to a single parameter: its value at
// J2000.0. The value at any other epoch adds the accumulated IAU 2006
// general precession; the TrueLahiri variant further adds the nutation in
// longitude.
type AyanamshaSystem uint8

const (
	// Lahiri (Chitrapaksha): Spica at 0° Libra sidereal, the Indian
	// Calendar Reform Committee standard.
	Lahiri AyanamshaSystem = iota
	// TrueLahiri uses the Lahiri anchor with the true (nutation-corrected)
	// equinox instead of the mean one.
	TrueLahiri
	// KP is the Krishnamurti Paddhati sub-lord system.
	KP
	// Raman is B.V. Raman's system, zero year near 397 CE.
	Raman
	// FaganBradley is the primary Western sidereal system.
	FaganBradley
	// PushyaPaksha puts delta Cancri at 106° sidereal.
	PushyaPaksha
	// RohiniPaksha puts Aldebaran at 15°47' Taurus.
	RohiniPaksha
	// DeLuce is Robert DeLuce's system.
	DeLuce
	// DjwalKhul is the esoteric Alice Bailey tradition.
	DjwalKhul
	// Hipparchos derives from Hipparchus' observations.
	Hipparchos
	// Sassanian is the Sassanid-era Persian tradition.
	Sassanian
	// DevaDutta ayanamsha.
	DevaDutta
	// UshaShashi ayanamsha.
	UshaShashi
	// Yukteshwar is from "The Holy Science".
	Yukteshwar
	// JnBhasin ayanamsha.
	JnBhasin
	// ChandraHari ayanamsha.
	ChandraHari
	// Jagganatha ayanamsha.
	Jagganatha
	// SuryaSiddhanta back-computes the ancient treatise with IAU precession.
	SuryaSiddhanta
	// GalacticCenter0Sag puts the galactic center at 0° Sagittarius.
	GalacticCenter0Sag
	// Aldebaran15Tau puts Aldebaran at 15° Taurus.
	Aldebaran15Tau

	numAyanamshaSystems
)

// ayanamshaRefJ2000 holds each system's reference value at J2000.0 in
// degrees, indexed by AyanamshaSystem.
var ayanamshaRefJ2000 = [numAyanamshaSystems]float64{
	Lahiri:             23.853,
	TrueLahiri:         23.853,
	KP:                 23.850,
	Raman:              22.370,
	FaganBradley:       24.736,
	PushyaPaksha:       21.000,
	RohiniPaksha:       24.087,
	DeLuce:             21.619,
	DjwalKhul:          22.883,
	Hipparchos:         21.176,
	Sassanian:          19.765,
	DevaDutta:          22.474,
	UshaShashi:         20.103,
	Yukteshwar:         22.376,
	JnBhasin:           22.376,
	ChandraHari:        23.250,
	Jagganatha:         23.250,
	SuryaSiddhanta:     22.459,
	GalacticCenter0Sag: 26.860,
	Aldebaran15Tau:     24.870,
}

var ayanamshaNames = [numAyanamshaSystems]string{
	"Lahiri", "TrueLahiri", "KP", "Raman", "FaganBradley", "PushyaPaksha",
	"RohiniPaksha", "DeLuce", "DjwalKhul", "Hipparchos", "Sassanian",
	"DevaDutta", "UshaShashi", "Yukteshwar", "JnBhasin", "ChandraHari",
	"Jagganatha", "SuryaSiddhanta", "GalacticCenter0Sag", "Aldebaran15Tau",
}

func (s AyanamshaSystem) String() string {
	if s >= numAyanamshaSystems {
		return fmt.Sprintf("AyanamshaSystem(%d)", uint8(s))
	}
	return ayanamshaNames[s]
}

// ReferenceJ2000Deg returns the system's ayanamsha at J2000.0 in degrees.
func (s AyanamshaSystem) ReferenceJ2000Deg() float64 {
	return ayanamshaRefJ2000[s]
}

// UsesTrueEquinox reports whether the system measures from the true
// (nutation-corrected) equinox. Only TrueLahiri does.
func (s AyanamshaSystem) UsesTrueEquinox() bool {
	return s == TrueLahiri
}

// AllAyanamshaSystems lists every supported system in code order.
func AllAyanamshaSystems() []AyanamshaSystem {
	out := make([]AyanamshaSystem, numAyanamshaSystems)
	for i := range out {
		out[i] = AyanamshaSystem(i)
	}
	return out
}

// AyanamshaMeanDeg returns the mean ayanamsha in degrees at t Julian
// centuries of TDB since J2000.0:
//
//	ayanamsha(t) = reference_J2000 + p_A(t)/3600
func AyanamshaMeanDeg(s AyanamshaSystem, t float64) float64 {
	return s.ReferenceJ2000Deg() + GeneralPrecessionDeg(t)
}

// AyanamshaTrueDeg returns the ayanamsha with the nutation in longitude
// applied for systems anchored to the true equinox. dpsiArcsec comes from
// NutationIAU2000B; it is ignored for mean-equinox systems.
func AyanamshaTrueDeg(s AyanamshaSystem, t, dpsiArcsec float64) float64 {
	mean := AyanamshaMeanDeg(s, t)
	if s.UsesTrueEquinox() {
		return mean + dpsiArcsec/3600
	}
	return mean
}
