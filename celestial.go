package ephem

import (
	"fmt"
	"strings"
)

// Body is a celestial body addressable through the kernel chain. Codes
// follow the NAIF convention: the SSB is 0, barycenters are single digits,
// the Sun is 10, planet bodies are x99, the Moon is 301.
type Body struct {
	Name   string
	Code   int32
	Radius float64 // radius in km (equatorial for Earth, Mars and the giant planets); 0 when unused
}

// String implements the Stringer interface.
func (b Body) String() string {
	return fmt.Sprintf("%s (%d)", b.Name, b.Code)
}

// Equals returns whether the provided body is the same.
func (b Body) Equals(o Body) bool {
	return b.Code == o.Code
}

// IsSSB returns whether this body is the Solar System Barycenter sentinel.
func (b Body) IsSSB() bool {
	return b.Code == 0
}

// BodyFromString returns the body from its name.
func BodyFromString(name string) (Body, error) {
	switch strings.ToLower(name) {
	case "ssb", "solar system barycenter":
		return SSB, nil
	case "sun":
		return Sun, nil
	case "mercury":
		return Mercury, nil
	case "venus":
		return Venus, nil
	case "earth":
		return Earth, nil
	case "moon":
		return Moon, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "neptune":
		return Neptune, nil
	case "pluto":
		return Pluto, nil
	default:
		return Body{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// SSB is the Solar System Barycenter, the implicit root of every chain.
var SSB = Body{"SSB", 0, 0}

// Sun is our closest star.
var Sun = Body{"Sun", 10, 696000}

// Mercury is the smallest planet.
var Mercury = Body{"Mercury", 199, 2439.7}

// Venus is poisonous.
var Venus = Body{"Venus", 299, 6051.8}

// Earth is home.
var Earth = Body{"Earth", 399, 6378.1363}

// Moon is the only natural satellite the chain resolves.
var Moon = Body{"Moon", 301, 1737.4}

// Mars is the vacation place.
var Mars = Body{"Mars", 499, 3396.19}

// Jupiter is big.
var Jupiter = Body{"Jupiter", 599, 71492.0}

// Saturn floats and that's really cool.
var Saturn = Body{"Saturn", 699, 60268.0}

// Uranus is no joke.
var Uranus = Body{"Uranus", 799, 25559.0}

// Neptune is windy.
var Neptune = Body{"Neptune", 899, 24764.0}

// Pluto is not a planet and had that down ranking coming. It should have stayed in its lane.
var Pluto = Body{"Pluto", 999, 1151.0}
