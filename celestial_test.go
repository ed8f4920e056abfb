package ephem

import "testing"

func TestBodyCodes(t *testing.T) {
	codes := map[string]int32{
		"SSB": 0, "Sun": 10, "Mercury": 199, "Venus": 299, "Earth": 399,
		"Moon": 301, "Mars": 499, "Jupiter": 599, "Saturn": 699,
		"Uranus": 799, "Neptune": 899, "Pluto": 999,
	}
	for name, code := range codes {
		b, err := BodyFromString(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if b.Code != code {
			t.Fatalf("%s code = %d, expected %d", name, b.Code, code)
		}
		if b.Name != name {
			t.Fatalf("%s round tripped to %s", name, b.Name)
		}
	}
	if _, err := BodyFromString("Vulcan"); err == nil {
		t.Fatal("unknown body should fail")
	}
}

func TestBodyPredicates(t *testing.T) {
	if !SSB.IsSSB() || Earth.IsSSB() {
		t.Fatal("IsSSB wrong")
	}
	if !Mars.Equals(Mars) || Mars.Equals(Earth) {
		t.Fatal("Equals wrong")
	}
	if Mars.String() != "Mars (499)" {
		t.Fatalf("String() = %s", Mars.String())
	}
}

func TestBodyRadii(t *testing.T) {
	// The solar radius feeds the dynamic semidiameter in rise/set search.
	if Sun.Radius != 696000 {
		t.Fatalf("Sun radius = %f", Sun.Radius)
	}
	if Earth.Radius <= 6000 || Earth.Radius >= 7000 {
		t.Fatalf("Earth radius = %f", Earth.Radius)
	}
}
