package ephem

import (
	"testing"

	"github.com/gonum/floats"
)

func TestClenshawConstant(t *testing.T) {
	if !floats.EqualWithinAbs(Clenshaw([]float64{7}, 0.5), 7, 1e-14) {
		t.Fatal("constant polynomial should return c0")
	}
	if ClenshawDerivative([]float64{7}, 0.5) != 0 {
		t.Fatal("constant polynomial has zero derivative")
	}
	if Clenshaw(nil, 0.5) != 0 || ClenshawDerivative(nil, 0.5) != 0 {
		t.Fatal("empty coefficients should evaluate to zero")
	}
}

func TestClenshawLinear(t *testing.T) {
	a, b, s := 3.0, 5.0, 0.7
	if !floats.EqualWithinAbs(Clenshaw([]float64{a, b}, s), a+b*s, 1e-14) {
		t.Fatal("linear polynomial mismatch")
	}
	if !floats.EqualWithinAbs(ClenshawDerivative([]float64{a, b}, s), b, 1e-14) {
		t.Fatal("linear derivative should be b")
	}
}

func TestClenshawQuadraticCubic(t *testing.T) {
	// T2(s) = 2s^2 - 1, T2'(s) = 4s
	a, b, c, s := 1.0, 2.0, 3.0, 0.4
	exp := a + b*s + c*(2*s*s-1)
	if !floats.EqualWithinAbs(Clenshaw([]float64{a, b, c}, s), exp, 1e-14) {
		t.Fatal("quadratic mismatch")
	}
	if !floats.EqualWithinAbs(ClenshawDerivative([]float64{a, b, c}, s), b+4*c*s, 1e-14) {
		t.Fatal("quadratic derivative mismatch")
	}
	// T3(s) = 4s^3 - 3s, T3'(s) = 12s^2 - 3
	s = 0.6
	coeffs := []float64{1, 0, 0, 1}
	if !floats.EqualWithinAbs(Clenshaw(coeffs, s), 1+4*s*s*s-3*s, 1e-14) {
		t.Fatal("cubic mismatch")
	}
	if !floats.EqualWithinAbs(ClenshawDerivative(coeffs, s), 12*s*s-3, 1e-14) {
		t.Fatal("cubic derivative mismatch")
	}
}

func TestClenshawBoundaries(t *testing.T) {
	// T_k(1) = 1 for all k; T_k(-1) = (-1)^k.
	coeffs := []float64{2, 3, 5}
	if !floats.EqualWithinAbs(Clenshaw(coeffs, 1), 10, 1e-14) {
		t.Fatal("sum at s=1 mismatch")
	}
	if !floats.EqualWithinAbs(Clenshaw(coeffs, -1), 4, 1e-14) {
		t.Fatal("sum at s=-1 mismatch")
	}
}

func TestClenshawAtZeroIsC0MinusEven(t *testing.T) {
	// At s=0: T_0=1, T_1=0, T_2=-1, T_3=0, T_4=1...
	if got := Clenshaw([]float64{42}, 0); got != 42 {
		t.Fatalf("c0-only expansion at s=0: got %f", got)
	}
	if got := Clenshaw([]float64{42, 7}, 0); got != 42 {
		t.Fatalf("odd terms vanish at s=0: got %f", got)
	}
	if got := Clenshaw([]float64{42, 7, 5}, 0); got != 37 {
		t.Fatalf("T_2 enters with sign -1 at s=0: got %f", got)
	}
}
