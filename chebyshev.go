package ephem

// Clenshaw evaluates a Chebyshev expansion sum(c_k * T_k(s)) by the Clenshaw
// backward recurrence. s must be the normalized time in [-1, 1]; behaviour
// outside that range is numerically continuous but unspecified. The backward
// recurrence avoids the cancellation the direct sum suffers near s = ±1.
func Clenshaw(coeffs []float64, s float64) float64 {
	n := len(coeffs)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return coeffs[0]
	}
	var bk1, bk2 float64 // b_{k+1}, b_{k+2}
	twoS := 2 * s
	for k := n - 1; k >= 1; k-- {
		bk := twoS*bk1 - bk2 + coeffs[k]
		bk2 = bk1
		bk1 = bk
	}
	return s*bk1 - bk2 + coeffs[0]
}

// ClenshawDerivative evaluates sum(c_k * T'_k(s)) via the forward recurrence
//
//	T'_0 = 0;  T'_1 = 1;  T'_k = 2 T_{k-1} + 2 s T'_{k-1} - T'_{k-2}
//
// tracking T_k alongside. Velocity derived this way keeps the full precision
// of the coefficients; finite-differencing the position would not.
func ClenshawDerivative(coeffs []float64, s float64) float64 {
	n := len(coeffs)
	if n <= 1 {
		return 0
	}
	twoS := 2 * s
	tPrev2, dtPrev2 := 1.0, 0.0 // T_0, T'_0
	tPrev1, dtPrev1 := s, 1.0   // T_1, T'_1
	result := coeffs[1]         // c_1 * T'_1
	for _, ck := range coeffs[2:] {
		tk := twoS*tPrev1 - tPrev2
		dtk := 2*tPrev1 + twoS*dtPrev1 - dtPrev2
		result += ck * dtk
		tPrev2, tPrev1 = tPrev1, tk
		dtPrev2, dtPrev1 = dtPrev1, dtk
	}
	return result
}
