package ephem

// GeneralPrecessionArcsec returns the IAU 2006 general precession in
// ecliptic longitude p_A, in arcseconds, for t in Julian centuries of TDB
// since J2000.0 (Capitaine, Wallace & Chapront 2003, Table 1). Positive
// means the equinox has moved westward. The dominant linear term is
// 5028.796195 arcsec per century.
func GeneralPrecessionArcsec(t float64) float64 {
	return ((((-0.0000000383*t-0.000023857)*t+0.00007964)*t+1.1054348)*t + 5028.796195) * t
}

// GeneralPrecessionDeg returns p_A in degrees.
func GeneralPrecessionDeg(t float64) float64 {
	return GeneralPrecessionArcsec(t) / 3600
}
