package ephem

import "math"

// FundamentalArguments returns the five Delaunay arguments [l, l', F, D, Ω]
// in radians for t in Julian centuries of TDB since J2000.0 (IERS
// Conventions 2010, Table 5.2e): mean anomalies of the Moon and Sun, the
// Moon's mean argument of latitude, its mean elongation from the Sun, and
// the mean longitude of its ascending node.
func FundamentalArguments(t float64) [5]float64 {
	poly := func(a0, a1, a2, a3, a4 float64) float64 {
		return (((a4*t+a3)*t+a2)*t+a1)*t + a0
	}
	return [5]float64{
		poly(485868.249036, 1717915923.2178, 31.8792, 0.051635, -0.00024470) * arcsec2rad,
		poly(1287104.79305, 129596581.0481, -0.5532, 0.000136, -0.00001149) * arcsec2rad,
		poly(335779.526232, 1739527262.8478, -12.7512, -0.001037, 0.00000417) * arcsec2rad,
		poly(1072260.70369, 1602961601.2090, -6.3706, 0.006593, -0.00003169) * arcsec2rad,
		poly(450160.398036, -6962890.5431, 7.4722, 0.007702, -0.00005939) * arcsec2rad,
	}
}

// nutationCoeffs holds the 77 lunisolar terms of the IAU 2000B series
// (IERS Conventions 2010, Table 5.3b). Each row is
// [nl, nl', nF, nD, nΩ, S, S', C, C'] with the amplitudes in 0.1 µas.
var nutationCoeffs = [77][9]int64{
	{0, 0, 0, 0, 1, -172064161, -174666, 92052331, 9086},
	{0, 0, 2, -2, 2, -13170906, -1675, 5730336, -3015},
	{0, 0, 2, 0, 2, -2276413, -234, 978459, -485},
	{0, 0, 0, 0, 2, 2074554, 207, -897492, 470},
	{0, 1, 0, 0, 0, 1475877, -3633, 73871, -184},
	{0, 1, 2, -2, 2, -516821, 1226, 224386, -677},
	{1, 0, 0, 0, 0, 711159, 73, -6750, 0},
	{0, 0, 2, 0, 1, -387298, -367, 200728, 18},
	{1, 0, 2, 0, 2, -301461, -36, 129025, -63},
	{0, -1, 2, -2, 2, 215829, -494, -95929, 299},
	{0, 0, 2, -2, 1, 128227, 137, -68982, -9},
	{-1, 0, 2, 0, 2, 123457, 11, -53311, 32},
	{-1, 0, 0, 2, 0, 156994, 10, -1235, 0},
	{1, 0, 0, 0, 1, 63110, 63, -33228, 0},
	{-1, 0, 0, 0, 1, -57976, -63, 31429, 0},
	{-1, 0, 2, 2, 2, -59641, -11, 25543, -11},
	{1, 0, 2, 0, 1, -51613, -42, 26366, 0},
	{-2, 0, 2, 0, 1, 45893, 50, -24236, -10},
	{0, 0, 0, 2, 0, 63384, 11, -1220, 0},
	{0, 0, 2, 2, 2, -38571, -1, 16452, -11},
	{0, -2, 2, -2, 2, 32481, 0, -13870, 0},
	{-2, 0, 0, 2, 0, -47722, 0, 477, 0},
	{2, 0, 2, 0, 2, -31046, -1, 13238, -11},
	{1, 0, 2, -2, 2, 28593, 0, -12338, 10},
	{-1, 0, 2, 0, 1, 20441, 21, -10758, 0},
	{2, 0, 0, 0, 0, 29243, 0, -609, 0},
	{0, 0, 2, 0, 0, 25887, 0, -550, 0},
	{0, 1, 0, 0, 1, -14053, -25, 8551, -2},
	{-1, 0, 0, 2, 1, 15164, 10, -8001, 0},
	{0, 2, 2, -2, 2, -15794, 72, 6850, -42},
	{0, 0, -2, 2, 0, 21783, 0, -167, 0},
	{1, 0, 0, -2, 1, -12873, -10, 6953, 0},
	{0, -1, 0, 0, 1, -12654, 11, 6415, 0},
	{-1, 0, 2, 2, 1, -10204, 0, 5222, 0},
	{0, 2, 0, 0, 0, 16707, -85, 168, -1},
	{1, 0, 2, 2, 2, -7691, 0, 3268, 0},
	{-2, 0, 2, 0, 0, -11024, 0, 104, 0},
	{0, 1, 2, 0, 2, 7566, -21, -3250, 0},
	{0, 0, 2, 2, 1, -6637, -11, 3353, 0},
	{0, -1, 2, 0, 2, -7141, 21, 3070, 0},
	{0, 0, 0, 2, 1, -6302, -11, 3272, 0},
	{1, 0, 2, -2, 1, 5800, 10, -3045, 0},
	{2, 0, 2, -2, 2, 6443, 0, -2768, 0},
	{-2, 0, 0, 2, 1, -5774, -11, 3041, 0},
	{2, 0, 2, 0, 1, -5350, 0, 2695, 0},
	{0, -1, 2, -2, 1, -4752, -11, 2719, 0},
	{0, 0, 0, -2, 1, -4940, -11, 2720, 0},
	{-1, -1, 0, 2, 0, 7350, 0, -51, 0},
	{2, 0, 0, -2, 1, -4803, -11, 2556, 0},
	{1, 0, 0, 2, 0, -7677, 0, 462, 0},
	{0, 1, 2, -2, 1, 5417, 0, -2520, 0},
	{1, -1, 0, 0, 0, 6624, 0, -468, 0},
	{-2, 0, 2, 0, 2, -5433, 0, 2334, 0},
	{3, 0, 2, 0, 2, -4632, 0, 1991, 0},
	{0, -1, 0, 2, 0, 6106, 0, -167, 0},
	{1, -1, 2, 0, 2, -3593, 0, 1556, 0},
	{0, 0, 0, 1, 0, -4766, 0, 270, 0},
	{-1, -1, 2, 2, 2, -4095, 0, 1793, 0},
	{-1, 0, 2, 0, 0, 4229, 0, -101, 0},
	{0, -1, 2, 2, 2, -3372, 0, 1487, 0},
	{2, 0, 0, 0, 1, -3353, 0, 1758, 0},
	{1, 0, 2, 0, 0, -3523, 0, 246, 0},
	{1, 1, 0, 0, 0, -3613, 0, 329, 0},
	{-1, 0, 2, -2, 1, 3522, 0, -1830, 0},
	{2, 0, 0, 0, -1, 3312, 0, -1730, 0},
	{0, 0, -2, 2, 1, -3142, 0, 1704, 0},
	{0, 1, 0, 0, -1, -2927, 0, 1564, 0},
	{0, 1, 2, 0, 1, -2887, 0, 1401, 0},
	{0, -1, 2, 0, 1, 2451, 0, -1200, 0},
	{2, 0, -2, 0, 0, -2790, 0, 410, 0},
	{-1, 0, 0, 2, -1, 2145, 0, -1154, 0},
	{0, 0, 2, -2, 0, 2816, 0, 286, 0},
	{0, 1, 0, -2, 0, 2700, 0, -258, 0},
	{1, 0, 0, -1, 0, -2330, 0, -37, 0},
	{0, 0, 0, 0, 2, 2283, 0, -1039, 0},
	{1, 0, -2, 0, 0, -2321, 0, 284, 0},
	{-1, 0, 0, 1, 1, -2049, 0, 1112, 0},
}

// NutationIAU2000B returns the nutation in longitude and obliquity
// (Δψ, Δε), both in arcseconds, for t in Julian centuries of TDB since
// J2000.0. The truncated 77-term lunisolar series plus the fixed offsets
// Δψ -= 0.135 mas, Δε -= 0.388 mas approximate the full 2000A model to
// about 1 mas.
func NutationIAU2000B(t float64) (dpsi, deps float64) {
	args := FundamentalArguments(t)
	for i := range nutationCoeffs {
		row := &nutationCoeffs[i]
		arg := float64(row[0])*args[0] +
			float64(row[1])*args[1] +
			float64(row[2])*args[2] +
			float64(row[3])*args[3] +
			float64(row[4])*args[4]
		sin, cos := math.Sincos(arg)
		dpsi += (float64(row[5]) + float64(row[6])*t) * sin
		deps += (float64(row[7]) + float64(row[8])*t) * cos
	}
	// 0.1 µas units to arcseconds, then the fixed 2000B offsets.
	dpsi = dpsi*1e-7 - 0.000135
	deps = deps*1e-7 - 0.000388
	return dpsi, deps
}
