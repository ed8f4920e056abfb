package ephem

import "math"

// The lunar nodes (Rahu ascending, Ketu descending) are computed points,
// not kernel bodies. The mean node is the fifth Delaunay argument Ω; the
// true node adds short-period perturbations.

// LunarNode selects which node to compute.
type LunarNode uint8

const (
	// Rahu is the ascending (north) node.
	Rahu LunarNode = iota
	// Ketu is the descending (south) node, always Rahu + 180°.
	Ketu
)

// NodeMode selects the mean or the perturbed node position.
type NodeMode uint8

const (
	// MeanNode is the smooth polynomial motion only.
	MeanNode NodeMode = iota
	// TrueNode adds the 13-term short-period correction.
	TrueNode
)

func normalizeDeg(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// MeanRahuDeg returns the mean ascending-node ecliptic longitude in degrees
// in [0, 360) for t Julian centuries of TDB since J2000.0.
func MeanRahuDeg(t float64) float64 {
	args := FundamentalArguments(t)
	return normalizeDeg(args[4] / deg2rad)
}

// nodePerturbationDeg is the short-period correction to the node longitude:
// 13 sine terms in the Delaunay arguments (Meeus, Astronomical Algorithms
// 2nd ed., Ch. 47), amplitudes in degrees.
func nodePerturbationDeg(args [5]float64) float64 {
	terms := [13][6]float64{
		{0, 0, 0, 0, 1, -1.4979},
		{0, 0, 2, -2, 0, 0.1500},
		{0, 0, 2, 0, 0, -0.1226},
		{0, 0, 0, 0, 2, 0.1176},
		{1, 0, 0, 0, 0, -0.0801},
		{0, 1, 0, 0, 0, 0.0056},
		{0, 0, 2, 0, -2, -0.0047},
		{1, 0, 2, 0, 0, -0.0043},
		{0, 0, 2, -2, 2, 0.0040},
		{0, 1, 0, 0, -1, 0.0037},
		{0, 0, 0, 2, 0, -0.0030},
		{2, 0, 0, 0, 0, -0.0020},
		{0, 1, 2, -2, 0, 0.0015},
	}
	correction := 0.0
	for _, term := range terms {
		angle := term[0]*args[0] + term[1]*args[1] + term[2]*args[2] + term[3]*args[3] + term[4]*args[4]
		correction += term[5] * math.Sin(angle)
	}
	return correction
}

// TrueRahuDeg returns the perturbed ascending-node longitude in degrees in
// [0, 360).
func TrueRahuDeg(t float64) float64 {
	args := FundamentalArguments(t)
	return normalizeDeg(args[4]/deg2rad + nodePerturbationDeg(args))
}

// LunarNodeDeg computes the requested node longitude in degrees in [0, 360)
// for t Julian centuries of TDB since J2000.0.
func LunarNodeDeg(node LunarNode, mode NodeMode, t float64) float64 {
	var rahu float64
	if mode == TrueNode {
		rahu = TrueRahuDeg(t)
	} else {
		rahu = MeanRahuDeg(t)
	}
	if node == Ketu {
		return normalizeDeg(rahu + 180)
	}
	return rahu
}
