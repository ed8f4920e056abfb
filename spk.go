package ephem

import (
	"fmt"
	"math"
	"os"
)

// spkDataTypeChebyshevPos is the only SPK data type the reader evaluates:
// Chebyshev position records, velocity derived analytically.
const spkDataTypeChebyshevPos = 2

// Segment describes one SPK segment: the state of a target body relative to
// its center body over [StartEpoch, EndEpoch), stored as fixed-length
// Chebyshev records.
type Segment struct {
	Target   int32
	Center   int32
	Frame    int32
	DataType int32
	// StartEpoch and EndEpoch bound the segment in TDB seconds past J2000.
	StartEpoch float64
	EndEpoch   float64

	startWord int32 // 1-based word address of the data block
	endWord   int32

	// Record directory, read from the last four doubles of the data block.
	init    float64 // epoch of the first record, TDB s past J2000
	intlen  float64 // record interval length, s
	rsize   int     // doubles per record
	nrec    int     // record count
	ncoeffs int     // Chebyshev coefficients per axis: (rsize-2)/3
}

// SPKKernel is a fully indexed SPK file. Immutable after load; safe for
// concurrent readers.
type SPKKernel struct {
	daf      *daf
	segments []Segment
	byTarget map[int32][]int // indices into segments
}

// LoadSPK reads and indexes an SPK kernel from a file.
func LoadSPK(path string) (*SPKKernel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrKernelLoad, path, err)
	}
	k, err := ParseSPK(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return k, nil
}

// ParseSPK indexes an SPK kernel from its raw bytes. The kernel takes
// ownership of the slice; callers must not mutate it afterwards.
func ParseSPK(data []byte) (*SPKKernel, error) {
	d, err := parseDAF(data)
	if err != nil {
		return nil, err
	}
	sums, err := d.summaries()
	if err != nil {
		return nil, err
	}
	k := &SPKKernel{daf: d, byTarget: make(map[int32][]int)}
	for _, s := range sums {
		seg := Segment{
			Target:     s.ints[0],
			Center:     s.ints[1],
			Frame:      s.ints[2],
			DataType:   s.ints[3],
			StartEpoch: s.doubles[0],
			EndEpoch:   s.doubles[1],
			startWord:  s.ints[4],
			endWord:    s.ints[5],
		}
		if seg.EndEpoch <= seg.StartEpoch {
			return nil, fmt.Errorf("%w: segment %d/%d has empty epoch interval [%g, %g)",
				ErrKernelLoad, seg.Target, seg.Center, seg.StartEpoch, seg.EndEpoch)
		}
		if seg.DataType == spkDataTypeChebyshevPos {
			// Directory: (init, intlen, rsize, n) in the last four doubles.
			var dir [4]float64
			if err := d.words(seg.endWord-3, 4, dir[:]); err != nil {
				return nil, err
			}
			seg.init = dir[0]
			seg.intlen = dir[1]
			seg.rsize = int(dir[2])
			seg.nrec = int(dir[3])
			if seg.intlen <= 0 || seg.rsize < 5 || seg.nrec < 1 {
				return nil, fmt.Errorf("%w: segment %d/%d directory (intlen=%g rsize=%d n=%d) at word %d",
					ErrKernelLoad, seg.Target, seg.Center, seg.intlen, seg.rsize, seg.nrec, seg.endWord-3)
			}
			seg.ncoeffs = (seg.rsize - 2) / 3
		}
		for _, prev := range k.byTarget[seg.Target] {
			if k.segments[prev].Center == seg.Center {
				return nil, fmt.Errorf("%w: duplicate segment for pair %d/%d", ErrKernelLoad, seg.Target, seg.Center)
			}
		}
		k.byTarget[seg.Target] = append(k.byTarget[seg.Target], len(k.segments))
		k.segments = append(k.segments, seg)
	}
	return k, nil
}

// Segments returns the segment descriptors in file order. The slice is
// owned by the kernel; callers must not modify it.
func (k *SPKKernel) Segments() []Segment {
	return k.segments
}

// CenterFor returns the center body of the first segment whose target
// matches, and whether any such segment exists.
func (k *SPKKernel) CenterFor(target int32) (int32, bool) {
	idx, ok := k.byTarget[target]
	if !ok || len(idx) == 0 {
		return 0, false
	}
	return k.segments[idx[0]].Center, true
}

// Evaluate computes the state of target relative to center at the given
// epoch (TDB seconds past J2000) from the unique segment covering it.
func (k *SPKKernel) Evaluate(target, center int32, tdbS float64) (StateVector, error) {
	var sv StateVector
	found := false
	for _, i := range k.byTarget[target] {
		seg := &k.segments[i]
		if seg.Center != center {
			continue
		}
		found = true
		if tdbS < seg.StartEpoch || tdbS >= seg.EndEpoch {
			continue
		}
		return k.evaluateSegment(seg, tdbS)
	}
	if found {
		return sv, fmt.Errorf("%w: pair %d/%d at t=%g s", ErrEpochOutOfRange, target, center, tdbS)
	}
	return sv, fmt.Errorf("%w: no segment for pair %d/%d", ErrNoSegment, target, center)
}

// evaluateSegment reads the Chebyshev record containing tdbS and evaluates
// position by Clenshaw and velocity by the derivative recurrence. The record
// index is clamped to the directory bounds, so an epoch at either edge of the
// segment resolves to the first or last record.
func (k *SPKKernel) evaluateSegment(seg *Segment, tdbS float64) (StateVector, error) {
	var sv StateVector
	if seg.DataType != spkDataTypeChebyshevPos {
		return sv, fmt.Errorf("%w: segment %d/%d has data type %d", ErrUnsupportedQuery, seg.Target, seg.Center, seg.DataType)
	}
	idx := int(math.Floor((tdbS - seg.init) / seg.intlen))
	if idx < 0 {
		idx = 0
	}
	if idx >= seg.nrec {
		idx = seg.nrec - 1
	}
	// Records fit a stack buffer for every planetary kernel in use
	// (14 coefficients per axis is 44 doubles); the hot path stays free of
	// heap allocation.
	var buf [128]float64
	record := buf[:]
	if seg.rsize > len(buf) {
		record = make([]float64, seg.rsize)
	}
	record = record[:seg.rsize]
	if err := k.daf.words(seg.startWord+int32(idx*seg.rsize), seg.rsize, record); err != nil {
		return sv, err
	}
	mid, halfSpan := record[0], record[1]
	if halfSpan <= 0 {
		return sv, fmt.Errorf("%w: segment %d/%d record %d has half span %g", ErrKernelLoad, seg.Target, seg.Center, idx, halfSpan)
	}
	s := (tdbS - mid) / halfSpan
	n := seg.ncoeffs
	for axis := 0; axis < 3; axis++ {
		coeffs := record[2+axis*n : 2+(axis+1)*n]
		sv.R[axis] = Clenshaw(coeffs, s)
		sv.V[axis] = ClenshawDerivative(coeffs, s) / halfSpan
	}
	return sv, nil
}

// BarycenterFor maps a planet body code x99 to its enclosing barycenter x
// (499 to 4, 399 to 3, ...). Codes that are not planet bodies map to
// themselves. The query engine uses this to climb the tree when a kernel
// stores the planet relative to its barycenter only.
func BarycenterFor(code int32) int32 {
	if code > 100 && code < 1000 && code%100 == 99 {
		return code / 100
	}
	return code
}
