package ephem

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

// testSeg describes a synthetic type-2 segment whose body moves linearly:
// position x0 + v*t (t in TDB seconds past J2000). Linear motion is exactly
// representable by two Chebyshev coefficients per axis, so evaluation can
// be checked in closed form.
type testSeg struct {
	target, center int32
	startS, endS   float64
	nrec           int
	x0, v          [3]float64
}

const testCoeffs = 4 // coefficients per axis; trailing ones are zero

// buildKernel assembles a minimal DAF/SPK byte image: one file record, one
// summary record, and contiguous segment data from word 257 on.
func buildKernel(t *testing.T, order binary.ByteOrder, segs []testSeg) []byte {
	t.Helper()
	rsize := 2 + 3*testCoeffs

	putF := func(buf []byte, off int, v float64) {
		order.PutUint64(buf[off:off+8], math.Float64bits(v))
	}

	var data []float64 // doubles from word 257 on
	type placed struct {
		startWord, endWord int32
	}
	var where []placed
	word := int32(257)
	for _, s := range segs {
		start := word
		intlen := (s.endS - s.startS) / float64(s.nrec)
		for r := 0; r < s.nrec; r++ {
			mid := s.startS + (float64(r)+0.5)*intlen
			half := intlen / 2
			rec := make([]float64, rsize)
			rec[0], rec[1] = mid, half
			for axis := 0; axis < 3; axis++ {
				rec[2+axis*testCoeffs] = s.x0[axis] + s.v[axis]*mid // c0
				rec[2+axis*testCoeffs+1] = s.v[axis] * half         // c1
			}
			data = append(data, rec...)
		}
		data = append(data, s.startS, intlen, float64(rsize), float64(s.nrec))
		word += int32(s.nrec*rsize + 4)
		where = append(where, placed{start, word - 1})
	}

	buf := make([]byte, 2*dafRecordLen+8*len(data))
	copy(buf[0:8], []byte("DAF/SPK "))
	order.PutUint32(buf[8:12], 2)   // ND
	order.PutUint32(buf[12:16], 6)  // NI
	order.PutUint32(buf[76:80], 2)  // forward summary record
	order.PutUint32(buf[80:84], 2)  // backward summary record
	if order == binary.BigEndian {
		copy(buf[88:96], []byte("BIG-IEEE"))
	} else {
		copy(buf[88:96], []byte("LTL-IEEE"))
	}

	sum := buf[dafRecordLen : 2*dafRecordLen]
	putF(sum, 0, 0)  // next
	putF(sum, 8, 0)  // prev
	putF(sum, 16, float64(len(segs)))
	for i, s := range segs {
		off := 24 + i*40
		putF(sum, off, s.startS)
		putF(sum, off+8, s.endS)
		ints := [6]int32{s.target, s.center, 1, spkDataTypeChebyshevPos, where[i].startWord, where[i].endWord}
		for j, v := range ints {
			order.PutUint32(sum[off+16+4*j:off+20+4*j], uint32(v))
		}
	}

	for i, v := range data {
		putF(buf, 2*dafRecordLen+8*i, v)
	}
	return buf
}

func singleMarsSeg() testSeg {
	return testSeg{
		target: 499, center: 4,
		startS: -1e8, endS: 1e8, nrec: 4,
		x0: [3]float64{-1.2e7, 4.5e6, 2.1e6},
		v:  [3]float64{11.5, -21.25, 3.75},
	}
}

func TestParseSPKHeaderErrors(t *testing.T) {
	if _, err := ParseSPK(make([]byte, 100)); !errors.Is(err, ErrKernelLoad) {
		t.Fatalf("truncated file should fail kernel load, got %v", err)
	}
	buf := buildKernel(t, binary.LittleEndian, []testSeg{singleMarsSeg()})
	bad := append([]byte(nil), buf...)
	copy(bad[0:8], []byte("XXXXXXXX"))
	if _, err := ParseSPK(bad); !errors.Is(err, ErrKernelLoad) {
		t.Fatalf("bad id word should fail kernel load, got %v", err)
	}
	bad = append([]byte(nil), buf...)
	copy(bad[88:96], []byte("VAX-GFLT"))
	if _, err := ParseSPK(bad); !errors.Is(err, ErrKernelLoad) {
		t.Fatalf("unsupported endianness tag should fail kernel load, got %v", err)
	}
}

func TestParseSPKBothEndians(t *testing.T) {
	seg := singleMarsSeg()
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		k, err := ParseSPK(buildKernel(t, order, []testSeg{seg}))
		if err != nil {
			t.Fatalf("%v kernel failed to parse: %v", order, err)
		}
		if len(k.Segments()) != 1 {
			t.Fatalf("%v kernel indexed %d segments", order, len(k.Segments()))
		}
		got := k.Segments()[0]
		if got.Target != 499 || got.Center != 4 || got.DataType != spkDataTypeChebyshevPos {
			t.Fatalf("%v kernel segment descriptor wrong: %+v", order, got)
		}
		sv, err := k.Evaluate(499, 4, 1e7)
		if err != nil {
			t.Fatalf("%v kernel evaluation failed: %v", order, err)
		}
		for i := 0; i < 3; i++ {
			exp := seg.x0[i] + seg.v[i]*1e7
			if !floats.EqualWithinAbs(sv.R[i], exp, 1e-6) {
				t.Fatalf("%v kernel axis %d position %f != %f", order, i, sv.R[i], exp)
			}
			if !floats.EqualWithinAbs(sv.V[i], seg.v[i], 1e-12) {
				t.Fatalf("%v kernel axis %d velocity %f != %f", order, i, sv.V[i], seg.v[i])
			}
		}
	}
}

func TestEvaluateAcrossRecords(t *testing.T) {
	seg := singleMarsSeg()
	k, err := ParseSPK(buildKernel(t, binary.LittleEndian, []testSeg{seg}))
	if err != nil {
		t.Fatal(err)
	}
	// Epochs in each of the four records, plus both interval edges.
	for _, tdbS := range []float64{-9.9e7, -5e7, -1, 0, 2.5e7, 9.99e7, seg.startS} {
		sv, err := k.Evaluate(499, 4, tdbS)
		if err != nil {
			t.Fatalf("t=%g failed: %v", tdbS, err)
		}
		for i := 0; i < 3; i++ {
			exp := seg.x0[i] + seg.v[i]*tdbS
			if !floats.EqualWithinAbs(sv.R[i], exp, 1e-5) {
				t.Fatalf("t=%g axis %d: %f != %f", tdbS, i, sv.R[i], exp)
			}
		}
	}
}

func TestEvaluateEpochOutOfRange(t *testing.T) {
	k, err := ParseSPK(buildKernel(t, binary.LittleEndian, []testSeg{singleMarsSeg()}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := k.Evaluate(499, 4, 2e8); !errors.Is(err, ErrEpochOutOfRange) {
		t.Fatalf("expected epoch out of range, got %v", err)
	}
	// End epoch is exclusive.
	if _, err := k.Evaluate(499, 4, 1e8); !errors.Is(err, ErrEpochOutOfRange) {
		t.Fatalf("end epoch should be exclusive, got %v", err)
	}
	if _, err := k.Evaluate(599, 5, 0); !errors.Is(err, ErrNoSegment) {
		t.Fatalf("expected no segment, got %v", err)
	}
}

func TestDuplicatePairRejected(t *testing.T) {
	a, b := singleMarsSeg(), singleMarsSeg()
	if _, err := ParseSPK(buildKernel(t, binary.LittleEndian, []testSeg{a, b})); !errors.Is(err, ErrKernelLoad) {
		t.Fatalf("duplicate (target, center) pair should fail load, got %v", err)
	}
}

func TestCenterFor(t *testing.T) {
	segs := []testSeg{
		{target: 4, center: 0, startS: -1e8, endS: 1e8, nrec: 2},
		singleMarsSeg(),
	}
	k, err := ParseSPK(buildKernel(t, binary.LittleEndian, segs))
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := k.CenterFor(499); !ok || c != 4 {
		t.Fatalf("CenterFor(499) = %d, %v", c, ok)
	}
	if c, ok := k.CenterFor(4); !ok || c != 0 {
		t.Fatalf("CenterFor(4) = %d, %v", c, ok)
	}
	if _, ok := k.CenterFor(899); ok {
		t.Fatal("CenterFor(899) should not resolve")
	}
}

func TestBarycenterFor(t *testing.T) {
	cases := map[int32]int32{499: 4, 399: 3, 999: 9, 301: 301, 10: 10, 0: 0, 4: 4}
	for code, exp := range cases {
		if got := BarycenterFor(code); got != exp {
			t.Fatalf("BarycenterFor(%d) = %d, expected %d", code, got, exp)
		}
	}
}

func TestRecordC0Property(t *testing.T) {
	// For every record, the position at the record midpoint is exactly c0:
	// Clenshaw(c, 0) must reproduce it bit for bit.
	seg := singleMarsSeg()
	k, err := ParseSPK(buildKernel(t, binary.LittleEndian, []testSeg{seg}))
	if err != nil {
		t.Fatal(err)
	}
	s := k.Segments()[0]
	intlen := (seg.endS - seg.startS) / float64(seg.nrec)
	for r := 0; r < seg.nrec; r++ {
		mid := seg.startS + (float64(r)+0.5)*intlen
		sv, err := k.Evaluate(499, 4, mid)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			c0 := seg.x0[i] + seg.v[i]*mid
			if sv.R[i] != c0 {
				t.Fatalf("record %d axis %d: midpoint position %x != c0 %x", r, i, sv.R[i], c0)
			}
		}
	}
	if s.ncoeffs != testCoeffs {
		t.Fatalf("coefficients per axis = %d, expected %d", s.ncoeffs, testCoeffs)
	}
}
