package ephem

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// A DAF (Double-precision Array File) is NAIF's binary container format.
// The file is a sequence of 1024-byte records: a self-describing file
// record, a doubly linked list of summary records carrying the segment
// descriptors, and the segment data itself addressed in 1-based 8-byte
// words. The header declares its own endianness; every multi-byte read
// below honours the detected byte order.
const dafRecordLen = 1024

// daf is a parsed DAF container: the raw bytes plus the decoded file record.
// The byte order is resolved once at load so the evaluation hot path stays
// branch-free.
type daf struct {
	data  []byte
	order binary.ByteOrder
	nd    int32 // doubles per summary (must be 2 for SPK)
	ni    int32 // ints per summary (must be 6 for SPK)
	fward int32 // first summary record, 1-based
	bward int32 // last summary record, 1-based
}

// dafSummary is one raw segment descriptor: nd doubles followed by ni
// signed 32-bit integers bit-packed into the remaining double slots.
type dafSummary struct {
	doubles [2]float64
	ints    [6]int32
}

func parseDAF(data []byte) (*daf, error) {
	if len(data) < dafRecordLen {
		return nil, fmt.Errorf("%w: file record truncated at %d bytes", ErrKernelLoad, len(data))
	}
	if !bytes.HasPrefix(data, []byte("DAF/")) {
		return nil, fmt.Errorf("%w: identifier word %q at offset 0 is not a DAF", ErrKernelLoad, string(data[0:8]))
	}
	var order binary.ByteOrder
	switch tag := string(data[88:96]); tag {
	case "LTL-IEEE":
		order = binary.LittleEndian
	case "BIG-IEEE":
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: unsupported format tag %q at offset 88", ErrKernelLoad, tag)
	}
	d := &daf{
		data:  data,
		order: order,
		nd:    int32(order.Uint32(data[8:12])),
		ni:    int32(order.Uint32(data[12:16])),
		fward: int32(order.Uint32(data[76:80])),
		bward: int32(order.Uint32(data[80:84])),
	}
	if d.nd != 2 || d.ni != 6 {
		return nil, fmt.Errorf("%w: summary shape ND=%d NI=%d at offset 8, want ND=2 NI=6", ErrKernelLoad, d.nd, d.ni)
	}
	if d.fward < 1 || int(d.fward)*dafRecordLen > len(data) {
		return nil, fmt.Errorf("%w: forward summary record %d at offset 76 out of file", ErrKernelLoad, d.fward)
	}
	return d, nil
}

// words copies n consecutive doubles starting at the 1-based word address.
func (d *daf) words(addr int32, n int, out []float64) error {
	off := (int(addr) - 1) * 8
	if addr < 1 || off+8*n > len(d.data) {
		return fmt.Errorf("%w: word range [%d, %d) out of file (%d bytes)", ErrKernelLoad, addr, int(addr)+n, len(d.data))
	}
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(d.order.Uint64(d.data[off+8*i : off+8*i+8]))
	}
	return nil
}

// summaries walks the doubly linked summary records and decodes every
// descriptor. The three control doubles at the head of each record are
// (next, prev, count); the packed integers are recovered by an explicit
// byte copy, never by pointer aliasing, in the file's own byte order.
func (d *daf) summaries() ([]dafSummary, error) {
	var out []dafSummary
	seen := make(map[int32]bool)
	for rec := d.fward; rec != 0; {
		if seen[rec] {
			return nil, fmt.Errorf("%w: summary record cycle at record %d", ErrKernelLoad, rec)
		}
		seen[rec] = true
		base := (int(rec) - 1) * dafRecordLen
		if base+dafRecordLen > len(d.data) {
			return nil, fmt.Errorf("%w: summary record %d out of file", ErrKernelLoad, rec)
		}
		record := d.data[base : base+dafRecordLen]
		next := math.Float64frombits(d.order.Uint64(record[0:8]))
		nsum := math.Float64frombits(d.order.Uint64(record[16:24]))
		n := int(nsum)
		// ND doubles + NI int32s packed two per double: 5 doubles each.
		const sumLen = 5 * 8
		if 24+n*sumLen > dafRecordLen {
			return nil, fmt.Errorf("%w: summary record %d declares %d summaries", ErrKernelLoad, rec, n)
		}
		for i := 0; i < n; i++ {
			raw := record[24+i*sumLen : 24+(i+1)*sumLen]
			var s dafSummary
			s.doubles[0] = math.Float64frombits(d.order.Uint64(raw[0:8]))
			s.doubles[1] = math.Float64frombits(d.order.Uint64(raw[8:16]))
			for j := 0; j < 6; j++ {
				s.ints[j] = int32(d.order.Uint32(raw[16+4*j : 20+4*j]))
			}
			out = append(out, s)
		}
		rec = int32(next)
	}
	return out, nil
}
