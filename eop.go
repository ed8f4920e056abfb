package ephem

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// EOPTable holds daily DUT1 = UT1-UTC values parsed from the IERS
// finals2000A fixed-width format, ascending by MJD. Prediction rows are
// retained as usable entries. Immutable after load.
type EOPTable struct {
	mjd  []float64
	dut1 []float64
}

// LoadEOP parses an IERS finals2000A file from disk.
func LoadEOP(path string) (*EOPTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrKernelLoad, path, err)
	}
	t, err := ParseEOP(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseEOP parses finals2000A content. Per row (1-based byte columns): MJD
// at 8-15 (F8.2), DUT1 at 59-68 (F10.7). Rows with blank or malformed
// fields are skipped without aborting the parse.
func ParseEOP(content string) (*EOPTable, error) {
	t := &EOPTable{}
	for _, line := range strings.Split(content, "\n") {
		if len(line) < 68 {
			continue
		}
		mjd, err := strconv.ParseFloat(strings.TrimSpace(line[7:15]), 64)
		if err != nil {
			continue
		}
		dut1, err := strconv.ParseFloat(strings.TrimSpace(line[58:68]), 64)
		if err != nil {
			continue
		}
		t.mjd = append(t.mjd, mjd)
		t.dut1 = append(t.dut1, dut1)
	}
	if len(t.mjd) == 0 {
		return nil, fmt.Errorf("%w: no usable DUT1 rows", ErrKernelLoad)
	}
	if !sort.Float64sAreSorted(t.mjd) {
		sort.Sort(byMJD{t})
	}
	return t, nil
}

type byMJD struct{ t *EOPTable }

func (b byMJD) Len() int           { return len(b.t.mjd) }
func (b byMJD) Less(i, j int) bool { return b.t.mjd[i] < b.t.mjd[j] }
func (b byMJD) Swap(i, j int) {
	b.t.mjd[i], b.t.mjd[j] = b.t.mjd[j], b.t.mjd[i]
	b.t.dut1[i], b.t.dut1[j] = b.t.dut1[j], b.t.dut1[i]
}

// Range returns the first and last MJD covered by the table.
func (t *EOPTable) Range() (first, last float64) {
	return t.mjd[0], t.mjd[len(t.mjd)-1]
}

// DUT1 returns UT1-UTC in seconds at the given MJD, linearly interpolated
// between daily entries (including across gaps, up to the declared range).
// MJD values outside the table fail; there is no silent dut1=0 fallback.
func (t *EOPTable) DUT1(mjd float64) (float64, error) {
	first, last := t.Range()
	if mjd < first || mjd > last {
		return 0, fmt.Errorf("%w: MJD %g outside [%g, %g]", ErrEopOutOfRange, mjd, first, last)
	}
	i := sort.SearchFloat64s(t.mjd, mjd)
	if i < len(t.mjd) && t.mjd[i] == mjd {
		return t.dut1[i], nil
	}
	// t.mjd[i-1] < mjd < t.mjd[i]
	m0, m1 := t.mjd[i-1], t.mjd[i]
	d0, d1 := t.dut1[i-1], t.dut1[i]
	frac := (mjd - m0) / (m1 - m0)
	return d0 + frac*(d1-d0), nil
}

// UTCToUT1JD converts a UTC Julian Date to a UT1 Julian Date:
// jd_ut1 = jd_utc + dut1/86400.
func (t *EOPTable) UTCToUT1JD(jdUTC float64) (float64, error) {
	dut1, err := t.DUT1(jdUTC - 2400000.5)
	if err != nil {
		return 0, err
	}
	return jdUTC + dut1/SecondsPerDay, nil
}
