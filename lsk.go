package ephem

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// LeapSeconds is a parsed NAIF leap-second text kernel: the cumulative
// TAI-UTC table plus the four constants of the TDB periodic term. Immutable
// after load.
type LeapSeconds struct {
	deltaTA float64 // TT - TAI, seconds (32.184)
	k       float64 // amplitude of the dominant TDB-TT term, s
	eb      float64 // eccentricity of the Earth-Moon barycenter orbit
	m0, m1  float64 // mean anomaly at J2000 (rad) and rate (rad/s)
	// Leap table: (epoch in seconds past J2000 on the UTC scale, cumulative
	// TAI-UTC at and after that epoch), ascending.
	table []leapEntry
}

type leapEntry struct {
	epochS  float64
	deltaAT float64
}

// LoadLeapSeconds parses a leap-second kernel from a file.
func LoadLeapSeconds(path string) (*LeapSeconds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrKernelLoad, path, err)
	}
	l, err := ParseLeapSeconds(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// ParseLeapSeconds parses the text of a leap-second kernel. Only the
// assignments between \begindata and \begintext markers are read; values may
// use the Fortran D exponent and @YYYY-MON-DD date literals.
func ParseLeapSeconds(content string) (*LeapSeconds, error) {
	pool, err := parseKernelPool(content)
	if err != nil {
		return nil, err
	}
	scalar := func(key string) (float64, error) {
		vals, ok := pool[key]
		if !ok || len(vals) == 0 {
			return 0, fmt.Errorf("%w: missing %s", ErrKernelLoad, key)
		}
		return vals[0], nil
	}
	l := &LeapSeconds{}
	if l.deltaTA, err = scalar("DELTET/DELTA_T_A"); err != nil {
		return nil, err
	}
	if l.k, err = scalar("DELTET/K"); err != nil {
		return nil, err
	}
	if l.eb, err = scalar("DELTET/EB"); err != nil {
		return nil, err
	}
	m := pool["DELTET/M"]
	if len(m) < 2 {
		return nil, fmt.Errorf("%w: DELTET/M needs 2 values, have %d", ErrKernelLoad, len(m))
	}
	l.m0, l.m1 = m[0], m[1]
	deltaAT := pool["DELTET/DELTA_AT"]
	if len(deltaAT) == 0 || len(deltaAT)%2 != 0 {
		return nil, fmt.Errorf("%w: DELTET/DELTA_AT needs (offset, epoch) pairs, have %d values", ErrKernelLoad, len(deltaAT))
	}
	for i := 0; i < len(deltaAT); i += 2 {
		l.table = append(l.table, leapEntry{epochS: deltaAT[i+1], deltaAT: deltaAT[i]})
	}
	for i := 1; i < len(l.table); i++ {
		if l.table[i].epochS <= l.table[i-1].epochS {
			return nil, fmt.Errorf("%w: DELTET/DELTA_AT epochs not ascending at pair %d", ErrKernelLoad, i)
		}
	}
	return l, nil
}

// deltaAT returns the cumulative TAI-UTC in effect at the given UTC epoch
// (seconds past J2000 on the UTC scale).
func (l *LeapSeconds) deltaAT(utcS float64) (float64, error) {
	if len(l.table) == 0 || utcS < l.table[0].epochS {
		return 0, fmt.Errorf("%w: UTC %g s predates the leap-second table", ErrTimeConversion, utcS)
	}
	dat := l.table[0].deltaAT
	for _, e := range l.table[1:] {
		if utcS < e.epochS {
			break
		}
		dat = e.deltaAT
	}
	return dat, nil
}

// tdbMinusTT is the periodic TDB-TT term: K sin E with E = M + EB sin M.
func (l *LeapSeconds) tdbMinusTT(ttS float64) float64 {
	m := l.m0 + l.m1*ttS
	e := m + l.eb*math.Sin(m)
	return l.k * math.Sin(e)
}

// UTCToTDB converts seconds past J2000 on the UTC scale to TDB seconds past
// J2000 by the UTC to TAI to TT to TDB chain.
func (l *LeapSeconds) UTCToTDB(utcS float64) (float64, error) {
	dat, err := l.deltaAT(utcS)
	if err != nil {
		return 0, err
	}
	ttS := utcS + dat + l.deltaTA
	return ttS + l.tdbMinusTT(ttS), nil
}

// TDBToUTC inverts UTCToTDB. The coupling of the periodic term is absorbed
// by evaluating it at the TDB argument, good to ~30 µs; the leap-second
// lookup is re-run once with the improved UTC estimate so conversions next
// to a leap boundary land on the correct offset.
func (l *LeapSeconds) TDBToUTC(tdbS float64) (float64, error) {
	ttS := tdbS - l.tdbMinusTT(tdbS)
	taiS := ttS - l.deltaTA
	dat, err := l.deltaAT(taiS)
	if err != nil {
		return 0, err
	}
	utcS := taiS - dat
	if dat2, err2 := l.deltaAT(utcS); err2 == nil && dat2 != dat {
		utcS = taiS - dat2
	}
	return utcS, nil
}

// EpochFromUTC converts a UTC calendar instant to a TDB epoch.
func (l *LeapSeconds) EpochFromUTC(u UTCTime) (Epoch, error) {
	utcS := JDToTDBSeconds(u.JDUTC()) // seconds past J2000, UTC scale
	tdbS, err := l.UTCToTDB(utcS)
	if err != nil {
		return Epoch{}, err
	}
	return EpochFromTDBSeconds(tdbS), nil
}

// UTCFromEpoch converts a TDB epoch back to UTC calendar components.
func (l *LeapSeconds) UTCFromEpoch(e Epoch) (UTCTime, error) {
	utcS, err := l.TDBToUTC(e.TDBSeconds())
	if err != nil {
		return UTCTime{}, err
	}
	return UTCTimeFromJD(TDBSecondsToJD(utcS)), nil
}

var monthAbbrev = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// parseKernelPool reads NAIF text-kernel variable assignments from the
// \begindata sections: KEY = value, KEY = ( v1 v2 ), possibly spanning
// lines. Date literals @YYYY-MON-DD become seconds past J2000.
func parseKernelPool(content string) (map[string][]float64, error) {
	pool := make(map[string][]float64)
	inData := false
	sawData := false
	var curName string
	var curVals []float64
	inArray := false
	flush := func() {
		if curName != "" {
			pool[curName] = curVals
			curName, curVals, inArray = "", nil, false
		}
	}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.EqualFold(trimmed, `\begindata`):
			inData = true
			sawData = true
			continue
		case strings.EqualFold(trimmed, `\begintext`):
			inData = false
			continue
		}
		if !inData || trimmed == "" {
			continue
		}
		if eq := strings.Index(trimmed, "="); eq >= 0 {
			flush()
			curName = strings.TrimSpace(trimmed[:eq])
			rhs := strings.TrimSpace(trimmed[eq+1:])
			if strings.HasPrefix(rhs, "(") {
				inArray = true
				rhs = rhs[1:]
			}
			if strings.HasSuffix(rhs, ")") {
				inArray = false
				rhs = rhs[:len(rhs)-1]
			}
			if err := parsePoolValues(rhs, &curVals); err != nil {
				return nil, err
			}
		} else if inArray {
			data := trimmed
			if strings.HasSuffix(data, ")") {
				inArray = false
				data = data[:len(data)-1]
			}
			if err := parsePoolValues(data, &curVals); err != nil {
				return nil, err
			}
		}
	}
	flush()
	if !sawData {
		return nil, fmt.Errorf(`%w: no \begindata section found`, ErrKernelLoad)
	}
	return pool, nil
}

func parsePoolValues(text string, out *[]float64) error {
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	}) {
		if rest, ok := strings.CutPrefix(tok, "@"); ok {
			s, err := parseKernelDate(rest)
			if err != nil {
				return err
			}
			*out = append(*out, s)
			continue
		}
		normalized := strings.NewReplacer("D", "E", "d", "e").Replace(tok)
		v, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return fmt.Errorf("%w: cannot parse %q as a number", ErrKernelLoad, tok)
		}
		*out = append(*out, v)
	}
	return nil
}

// parseKernelDate converts a @YYYY-MON-DD literal to seconds past J2000 on
// the scale of the surrounding table.
func parseKernelDate(s string) (float64, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: bad date literal @%s", ErrKernelLoad, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: bad year in @%s", ErrKernelLoad, s)
	}
	month, ok := monthAbbrev[strings.ToUpper(parts[1])]
	if !ok {
		return 0, fmt.Errorf("%w: bad month in @%s", ErrKernelLoad, s)
	}
	day, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad day in @%s", ErrKernelLoad, s)
	}
	return JDToTDBSeconds(CalendarToJD(year, month, day)), nil
}
