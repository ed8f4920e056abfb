package ephem

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// StateRecord is the serialized form of one answered query.
type StateRecord struct {
	Target   string  `json:"target"`
	Observer string  `json:"observer"`
	Frame    string  `json:"frame"`
	EpochJD  float64 `json:"epochJDTDB"`
	X        float64 `json:"xKM"`
	Y        float64 `json:"yKM"`
	Z        float64 `json:"zKM"`
	VX       float64 `json:"vxKMS"`
	VY       float64 `json:"vyKMS"`
	VZ       float64 `json:"vzKMS"`
	Error    string  `json:"error,omitempty"`
}

func stateRecords(qs []Query, results []BatchResult) ([]StateRecord, error) {
	if len(qs) != len(results) {
		return nil, fmt.Errorf("queries and results differ in length (%d != %d)", len(qs), len(results))
	}
	recs := make([]StateRecord, len(qs))
	for i, q := range qs {
		recs[i] = StateRecord{
			Target:   q.Target.Name,
			Observer: q.Observer.Name,
			Frame:    q.Frame.String(),
			EpochJD:  q.EpochJD,
		}
		if err := results[i].Err; err != nil {
			recs[i].Error = err.Error()
			continue
		}
		s := results[i].State
		recs[i].X, recs[i].Y, recs[i].Z = s.R[0], s.R[1], s.R[2]
		recs[i].VX, recs[i].VY, recs[i].VZ = s.V[0], s.V[1], s.V[2]
	}
	return recs, nil
}

// ExportStatesCSV writes one row per batch entry: target, observer, frame,
// JD TDB, position and velocity components. Failed entries carry the error
// message in the last column.
func ExportStatesCSV(w io.Writer, qs []Query, results []BatchResult) error {
	recs, err := stateRecords(qs, results)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"target", "observer", "frame", "epoch_jd_tdb", "x_km", "y_km", "z_km", "vx_km_s", "vy_km_s", "vz_km_s", "error"}); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', 17, 64) }
	for _, r := range recs {
		row := []string{r.Target, r.Observer, r.Frame, f(r.EpochJD), f(r.X), f(r.Y), f(r.Z), f(r.VX), f(r.VY), f(r.VZ), r.Error}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportStatesJSON writes the batch as a JSON array of StateRecord.
func ExportStatesJSON(w io.Writer, qs []Query, results []BatchResult) error {
	recs, err := stateRecords(qs, results)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
