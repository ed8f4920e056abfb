package ephem

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func batchForExport(t *testing.T) ([]Query, []BatchResult) {
	t.Helper()
	e := testEngine(t)
	qs := []Query{
		{Target: Mars, Observer: Earth, Frame: ICRF, EpochJD: 2460000.5},
		{Target: Mercury, Observer: SSB, Frame: ICRF, EpochJD: 2460000.5},
	}
	return qs, e.QueryBatch(qs)
}

func TestExportStatesCSV(t *testing.T) {
	qs, results := batchForExport(t)
	var buf bytes.Buffer
	if err := ExportStatesCSV(&buf, qs, results); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "target" || len(rows[0]) != 11 {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "Mars" || rows[1][10] != "" {
		t.Fatalf("Mars row = %v", rows[1])
	}
	if rows[2][0] != "Mercury" || !strings.Contains(rows[2][10], "segment") {
		t.Fatalf("Mercury row should carry the error, got %v", rows[2])
	}
}

func TestExportStatesJSON(t *testing.T) {
	qs, results := batchForExport(t)
	var buf bytes.Buffer
	if err := ExportStatesJSON(&buf, qs, results); err != nil {
		t.Fatal(err)
	}
	var recs []StateRecord
	if err := json.Unmarshal(buf.Bytes(), &recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Target != "Mars" || recs[0].Frame != "ICRF" || recs[0].X == 0 {
		t.Fatalf("Mars record = %+v", recs[0])
	}
	if recs[1].Error == "" {
		t.Fatal("Mercury record should carry an error message")
	}
}

func TestExportLengthMismatch(t *testing.T) {
	qs, results := batchForExport(t)
	var buf bytes.Buffer
	if err := ExportStatesCSV(&buf, qs, results[:1]); err == nil {
		t.Fatal("length mismatch should fail")
	}
	if err := ExportStatesJSON(&buf, qs[:1], results); err == nil {
		t.Fatal("length mismatch should fail")
	}
}
