package varbed

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	rec, err := ParseLine("chr1\t100\t200\tAF=0.25;VT=SNV;dbSnpRef=rs123\n")
	if err != nil {
		t.Fatal(err)
	}

	expected := VariantRecord{
		Chromosome:      "chr1",
		Start:           "100",
		Stop:            "200",
		AlleleFrequency: 0.25,
		VariantType:     "SNV",
		ExternalID:      "rs123",
	}
	if rec != expected {
		t.Fatalf("\nGot:      %+v\nExpected: %+v", rec, expected)
	}
}

func TestParseLineSubfieldOrder(t *testing.T) {
	rec, err := ParseLine("2\t5\t6\tdbSnpRef=rs9;NS=2504;VT=INDEL;AF=1e-3;EX_AF=0.5")
	if err != nil {
		t.Fatal(err)
	}
	if rec.ExternalID != "rs9" || rec.VariantType != "INDEL" || rec.AlleleFrequency != 0.001 {
		t.Fatalf("Mismatch: %+v", rec)
	}
}

func TestParseLineMissingField(t *testing.T) {
	for _, v := range []struct {
		Line  string
		Field string
	}{
		{"chr1\t1\t2\tVT=SNV;dbSnpRef=rs1", "AF"},
		{"chr1\t1\t2\tAF=0.1;dbSnpRef=rs1", "VT"},
		{"chr1\t1\t2\tAF=0.1;VT=SNV", "dbSnpRef"},
		{"chr1\t1\t2", "info"},
	} {
		_, err := ParseLine(v.Line)
		var mfe *MissingFieldError
		if !errors.As(err, &mfe) {
			t.Fatalf("%q: expected MissingFieldError, got %v", v.Line, err)
		}
		if mfe.Field != v.Field {
			t.Fatalf("%q: expected missing %s, got %s", v.Line, v.Field, mfe.Field)
		}
	}
}

func TestParseLineMalformedAF(t *testing.T) {
	_, err := ParseLine("chr1\t1\t2\tAF=abc;VT=SNV;dbSnpRef=rs1")
	var mve *MalformedValueError
	if !errors.As(err, &mve) {
		t.Fatalf("expected MalformedValueError, got %v", err)
	}
	if mve.Value != "abc" {
		t.Fatalf("unexpected value %q", mve.Value)
	}
}

func TestFieldWithPrefixFirstMatch(t *testing.T) {
	v, err := FieldWithPrefix([]string{"XAF=9", "AF=1", "AF=2"}, "AF=")
	if err != nil {
		t.Fatal(err)
	}
	if v != "1" {
		t.Fatalf("expected first match 1, got %s", v)
	}
}

const sampleBED = `# comment
chr1	100	200	AF=0.25;VT=SNV;dbSnpRef=rs123

chr1	300	301	AF=0.5;VT=SNV;dbSnpRef=rs456
chr2	10	11	AF=oops;VT=SNV;dbSnpRef=rs789
chr2	20	21	AF=0.1;VT=INDEL;dbSnpRef=rs1011
`

func TestReadAllAbortsOnBadLine(t *testing.T) {
	_, err := readAll(NewReader(strings.NewReader(sampleBED)), false)
	var le *LineError
	if !errors.As(err, &le) {
		t.Fatalf("expected LineError, got %v", err)
	}
	if le.Line != 5 {
		t.Fatalf("expected failure on line 5, got %d", le.Line)
	}
	var mve *MalformedValueError
	if !errors.As(err, &mve) {
		t.Fatalf("expected wrapped MalformedValueError, got %v", err)
	}
}

func TestReadAllSkipsBadLine(t *testing.T) {
	recs, err := readAll(NewReader(strings.NewReader(sampleBED)), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	if ids := ExternalIDs(recs); strings.Join(ids, ",") != "rs123,rs456,rs1011" {
		t.Fatalf("unexpected ids %v", ids)
	}
}
