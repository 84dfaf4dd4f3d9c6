package enrich

import (
	"testing"

	"github.com/carbocation/variantkit/dbsnp"
	"github.com/carbocation/variantkit/varbed"
)

func variants(ids ...string) []varbed.VariantRecord {
	out := make([]varbed.VariantRecord, 0, len(ids))
	for i, id := range ids {
		out = append(out, varbed.VariantRecord{Chromosome: "chr1", Start: "1", Stop: "2", AlleleFrequency: float64(i) / 10, VariantType: "SNP", ExternalID: id})
	}
	return out
}

func remote(ids ...string) []dbsnp.EnrichedRecord {
	out := make([]dbsnp.EnrichedRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, dbsnp.EnrichedRecord{ExternalID: id, RemoteVariantType: "snv", Significances: "pathogenic " + id})
	}
	return out
}

func TestMergeKeepsEveryVariant(t *testing.T) {
	for _, v := range []struct {
		V        []varbed.VariantRecord
		E        []dbsnp.EnrichedRecord
		Expected int
	}{
		{variants(), remote("rs1"), 0},
		{variants("rs1", "rs2", "rs3"), remote(), 3},
		{variants("rs1", "rs2", "rs3"), remote("rs2", "rs9"), 3},
		{variants("rs1", "rs1"), remote("rs1"), 2},
		{variants("rs1", "rs2"), remote("rs1", "rs1", "rs2"), 3},
	} {
		merged := Merge(v.V, v.E, Multiply)
		if len(merged) < len(v.V) {
			t.Fatalf("merge dropped variants: %d < %d", len(merged), len(v.V))
		}
		if len(merged) != v.Expected {
			t.Fatalf("expected %d rows, got %d", v.Expected, len(merged))
		}
	}
}

func TestMergeNullsUnmatched(t *testing.T) {
	merged := Merge(variants("rs1", "rs2"), remote("rs2"), Multiply)
	if merged[0].Matched() || merged[0].Significances.Valid {
		t.Fatalf("rs1 should have no remote data: %+v", merged[0])
	}
	if !merged[1].Matched() || merged[1].Significances.String != "pathogenic rs2" {
		t.Fatalf("rs2 should be annotated: %+v", merged[1])
	}
	if merged[1].AlleleFrequency != 0.1 {
		t.Fatalf("local fields lost: %+v", merged[1])
	}
	if Unmatched(merged) != 1 {
		t.Fatalf("expected 1 unmatched row")
	}
}

func TestMergeDuplicatePolicy(t *testing.T) {
	dups := []dbsnp.EnrichedRecord{
		{ExternalID: "rs1", RemoteVariantType: "snv"},
		{ExternalID: "rs1", RemoteVariantType: "mnv"},
	}

	multiplied := Merge(variants("rs1"), dups, Multiply)
	if len(multiplied) != 2 {
		t.Fatalf("multiply: expected 2 rows, got %d", len(multiplied))
	}

	first := Merge(variants("rs1"), dups, FirstMatch)
	if len(first) != 1 || first[0].RemoteVariantType.String != "snv" {
		t.Fatalf("first: unexpected rows %+v", first)
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	for in, expected := range map[string]DuplicatePolicy{"": Multiply, "multiply": Multiply, "FIRST": FirstMatch} {
		got, err := ParseDuplicatePolicy(in)
		if err != nil || got != expected {
			t.Fatalf("%q: got %v, %v", in, got, err)
		}
	}
	if _, err := ParseDuplicatePolicy("dedupe"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
