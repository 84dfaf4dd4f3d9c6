// Package enrich joins locally parsed variants with their dbSNP annotations.
package enrich

import (
	"fmt"
	"strings"

	"github.com/carbocation/variantkit/dbsnp"
	"github.com/carbocation/variantkit/varbed"
	"gopkg.in/guregu/null.v3"
)

// DuplicatePolicy decides what happens when more than one remote record
// carries the same external id.
type DuplicatePolicy int

const (
	// Multiply emits one merged row per matching remote record.
	Multiply DuplicatePolicy = iota
	// FirstMatch keeps only the first remote record seen for an id.
	FirstMatch
)

func (d DuplicatePolicy) String() string {
	switch d {
	case Multiply:
		return "multiply"
	case FirstMatch:
		return "first"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(d))
}

func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(s) {
	case "multiply", "":
		return Multiply, nil
	case "first", "firstmatch":
		return FirstMatch, nil
	}
	return Multiply, fmt.Errorf("unknown duplicate policy %q (valid: multiply, first)", s)
}

// MergedRecord is a local variant plus whatever dbSNP knew about it. Remote
// fields are invalid (null) when dbSNP returned nothing for the id.
type MergedRecord struct {
	varbed.VariantRecord

	RemoteVariantType null.String
	Significances     null.String
	Origins           null.String
	Diseases          null.String
}

// Matched reports whether a remote record was joined onto this row.
func (m MergedRecord) Matched() bool {
	return m.RemoteVariantType.Valid
}

// Merge is a left outer join of variants with remote on the external id.
// Every variant appears at least once, in input order.
func Merge(variants []varbed.VariantRecord, remote []dbsnp.EnrichedRecord, policy DuplicatePolicy) []MergedRecord {
	byID := make(map[string][]dbsnp.EnrichedRecord, len(remote))
	for _, rec := range remote {
		if policy == FirstMatch && len(byID[rec.ExternalID]) > 0 {
			continue
		}
		byID[rec.ExternalID] = append(byID[rec.ExternalID], rec)
	}

	out := make([]MergedRecord, 0, len(variants))
	for _, v := range variants {
		matches := byID[v.ExternalID]
		if len(matches) == 0 {
			out = append(out, MergedRecord{VariantRecord: v})
			continue
		}

		for _, m := range matches {
			out = append(out, MergedRecord{
				VariantRecord:     v,
				RemoteVariantType: matched(m.RemoteVariantType),
				Significances:     matched(m.Significances),
				Origins:           matched(m.Origins),
				Diseases:          matched(m.Diseases),
			})
		}
	}

	return out
}

// matched keeps empty remote strings valid (null.StringFrom would not).
func matched(s string) null.String {
	return null.NewString(s, true)
}

// Unmatched counts merged rows with no remote annotation.
func Unmatched(rows []MergedRecord) int {
	n := 0
	for _, r := range rows {
		if !r.Matched() {
			n++
		}
	}
	return n
}
