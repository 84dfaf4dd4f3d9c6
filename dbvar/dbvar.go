// Package dbvar fetches structural variant summaries from NCBI dbVar.
package dbvar

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/variantkit/eutils"
	"golang.org/x/net/html/charset"
)

const (
	Database = "dbvar"

	// DefaultAssembly is the assembly whose placement is reported.
	DefaultAssembly = "GRCh37"

	// SummaryBatchSize bounds the ids per esummary request.
	SummaryBatchSize = 200
)

// StructuralVariant is the CSV layout of one dbVar summary.
type StructuralVariant struct {
	ID            string `csv:"dbvar_id"`
	Significances string `csv:"significances"`
	VariantType   string `csv:"variant_type"`
	Chromosome    string `csv:"chr"`
	Start         string `csv:"start"`
	End           string `csv:"end"`
}

type placement struct {
	Assembly string `xml:"Assembly"`
	Chr      string `xml:"Chr"`
	ChrStart string `xml:"Chr_start"`
	ChrEnd   string `xml:"Chr_end"`
}

type documentSummary struct {
	UID           string      `xml:"uid,attr"`
	SV            string      `xml:"SV"`
	Significances []string    `xml:"dbVarClinicalSignificanceList>string"`
	VariantTypes  []string    `xml:"dbVarVariantTypeList>string"`
	Placements    []placement `xml:"dbVarPlacementList>dbVarPlacement"`
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func matchesAssembly(got, want string) bool {
	return got == want || strings.HasPrefix(got, want+".")
}

// ParseSummaries decodes an esummary XML document. Only the placement on
// assembly is kept; summaries without one have empty coordinates.
func ParseSummaries(r io.Reader, assembly string) ([]StructuralVariant, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel

	out := make([]StructuralVariant, 0)
	for {
		tok, err := d.Token()
		if tok == nil || err == io.EOF {
			// EOF means we're done.
			break
		} else if err != nil {
			return nil, pfx.Err(fmt.Errorf("error decoding token: %w", err))
		}

		ty, ok := tok.(xml.StartElement)
		if !ok || ty.Name.Local != "DocumentSummary" {
			continue
		}

		var rec documentSummary
		if err = d.DecodeElement(&rec, &ty); err != nil {
			return nil, pfx.Err(fmt.Errorf("error decoding DocumentSummary: %w", err))
		}

		sv := StructuralVariant{
			ID:            rec.SV,
			Significances: first(rec.Significances),
			VariantType:   first(rec.VariantTypes),
		}
		for _, p := range rec.Placements {
			// Summaries carry placements on several assemblies.
			if matchesAssembly(p.Assembly, assembly) {
				sv.Chromosome = p.Chr
				sv.Start = p.ChrStart
				sv.End = p.ChrEnd
			}
		}
		out = append(out, sv)
	}

	return out, nil
}

// Summaries fetches the esummary for every id, SummaryBatchSize at a time.
func Summaries(c *eutils.Client, ids []string, assembly string) ([]StructuralVariant, error) {
	out := make([]StructuralVariant, 0, len(ids))
	for _, batch := range eutils.Batches(ids, SummaryBatchSize) {
		body, err := c.Get("esummary.fcgi", url.Values{
			"db": {Database},
			"id": {strings.Join(batch, ",")},
		})
		if err != nil {
			return nil, err
		}

		svs, err := ParseSummaries(bytes.NewReader(body), assembly)
		if err != nil {
			return nil, err
		}
		out = append(out, svs...)
	}

	return out, nil
}
