// Package report summarizes merged variant tables and writes the text, image
// and CSV artifacts for one analysis run.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/variantkit/enrich"
	"github.com/carbocation/variantkit/strset"
	"github.com/montanaflynn/stats"
)

type Summary struct {
	TotalVariants      int
	VariantTypes       []string // First-seen order
	RemoteVariantTypes []string // First-seen order, annotated rows only
	Diseases           []string // Sorted
	Significances      []string // Sorted
	Origins            []string // Sorted

	// Valid is false when no row had a finite allele frequency.
	AlleleFrequencyValid bool
	MaxAlleleFrequency   float64
	AvgAlleleFrequency   float64
}

// AlleleFrequencies returns the finite allele frequencies of rows.
func AlleleFrequencies(rows []enrich.MergedRecord) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if math.IsNaN(r.AlleleFrequency) || math.IsInf(r.AlleleFrequency, 0) {
			continue
		}
		out = append(out, r.AlleleFrequency)
	}
	return out
}

// Summarize computes the aggregate statistics over rows. Set-valued remote
// fields are re-split on delim before being unioned.
func Summarize(rows []enrich.MergedRecord, delim string) (Summary, error) {
	s := Summary{TotalVariants: len(rows)}

	variantTypes, remoteTypes := strset.New(), strset.New()
	diseases, significances, origins := strset.New(), strset.New(), strset.New()
	for _, r := range rows {
		variantTypes.Add(r.VariantType)

		if !r.Matched() {
			continue
		}
		remoteTypes.Add(r.RemoteVariantType.String)
		diseases.AddSplit(r.Diseases.String, delim)
		significances.AddSplit(r.Significances.String, delim)
		origins.AddSplit(r.Origins.String, delim)
	}

	s.VariantTypes = variantTypes.Ordered()
	s.RemoteVariantTypes = remoteTypes.Ordered()
	s.Diseases = diseases.Sorted()
	s.Significances = significances.Sorted()
	s.Origins = origins.Sorted()

	afs := stats.Float64Data(AlleleFrequencies(rows))
	if afs.Len() == 0 {
		return s, nil
	}

	var err error
	if s.MaxAlleleFrequency, err = afs.Max(); err != nil {
		return s, err
	}
	if s.AvgAlleleFrequency, err = afs.Mean(); err != nil {
		return s, err
	}
	s.AlleleFrequencyValid = true

	return s, nil
}

func formatFloat(valid bool, f float64) string {
	if !valid {
		return "NA"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteSummary writes the human-readable report, one labelled line per
// statistic.
func WriteSummary(w io.Writer, s Summary) error {
	lines := []string{
		fmt.Sprintf("Total variants: %d.", s.TotalVariants),
		fmt.Sprintf("Variant types present: %s.", strings.Join(s.VariantTypes, ", ")),
		fmt.Sprintf("dbSnp variant types present: %s.", strings.Join(s.RemoteVariantTypes, ", ")),
		fmt.Sprintf("Max allele frequency: %s.", formatFloat(s.AlleleFrequencyValid, s.MaxAlleleFrequency)),
		fmt.Sprintf("Avg allele frequency: %s.", formatFloat(s.AlleleFrequencyValid, s.AvgAlleleFrequency)),
		fmt.Sprintf("Diseases: %s.", strings.Join(s.Diseases, ", ")),
		fmt.Sprintf("Significances: %s.", strings.Join(s.Significances, ", ")),
		fmt.Sprintf("Origins: %s.", strings.Join(s.Origins, ", ")),
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}
