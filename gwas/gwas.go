// Package gwas filters GWAS Catalog association exports down to one gene.
package gwas

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

const (
	ColumnReportedGenes = "REPORTED GENE(S)"
	ColumnTrait         = "DISEASE/TRAIT"
	ColumnChromosome    = "CHR_ID"
	ColumnPosition      = "CHR_POS"
	ColumnSNPs          = "SNPS"
	ColumnContext       = "CONTEXT"

	// ReportedGeneDelimiter separates genes within REPORTED GENE(S).
	ReportedGeneDelimiter = ", "
)

// Table is a header plus the rows that survived filtering, cells verbatim.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

func (t *Table) Get(row []string, column string) string {
	k, exists := t.index[column]
	if !exists || k >= len(row) {
		return ""
	}
	return row[k]
}

// Association is the simplified layout shared with the variant tools.
type Association struct {
	Condition   string `csv:"condition"`
	Chromosome  string `csv:"chr"`
	Start       string `csv:"start"`
	ExternalID  string `csv:"dbsnp_id"`
	VariantType string `csv:"variant_type"`
}

// AffectsGene reports whether gene is one of the reported genes.
func AffectsGene(reportedGenes, gene string) bool {
	for _, g := range strings.Split(reportedGenes, ReportedGeneDelimiter) {
		if g == gene {
			return true
		}
	}
	return false
}

// FilterByGene keeps only associations whose reported genes include gene.
func FilterByGene(c *csv.Reader, gene string) (*Table, error) {
	t := &Table{index: make(map[string]int)}

	for i := 0; ; i++ {
		cols, err := c.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if i == 0 {
			t.Header = append([]string(nil), cols...)
			for k, v := range cols {
				t.index[v] = k
			}
			if _, exists := t.index[ColumnReportedGenes]; !exists {
				return nil, pfx.Err(fmt.Errorf("column %q not found in header", ColumnReportedGenes))
			}
			continue
		}

		if AffectsGene(t.Get(cols, ColumnReportedGenes), gene) {
			t.Rows = append(t.Rows, append([]string(nil), cols...))
		}
	}

	if t.Header == nil {
		return nil, pfx.Err(fmt.Errorf("empty GWAS export"))
	}

	return t, nil
}

// WriteCSV writes the filtered table with its original columns.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func (t *Table) Associations() []Association {
	out := make([]Association, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, Association{
			Condition:   t.Get(row, ColumnTrait),
			Chromosome:  t.Get(row, ColumnChromosome),
			Start:       t.Get(row, ColumnPosition),
			ExternalID:  t.Get(row, ColumnSNPs),
			VariantType: t.Get(row, ColumnContext),
		})
	}
	return out
}

// WriteSimplifiedCSV writes only the columns the variant tools understand.
func (t *Table) WriteSimplifiedCSV(w io.Writer) error {
	return gocsv.Marshal(t.Associations(), w)
}
