// Package clinvar reshapes ClinVar tabular search exports.
package clinvar

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/variantkit/strset"
)

const (
	ColumnDBSNP      = "dbSNP ID"
	ColumnConditions = "Condition(s)"

	// ConditionDelimiter separates conditions within one ClinVar cell.
	ConditionDelimiter = "|"
)

// DiscardedConditions are placeholders ClinVar uses in place of a condition.
var DiscardedConditions = map[string]struct{}{
	"none provided":  {},
	"none specified": {},
	"not specified":  {},
	"not provided":   {},
	"See cases":      {},
}

// Conditions maps each condition to the dbSNP ids reported for it, keeping
// conditions in the order they were first seen.
type Conditions struct {
	order []string
	snps  map[string]*strset.Set
}

func (c *Conditions) Names() []string {
	return append([]string(nil), c.order...)
}

func (c *Conditions) SNPs(condition string) []string {
	s, exists := c.snps[condition]
	if !exists {
		return nil
	}
	return s.Sorted()
}

func (c *Conditions) add(condition, snp string) {
	s, exists := c.snps[condition]
	if !exists {
		s = strset.New()
		c.snps[condition] = s
		c.order = append(c.order, condition)
	}
	s.Add(snp)
}

func headerIndex(header []string, names ...string) (map[string]int, error) {
	hid := make(map[string]int)
	for k, v := range header {
		hid[strings.TrimSpace(v)] = k
	}
	for _, name := range names {
		if _, exists := hid[name]; !exists {
			return nil, fmt.Errorf("column %q not found in header %v", name, header)
		}
	}
	return hid, nil
}

// missingSNP reports dbSNP cells that carry no id.
func missingSNP(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == "-" || strings.EqualFold(v, "nan") || strings.EqualFold(v, "NA")
}

// ConditionsToSNPs reads a ClinVar export (header row first). Conditions
// without any dbSNP id are still listed.
func ConditionsToSNPs(c *csv.Reader) (*Conditions, error) {
	out := &Conditions{snps: make(map[string]*strset.Set)}

	var hid map[string]int
	for i := 0; ; i++ {
		cols, err := c.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if i == 0 {
			if hid, err = headerIndex(cols, ColumnDBSNP, ColumnConditions); err != nil {
				return nil, pfx.Err(err)
			}
			continue
		}

		if len(cols) <= hid[ColumnDBSNP] || len(cols) <= hid[ColumnConditions] {
			log.Printf("Skipping ClinVar row %d: %d of %d columns\n", i+1, len(cols), len(hid))
			continue
		}

		snp := cols[hid[ColumnDBSNP]]
		if missingSNP(snp) {
			snp = ""
		}

		for _, condition := range strings.Split(cols[hid[ColumnConditions]], ConditionDelimiter) {
			if _, discard := DiscardedConditions[condition]; discard {
				continue
			}
			out.add(condition, snp)
		}
	}

	if hid == nil {
		return nil, pfx.Err(fmt.Errorf("empty ClinVar export"))
	}

	return out, nil
}

// WriteConditions writes one "condition,id1;id2" line per condition.
func WriteConditions(w io.Writer, c *Conditions) error {
	for _, name := range c.Names() {
		if _, err := fmt.Fprintf(w, "%s,%s\n", name, strings.Join(c.SNPs(name), ";")); err != nil {
			return err
		}
	}
	return nil
}
