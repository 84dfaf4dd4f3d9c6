// Package dbsnp looks up RefSNP records in NCBI dbSNP and flattens their
// clinical annotations into tabular fields.
package dbsnp

import "time"

const (
	// Database is the Entrez database name for dbSNP.
	Database = "snp"

	// DefaultBatchSize is the most RefSNPs efetch will return in one response.
	DefaultBatchSize = 15

	// IDPrefix marks a dbSNP RefSNP identifier.
	IDPrefix = "rs"
)

type Config struct {
	BatchSize         int
	InterRequestDelay time.Duration
	FieldDelimiter    string // Joins the flattened set-valued fields
}

func DefaultConfig() Config {
	return Config{
		BatchSize:         DefaultBatchSize,
		InterRequestDelay: 3 * time.Second,
		FieldDelimiter:    ";",
	}
}

func (c Config) withDefaults() Config {
	if c.BatchSize < 1 {
		c.BatchSize = DefaultBatchSize
	}
	if c.FieldDelimiter == "" {
		c.FieldDelimiter = ";"
	}
	return c
}
