package varbed

// Map columns in the variant BED file to their positions
const (
	Chromosome int = iota
	Start
	Stop
	Info
)

// Prefixes of the INFO sub-fields that every variant line must carry.
const (
	PrefixAlleleFrequency = "AF="
	PrefixVariantType     = "VT="
	PrefixExternalID      = "dbSnpRef="
)

// SubfieldDelimiter separates the KEY=value entries within the INFO column.
const SubfieldDelimiter = ";"

type VariantRecord struct {
	Chromosome      string
	Start           string // Kept verbatim; BED start is 0-based
	Stop            string
	AlleleFrequency float64
	VariantType     string // E.g., SNP, INDEL
	ExternalID      string // E.g., RSID
}
