package varbed

import (
	"strconv"
	"strings"
)

// FieldWithPrefix returns the first sub-field that starts with prefix, with
// the prefix removed.
func FieldWithPrefix(fields []string, prefix string) (string, error) {
	for _, field := range fields {
		if strings.HasPrefix(field, prefix) {
			return field[len(prefix):], nil
		}
	}

	return "", &MissingFieldError{Field: strings.TrimSuffix(prefix, "=")}
}

// ParseLine converts one tab-delimited variant line into a VariantRecord. No
// partially populated record is ever returned alongside an error.
func ParseLine(line string) (VariantRecord, error) {
	cols := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(cols) < Info+1 {
		return VariantRecord{}, &MissingFieldError{Field: "info"}
	}

	subfields := strings.Split(cols[Info], SubfieldDelimiter)

	afRaw, err := FieldWithPrefix(subfields, PrefixAlleleFrequency)
	if err != nil {
		return VariantRecord{}, err
	}
	af, err := strconv.ParseFloat(afRaw, 64)
	if err != nil {
		return VariantRecord{}, &MalformedValueError{Field: "AF", Value: afRaw, Err: err}
	}

	vt, err := FieldWithPrefix(subfields, PrefixVariantType)
	if err != nil {
		return VariantRecord{}, err
	}

	id, err := FieldWithPrefix(subfields, PrefixExternalID)
	if err != nil {
		return VariantRecord{}, err
	}

	return VariantRecord{
		Chromosome:      cols[Chromosome],
		Start:           cols[Start],
		Stop:            cols[Stop],
		AlleleFrequency: af,
		VariantType:     vt,
		ExternalID:      id,
	}, nil
}
