package dbsnp

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/carbocation/variantkit/strset"
)

// EnrichedRecord is one RefSNP reduced to scalar fields.
type EnrichedRecord struct {
	ExternalID        string `csv:"dbsnp_id"`
	RemoteVariantType string `csv:"dbsnp_variant_type"`
	Significances     string `csv:"significances"`
	Origins           string `csv:"origins"`
	Diseases          string `csv:"diseases"`
}

// refsnpID tolerates both "123" and 123.
type refsnpID string

func (r *refsnpID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*r = refsnpID(n.String())
	return nil
}

type refSNP struct {
	RefSNPID refsnpID         `json:"refsnp_id"`
	Primary  *primarySnapshot `json:"primary_snapshot_data"`
}

type primarySnapshot struct {
	VariantType       string             `json:"variant_type"`
	AlleleAnnotations []alleleAnnotation `json:"allele_annotations"`
}

type alleleAnnotation struct {
	Clinical []clinicalAnnotation `json:"clinical"`
}

type clinicalAnnotation struct {
	ClinicalSignificances []string `json:"clinical_significances"`
	Origins               []string `json:"origins"`
	DiseaseNames          []string `json:"disease_names"`
}

// decodeStream calls fn for each top-level JSON value in payload. efetch
// returns RefSNP objects back to back with no enclosing array; an enclosing
// array is accepted as well.
func decodeStream(payload []byte, fn func(json.RawMessage) error) error {
	trimmed := bytes.TrimSpace(payload)
	dec := json.NewDecoder(bytes.NewReader(trimmed))

	if len(trimmed) > 0 && trimmed[0] == '[' {
		if _, err := dec.Token(); err != nil {
			return &MalformedResponseError{Offset: dec.InputOffset(), Err: err}
		}
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return &MalformedResponseError{Offset: dec.InputOffset(), Err: err}
			}
			if err := fn(raw); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return &MalformedResponseError{Offset: dec.InputOffset(), Err: err}
		}
		return nil
	}

	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return &MalformedResponseError{Offset: dec.InputOffset(), Err: err}
		}
		if err := fn(raw); err != nil {
			return err
		}
	}
}

// RepairPayload rewrites back-to-back RefSNP objects as a single JSON array.
func RepairPayload(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	n := 0
	err := decodeStream(payload, func(raw json.RawMessage) error {
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.Write(raw)
		n++
		return nil
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// Flatten decodes one efetch payload. RefSNPs without primary snapshot data
// (withdrawn or merged ids, for example) produce no record.
func Flatten(payload []byte, cfg Config) ([]EnrichedRecord, error) {
	cfg = cfg.withDefaults()

	out := make([]EnrichedRecord, 0)
	err := decodeStream(payload, func(raw json.RawMessage) error {
		var snp refSNP
		if err := json.Unmarshal(raw, &snp); err != nil {
			return &MalformedResponseError{Err: err}
		}
		if snp.Primary == nil {
			return nil
		}
		out = append(out, flattenOne(snp, cfg.FieldDelimiter))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// FlattenAll flattens a sequence of batch payloads, preserving order.
func FlattenAll(payloads [][]byte, cfg Config) ([]EnrichedRecord, error) {
	out := make([]EnrichedRecord, 0)
	for _, payload := range payloads {
		recs, err := Flatten(payload, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}

	return out, nil
}

// The three sets are unions across every allele and every clinical entry.
func flattenOne(snp refSNP, delim string) EnrichedRecord {
	significances, origins, diseases := strset.New(), strset.New(), strset.New()

	for _, allele := range snp.Primary.AlleleAnnotations {
		for _, clin := range allele.Clinical {
			significances.Add(clin.ClinicalSignificances...)
			origins.Add(clin.Origins...)
			diseases.Add(clin.DiseaseNames...)
		}
	}

	return EnrichedRecord{
		ExternalID:        IDPrefix + string(snp.RefSNPID),
		RemoteVariantType: snp.Primary.VariantType,
		Significances:     significances.Join(delim),
		Origins:           origins.Join(delim),
		Diseases:          diseases.Join(delim),
	}
}
