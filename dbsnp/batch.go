package dbsnp

import "github.com/carbocation/variantkit/eutils"

// Batches splits ids into efetch-sized groups; see eutils.Batches. A
// non-positive size falls back to DefaultBatchSize.
func Batches(ids []string, size int) [][]string {
	if size < 1 {
		size = DefaultBatchSize
	}
	return eutils.Batches(ids, size)
}
