package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	annotation := filepath.Join(dir, "gencode.gff3")
	input := "##gff-version 3\n" +
		"chr15\tHAVANA\tgene\t100\t900\t.\t-\t.\tID=g1;gene_name=FBN1;level=2\n" +
		"chr15\tHAVANA\texon\t100\t200\t.\t-\t.\tID=e1;gene_name=FBN1;level=2\n" +
		"chr3\tHAVANA\tgene\t5\t50\t.\t+\t.\tID=g2;gene_name=TGFBR2;level=2\n"
	if err := os.WriteFile(annotation, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	prefix := filepath.Join(dir, "out_")
	if err := run(annotation, "FBN1", prefix); err != nil {
		t.Fatal(err)
	}

	for suffix, expectedLines := range map[string]int{"FBN1.gff3": 2, "FBN1.bed": 1, "FBN1_exons.bed": 1} {
		b, err := os.ReadFile(prefix + suffix)
		if err != nil {
			t.Fatal(err)
		}
		if n := len(strings.Split(strings.TrimSpace(string(b)), "\n")); n != expectedLines {
			t.Fatalf("%s: expected %d lines, got %d", suffix, expectedLines, n)
		}
	}
}
