// adjustvcf copies each variant's dbSNP ID (the VCF ID column) into its INFO
// field as dbSnpRef=<id>, so that the ID survives conversion to BED. With
// --bed it also writes that BED directly, in the layout analyzevariants reads:
// chrom, 0-based start, end, INFO.
//
// Usage: adjustvcf [flags] <input.vcf[.gz]> <output.vcf>
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/carbocation/vcfgo"
	"github.com/carbocation/variantkit"
	_ "github.com/carbocation/variantkit/compileinfoprint"
)

const InfoKey = "dbSnpRef"

var (
	BufferSize = 4096 * 32
)

func main() {
	var bedFile string
	flag.StringVar(&bedFile, "bed", "", "Optional path for a 4-column BED (chrom, start, end, INFO) of the adjusted variants.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <input.vcf[.gz]> <output.vcf>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	vcfFile, outFile := flag.Arg(0), flag.Arg(1)

	log.Println("Started running at", time.Now())
	defer func() {
		log.Println("Completed at", time.Now())
	}()

	f, err := variantkit.OpenMaybeCompressed(vcfFile)
	if err != nil {
		log.Fatalf("Error opening VCF: %s\n", err)
	}
	defer f.Close()

	out, err := os.Create(variantkit.ExpandHome(outFile))
	if err != nil {
		log.Fatalln(err)
	}
	defer out.Close()
	vcfOut := bufio.NewWriterSize(out, BufferSize)

	var bedOut *bufio.Writer
	if bedFile != "" {
		bf, err := os.Create(variantkit.ExpandHome(bedFile))
		if err != nil {
			log.Fatalln(err)
		}
		defer bf.Close()
		bedOut = bufio.NewWriterSize(bf, BufferSize)
	}

	n, err := Adjust(bufio.NewReaderSize(f, BufferSize), vcfOut, bedOut)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Adjusted %d variants\n", n)

	if err := vcfOut.Flush(); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("Wrote %s.\n", outFile)

	if bedOut != nil {
		if err := bedOut.Flush(); err != nil {
			log.Fatalln(err)
		}
		fmt.Printf("Wrote %s.\n", bedFile)
	}
}

// Adjust streams the VCF in r to vcfOut with dbSnpRef added to every INFO
// field. bedOut may be nil.
func Adjust(r io.Reader, vcfOut io.Writer, bedOut io.Writer) (int, error) {
	rdr, err := vcfgo.NewReader(r, true)
	if err != nil {
		log.Printf("Invalid VCF. Invalid features include:\n%s\n", err)
		if rdr == nil {
			return 0, fmt.Errorf("VCF reader could not be initialized: %w", err)
		}
		log.Println("Attempting to continue.")
		rdr.Clear()
	}

	rdr.Header.Infos[InfoKey] = &vcfgo.Info{
		Id:          InfoKey,
		Description: "dbSNP identifier copied from the ID column",
		Number:      "1",
		Type:        "String",
	}

	wtr, err := vcfgo.NewWriter(vcfOut, rdr.Header)
	if err != nil {
		return 0, err
	}

	i := 0
	for ; ; i++ {
		variant := rdr.Read()
		if variant == nil {
			break
		}

		if err := variant.Info().Set(InfoKey, variant.Id()); err != nil {
			return i, fmt.Errorf("%s:%d: %w", variant.Chrom(), variant.Pos, err)
		}
		wtr.WriteVariant(variant)

		if bedOut != nil {
			start := variant.Pos - 1
			end := start + uint64(len(variant.Ref()))
			if _, err := fmt.Fprintf(bedOut, "%s\t%d\t%d\t%s\n", variant.Chrom(), start, end, variant.Info().String()); err != nil {
				return i, err
			}
		}

		if i%50000 == 0 && i > 0 {
			log.Printf("Processed %d variants. Last %s:%d\n", i, variant.Chrom(), variant.Pos)
		}
	}

	if err := rdr.Error(); err != nil {
		return i, err
	}

	return i, nil
}
