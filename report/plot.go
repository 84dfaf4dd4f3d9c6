package report

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/carbocation/variantkit/enrich"
	"github.com/carbocation/variantkit/strset"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// AlleleFrequencyBins is the number of bins in the allele frequency
// histogram.
const AlleleFrequencyBins = 10

// VariantTypeCounts tallies rows per local variant type, in first-seen order.
func VariantTypeCounts(rows []enrich.MergedRecord) ([]string, map[string]int) {
	order := strset.New()
	counts := make(map[string]int)
	for _, r := range rows {
		order.Add(r.VariantType)
		counts[r.VariantType]++
	}
	return order.Ordered(), counts
}

// VariantTypeHistogram renders a PNG bar chart of variant type counts.
func VariantTypeHistogram(w io.Writer, rows []enrich.MergedRecord) error {
	labels, counts := VariantTypeCounts(rows)

	bars := make([]chart.Value, 0, len(labels))
	maxCount := 0
	for _, label := range labels {
		bars = append(bars, chart.Value{Label: label, Value: float64(counts[label])})
		if counts[label] > maxCount {
			maxCount = counts[label]
		}
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "(none)", Value: 0})
	}

	graph := chart.BarChart{
		Title:    "Variant type distribution",
		Width:    640,
		Height:   480,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		XAxis: chart.Style{
			StrokeWidth: 1,
		},
		YAxis: chart.YAxis{
			Name:  "# Variants",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// AlleleFrequencyHistogram renders a PNG histogram of allele frequencies.
func AlleleFrequencyHistogram(w io.Writer, rows []enrich.MergedRecord) error {
	p := plot.New()
	p.Title.Text = "Distribution of allele frequencies"
	p.X.Label.Text = "allele frequency"
	p.Y.Label.Text = "# alleles"

	if afs := AlleleFrequencies(rows); len(afs) > 0 {
		h, err := plotter.NewHist(plotter.Values(afs), AlleleFrequencyBins)
		if err != nil {
			return pfx.Err(err)
		}
		p.Add(h)
	}

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return pfx.Err(err)
	}

	_, err = wt.WriteTo(w)
	return err
}

// FprintAlleleFrequencies draws a terminal histogram, handy as a preview on
// stderr while the PNGs are written.
func FprintAlleleFrequencies(w io.Writer, rows []enrich.MergedRecord, width int) error {
	afs := AlleleFrequencies(rows)
	if len(afs) == 0 {
		return nil
	}

	hist := histogram.Hist(AlleleFrequencyBins, afs)
	return histogram.Fprint(w, hist, histogram.Linear(width))
}
