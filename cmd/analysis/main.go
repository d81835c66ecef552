//go:build analysis

// Analysis tool: runs repeated keygen/sign cycles and reports the
// centered coefficient distributions of the secret key, the LWE error
// and the verification residual as histograms plus a stats JSON. The
// residual spread against the q/4 threshold is the empirical margin the
// verification tolerance has to absorb.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"RLWE-Signature/oracle"
	"RLWE-Signature/polyring"
	"RLWE-Signature/rlwe"
	"RLWE-Signature/sampling"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type summaryStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

func computeStats(x []float64) summaryStats {
	n := len(x)
	if n == 0 {
		return summaryStats{}
	}
	cp := append([]float64(nil), x...)
	sort.Float64s(cp)
	var m float64
	for _, v := range x {
		m += v
	}
	m /= float64(n)
	var m2 float64
	for _, v := range x {
		d := v - m
		m2 += d * d
	}
	return summaryStats{
		Count:  n,
		Mean:   m,
		Std:    math.Sqrt(m2 / float64(n)),
		Min:    cp[0],
		Median: cp[n/2],
		Max:    cp[n-1],
	}
}

func computeHistogram(values []float64, nbins int) ([]float64, []int) {
	minv, maxv := values[0], values[0]
	for _, v := range values {
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	if maxv == minv {
		maxv = minv + 1
	}
	width := (maxv - minv) / float64(nbins)
	edges := make([]float64, nbins+1)
	for i := range edges {
		edges[i] = minv + float64(i)*width
	}
	counts := make([]int, nbins)
	for _, v := range values {
		bin := int((v - minv) / width)
		if bin >= nbins {
			bin = nbins - 1
		}
		counts[bin]++
	}
	return edges, counts
}

func toBarItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newHistogramChart(title string, values []float64) *charts.Bar {
	const nbins = 41
	edges, counts := computeHistogram(values, nbins)
	xLabels := make([]string, nbins)
	for i := 0; i < nbins; i++ {
		xLabels[i] = fmt.Sprintf("%.1f", 0.5*(edges[i]+edges[i+1]))
	}
	st := computeStats(values)
	subtitle := fmt.Sprintf("n=%d, mean=%.3f, std=%.3f, max=%.0f", st.Count, st.Mean, st.Std, st.Max)
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(xLabels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// center maps canonical [0,q) coefficients into (-q/2, q/2].
func center(p polyring.Poly) []float64 {
	q := p.Modulus()
	half := q / 2
	out := make([]float64, p.Dim())
	for i := 0; i < p.Dim(); i++ {
		c := p.At(i)
		if c > half {
			out[i] = -float64(q - c)
		} else {
			out[i] = float64(c)
		}
	}
	return out
}

func main() {
	runs := flag.Int("runs", 50, "number of keygen+sign runs")
	n := flag.Int("n", 8, "security parameter")
	q := flag.Uint64("q", 7681, "coefficient modulus")
	sigma := flag.Float64("sigma", rlwe.GaussianStdDev, "gaussian noise stddev")
	outDir := flag.String("out", "Measure_Reports", "output directory for reports")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", *outDir, err)
	}

	message := []byte{0x12, 0x34}
	var allS, allE, allResidual []float64
	for run := 0; run < *runs; run++ {
		src, err := sampling.NewSource()
		if err != nil {
			log.Fatalf("random source: %v", err)
		}
		sc, err := rlwe.New(*n, *q, src, rlwe.Opts{Sigma: *sigma})
		if err != nil {
			log.Fatalf("scheme: %v", err)
		}
		if err := sc.GenerateKeys(); err != nil {
			log.Fatalf("keygen: %v", err)
		}
		a, b, s := sc.ExportKeys()
		as, err := a.Mul(s)
		if err != nil {
			log.Fatalf("a*s: %v", err)
		}
		e, err := b.Sub(as)
		if err != nil {
			log.Fatalf("b-a*s: %v", err)
		}
		allS = append(allS, center(s)...)
		allE = append(allE, center(e)...)

		sig, err := sc.Sign(message)
		if err != nil {
			log.Fatalf("sign: %v", err)
		}
		us, err := sig.U.Mul(s)
		if err != nil {
			log.Fatalf("u*s: %v", err)
		}
		result, err := sig.V.Sub(us)
		if err != nil {
			log.Fatalf("v-u*s: %v", err)
		}
		z, err := oracle.MessageToPoly(message, sc.Dim(), *q)
		if err != nil {
			log.Fatalf("encode message: %v", err)
		}
		residual, err := result.Sub(z.ScalarMul(*q / 2))
		if err != nil {
			log.Fatalf("residual: %v", err)
		}
		allResidual = append(allResidual, center(residual)...)
	}

	outStats := map[string]summaryStats{
		"s (secret key)":          computeStats(allS),
		"e (lwe error)":           computeStats(allE),
		"residual (verification)": computeStats(allResidual),
	}
	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("coeff_stats_%s.json", ts))
	if err := saveJSON(jsonPath, outStats); err != nil {
		log.Printf("warn: save stats: %v", err)
	}

	page := components.NewPage()
	page.AddCharts(
		newHistogramChart("s (secret key)", allS),
		newHistogramChart("e (lwe error)", allE),
		newHistogramChart(fmt.Sprintf("verification residual (threshold ±%d)", *q/4), allResidual),
	)
	htmlPath := filepath.Join(*outDir, fmt.Sprintf("coeff_histograms_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Println("Histogram page:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
}
