// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// orflen reports the length distribution of coding segments in cdsfilter
// CSV output and optionally renders it as a histogram.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/biogo/store/interval"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kortschak/cdsfilter/prodigal"
)

var (
	plotFile = flag.String("plot", "", "write a length histogram to this file (eps, jpg, jpeg, pdf, png, svg or tiff)")
	bins     = flag.Int("bins", 20, "number of histogram bins")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 || *bins < 1 {
		flag.Usage()
		os.Exit(1)
	}

	var segs []prodigal.Segment
	for _, path := range flag.Args() {
		s, err := readSegments(path)
		if err != nil {
			log.Fatalf("failed to read %q: %v", path, err)
		}
		segs = append(segs, s...)
	}

	s := summarize(segs)
	fmt.Printf("n\t%d\nmean\t%.1f\nsd\t%.1f\nmin\t%.0f\nmedian\t%.0f\nmax\t%.0f\noverlapping\t%d\n",
		s.n, s.mean, s.sd, s.min, s.median, s.max, s.overlapping)

	if *plotFile != "" {
		err := histogram(*plotFile, lengths(segs), *bins)
		if err != nil {
			log.Fatalf("failed to plot histogram: %v", err)
		}
	}
}

func readSegments(path string) ([]prodigal.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return prodigal.ReadCSV(f)
}

type summary struct {
	n int

	mean, sd         float64
	min, median, max float64

	overlapping int
}

func summarize(segs []prodigal.Segment) summary {
	s := summary{n: len(segs), overlapping: overlapping(segs)}
	if len(segs) == 0 {
		return s
	}
	l := lengths(segs)
	sort.Float64s(l)
	s.mean, s.sd = stat.MeanStdDev(l, nil)
	s.min = l[0]
	s.max = l[len(l)-1]
	s.median = stat.Quantile(0.5, stat.Empirical, l, nil)
	return s
}

func lengths(segs []prodigal.Segment) []float64 {
	l := make([]float64, len(segs))
	for i, s := range segs {
		l[i] = float64(s.Len())
	}
	return l
}

// overlapping returns the number of segments that overlap at least one
// other segment from the same source on the same sequence.
func overlapping(segs []prodigal.Segment) int {
	trees := make(map[string]*interval.IntTree)
	ivs := make([]segInterval, len(segs))
	for i, s := range segs {
		key := s.Name + "\x00" + s.SequenceID
		t, ok := trees[key]
		if !ok {
			t = &interval.IntTree{}
			trees[key] = t
		}
		ivs[i] = newSegInterval(s, uintptr(i+1))
		t.Insert(ivs[i], true)
	}
	for _, t := range trees {
		t.AdjustRanges()
	}

	var n int
	for _, iv := range ivs {
		t := trees[iv.Name+"\x00"+iv.SequenceID]
		if len(t.Get(iv)) > 1 {
			n++
		}
	}
	return n
}

// segInterval is a segment in 0-based half-open coordinates
// independent of strand.
type segInterval struct {
	prodigal.Segment
	start, end int
	id         uintptr
}

func newSegInterval(s prodigal.Segment, id uintptr) segInterval {
	start, end := s.CodingStart, s.CodingStop
	if end < start {
		start, end = end, start
	}
	return segInterval{Segment: s, start: start - 1, end: end, id: id}
}

func (s segInterval) ID() uintptr { return s.id }
func (s segInterval) Range() interval.IntRange {
	return interval.IntRange{Start: s.start, End: s.end}
}
func (s segInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return s.end > b.Start && s.start < b.End
}

func histogram(path string, lengths []float64, bins int) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	h, err := plotter.NewHist(plotter.Values(lengths), bins)
	if err != nil {
		return err
	}
	p.Add(h)
	p.Title.Text = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p.X.Label.Text = "CDS length (bp)"
	p.Y.Label.Text = "count"
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, path)
}
