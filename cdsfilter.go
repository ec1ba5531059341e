// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cdsfilter extracts CDS features from Prodigal GFF output, filters them by
// length and writes their strand-oriented coding coordinates as CSV.
//
// Usage:
//
//	cdsfilter [options] <input.gff> <output.csv>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/biogo/io/featio/gff"

	"github.com/kortschak/cdsfilter/prodigal"
)

var (
	minLength = prodigal.DefaultMinLength
	gffFile   = flag.String("gff", "", "also write accepted CDS features to this GFF file")
	verbose   = flag.Bool("v", false, "log counts of skipped lines")
	errFile   = flag.String("err", "", "log file name (default to stderr)")
)

func init() {
	flag.IntVar(&minLength, "l", prodigal.DefaultMinLength, "minimum CDS length in base pairs")
	flag.IntVar(&minLength, "min_length", prodigal.DefaultMinLength, "minimum CDS length in base pairs")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] <input.gff> <output.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	args, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil || len(args) != 2 || minLength < 1 {
		flag.Usage()
		os.Exit(1)
	}
	in, out := args[0], args[1]

	if *errFile != "" {
		w, err := os.Create(*errFile)
		if err != nil {
			log.Fatalf("failed to create log file: %v", err)
		}
		defer w.Close()
		log.SetOutput(w)
	}

	stats, err := run(in, out, *gffFile, minLength)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		log.Printf("%s: %d lines, %d comments, %d accepted, %d skipped", in, stats.Lines, stats.Comment, stats.Accepted, stats.Skipped())
		log.Printf("%s: skipped %d short lines, %d non-CDS, %d bad coordinates, %d short CDS, %d bad strand",
			in, stats.ShortLine, stats.NotCDS, stats.BadCoordinate, stats.ShortCDS, stats.BadStrand)
	}
	fmt.Printf("Processed data has been written to %s\n", out)
}

// parseArgs parses args with fs, allowing options to appear before,
// between or after positional arguments. Arguments following a "--"
// terminator are all treated as positional. It returns the positional
// arguments in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		err := fs.Parse(args)
		if err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		if len(rest) < len(args) && args[len(args)-len(rest)-1] == "--" {
			return append(pos, rest...), nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

// run extracts the coding segments of at least minLength from the GFF file
// in and writes them to the CSV file out. If gffOut is not empty the
// accepted features are also written there as GFF. The input is read in
// full before any output is created.
func run(in, out, gffOut string, minLength int) (prodigal.Stats, error) {
	segs, stats, err := prodigal.ExtractFile(in, minLength)
	if err != nil {
		return stats, err
	}
	err = prodigal.WriteFile(out, segs)
	if err != nil {
		return stats, err
	}
	if gffOut != "" {
		err = writeGFF(gffOut, segs)
	}
	return stats, err
}

func writeGFF(path string, segs []prodigal.Segment) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	w := gff.NewWriter(f, 60, true)
	for _, s := range segs {
		_, err = w.Write(s.Feature)
		if err != nil {
			return err
		}
	}
	return nil
}
