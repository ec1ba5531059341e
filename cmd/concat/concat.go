// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// concat merges CSV tables, matching columns by name and keeping all rows.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kortschak/cdsfilter/table"
)

var (
	outFile = flag.String("o", "", "output file name (default to stdout)")
	index   = flag.Bool("index", false, "write a leading column of per-source row indices")
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	err := run(*outFile, *index, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
}

// run concatenates the CSV tables in paths and writes the result to the
// file out, or to stdout if out is empty. All inputs are opened before
// the output is created.
func run(out string, index bool, paths []string) (err error) {
	srcs := make([]io.Reader, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		srcs = append(srcs, f)
	}

	w := os.Stdout
	if out != "" {
		w, err = os.Create(out)
		if err != nil {
			return err
		}
		defer func() {
			cerr := w.Close()
			if err == nil {
				err = cerr
			}
		}()
	}
	buf := bufio.NewWriter(w)
	err = table.Concat(buf, index, srcs...)
	if err != nil {
		return fmt.Errorf("failed to concatenate tables: %v", err)
	}
	return buf.Flush()
}
