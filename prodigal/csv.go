// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prodigal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header is the column header of segment CSV files.
var Header = []string{"Name", "SequenceID", "CodingStart", "CodingStop"}

const (
	nameColumn = iota
	seqidColumn
	codingStartColumn
	codingStopColumn
)

// WriteCSV writes a header row followed by one row per segment to w.
func WriteCSV(w io.Writer, segs []Segment) error {
	cw := csv.NewWriter(w)
	err := cw.Write(Header)
	if err != nil {
		return err
	}
	for _, s := range segs {
		err = cw.Write([]string{
			s.Name,
			s.SequenceID,
			strconv.Itoa(s.CodingStart),
			strconv.Itoa(s.CodingStop),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates or truncates the named file and writes segs to it
// as CSV. The file is closed before WriteFile returns.
func WriteFile(path string, segs []Segment) (err error) {
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
	return WriteCSV(f, segs)
}

// ReadCSV reads segments from CSV written by WriteCSV. Columns are located
// by name so additional columns, such as those added by concatenation,
// are ignored.
func ReadCSV(r io.Reader) ([]Segment, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("prodigal: missing header")
	}
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(Header))
	for i, name := range Header {
		idx[i] = -1
		for j, h := range head {
			if h == name {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, fmt.Errorf("prodigal: missing %q column", name)
		}
	}

	var segs []Segment
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		for _, j := range idx {
			if j >= len(rec) {
				return nil, fmt.Errorf("prodigal: short record on line %d", line)
			}
		}
		start, err := strconv.Atoi(rec[idx[codingStartColumn]])
		if err != nil {
			return nil, fmt.Errorf("prodigal: bad CodingStart on line %d: %v", line, err)
		}
		stop, err := strconv.Atoi(rec[idx[codingStopColumn]])
		if err != nil {
			return nil, fmt.Errorf("prodigal: bad CodingStop on line %d: %v", line, err)
		}
		segs = append(segs, Segment{
			Name:        rec[idx[nameColumn]],
			SequenceID:  rec[idx[seqidColumn]],
			CodingStart: start,
			CodingStop:  stop,
		})
	}
	return segs, nil
}
