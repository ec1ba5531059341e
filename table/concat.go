// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table merges CSV tables by column name.
package table

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

// ErrNoHeader is returned when a source table has no header row.
var ErrNoHeader = errors.New("table: missing header")

// Table is a CSV table held in memory.
type Table struct {
	Header []string
	Rows   [][]string

	// index holds the source row index of each
	// row of a merged table.
	index []int
}

// Read reads a CSV table with a header row from r. Every row must have
// the same number of fields as the header.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return &Table{Header: head, Rows: rows}, nil
}

// Concat writes the tables read from srcs to dst as a single CSV table.
// The output columns are the union of the source columns in the order they
// are first seen, and rows are placed by column name with missing cells
// left empty. All rows are retained in source order. If index is true a
// leading unnamed column holds the index of each row within its source.
func Concat(dst io.Writer, index bool, srcs ...io.Reader) error {
	tabs := make([]*Table, len(srcs))
	for i, r := range srcs {
		t, err := Read(r)
		if err != nil {
			return err
		}
		tabs[i] = t
	}
	return Merge(tabs...).Write(dst, index)
}

// Merge returns the column-name union of the given tables.
func Merge(tabs ...*Table) *Table {
	var (
		merged = &Table{}
		column = make(map[string]int)
	)
	for _, t := range tabs {
		for _, h := range t.Header {
			if _, ok := column[h]; ok {
				continue
			}
			column[h] = len(merged.Header)
			merged.Header = append(merged.Header, h)
		}
	}
	for _, t := range tabs {
		for i, r := range t.Rows {
			row := make([]string, len(merged.Header))
			for j, v := range r {
				row[column[t.Header[j]]] = v
			}
			merged.Rows = append(merged.Rows, row)
			merged.index = append(merged.index, t.rowIndex(i))
		}
	}
	return merged
}

func (t *Table) rowIndex(i int) int {
	if t.index == nil {
		return i
	}
	return t.index[i]
}

// Write writes t to w as CSV. If index is true a leading unnamed column
// holds row indices.
func (t *Table) Write(w io.Writer, index bool) error {
	cw := csv.NewWriter(w)
	head := t.Header
	if index {
		head = append([]string{""}, head...)
	}
	err := cw.Write(head)
	if err != nil {
		return err
	}
	for i, r := range t.Rows {
		if index {
			r = append([]string{strconv.Itoa(t.rowIndex(i))}, r...)
		}
		err = cw.Write(r)
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
