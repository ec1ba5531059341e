// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prodigal extracts coding sequence features from Prodigal GFF output.
//
// Parsing is permissive: lines that cannot be interpreted as a CDS feature
// of sufficient length on a known strand are skipped rather than reported
// as errors.
package prodigal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
)

// DefaultMinLength is the default minimum CDS length in base pairs.
// It corresponds to 50 codons.
const DefaultMinLength = 150

var (
	ErrComment       = errors.New("prodigal: comment or blank line")
	ErrShortLine     = errors.New("prodigal: too few fields")
	ErrNotCDS        = errors.New("prodigal: feature is not CDS")
	ErrBadCoordinate = errors.New("prodigal: invalid coordinate")
	ErrShortCDS      = errors.New("prodigal: CDS below minimum length")
	ErrBadStrand     = errors.New("prodigal: invalid strand")
)

const (
	seqnameField = iota
	sourceField
	featureField
	startField
	endField
	scoreField
	strandField
	frameField
	attributeField

	numFields
)

// ParseLine returns the GFF feature described by a single line of Prodigal
// output. Fields are separated by runs of white space and fields beyond
// the ninth are ignored. Only CDS features are returned.
//
// The returned feature uses 0-based half-open coordinates, so its Len
// method returns the 1-based inclusive length end-start+1. A strand field
// other than + or - is returned as seq.None without error.
func ParseLine(line string) (*gff.Feature, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return nil, ErrComment
	}
	fields := strings.Fields(line)
	if len(fields) < numFields {
		return nil, ErrShortLine
	}
	if fields[featureField] != "CDS" {
		return nil, ErrNotCDS
	}
	start, err := strconv.Atoi(fields[startField])
	if err != nil {
		return nil, ErrBadCoordinate
	}
	end, err := strconv.Atoi(fields[endField])
	if err != nil {
		return nil, ErrBadCoordinate
	}

	f := &gff.Feature{
		SeqName:        fields[seqnameField],
		Source:         fields[sourceField],
		Feature:        fields[featureField],
		FeatStart:      start - 1,
		FeatEnd:        end,
		FeatStrand:     parseStrand(fields[strandField]),
		FeatFrame:      parseFrame(fields[frameField]),
		FeatAttributes: parseAttributes(fields[attributeField]),
	}
	if score, err := strconv.ParseFloat(fields[scoreField], 64); err == nil {
		f.FeatScore = &score
	}
	return f, nil
}

func parseStrand(s string) seq.Strand {
	switch s {
	case "+":
		return seq.Plus
	case "-":
		return seq.Minus
	default:
		return seq.None
	}
}

func parseFrame(s string) gff.Frame {
	switch s {
	case "0":
		return gff.Frame0
	case "1":
		return gff.Frame1
	case "2":
		return gff.Frame2
	default:
		return gff.NoFrame
	}
}

// parseAttributes parses a GFF3 tag=value;tag=value attribute field.
func parseAttributes(s string) gff.Attributes {
	var attr gff.Attributes
	for _, kv := range strings.Split(s, ";") {
		if kv == "" {
			continue
		}
		i := strings.Index(kv, "=")
		if i < 0 {
			attr = append(attr, gff.Attribute{Tag: kv})
			continue
		}
		attr = append(attr, gff.Attribute{Tag: kv[:i], Value: kv[i+1:]})
	}
	return attr
}

// Segment is a coding segment extracted from a CDS feature. For features
// on the minus strand CodingStart is the feature end and CodingStop is the
// feature start, so coordinates follow the direction of translation.
type Segment struct {
	Name        string
	SequenceID  string
	CodingStart int
	CodingStop  int

	// Feature is the source feature. It is nil for
	// segments read back from CSV.
	Feature *gff.Feature
}

// Len returns the length of the segment in base pairs.
func (s Segment) Len() int {
	if s.CodingStop < s.CodingStart {
		return s.CodingStart - s.CodingStop + 1
	}
	return s.CodingStop - s.CodingStart + 1
}

// NewSegment returns the segment for f labelled with name. It returns
// ErrShortCDS if f is shorter than minLength and ErrBadStrand if f is
// not on the plus or minus strand.
func NewSegment(name string, f *gff.Feature, minLength int) (Segment, error) {
	if f.Len() < minLength {
		return Segment{}, ErrShortCDS
	}
	start := f.FeatStart + 1
	end := f.FeatEnd
	switch f.FeatStrand {
	case seq.Plus:
	case seq.Minus:
		start, end = end, start
	default:
		return Segment{}, ErrBadStrand
	}
	return Segment{
		Name:        name,
		SequenceID:  f.SeqName,
		CodingStart: start,
		CodingStop:  end,
		Feature:     f,
	}, nil
}

// Stats holds counts of line outcomes seen by a Scanner.
type Stats struct {
	Lines    int
	Accepted int

	Comment       int
	ShortLine     int
	NotCDS        int
	BadCoordinate int
	ShortCDS      int
	BadStrand     int
}

// Skipped returns the number of non-comment lines that did not produce
// a segment.
func (s Stats) Skipped() int {
	return s.ShortLine + s.NotCDS + s.BadCoordinate + s.ShortCDS + s.BadStrand
}

func (s *Stats) add(err error) {
	s.Lines++
	switch err {
	case nil:
		s.Accepted++
	case ErrComment:
		s.Comment++
	case ErrShortLine:
		s.ShortLine++
	case ErrNotCDS:
		s.NotCDS++
	case ErrBadCoordinate:
		s.BadCoordinate++
	case ErrShortCDS:
		s.ShortCDS++
	case ErrBadStrand:
		s.BadStrand++
	}
}

// Scanner provides an iterator over the coding segments in a Prodigal
// GFF stream. Lines may be terminated by \n, \r\n or a lone \r and
// have no length limit.
type Scanner struct {
	r    *bufio.Reader
	name string
	min  int

	lines []string
	done  bool
	err   error

	seg   Segment
	stats Stats
}

// NewScanner returns a Scanner reading from r that labels segments with
// name and drops CDS features shorter than minLength.
func NewScanner(r io.Reader, name string, minLength int) *Scanner {
	return &Scanner{r: bufio.NewReader(r), name: name, min: minLength}
}

// Next advances the Scanner to the next accepted segment, which will then
// be available through the Segment method. It returns false when the scan
// stops, either by reaching the end of the input or an error. After Next
// returns false, the Error method will return any error that occurred
// during scanning, except that if it was io.EOF, Error will return nil.
func (s *Scanner) Next() bool {
	for {
		if len(s.lines) == 0 {
			if s.done {
				break
			}
			s.fill()
			continue
		}
		line := s.lines[0]
		s.lines = s.lines[1:]

		f, err := ParseLine(line)
		if err == nil {
			s.seg, err = NewSegment(s.name, f, s.min)
		}
		s.stats.add(err)
		if err == nil {
			return true
		}
	}
	s.seg = Segment{}
	return false
}

// fill reads the next \n-terminated chunk and splits it into lines,
// treating an embedded \r as a line break.
func (s *Scanner) fill() {
	chunk, err := s.r.ReadString('\n')
	if err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
			return
		}
		if chunk == "" {
			return
		}
	}
	switch {
	case strings.HasSuffix(chunk, "\r\n"):
		chunk = chunk[:len(chunk)-2]
	case strings.HasSuffix(chunk, "\n"), strings.HasSuffix(chunk, "\r"):
		chunk = chunk[:len(chunk)-1]
	}
	s.lines = strings.Split(chunk, "\r")
}

// Segment returns the most recent segment read by a call to Next.
func (s *Scanner) Segment() Segment { return s.seg }

// Stats returns the line outcome counts accumulated so far.
func (s *Scanner) Stats() Stats { return s.stats }

// Error returns the first non-EOF error that was encountered by the Scanner.
func (s *Scanner) Error() error { return s.err }

// Extract returns the coding segments in r in input order, labelled with
// name and filtered by minLength.
func Extract(r io.Reader, name string, minLength int) ([]Segment, Stats, error) {
	var segs []Segment
	sc := NewScanner(r, name, minLength)
	for sc.Next() {
		segs = append(segs, sc.Segment())
	}
	return segs, sc.Stats(), sc.Error()
}

// ExtractFile returns the coding segments in the named file, labelled
// with the file's base name.
func ExtractFile(path string, minLength int) ([]Segment, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()
	return Extract(f, filepath.Base(path), minLength)
}
