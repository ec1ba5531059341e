// Copyright ©2026 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(a, []byte("Name,SequenceID,CodingStart,CodingStop\na.gff,NC_001,10,159\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("Name,SequenceID,CodingStart,CodingStop\nb.gff,NC_002,400,100\n"), 0o644))

	out := filepath.Join(dir, "all.csv")
	require.NoError(t, run(out, false, []string{a, b}))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Name,SequenceID,CodingStart,CodingStop\n"+
		"a.gff,NC_001,10,159\n"+
		"b.gff,NC_002,400,100\n", string(got))

	require.NoError(t, run(out, true, []string{a, b}))
	got, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, ",Name,SequenceID,CodingStart,CodingStop\n"+
		"0,a.gff,NC_001,10,159\n"+
		"0,b.gff,NC_002,400,100\n", string(got))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(a, []byte("Name,SequenceID\nx,y\n"), 0o644))

	out := filepath.Join(dir, "out.csv")
	err := run(out, false, []string{a, filepath.Join(dir, "missing.csv")})
	assert.True(t, os.IsNotExist(err), "unexpected error: %v", err)
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "output written for missing input")

	err = run(filepath.Join(dir, "no", "such", "out.csv"), false, []string{a})
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	err = run(out, false, []string{empty})
	assert.Error(t, err)
}
