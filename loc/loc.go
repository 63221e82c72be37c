// Copyright © 2024 The Pangea Authors under an MIT-style license.

// Package loc tracks source file locations.
//
// Locations are kept as byte offsets into the concatenation of every
// file the compiler has read; line and column numbers are derived on
// demand rather than tracked incrementally, so the lexer and parser
// can stay minimal-state and simply carry offsets around.
package loc

import "fmt"

// A Range is a start and end byte offset into a Files set.
type Range [2]int

// GetRange returns itself, so Range can be embedded in a struct that
// implements interface{ GetRange() Range }.
func (r Range) GetRange() Range { return r }

// Len returns the length in bytes of the range.
func (r Range) Len() int { return r[1] - r[0] }

// A Pos describes a single resolved file location.
type Pos struct {
	Path string
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Col) }

// A Loc is a resolved start/end position pair.
type Loc struct {
	Path string
	Line [2]int
	Col  [2]int
}

func (l Loc) String() string {
	switch {
	case l.Line[0] == l.Line[1] && l.Col[0] == l.Col[1]:
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Line[0], l.Col[0])
	default:
		return fmt.Sprintf("%s:%d:%d-%d:%d", l.Path, l.Line[0], l.Col[0], l.Line[1], l.Col[1])
	}
}

// Files tracks locations within a set of files, in the order added.
type Files []File

// A File is a single file in a Files.
type File struct {
	Path  string
	Offs  int
	Len   int
	Lines []int
	text  string
}

// Len returns the total length in bytes of all files added so far.
// A new file is appended starting at this offset.
func (fs Files) Len() int {
	if len(fs) == 0 {
		return 0
	}
	last := fs[len(fs)-1]
	return last.Offs + last.Len
}

// Add registers a new file's text and returns the Range it occupies.
func (fs *Files) Add(path, text string) Range {
	offs := fs.Len()
	var lines []int
	for i, r := range text {
		if r == '\n' {
			lines = append(lines, offs+i)
		}
	}
	*fs = append(*fs, File{Path: path, Offs: offs, Len: len(text), Lines: lines, text: text})
	return Range{offs, offs + len(text)}
}

// Loc resolves a Range to a Loc. It returns the zero Loc if the range
// falls outside any known file (e.g. a synthetic built-in location).
func (fs Files) Loc(r Range) Loc {
	if len(fs) == 0 || r[0] < 0 || r[1] > fs.Len() {
		return Loc{}
	}
	var l Loc
	var spath, epath string
	spath, l.Line[0], l.Col[0] = fs.pos1(r[0])
	epath, l.Line[1], l.Col[1] = fs.pos1(r[1])
	if spath == epath {
		l.Path = spath
	}
	return l
}

// Pos resolves a single byte offset to a Pos.
func (fs Files) Pos(p int) Pos {
	path, line, col := fs.pos1(p)
	return Pos{Path: path, Line: line, Col: col}
}

// Source returns the full line of source text containing byte offset
// p, with its trailing newline stripped.
func (fs Files) Source(p int) string {
	if len(fs) == 0 {
		return ""
	}
	f := fs.fileAt(p)
	rel := p - f.Offs
	start := 0
	for _, nl := range f.Lines {
		nlRel := nl - f.Offs
		if nlRel >= rel {
			break
		}
		start = nlRel + 1
	}
	end := f.Len
	for _, nl := range f.Lines {
		nlRel := nl - f.Offs
		if nlRel >= start {
			end = nlRel
			break
		}
	}
	if start > end || end > len(f.text) {
		return ""
	}
	return f.text[start:end]
}

func (fs Files) fileAt(p int) *File {
	file := &fs[0]
	for i := range fs {
		if fs[i].Offs > p {
			break
		}
		file = &fs[i]
	}
	return file
}

func (fs Files) pos1(p int) (string, int, int) {
	file := fs[0]
	for _, f := range fs {
		if f.Offs > p {
			break
		}
		file = f
	}
	line, col1 := 1, file.Offs-1
	for _, nl := range file.Lines {
		if nl >= p {
			break
		}
		col1 = nl
		line++
	}
	return file.Path, line, p - col1
}
