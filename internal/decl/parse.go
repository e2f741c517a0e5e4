// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package decl scans module declarations.
//
// A declaration has the form:
//
//	[tag]name -> target, target, ...
//
// where tag is an optional punctuation or symbol character. The target list
// may be empty.
//
package decl

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// A Decl is a scanned declaration. Tag is 0 for untagged declarations.
//
type Decl struct {
	Line    int
	Tag     rune
	TagPos  int
	Name    string
	Targets []string
}

// A SyntaxError reports a declaration that cannot be scanned.
//
type SyntaxError struct {
	Line  int // 1-based line number, 0 if unknown
	Input string
	Pos   int // 0-based byte offset in Input
	Msg   string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		b.WriteString("line ")
		b.WriteString(strconv.Itoa(e.Line))
		b.WriteString(": ")
	}
	b.WriteString("in ")
	b.WriteString(strconv.Quote(e.Input))
	b.WriteString(" at pos ")
	b.WriteString(strconv.Itoa(e.Pos + 1))
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

func parseError(in string, i Item, msg string) error {
	return &SyntaxError{Input: in, Pos: i.Pos, Msg: msg}
}

// Parse scans a single declaration.
//
func Parse(line string) (Decl, error) {
	var d Decl
	items := Lex(line)
	i := 0

	if items[i].Type == Punct {
		d.Tag, _ = utf8.DecodeRuneInString(items[i].Value)
		d.TagPos = items[i].Pos
		i++
	}
	if items[i].Type != Ident {
		return d, parseError(line, items[i], "expected module name, got "+items[i].String())
	}
	d.Name = items[i].Value
	i++
	if items[i].Type != Arrow {
		return d, parseError(line, items[i], "expected '->' after module name, got "+items[i].String())
	}
	i++
	if items[i].Type == EOF {
		return d, nil
	}
	for {
		if items[i].Type != Ident {
			return d, parseError(line, items[i], "expected target name, got "+items[i].String())
		}
		d.Targets = append(d.Targets, items[i].Value)
		i++
		switch items[i].Type {
		case EOF:
			return d, nil
		case Comma:
			i++
		default:
			return d, parseError(line, items[i], "expected ',' or end of input, got "+items[i].String())
		}
	}
}

// A Scanner reads declarations, one per line. Blank lines are skipped.
//
type Scanner struct {
	s    *bufio.Scanner
	line int
	d    Decl
	err  error
}

// NewScanner returns a new Scanner reading from r.
//
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next declaration. It returns false at the end of the
// input or on the first error.
//
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.s.Scan() {
		s.line++
		text := s.s.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		d, err := Parse(text)
		if err != nil {
			if se, ok := err.(*SyntaxError); ok {
				se.Line = s.line
			}
			s.err = err
			return false
		}
		d.Line = s.line
		s.d = d
		return true
	}
	if err := s.s.Err(); err != nil {
		s.err = errors.Wrapf(err, "line %d", s.line+1)
	}
	return false
}

// Decl returns the last scanned declaration.
//
func (s *Scanner) Decl() Decl { return s.d }

// Err returns the first error encountered by the Scanner.
//
func (s *Scanner) Err() error { return s.err }
