// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package decl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is the type of a lexer item.
//
type Type int

// Tokens
//
const (
	EOF Type = iota
	Raw
	Ident
	Punct
	Arrow
	Comma
)

var typeNames = [...]string{
	EOF:   "end of input",
	Raw:   "invalid character",
	Ident: "name",
	Punct: "tag",
	Arrow: "'->'",
	Comma: "','",
}

func (t Type) String() string { return typeNames[t] }

// An Item is a lexer token. Pos is the byte offset of the token in the input.
//
type Item struct {
	Type  Type
	Pos   int
	Value string
}

func (i Item) String() string {
	switch i.Type {
	case Ident, Punct, Raw:
		return i.Type.String() + " " + strconv.Quote(i.Value)
	}
	return i.Type.String()
}

type lexer struct {
	input string
	start int
	pos   int
	items []Item
}

type stateFn func(l *lexer) stateFn

// Lex splits a declaration into tokens. The last item is always EOF.
//
func Lex(input string) []Item {
	l := &lexer{input: input}
	for state := lexInit; state != nil; {
		state = state(l)
	}
	return l.items
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.pos++ // so that backup works at EOF
		return -1
	}
	r, n := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += n
	return r
}

func (l *lexer) backup(r rune) {
	if r < 0 {
		l.pos--
		return
	}
	l.pos -= utf8.RuneLen(r)
}

func (l *lexer) emit(t Type) {
	end := l.pos
	if end > len(l.input) {
		end = len(l.input)
	}
	start := l.start
	if start > end {
		start = end
	}
	l.items = append(l.items, Item{Type: t, Pos: start, Value: l.input[start:end]})
	l.start = l.pos
}

func isIdent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func lexInit(l *lexer) stateFn {
	r := l.next()
	switch {
	case r < 0:
		l.emit(EOF)
		return nil
	case unicode.IsSpace(r):
		for r = l.next(); r >= 0 && unicode.IsSpace(r); r = l.next() {
		}
		l.backup(r)
		l.start = l.pos
	case isIdent(r):
		return lexIdent
	case r == ',':
		l.emit(Comma)
	case r == '-':
		if n := l.next(); n != '>' {
			l.backup(n)
			l.emit(Punct)
			break
		}
		l.emit(Arrow)
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		l.emit(Punct)
	default:
		l.emit(Raw)
	}
	return lexInit
}

func lexIdent(l *lexer) stateFn {
	r := l.next()
	for isIdent(r) {
		r = l.next()
	}
	l.backup(r)
	l.emit(Ident)
	return lexInit
}
