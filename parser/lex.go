package parser

import (
	"strings"

	"akhil.cc/mexdoc/doc"
)

type tokKind int

const (
	tEOF tokKind = iota
	tWord
	tSpace
	tNewline
	tParaBreak
	tCommand
	tTagOpen
	tTagClose
	tEntity
	tListItem
	tURL
)

type token struct {
	kind    tokKind
	text    string
	name    string
	attrs   doc.AttrList
	indent  int
	ordered bool
	isEmail bool
	line    int
}

// escape maps the character escapes \\, \@ and friends to entity names.
var escape = map[byte]string{
	'\\': "bslash",
	'@':  "at",
	'$':  "dollar",
	'#':  "hash",
	'%':  "percent",
	'&':  "amp",
	'<':  "lt",
	'>':  "gt",
	'|':  "pipe",
	'"':  "quot",
	'-':  "dash",
}

// lexer reads one comment body as a token stream. The parser drops down to
// the raw read helpers for command arguments and verbatim capture, where
// tokenization must not apply.
type lexer struct {
	src         string
	pos         int
	line        int
	atLineStart bool
}

func newLexer(src string, startLine int) *lexer {
	if startLine < 1 {
		startLine = 1
	}
	return &lexer{src: src, line: startLine, atLineStart: true}
}

func (l *lexer) next() token {
	if l.pos >= len(l.src) {
		return token{kind: tEOF, line: l.line}
	}
	if l.atLineStart {
		if t, ok := l.listMarker(); ok {
			return t
		}
		l.atLineStart = false
	}
	switch c := l.src[l.pos]; {
	case c == '\n':
		return l.newline()
	case c == ' ' || c == '\t' || c == '\r':
		return l.space()
	case c == '\\' || c == '@':
		return l.command()
	case c == '<':
		if t, ok := l.tag(); ok {
			return t
		}
		l.pos++
		return token{kind: tWord, text: "<", line: l.line}
	case c == '&':
		if t, ok := l.entity(); ok {
			return t
		}
		l.pos++
		return token{kind: tWord, text: "&", line: l.line}
	}
	return l.word()
}

// newline consumes a line ending. A run of following blank lines collapses
// into a single paragraph break token.
func (l *lexer) newline() token {
	t := token{kind: tNewline, line: l.line}
	l.pos++
	l.line++
	for {
		j := l.pos
		for j < len(l.src) && (l.src[j] == ' ' || l.src[j] == '\t' || l.src[j] == '\r') {
			j++
		}
		if j < len(l.src) && l.src[j] == '\n' {
			l.pos = j + 1
			l.line++
			t.kind = tParaBreak
			continue
		}
		break
	}
	l.atLineStart = true
	return t
}

func (l *lexer) space() token {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c != ' ' && c != '\t' && c != '\r' {
			break
		}
		l.pos++
	}
	return token{kind: tSpace, text: l.src[start:l.pos], line: l.line}
}

// listMarker recognizes "-" and "-#" item markers at the start of a line.
// Tabs count as four columns for the indent.
func (l *lexer) listMarker() (token, bool) {
	j := l.pos
	indent := 0
	for j < len(l.src) {
		switch l.src[j] {
		case ' ':
			indent++
		case '\t':
			indent += 4
		default:
			goto scanned
		}
		j++
	}
scanned:
	if j >= len(l.src) || l.src[j] != '-' {
		return token{}, false
	}
	j++
	ordered := false
	if j < len(l.src) && l.src[j] == '#' {
		ordered = true
		j++
	}
	if j >= len(l.src) || (l.src[j] != ' ' && l.src[j] != '\t') {
		return token{}, false
	}
	for j < len(l.src) && (l.src[j] == ' ' || l.src[j] == '\t') {
		j++
	}
	l.pos = j
	l.atLineStart = false
	return token{kind: tListItem, indent: indent, ordered: ordered, line: l.line}, true
}

func (l *lexer) command() token {
	ln := l.line
	l.pos++
	if l.pos >= len(l.src) {
		return token{kind: tWord, text: l.src[l.pos-1:], line: ln}
	}
	c := l.src[l.pos]
	if !isNameByte(c) {
		l.pos++
		if name, ok := escape[c]; ok {
			return token{kind: tEntity, name: name, line: ln}
		}
		return token{kind: tWord, text: string(c), line: ln}
	}
	j := l.pos
	for j < len(l.src) && isNameByte(l.src[j]) {
		j++
	}
	name := l.src[l.pos:j]
	l.pos = j
	// formula delimiters carry their bracket in the name
	if name == "f" && j < len(l.src) {
		switch l.src[j] {
		case '$', '[', ']', '{', '}':
			name += string(l.src[j])
			l.pos++
		}
	}
	return token{kind: tCommand, name: name, line: ln}
}

func (l *lexer) entity() (token, bool) {
	j := l.pos + 1
	ns := j
	for j < len(l.src) && isAlnum(l.src[j]) {
		j++
	}
	if j == ns || j >= len(l.src) || l.src[j] != ';' {
		return token{}, false
	}
	t := token{kind: tEntity, name: l.src[ns:j], line: l.line}
	l.pos = j + 1
	return t, true
}

// tag recognizes an HTML start or end tag, or skips a comment. Anything
// that does not scan as a tag is left alone so a stray "<" stays literal.
func (l *lexer) tag() (token, bool) {
	j := l.pos + 1
	if strings.HasPrefix(l.src[j:], "!--") {
		end := strings.Index(l.src[j+3:], "-->")
		if end == -1 {
			return token{}, false
		}
		stop := j + 3 + end + 3
		l.line += strings.Count(l.src[l.pos:stop], "\n")
		l.pos = stop
		return l.next(), true
	}
	kind := tTagOpen
	if j < len(l.src) && l.src[j] == '/' {
		kind = tTagClose
		j++
	}
	ns := j
	for j < len(l.src) && isAlnum(l.src[j]) {
		j++
	}
	if j == ns {
		return token{}, false
	}
	name := strings.ToLower(l.src[ns:j])
	attrs, end, ok := scanAttrs(l.src, j)
	if !ok {
		return token{}, false
	}
	t := token{kind: kind, name: name, attrs: attrs, line: l.line}
	l.line += strings.Count(l.src[l.pos:end], "\n")
	l.pos = end
	return t, true
}

// scanAttrs reads name="value" pairs up to the closing angle bracket,
// returning the index just past it.
func scanAttrs(src string, i int) (doc.AttrList, int, bool) {
	var attrs doc.AttrList
	for {
		for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
			i++
		}
		if i >= len(src) {
			return nil, 0, false
		}
		switch src[i] {
		case '>':
			return attrs, i + 1, true
		case '/':
			i++
			continue
		case '<':
			return nil, 0, false
		}
		ns := i
		for i < len(src) && src[i] != '=' && src[i] != '>' && src[i] != ' ' &&
			src[i] != '\t' && src[i] != '\n' && src[i] != '\r' {
			i++
		}
		if i == ns {
			return nil, 0, false
		}
		a := doc.Attr{Name: strings.ToLower(src[ns:i])}
		if i < len(src) && src[i] == '=' {
			i++
			if i < len(src) && (src[i] == '"' || src[i] == '\'') {
				q := src[i]
				i++
				vs := i
				for i < len(src) && src[i] != q {
					i++
				}
				if i >= len(src) {
					return nil, 0, false
				}
				a.Value = src[vs:i]
				i++
			} else {
				vs := i
				for i < len(src) && src[i] != '>' && src[i] != ' ' &&
					src[i] != '\t' && src[i] != '\n' && src[i] != '\r' {
					i++
				}
				a.Value = src[vs:i]
			}
		}
		attrs = append(attrs, a)
	}
}

func (l *lexer) word() token {
	ln := l.line
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\\' || c == '<' || c == '&' {
			break
		}
		if c == '@' {
			// an at sign inside a word is literal, as in an email address
			if l.pos > start && l.pos+1 < len(l.src) && isAlnum(l.src[l.pos+1]) {
				l.pos++
				continue
			}
			break
		}
		l.pos++
	}
	if l.pos == start {
		l.pos++
	}
	w := l.src[start:l.pos]
	if strings.HasPrefix(w, "http://") || strings.HasPrefix(w, "https://") || strings.HasPrefix(w, "ftp://") {
		return token{kind: tURL, text: w, line: ln}
	}
	if i := strings.IndexByte(w, '@'); i > 0 && strings.IndexByte(w[i:], '.') > 0 {
		return token{kind: tURL, text: w, isEmail: true, line: ln}
	}
	return token{kind: tWord, text: w, line: ln}
}

// The helpers below feed command-argument parsing. They read the raw input
// without tokenizing.

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c != ' ' && c != '\t' && c != '\r' {
			break
		}
		l.pos++
	}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// readWord skips horizontal whitespace and reads up to the next whitespace.
func (l *lexer) readWord() string {
	l.skipSpace()
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		l.pos++
	}
	return l.src[start:l.pos]
}

// readRestOfLine reads to the end of the current line, consuming the
// newline but not reporting it.
func (l *lexer) readRestOfLine() string {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	s := strings.TrimSpace(l.src[start:l.pos])
	if l.pos < len(l.src) {
		l.pos++
		l.line++
		l.atLineStart = true
	}
	return s
}

// readQuoted reads a double-quoted argument, or a bare word when the next
// character is not a quote. Returns ok=false when nothing is there.
func (l *lexer) readQuoted() (string, bool) {
	l.skipSpace()
	if l.peekByte() != '"' {
		w := l.readWord()
		return w, w != ""
	}
	l.pos++
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != '"' && l.src[l.pos] != '\n' {
		l.pos++
	}
	s := l.src[start:l.pos]
	if l.peekByte() == '"' {
		l.pos++
	}
	return s, true
}

// peekQuoted reports whether a quoted argument follows on the same line.
func (l *lexer) peekQuoted() bool {
	j := l.pos
	for j < len(l.src) && (l.src[j] == ' ' || l.src[j] == '\t') {
		j++
	}
	return j < len(l.src) && l.src[j] == '"'
}

// readBraceOption reads a {...} option glued to the command, such as the
// language of a code block.
func (l *lexer) readBraceOption() string {
	if l.peekByte() != '{' {
		return ""
	}
	start := l.pos + 1
	j := start
	for j < len(l.src) && l.src[j] != '}' && l.src[j] != '\n' {
		j++
	}
	if j >= len(l.src) || l.src[j] != '}' {
		return ""
	}
	l.pos = j + 1
	return strings.TrimSpace(l.src[start:j])
}

// readBracketOption reads a [...] option glued to the command, such as a
// parameter direction.
func (l *lexer) readBracketOption() string {
	if l.peekByte() != '[' {
		return ""
	}
	start := l.pos + 1
	j := start
	for j < len(l.src) && l.src[j] != ']' && l.src[j] != '\n' {
		j++
	}
	if j >= len(l.src) || l.src[j] != ']' {
		return ""
	}
	l.pos = j + 1
	return strings.TrimSpace(l.src[start:j])
}

// readUntilByte reads up to and including b on the current line, returning
// the text before it.
func (l *lexer) readUntilByte(b byte) string {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] != b && l.src[l.pos] != '\n' {
		l.pos++
	}
	s := l.src[start:l.pos]
	if l.pos < len(l.src) && l.src[l.pos] == b {
		l.pos++
	}
	return s
}

// readUntilCommand captures raw text up to \name or @name, consuming the
// terminator. It reports whether the terminator was found; on failure the
// rest of the input is returned.
func (l *lexer) readUntilCommand(name string) (string, bool) {
	rest := l.src[l.pos:]
	best := -1
	skip := 0
	for _, prefix := range []string{"\\", "@"} {
		from := 0
		for {
			i := strings.Index(rest[from:], prefix+name)
			if i == -1 {
				break
			}
			i += from
			end := i + len(prefix) + len(name)
			// names ending in a letter must not run into a longer name
			if isNameByte(name[len(name)-1]) && end < len(rest) && isNameByte(rest[end]) {
				from = end
				continue
			}
			if best == -1 || i < best {
				best, skip = i, len(prefix)+len(name)
			}
			break
		}
	}
	if best == -1 {
		l.line += strings.Count(rest, "\n")
		l.pos = len(l.src)
		return rest, false
	}
	text := rest[:best]
	l.line += strings.Count(rest[:best+skip], "\n")
	l.pos += best + skip
	return text, true
}

func isNameByte(c byte) bool {
	return c == '_' || isAlnum(c)
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
