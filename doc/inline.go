package doc

import "strings"

// Word is a run of plain text with no markup.
type Word struct {
	base
	Text string
}

func NewWord(parent Node, text string) *Word {
	w := &Word{Text: text}
	w.parent = parent
	return w
}

func (*Word) Kind() Kind { return KindWord }

// LinkedWord is a word resolved against the symbol table into a link target.
type LinkedWord struct {
	base
	Text    string
	Ref     string
	File    string
	RelPath string
	Anchor  string
	Tooltip string
}

func NewLinkedWord(parent Node, text, ref, file, relPath, anchor, tooltip string) *LinkedWord {
	w := &LinkedWord{Text: text, Ref: ref, File: file, RelPath: relPath, Anchor: anchor, Tooltip: tooltip}
	w.parent = parent
	return w
}

func (*LinkedWord) Kind() Kind { return KindLinkedWord }

// WhiteSpace is a run of spaces and tabs. The original characters are kept
// for preformatted contexts; everywhere else backends collapse the run.
type WhiteSpace struct {
	base
	Chars string
}

func NewWhiteSpace(parent Node, chars string) *WhiteSpace {
	w := &WhiteSpace{Chars: chars}
	w.parent = parent
	return w
}

func (*WhiteSpace) Kind() Kind { return KindWhiteSpace }

// Symbol is a named special character (an HTML entity or an escaped
// command character). The name is looked up in the entity table at render
// time; the node itself stores only the name.
type Symbol struct {
	base
	Name string
}

func NewSymbol(parent Node, name string) *Symbol {
	s := &Symbol{Name: name}
	s.parent = parent
	return s
}

func (*Symbol) Kind() Kind { return KindSymbol }

// URL is a bare web address or email address found in running text.
type URL struct {
	base
	Text    string
	IsEmail bool
}

func NewURL(parent Node, text string, isEmail bool) *URL {
	u := &URL{Text: text, IsEmail: isEmail}
	u.parent = parent
	return u
}

func (*URL) Kind() Kind { return KindURL }

// LineBreak is a forced line break inside a paragraph.
type LineBreak struct {
	base
}

func NewLineBreak(parent Node) *LineBreak {
	b := &LineBreak{}
	b.parent = parent
	return b
}

func (*LineBreak) Kind() Kind { return KindLineBreak }

// HorRule is a horizontal ruler.
type HorRule struct {
	base
}

func NewHorRule(parent Node) *HorRule {
	h := &HorRule{}
	h.parent = parent
	return h
}

func (*HorRule) Kind() Kind { return KindHorRule }

// Anchor is a named location that links can point at.
type Anchor struct {
	base
	ID   string
	File string
}

func NewAnchor(parent Node, id, file string) *Anchor {
	a := &Anchor{ID: id, File: file}
	a.parent = parent
	return a
}

func (*Anchor) Kind() Kind { return KindAnchor }

// Cite is a citation of a bibliographic reference. When the target could
// not be resolved File is empty and backends render the label in brackets.
type Cite struct {
	base
	Text    string
	File    string
	Ref     string
	RelPath string
	Anchor  string
}

func NewCite(parent Node, text string) *Cite {
	c := &Cite{Text: text}
	c.parent = parent
	return c
}

func (*Cite) Kind() Kind { return KindCite }

// Style identifies one inline style span. The values are bit flags so a
// sibling scan can mask out styles it has already seen closed.
type Style int

const (
	Bold Style = 1 << iota
	Italic
	Code
	Center
	Small
	Subscript
	Superscript
	Preformatted
	Span
	Div
)

func (s Style) String() string {
	switch s {
	case Bold:
		return "b"
	case Italic:
		return "em"
	case Code:
		return "code"
	case Center:
		return "center"
	case Small:
		return "small"
	case Subscript:
		return "sub"
	case Superscript:
		return "sup"
	case Preformatted:
		return "pre"
	case Span:
		return "span"
	case Div:
		return "div"
	}
	return ""
}

// StyleChange toggles an inline style on or off. Position records the
// node's index among its siblings at the time it was appended; sibling
// scans walk the child slice directly, so the field is informational.
type StyleChange struct {
	base
	Style    Style
	Position int
	Enable   bool
	Attrs    AttrList
}

func NewStyleChange(parent Node, position int, style Style, enable bool, attrs AttrList) *StyleChange {
	s := &StyleChange{Style: style, Position: position, Enable: enable, Attrs: attrs}
	s.parent = parent
	return s
}

func (*StyleChange) Kind() Kind { return KindStyleChange }

// VerbatimType says what a verbatim block holds and which backends care.
type VerbatimType int

const (
	VerbCode VerbatimType = iota
	VerbVerbatim
	VerbHTMLOnly
	VerbManOnly
	VerbLatexOnly
	VerbXMLOnly
	VerbRTFOnly
	VerbDot
	VerbMsc
)

// Verbatim is an unparsed text fragment captured byte for byte. Its content
// is opaque to the parser and handed whole to the highlighter or diagram
// tool at render time.
type Verbatim struct {
	base
	Context     string
	Text        string
	Type        VerbatimType
	IsExample   bool
	ExampleFile string
	IsBlock     bool
	Lang        string
	RelPath     string
}

func NewVerbatim(parent Node, context, text string, t VerbatimType, isExample bool, exampleFile string) *Verbatim {
	v := &Verbatim{Context: context, Text: text, Type: t, IsExample: isExample, ExampleFile: exampleFile}
	v.parent = parent
	return v
}

func (*Verbatim) Kind() Kind { return KindVerbatim }

// IncludeType selects the flavor of an included text block.
type IncludeType int

const (
	IncInclude IncludeType = iota
	IncWithLines
	IncDontInclude
	IncHTMLInclude
	IncVerbInclude
	IncSnippet
)

// Include is a text block pulled in from another file.
type Include struct {
	base
	File        string
	Context     string
	Text        string
	Type        IncludeType
	IsExample   bool
	ExampleFile string
	BlockID     string
}

func NewInclude(parent Node, file, context string, t IncludeType, isExample bool, exampleFile, blockID string) *Include {
	i := &Include{File: file, Context: context, Type: t, IsExample: isExample, ExampleFile: exampleFile, BlockID: blockID}
	i.parent = parent
	return i
}

func (*Include) Kind() Kind { return KindInclude }

// Extension returns the file extension of the included file, with the dot.
func (i *Include) Extension() string {
	if n := strings.LastIndexByte(i.File, '.'); n != -1 {
		return i.File[n:]
	}
	return ""
}

// IncOpType is the operator applied by a streaming include.
type IncOpType int

const (
	IncOpLine IncOpType = iota
	IncOpSkipLine
	IncOpSkip
	IncOpUntil
)

// IncOperator is one step of a streaming multi-block include. First and
// last markers let backends open the fragment once and close it once across
// a run of consecutive operators.
type IncOperator struct {
	base
	Type        IncOpType
	Text        string
	Pattern     string
	Context     string
	IsFirst     bool
	IsLast      bool
	IsExample   bool
	ExampleFile string
}

func NewIncOperator(parent Node, t IncOpType, pattern, context string, isExample bool, exampleFile string) *IncOperator {
	o := &IncOperator{Type: t, Pattern: pattern, Context: context, IsExample: isExample, ExampleFile: exampleFile}
	o.parent = parent
	return o
}

func (*IncOperator) Kind() Kind { return KindIncOperator }

// Formula is a piece of mathematics, referenced by a stable numeric id
// assigned at first use.
type Formula struct {
	base
	ID      int
	Name    string
	Text    string
	RelPath string
}

func NewFormula(parent Node, id int, name, text string) *Formula {
	f := &Formula{ID: id, Name: name, Text: text}
	f.parent = parent
	return f
}

func (*Formula) Kind() Kind { return KindFormula }

// IsInline reports whether the formula renders in the running text, which
// is the case unless the raw text opens with a display-mode bracket.
func (f *Formula) IsInline() bool {
	return len(f.Text) == 0 || f.Text[0] != '\\'
}

// IndexEntry registers a word with the search index and drops an anchor.
type IndexEntry struct {
	base
	Entry string
	Scope string
}

func NewIndexEntry(parent Node, entry, scope string) *IndexEntry {
	e := &IndexEntry{Entry: entry, Scope: scope}
	e.parent = parent
	return e
}

func (*IndexEntry) Kind() Kind { return KindIndexEntry }

// SimpleSectSep separates two merged simple sections of the same type.
type SimpleSectSep struct {
	base
}

func NewSimpleSectSep(parent Node) *SimpleSectSep {
	s := &SimpleSectSep{}
	s.parent = parent
	return s
}

func (*SimpleSectSep) Kind() Kind { return KindSimpleSectSep }

// Copy defers to another documented entity's text. It is not expanded at
// parse time; the surrounding system resolves the link target to an
// already-parsed node list in a post-parse step.
type Copy struct {
	base
	Link        string
	CopyBrief   bool
	CopyDetails bool
}

func NewCopy(parent Node, link string, brief, details bool) *Copy {
	c := &Copy{Link: link, CopyBrief: brief, CopyDetails: details}
	c.parent = parent
	return c
}

func (*Copy) Kind() Kind { return KindCopy }
