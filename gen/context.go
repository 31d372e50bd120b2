package gen

import (
	"fmt"
	"io"
	"strings"
)

// Target is a resolved cross-reference destination.
type Target struct {
	Ref       string // external tag file reference, empty for local targets
	File      string // output file name without suffix
	Anchor    string
	RelPath   string
	Tooltip   string
	IsSubPage bool
}

// Resolver maps link names written in comments to output locations. The
// zero resolver resolves nothing, which degrades every reference to plain
// text with a warning.
type Resolver interface {
	// Resolve looks up a target name, such as a symbol, section id or
	// citation label. The second result reports whether it was found.
	Resolve(name string) (Target, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) (Target, bool)

func (f ResolverFunc) Resolve(name string) (Target, bool) { return f(name) }

// Translator supplies the human-readable labels backends print for
// generated headings. Keys are stable identifiers like "see" or "warning".
type Translator interface {
	Tr(key string) string
}

// English is the default translator.
type English struct{}

var english = map[string]string{
	"see":        "See also",
	"return":     "Returns",
	"author":     "Author",
	"authors":    "Authors",
	"version":    "Version",
	"since":      "Since",
	"date":       "Date",
	"note":       "Note",
	"warning":    "Warning",
	"copyright":  "Copyright",
	"pre":        "Precondition",
	"post":       "Postcondition",
	"invariant":  "Invariant",
	"remark":     "Remarks",
	"attention":  "Attention",
	"params":     "Parameters",
	"retvals":    "Return values",
	"exceptions": "Exceptions",
	"tparams":    "Template Parameters",
	"todo":       "Todo",
	"bug":        "Bug",
	"deprecated": "Deprecated",
	"test":       "Test",
	"and":        "and",
}

func (English) Tr(key string) string {
	if s, ok := english[key]; ok {
		return s
	}
	return key
}

// Highlighter renders a source fragment through a CodeWriter. The language
// hint comes from a code block's explicit language or an included file's
// extension, and may be empty.
type Highlighter interface {
	Highlight(w CodeWriter, lang, text string, showLineNumbers bool, startLine int)
}

// PlainHighlighter writes code without any styling. It still honors line
// numbering so includelineno output stays aligned.
type PlainHighlighter struct{}

func (PlainHighlighter) Highlight(w CodeWriter, lang, text string, showLineNumbers bool, startLine int) {
	if !showLineNumbers {
		w.WriteCode(text)
		return
	}
	n := startLine
	for len(text) > 0 {
		line := text
		if i := strings.IndexByte(text, '\n'); i != -1 {
			line, text = text[:i], text[i+1:]
		} else {
			text = ""
		}
		w.WriteLineNumber("", "", "", n)
		w.WriteCode(line)
		w.WriteCode("\n")
		n++
	}
}

// Sink receives parse and render diagnostics. Messages describe the problem
// and the processing continues; a documentation tool degrades, it does not
// stop.
type Sink interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// WriterSink prints diagnostics to a stream, one per line.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(s.W, "warning: "+format+"\n", args...)
}

func (s WriterSink) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(s.W, "error: "+format+"\n", args...)
}

// Discard drops all diagnostics.
type Discard struct{}

func (Discard) Warnf(string, ...interface{})  {}
func (Discard) Errorf(string, ...interface{}) {}

// Context carries everything a backend needs beyond the tree itself. The
// zero value works: unresolved links degrade, code prints unstyled, and
// diagnostics are dropped.
type Context struct {
	// OutputDir is where generated artifacts, such as diagram images, land.
	OutputDir string
	// ImageExt is the extension for generated images, with the dot.
	ImageExt string
	// FileSuffix is appended to resolved file names in links, e.g. ".html".
	FileSuffix string
	// RelPath prefixes relative links from the current output file.
	RelPath string

	Resolver    Resolver
	Translator  Translator
	Highlighter Highlighter
	Sink        Sink
}

// Resolve looks up name through the context's resolver, tolerating nil.
func (c *Context) Resolve(name string) (Target, bool) {
	if c.Resolver == nil {
		return Target{}, false
	}
	return c.Resolver.Resolve(name)
}

// Tr translates a label key, defaulting to English.
func (c *Context) Tr(key string) string {
	if c.Translator == nil {
		return English{}.Tr(key)
	}
	return c.Translator.Tr(key)
}

// Highlight renders code through the configured highlighter, defaulting to
// plain output.
func (c *Context) Highlight(w CodeWriter, lang, text string, showLineNumbers bool, startLine int) {
	h := c.Highlighter
	if h == nil {
		h = PlainHighlighter{}
	}
	h.Highlight(w, lang, text, showLineNumbers, startLine)
}

// Warnf reports a render-time diagnostic.
func (c *Context) Warnf(format string, args ...interface{}) {
	if c.Sink != nil {
		c.Sink.Warnf(format, args...)
	}
}

// Errorf reports a render-time error.
func (c *Context) Errorf(format string, args ...interface{}) {
	if c.Sink != nil {
		c.Sink.Errorf(format, args...)
	}
}
