// Package alias implements user-defined command aliases: named text macros,
// optionally parameterized, substituted into raw comment text before parsing
// begins. The table is populated during setup and must not change once
// parsing starts.
package alias // import "akhil.cc/mexdoc/alias"

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// expansion depth cap, guards against mutually recursive definitions
const maxDepth = 10

type definition struct {
	numArgs int
	text    string
}

// Table holds the alias definitions for one run.
type Table struct {
	defs map[string]definition
}

func New() *Table {
	return &Table{defs: make(map[string]definition)}
}

// Define registers an alias. The name is either a plain command name or
// name{n} for an alias taking n positional arguments; the replacement text
// refers to them as \1 .. \n.
func (t *Table) Define(name, text string) error {
	numArgs := 0
	if i := strings.IndexByte(name, '{'); i != -1 {
		if !strings.HasSuffix(name, "}") {
			return fmt.Errorf("alias %q: malformed argument count", name)
		}
		n, err := strconv.Atoi(name[i+1 : len(name)-1])
		if err != nil || n < 1 {
			return fmt.Errorf("alias %q: malformed argument count", name)
		}
		numArgs = n
		name = name[:i]
	}
	if name == "" || !isCommandName(name) {
		return fmt.Errorf("alias %q: not a valid command name", name)
	}
	t.defs[key(name, numArgs)] = definition{numArgs: numArgs, text: text}
	return nil
}

// Len returns the number of definitions.
func (t *Table) Len() int { return len(t.defs) }

// Expand substitutes every alias reference in input. Text whose expansion
// contains no further alias references is a fixed point: expanding twice
// gives the same result as expanding once.
func (t *Table) Expand(input string) string {
	return t.expand(input, 0)
}

func (t *Table) expand(input string, depth int) string {
	if depth >= maxDepth || len(t.defs) == 0 {
		return input
	}
	var out strings.Builder
	i := 0
	for i < len(input) {
		c := input[i]
		if c != '\\' && c != '@' {
			out.WriteByte(c)
			i++
			continue
		}
		// an escaped command character never starts an alias
		if i+1 < len(input) && !isNameByte(input[i+1]) {
			out.WriteByte(c)
			out.WriteByte(input[i+1])
			i += 2
			continue
		}
		j := i + 1
		for j < len(input) && isNameByte(input[j]) {
			j++
		}
		name := input[i+1 : j]
		rest, args := parseArgs(input[j:])
		def, ok := t.defs[key(name, len(args))]
		if !ok {
			// retry as a zero-argument alias, leaving any braces alone
			def, ok = t.defs[key(name, 0)]
			if !ok {
				out.WriteString(input[i:j])
				i = j
				continue
			}
			rest, args = input[j:], nil
		}
		repl := def.text
		for n, a := range args {
			repl = strings.ReplaceAll(repl, "\\"+strconv.Itoa(n+1), a)
		}
		out.WriteString(t.expand(repl, depth+1))
		input = rest
		i = 0
	}
	return out.String()
}

// parseArgs reads a {a,b,...} argument list at the start of s. It returns
// the remaining input and the arguments, or (s, nil) when there is none.
// Commas and braces may be escaped with a backslash inside an argument.
func parseArgs(s string) (string, []string) {
	if len(s) == 0 || s[0] != '{' {
		return s, nil
	}
	var args []string
	var cur strings.Builder
	depth := 1
	i := 1
	for i < len(s) {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) && (s[i+1] == ',' || s[i+1] == '{' || s[i+1] == '}') {
				cur.WriteByte(s[i+1])
				i += 2
				continue
			}
			cur.WriteByte(c)
		case '{':
			depth++
			cur.WriteByte(c)
		case '}':
			depth--
			if depth == 0 {
				args = append(args, cur.String())
				return s[i+1:], args
			}
			cur.WriteByte(c)
		case ',':
			if depth == 1 {
				args = append(args, cur.String())
				cur.Reset()
			} else {
				cur.WriteByte(c)
			}
		default:
			cur.WriteByte(c)
		}
		i++
	}
	// unterminated argument list, treat the brace as literal text
	return s, nil
}

func key(name string, numArgs int) string {
	if numArgs == 0 {
		return name
	}
	return name + "{" + strconv.Itoa(numArgs) + "}"
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isCommandName(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
