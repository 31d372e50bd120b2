// MIT License

// Copyright (c) 2018 Akhil Indurti

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Tests for mexdoc.go
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"akhil.cc/mexdoc/gen/html"
)

func TestGenerateRendersDespiteParseErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "comment.txt")
	src := "before\n\\code{.c}\nint x;\n"
	if err := os.WriteFile(in, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "comment.html")
	if err := generate("(HTML) ", out, []string{in}, html.Render); err != nil {
		t.Fatalf("generate() = %v, want nil", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "before") {
		t.Errorf("output %q is missing the text before the code block", got)
	}
	if !strings.Contains(string(got), "int x;") {
		t.Errorf("output %q is missing the code body", got)
	}
}
