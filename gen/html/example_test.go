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

// Examples for html.go
package html_test

import (
	"os"

	"akhil.cc/mexdoc/gen"
	"akhil.cc/mexdoc/gen/html"
	"akhil.cc/mexdoc/parser"
)

func ExampleRender() {
	res := gen.ResolverFunc(func(name string) (gen.Target, bool) {
		if name == "Buffer::flush()" {
			return gen.Target{File: "classBuffer", Anchor: "a1f"}, true
		}
		return gen.Target{}, false
	})
	src := "Flushes via Buffer::flush() internally."
	root := parser.MustParse(src, parser.Options{Resolver: res})
	ctx := &gen.Context{FileSuffix: ".html"}
	if err := html.Render(os.Stdout, root, ctx); err != nil {
		panic(err)
	}
	// Output:
	// <p>Flushes via <a class="el" href="classBuffer.html#a1f">Buffer::flush()</a> internally.</p>
}
