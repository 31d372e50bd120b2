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

package gen

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	sq "github.com/kballard/go-shellquote"
)

// Command runs an external diagram tool such as dot or mscgen. The tool
// string is split shell-style, so it may carry extra flags from the
// configuration.
type Command struct {
	Ctx    context.Context
	Stderr io.Writer
}

// Render feeds the diagram source to the tool on stdin and asks it to write
// an image in the given format to outFile. The tool is expected to accept
// the conventional -T format and -o output flags.
func (c *Command) Render(tool, format, outFile, text string) error {
	words, err := sq.Split(tool)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("no tool in command %q", tool)
	}
	args := append(words[1:], "-T"+format, "-o", outFile)
	var cmd *exec.Cmd
	if c.Ctx == nil {
		cmd = exec.Command(words[0], args...)
	} else {
		cmd = exec.CommandContext(c.Ctx, words[0], args...)
	}
	cmd.Stdin = strings.NewReader(text)
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}
	return cmd.Run()
}
