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

// This CLI utility runs a command listed below to run its
// corresponding output generator on a documentation comment.
//
// Usage:
//   mexdoc [command]
//
// Available Commands:
//   dump        Print the parsed document tree
//   help        Help about any command
//   html        HTML output generator for documentation comments
//   man         Man page output generator for documentation comments
//
// Flags:
//       --config string   config file (default is ./.mexdoc.yaml)
//   -h, --help            help for mexdoc
//
// Use "mexdoc [command] --help" for more information about a command.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"akhil.cc/mexdoc/alias"
	"akhil.cc/mexdoc/doc"
	"akhil.cc/mexdoc/gen"
	"akhil.cc/mexdoc/gen/html"
	"akhil.cc/mexdoc/gen/man"
	"akhil.cc/mexdoc/parser"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func prefix(msg string, err error) error {
	return errors.New(msg + err.Error())
}

func loadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".mexdoc")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("MEXDOC")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil // the config file is optional unless named explicitly
		}
		return err
	}
	return nil
}

// parseOptions builds the parse configuration from the loaded config:
// alias definitions, the include search directory, and a diagnostics sink
// on standard error.
func parseOptions(fileName string) (parser.Options, error) {
	aliases := alias.New()
	for name, text := range viper.GetStringMapString("aliases") {
		if err := aliases.Define(name, text); err != nil {
			return parser.Options{}, err
		}
	}
	return parser.Options{
		FileName: fileName,
		Sink:     gen.WriterSink{W: os.Stderr},
		Aliases:  aliases,
		Files:    parser.OSFiles{Dir: viper.GetString("include-dir")},
	}, nil
}

func renderContext() *gen.Context {
	return &gen.Context{
		OutputDir:  viper.GetString("output-dir"),
		ImageExt:   viper.GetString("image-ext"),
		FileSuffix: viper.GetString("file-suffix"),
		RelPath:    viper.GetString("rel-path"),
		Sink:       gen.WriterSink{W: os.Stderr},
	}
}

// generate wires one subcommand's pipeline: read the comment, parse it,
// hand the tree to the render function.
func generate(errPrefix, outputfile string, args []string, render func(io.Writer, doc.Node, *gen.Context) error) error {
	src := os.Stdin
	name := "<stdin>"
	var err error
	if len(args) != 0 {
		name = args[0]
		src, err = os.Open(name)
		if err != nil {
			return prefix(errPrefix, err)
		}
	}
	defer src.Close()
	input, err := io.ReadAll(src)
	if err != nil {
		return prefix(errPrefix, err)
	}
	out := os.Stdout
	if len(outputfile) != 0 {
		out, err = os.Create(outputfile)
		if err != nil {
			return prefix(errPrefix, err)
		}
	}
	defer out.Close()
	opt, err := parseOptions(name)
	if err != nil {
		return prefix(errPrefix, err)
	}
	root, err := parser.Parse(string(input), opt)
	if err != nil {
		// recoverable parse errors still leave a usable tree behind
		fmt.Fprint(os.Stderr, errPrefix+err.Error())
	}
	if err := render(out, root, renderContext()); err != nil {
		return prefix(errPrefix, err)
	}
	return nil
}

func main() {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "mexdoc generator",
		Short: "output generation for documentation comments",
		Long: `This CLI utility runs a command listed below to run its
corresponding output generator on a documentation comment.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cfgFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "``config file (default is ./.mexdoc.yaml)")

	var htmlOut string
	prefixHTML := "(HTML) "
	htmlCmd := &cobra.Command{
		Use:   "html [input] [-o output]",
		Short: "HTML output generator for documentation comments",
		Long: `This command parses one documentation comment and converts it to HTML.
Backslash commands, markdown-style lists and a subset of HTML markup are
recognized. Block constructs inside a paragraph split the paragraph so the
output nests legally.

If no input file is specified, input is read from
standard input. Similarly, if no output argument is
specified, output is written to standard output.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(prefixHTML, htmlOut, args, html.Render)
		},
	}
	htmlCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err != nil {
			return prefix(prefixHTML, err)
		}
		return nil
	})
	// pflag includes the argument type when it unquotes its usage.
	// To prevent this behavior we prefix the usage with backquotes ``.
	htmlCmd.Flags().StringVarP(&htmlOut, "output", "o", "", "``name of the output file")

	var manOut string
	prefixMan := "(MAN) "
	manCmd := &cobra.Command{
		Use:   "man [input] [-o output]",
		Short: "Man page output generator for documentation comments",
		Long: `This command parses one documentation comment and converts it to roff
suitable for inclusion in a man page. Links flatten to bold text and
images are dropped.

If no input file is specified, input is read from
standard input. Similarly, if no output argument is
specified, output is written to standard output.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(prefixMan, manOut, args, man.Render)
		},
	}
	manCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err != nil {
			return prefix(prefixMan, err)
		}
		return nil
	})
	manCmd.Flags().StringVarP(&manOut, "output", "o", "", "``name of the output file")

	prefixDump := "(DUMP) "
	dumpCmd := &cobra.Command{
		Use:   "dump [input]",
		Short: "Print the parsed document tree",
		Long: `This command parses one documentation comment and prints the resulting
tree, for debugging the parser or a backend.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(prefixDump, "", args, func(w io.Writer, n doc.Node, _ *gen.Context) error {
				sq := litter.Options{HidePrivateFields: true}
				_, err := io.WriteString(w, sq.Sdump(n)+"\n")
				return err
			})
		},
	}

	rootCmd.AddCommand(htmlCmd, manCmd, dumpCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
