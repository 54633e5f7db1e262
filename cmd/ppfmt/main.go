// Command ppfmt reformats markdown through the pp layout engine: it parses
// a document, builds the equivalent HIR op stream via the markdown
// package, lays it out to a target page width, and prints the result to a
// terminal or back into the source file.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/google/renameio"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jcorbin/pp"
	"github.com/jcorbin/pp/backend"
	"github.com/jcorbin/pp/internal/textpool"
	"github.com/jcorbin/pp/markdown"
)

var (
	pageWidth  uint
	write      bool
	indent     string
	debugWidth bool
	trace      bool
)

var rootCmd = &cobra.Command{
	Use:           "ppfmt [file...]",
	Short:         "Reformat markdown by laying it out with the pp printer",
	Args:          cobra.ArbitraryArgs,
	RunE:          runFormat,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print a sample document at the given width, to see the wrapping in action",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.PersistentFlags().UintVarP(&pageWidth, "width", "W", 80, "target page width")
	rootCmd.PersistentFlags().StringVar(&indent, "indent", "  ", "string rendered once per indent level")
	rootCmd.PersistentFlags().BoolVar(&debugWidth, "debug-width", false, "report the widest rendered line, in terminal columns, to stderr")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "log every layout state transition to stderr via log.Printf")
	rootCmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to each input file in place, instead of stdout")
	rootCmd.AddCommand(demoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ppfmt:", err)
		os.Exit(1)
	}
}

func printConfig() pp.PrintConfig {
	cfg := pp.NewPrintConfig(pageWidth)
	cfg.Indent = indent
	if trace {
		cfg.Tracer = pp.TracerFunc(func(format string, args ...any) {
			log.Printf(format, args...)
		})
	}
	return cfg
}

func layoutMarkdown(source []byte, cfg pp.PrintConfig) ([]pp.LIROp, *textpool.Pool, error) {
	doc := markdown.Parse(source)
	pool := new(textpool.Pool)
	b := pp.NewBuilder(pool)
	markdown.ToOps(doc, b)
	ops, err := b.Done()
	if err != nil {
		return nil, nil, fmt.Errorf("malformed op stream: %w", err)
	}
	lir, err := pp.Layout(ops, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("layout failed: %w", err)
	}
	return lir, pool, nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg := printConfig()

	if len(args) == 0 {
		if write {
			return fmt.Errorf("-w requires at least one file argument")
		}
		return formatStream(os.Stdin, os.Stdout, cfg)
	}

	for _, name := range args {
		if err := formatFile(name, cfg); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// printTo renders lir to out, using a styled Terminal back-end when out
// looks like a real terminal and a plain String back-end otherwise (piped
// output doesn't want ANSI escapes). Either way, the rendered bytes end up
// written to out before this returns. If --debug-width was given, it also
// reports the widest rendered line to stderr.
func printTo(out *os.File, lir []pp.LIROp, pool *textpool.Pool, cfg pp.PrintConfig) error {
	if debugWidth {
		reportWidestLine(lir, pool, cfg)
	}

	if isatty.IsTerminal(out.Fd()) {
		return pp.Print(lir, pool, cfg, backend.NewTerminal(out))
	}

	var s backend.String
	if err := pp.Print(lir, pool, cfg, &s); err != nil {
		return err
	}
	_, err := io.WriteString(out, s.String())
	return err
}

// reportWidestLine renders lir through a discarding Terminal back-end
// purely to measure backend.Terminal.WidestLine (rune-display width via
// go-runewidth, not byte length), then prints it to stderr. It runs
// independently of the back-end actually chosen for out, so --debug-width
// never leaks the measuring pass's own output and never forces ANSI
// styling onto piped stdout.
func reportWidestLine(lir []pp.LIROp, pool *textpool.Pool, cfg pp.PrintConfig) {
	term := backend.NewTerminal(ioutil.Discard)
	if err := pp.Print(lir, pool, cfg, term); err != nil {
		fmt.Fprintln(os.Stderr, "ppfmt: debug-width:", err)
		return
	}
	fmt.Fprintf(os.Stderr, "ppfmt: widest line: %d columns\n", term.WidestLine)
}

func formatStream(in io.Reader, out *os.File, cfg pp.PrintConfig) error {
	source, err := ioutil.ReadAll(in)
	if err != nil {
		return err
	}
	lir, pool, err := layoutMarkdown(source, cfg)
	if err != nil {
		return err
	}
	return printTo(out, lir, pool, cfg)
}

func formatFile(name string, cfg pp.PrintConfig) error {
	source, err := ioutil.ReadFile(name)
	if err != nil {
		return err
	}
	lir, pool, err := layoutMarkdown(source, cfg)
	if err != nil {
		return err
	}

	if !write {
		return printTo(os.Stdout, lir, pool, cfg)
	}

	return writeInPlace(name, lir, pool, cfg)
}

// writeInPlace renders to a temp file alongside name and atomically renames
// it into place, so a crash or interrupt mid-write never leaves a
// truncated document behind.
func writeInPlace(name string, lir []pp.LIROp, pool *textpool.Pool, cfg pp.PrintConfig) (rerr error) {
	if debugWidth {
		reportWidestLine(lir, pool, cfg)
	}

	pf, err := renameio.TempFile("", name)
	if err != nil {
		return err
	}
	defer func() {
		if rerr == nil {
			rerr = pf.CloseAtomicallyReplace()
		}
		pf.Cleanup()
	}()

	var out backend.String
	if err := pp.Print(lir, pool, cfg, &out); err != nil {
		return err
	}
	_, err = io.WriteString(pf, out.String())
	return err
}

func runDemo(cmd *cobra.Command, _ []string) error {
	cfg := printConfig()
	lir, pool, err := layoutMarkdown([]byte(demoDocument), cfg)
	if err != nil {
		return err
	}
	return printTo(os.Stdout, lir, pool, cfg)
}

const demoDocument = `# pp demo

This is an ordinary paragraph with *emphasis*, **strong** text, and a
[link](https://example.com/) thrown in, long enough to wrap across
several lines once the page gets narrow.

- first item in a list
- second item, a little longer than the first
- third

> A blockquote, to see how nesting affects the indent.
`
