// Package main is the richdoc command line tool. It loads RTF, HTML or
// plain text documents and prints or converts them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/font"

	"github.com/tsawler/richdoc"
	"github.com/tsawler/richdoc/model"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage is returned for malformed command lines. The usage text has
// already been printed.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("richdoc", flag.ContinueOnError)
	global.SetOutput(stderr)
	var verbose, showVersion bool
	global.BoolVar(&verbose, "v", false, "Log debug output to stderr")
	global.BoolVar(&showVersion, "version", false, "Show version information")
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintf(stdout, "richdoc %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd := &command{name: rest[0], stdout: stdout, stderr: stderr, logger: logger}
	var err error
	switch rest[0] {
	case "title":
		err = cmd.title(rest[1:])
	case "text":
		err = cmd.text(rest[1:])
	case "paragraphs":
		err = cmd.paragraphs(rest[1:])
	case "convert":
		err = cmd.convert(rest[1:])
	case "typography":
		err = cmd.typography(rest[1:])
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", rest[0])
		global.Usage()
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "richdoc - read and convert rich text documents\n\n")
	fmt.Fprintf(w, "Usage: richdoc [options] <command> [command options] <file>\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  title        Print the default title\n")
	fmt.Fprintf(w, "  text         Print the plain text\n")
	fmt.Fprintf(w, "  paragraphs   Print each paragraph on its own line, numbered\n")
	fmt.Fprintf(w, "  convert      Write the document in the format of -o\n")
	fmt.Fprintf(w, "  typography   Apply one font and color to the whole document\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  richdoc title notes.rtf\n")
	fmt.Fprintf(w, "  richdoc convert -o page.rtf page.html\n")
	fmt.Fprintf(w, "  richdoc typography -family Georgia -size 14 -color '#333333' -o out.rtf in.rtf\n")
}

// command holds what every subcommand needs.
type command struct {
	name   string
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func (c *command) flags() *flag.FlagSet {
	fs := flag.NewFlagSet("richdoc "+c.name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// load parses fs and loads the single file argument.
func (c *command) load(fs *flag.FlagSet, args []string) (*richdoc.Document, error) {
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(c.stderr, "Usage: richdoc %s [options] <file>\n", c.name)
		fs.PrintDefaults()
		return nil, errUsage
	}
	return richdoc.Load(fs.Arg(0), richdoc.WithLogger(c.logger))
}

func (c *command) title(args []string) error {
	doc, err := c.load(c.flags(), args)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, doc.DefaultTitle())
	return nil
}

func (c *command) text(args []string) error {
	doc, err := c.load(c.flags(), args)
	if err != nil {
		return err
	}
	fmt.Fprint(c.stdout, doc.PlainText())
	if !strings.HasSuffix(doc.PlainText(), "\n") && !doc.IsEmpty() {
		fmt.Fprintln(c.stdout)
	}
	return nil
}

func (c *command) paragraphs(args []string) error {
	doc, err := c.load(c.flags(), args)
	if err != nil {
		return err
	}
	for i, p := range doc.Paragraphs() {
		fmt.Fprintf(c.stdout, "%d\t%s\n", i+1, strings.TrimRight(p.PlainText(), "\r\n \u0085"))
	}
	return nil
}

func (c *command) convert(args []string) error {
	fs := c.flags()
	out := fs.String("o", "", "Output file; its extension selects the format")
	doc, err := c.load(fs, args)
	if err != nil {
		return err
	}
	if *out == "" {
		return errors.New("convert needs an output file (-o)")
	}
	return doc.Save(*out)
}

func (c *command) typography(args []string) error {
	fs := c.flags()
	family := fs.String("family", "Helvetica", "Font family")
	size := fs.Float64("size", 12, "Font size in points")
	bold := fs.Bool("bold", false, "Use a bold weight")
	italic := fs.Bool("italic", false, "Use an italic style")
	colorFlag := fs.String("color", "", "Foreground color, e.g. #336699 or rgb(51, 102, 153); empty keeps existing colors")
	out := fs.String("o", "", "Output file; defaults to overwriting the input")

	doc, err := c.load(fs, args)
	if err != nil {
		return err
	}
	if *size <= 0 {
		return fmt.Errorf("invalid font size %v", *size)
	}

	f := model.Font{Family: *family, Size: *size}
	if *bold {
		f = f.WithWeight(font.WeightBold)
	}
	if *italic {
		f = f.WithStyle(font.StyleItalic)
	}

	var color *model.Color
	if *colorFlag != "" {
		parsed, err := model.ParseColor(*colorFlag)
		if err != nil {
			return fmt.Errorf("invalid color: %w", err)
		}
		color = &parsed
	}

	doc.ApplyTypography(f, color)

	target := *out
	if target == "" {
		target = fs.Arg(0)
	}
	c.logger.Debug("writing document", "file", target, "font", f)
	return doc.Save(target)
}
