// Command sectioner splits a document into heading and paragraph blocks
// per page and writes the result to a file.
//
// Usage:
//
//	sectioner [flags] <input> [output]
//
// The output defaults to output.txt. SECTIONER_LOG_LEVEL sets the default
// log level.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/sectioner"
	"github.com/tsawler/sectioner/layout"
	"github.com/tsawler/sectioner/render"
)

const emptyDocumentMessage = "the parser was unable to extract any text from the document"

type options struct {
	input  string
	output string
	format string

	maxPages      int
	mergeHeadings bool
	strategy      layout.Strategy
	policy        layout.Policy
	tolerance     float64
	maxGap        float64
	stitch        bool
	boundary      string
	dropRunning   bool
	language      string
	workers       int

	logLevel logrus.Level
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "sectioner: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, opts.logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		if errors.Is(err, layout.ErrEmptyDocument) {
			logger.WithField("input", opts.input).Error(emptyDocumentMessage)
		} else {
			logger.WithError(err).Error("sectioning failed")
		}
		stop()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}

func parseFlags(args []string, getenv func(string) string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("sectioner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: sectioner [flags] <input> [output]\n")
		fs.PrintDefaults()
	}

	defaultLevel := "info"
	if env := getenv("SECTIONER_LOG_LEVEL"); env != "" {
		defaultLevel = env
	}

	fs.IntVar(&opts.maxPages, "max-pages", 100, "Process at most this many pages (0 for all)")
	fs.BoolVar(&opts.mergeHeadings, "merge-headings", true, "Merge consecutive heading lines into one block")
	strategy := fs.String("strategy", "line", "Heading strategy: line, span or common")
	policy := fs.String("policy", "proximity", "Line grouping policy: proximity or streaming")
	fs.Float64Var(&opts.tolerance, "tolerance", 0, "Vertical tolerance in points for spans on one line (3, or 4 with -policy streaming)")
	fs.Float64Var(&opts.maxGap, "max-gap", 40, "Horizontal gap in points that splits a line")
	fs.BoolVar(&opts.stitch, "stitch", false, "Start a new paragraph after each complete sentence")
	fs.StringVar(&opts.boundary, "boundary", "punct", "Sentence boundary detector: punct or punkt")
	fs.BoolVar(&opts.dropRunning, "drop-running", false, "Drop headers and footers repeated across pages")
	fs.StringVar(&opts.language, "lang", "eng", "OCR language for image input")
	fs.StringVar(&opts.format, "format", "text", "Output format: "+strings.Join(render.Names, ", "))
	fs.IntVar(&opts.workers, "workers", 1, "Pages processed concurrently")
	logLevel := fs.String("log-level", defaultLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch fs.NArg() {
	case 1:
		opts.output = "output.txt"
	case 2:
		opts.output = fs.Arg(1)
	default:
		fs.Usage()
		return options{}, fmt.Errorf("expected <input> [output], got %d arguments", fs.NArg())
	}
	opts.input = fs.Arg(0)

	var ok bool
	if opts.strategy, ok = layout.ParseStrategy(*strategy); !ok {
		return options{}, fmt.Errorf("unknown strategy %q", *strategy)
	}
	if opts.policy, ok = layout.ParsePolicy(*policy); !ok {
		return options{}, fmt.Errorf("unknown policy %q", *policy)
	}
	if _, err := render.Format(opts.format); err != nil {
		return options{}, err
	}

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		return options{}, fmt.Errorf("invalid log level: %w", err)
	}
	opts.logLevel = level

	return opts, nil
}

func (o options) extractor(logger logrus.FieldLogger) *sectioner.Extractor {
	ext := sectioner.Open(o.input).
		MaxPages(o.maxPages).
		MergeHeadings(o.mergeHeadings).
		Strategy(o.strategy).
		Policy(o.policy).
		MaxGap(o.maxGap).
		Boundary(o.boundary).
		Language(o.language).
		Workers(o.workers).
		Logger(logger)
	if o.tolerance > 0 {
		ext = ext.Tolerance(o.tolerance)
	}
	if o.stitch {
		ext = ext.StitchSentences()
	}
	if o.dropRunning {
		ext = ext.DropRunningText()
	}
	return ext
}

func run(ctx context.Context, opts options, logger logrus.FieldLogger) error {
	logger.WithFields(logrus.Fields{
		"input":    opts.input,
		"output":   opts.output,
		"strategy": opts.strategy,
		"policy":   opts.policy,
	}).Info("sectioning document")

	ext := opts.extractor(logger)
	err := writeAtomic(opts.output, func(w io.Writer) error {
		return ext.Render(ctx, w, opts.format)
	})
	if err != nil {
		return err
	}

	logger.WithField("output", opts.output).Info("output written")
	return nil
}

// writeAtomic writes through a temporary file in the target directory and
// renames it into place, so a failed write leaves no partial output
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary output: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("creating temporary output: %w", err)
	}
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
