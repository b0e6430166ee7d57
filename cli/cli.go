// Package cli implements the pdf_extract command line: argument parsing, the
// interactive password prompt and the progress bar.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"pdf_extract/pdf"
)

const (
	// ExitUsage is returned for bad arguments or a malformed page specification
	ExitUsage = 2

	// ExitCredential is returned when the document password is missing or wrong
	ExitCredential = 3

	// ExitFailure is returned for every other failure
	ExitFailure = 1
)

// ExitError carries the process exit code for a failed invocation.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Config is the parsed command line of an extract invocation.
type Config struct {
	Path      string
	Pages     string
	Suffix    string
	LogLevel  string
	LogFormat string
}

// Parse processes command-line arguments. It returns the parsed Config, a
// boolean telling the caller to exit cleanly (help was printed), or an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("pdf_extract", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pdf_extract - copy selected pages of a PDF into a new document.

Usage:
  pdf_extract [options] <path> <pages>
  pdf_extract serve

Arguments:
  path
    The PDF to take a subset of.
  pages
    Comma or hyphen separated page numbers, e.g. "1,3-6".

The output is written next to the input as <name>_<suffix>.pdf. Encrypted
documents prompt for their password and the output is encrypted with it.

Options:
`)
		flagSet.PrintDefaults()
	}

	suffix := flagSet.String("suffix", "", "The suffix to append to the save file (default: the pages argument).")
	flagSet.StringVar(suffix, "s", "", "The suffix to append to the save file (shorthand).")
	logLevel := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := flagSet.String("log-format", "console", "Log output format. Options: 'console' or 'json'.")

	// Options may appear before, between or after the positional arguments.
	var positional []string
	for {
		if err := flagSet.Parse(args); err != nil {
			if err == flag.ErrHelp {
				return nil, true, nil
			}
			return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
		}
		args = flagSet.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	if len(positional) != 2 {
		flagSet.Usage()
		return nil, false, &ExitError{
			Code:    ExitUsage,
			Message: fmt.Sprintf("expected 2 arguments <path> <pages>, got %d", len(positional)),
		}
	}

	cfg := &Config{
		Path:      positional[0],
		Pages:     positional[1],
		Suffix:    *suffix,
		LogLevel:  strings.ToLower(*logLevel),
		LogFormat: strings.ToLower(*logFormat),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'console' or 'json'"}
	}

	return cfg, false, nil
}

// Run executes one extraction. stdin is used for the password prompt; the
// progress bar and logs go to stderr.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, shouldExit, err := Parse(args, stdout)
	if err != nil || shouldExit {
		return err
	}

	logger, err := NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	defer logger.Sync()

	extractor := pdf.NewExtractor(
		pdf.NewPdfcpuEngine(logger),
		logger,
		pdf.WithPasswordPrompt(NewPasswordPrompt(stdin, stderr)),
		pdf.WithProgress(NewProgress(stderr)),
	)

	res, err := extractor.Extract(ctx, pdf.Request{
		Path:   cfg.Path,
		Pages:  cfg.Pages,
		Suffix: cfg.Suffix,
	})
	if err != nil {
		return toExitError(err)
	}

	fmt.Fprintln(stdout, res.OutFile)
	return nil
}

func toExitError(err error) error {
	code := ExitFailure
	switch {
	case errors.Is(err, pdf.ErrFormat), errors.Is(err, pdf.ErrType), errors.Is(err, pdf.ErrNoPages):
		code = ExitUsage
	case errors.Is(err, pdf.ErrCredential):
		code = ExitCredential
	}
	return &ExitError{Code: code, Message: err.Error()}
}
