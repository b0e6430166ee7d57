package pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// PasswordPrompt asks the user for the password of an encrypted document.
type PasswordPrompt func(path string) (string, error)

// Progress receives one Add(1) per copied page.
type Progress interface {
	Add(num int) error
	Finish() error
}

// ProgressFactory creates a Progress for total pages.
type ProgressFactory func(total int) Progress

// Request is a single extraction.
type Request struct {
	Path  string
	Pages string
	// Suffix defaults to Pages when empty.
	Suffix string
	// Password is used for encrypted input. When empty the prompt is asked.
	Password string
	// MaxPage rejects specifications naming a higher page. Zero means no limit.
	MaxPage int
}

// Result describes a finished extraction.
type Result struct {
	InFile    string
	OutFile   string
	Pages     []int
	Encrypted bool
	Size      int64
}

type Option func(*Extractor)

// WithPasswordPrompt sets the prompt used when an encrypted document is
// opened without a password.
func WithPasswordPrompt(p PasswordPrompt) Option {
	return func(e *Extractor) { e.prompt = p }
}

// WithProgress sets the progress indicator shown while pages are copied.
func WithProgress(f ProgressFactory) Option {
	return func(e *Extractor) { e.progress = f }
}

// Extractor parses page specifications and drives an Engine to write the
// selected pages to a new document.
type Extractor struct {
	engine   Engine
	logger   *zap.SugaredLogger
	prompt   PasswordPrompt
	progress ProgressFactory
}

func NewExtractor(engine Engine, logger *zap.SugaredLogger, opts ...Option) *Extractor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	e := &Extractor{engine: engine, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs req. The page specification is parsed before any file is opened.
func (e *Extractor) Extract(ctx context.Context, req Request) (*Result, error) {
	pageSet, err := ParsePageSpecifierMax(req.Pages, req.MaxPage)
	if err != nil {
		return nil, err
	}
	pages := pageSet.Sorted()
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w in '%s'", ErrNoPages, req.Pages)
	}

	suffix := req.Suffix
	if suffix == "" {
		suffix = req.Pages
	}
	outFile := OutputPath(req.Path, suffix)

	e.logger.Infof("Opening '%s' for reading and '%s' for writing", req.Path, outFile)

	encrypted, err := e.engine.Encrypted(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", req.Path, err)
	}

	password := req.Password
	if encrypted && password == "" {
		if e.prompt == nil {
			return nil, newError(CredentialKind, nil, "%s is encrypted and no password was provided", req.Path)
		}
		password, err = e.prompt(req.Path)
		if err != nil {
			return nil, newError(CredentialKind, err, "failed to read password")
		}
	}

	job := Job{
		InFile:    req.Path,
		OutFile:   outFile,
		Pages:     pages,
		Password:  password,
		Reencrypt: encrypted,
	}
	var bar Progress
	if e.progress != nil {
		bar = e.progress(len(pages))
		job.OnPage = func(int) { bar.Add(1) }
	}

	if err := e.engine.Extract(ctx, job); err != nil {
		return nil, err
	}
	if bar != nil {
		bar.Finish()
	}

	res := &Result{
		InFile:    req.Path,
		OutFile:   outFile,
		Pages:     pages,
		Encrypted: encrypted,
	}
	if info, err := os.Stat(outFile); err == nil {
		res.Size = info.Size()
	}

	e.logger.Infow(fmt.Sprintf("Finished saving pages %v from '%s' to '%s'", pages, req.Path, outFile),
		"size", humanize.Bytes(uint64(res.Size)),
		"encrypted", encrypted,
	)
	return res, nil
}
