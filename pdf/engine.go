package pdf

import "context"

// Job describes one page extraction handed to an Engine.
type Job struct {
	InFile  string
	OutFile string
	// Pages must be in ascending order.
	Pages    []int
	Password string
	// Reencrypt protects OutFile with Password after the pages are copied.
	Reencrypt bool
	// OnPage is called after each page has been copied. May be nil.
	OnPage func(page int)
}

// Engine is the boundary to the PDF library.
type Engine interface {
	// Encrypted reports whether inFile declares itself encrypted.
	Encrypted(inFile string) (bool, error)
	// Extract writes the pages of job.InFile listed in job.Pages to job.OutFile.
	// A rejected password is reported as an *Error of CredentialKind. OutFile is
	// left untouched on failure.
	Extract(ctx context.Context, job Job) error
}
