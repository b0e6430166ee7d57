package cli

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"pdf_extract/pdf"
)

// NewProgress returns a factory for the "Extracting pages" bar written to w.
func NewProgress(w io.Writer) pdf.ProgressFactory {
	return func(total int) pdf.Progress {
		return progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Extracting pages"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("pages"),
			progressbar.OptionOnCompletion(func() { io.WriteString(w, "\n") }),
		)
	}
}
