package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

// PdfcpuEngine implements Engine with the pdfcpu library.
type PdfcpuEngine struct {
	logger *zap.SugaredLogger
}

func NewPdfcpuEngine(logger *zap.SugaredLogger) *PdfcpuEngine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &PdfcpuEngine{logger: logger}
}

// Encrypted reports whether inFile has an encryption dictionary. Documents that
// cannot be opened without a user password count as encrypted.
func (p *PdfcpuEngine) Encrypted(inFile string) (bool, error) {
	f, err := os.Open(inFile)
	if err != nil {
		return false, err
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, model.NewDefaultConfiguration())
	if err != nil {
		if isPasswordError(err) {
			return true, nil
		}
		return false, fmt.Errorf("pdfcpu read failed: %w", err)
	}
	return ctx.Encrypt != nil, nil
}

// Extract copies job.Pages one by one into a staging directory beside
// job.OutFile, merges them, optionally encrypts the result and finally
// renames it into place.
func (p *PdfcpuEngine) Extract(ctx context.Context, job Job) error {
	f, err := os.Open(job.InFile)
	if err != nil {
		return err
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, passwordConfiguration(job.Password))
	if err != nil {
		if isPasswordError(err) {
			return newError(CredentialKind, err, "provided password does not match")
		}
		return fmt.Errorf("pdfcpu read failed: %w", err)
	}

	if err := ValidatePageNumbers(job.Pages, pdfCtx.PageCount); err != nil {
		return err
	}

	stagingDir, err := os.MkdirTemp(filepath.Dir(job.OutFile), StagingDirPattern)
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	// pdfcpu page numbers start at one, like the selected page numbers.
	singles := make([]io.ReadSeeker, 0, len(job.Pages))
	for _, page := range job.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := api.ExtractPage(pdfCtx, page)
		if err != nil {
			return fmt.Errorf("failed to extract page %d: %w", page, err)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to extract page %d: %w", page, err)
		}
		singles = append(singles, bytes.NewReader(data))
		p.logger.Debugw("page extracted", "page", page, "bytes", len(data))
		if job.OnPage != nil {
			job.OnPage(page)
		}
	}

	merged := filepath.Join(stagingDir, stagedMergedName)
	if err := p.merge(singles, merged); err != nil {
		return err
	}

	final := merged
	if job.Reencrypt {
		final = filepath.Join(stagingDir, stagedEncryptedName)
		if err := api.EncryptFile(merged, final, encryptConfiguration(job.Password)); err != nil {
			return fmt.Errorf("pdfcpu encrypt failed: %w", err)
		}
		p.logger.Debugw("output encrypted", "keyLength", AESKeyLength)
	}

	if err := os.Rename(final, job.OutFile); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return os.Chmod(job.OutFile, OutputFilePermissions)
}

func (p *PdfcpuEngine) merge(singles []io.ReadSeeker, outFile string) error {
	out, err := os.OpenFile(outFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, OutputFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if len(singles) == 0 {
		out.Close()
		return ErrNoPages
	}

	if err := api.MergeRaw(singles, out, false, model.NewDefaultConfiguration()); err != nil {
		out.Close()
		return fmt.Errorf("pdfcpu merge failed: %w", err)
	}
	return out.Close()
}

func passwordConfiguration(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	return conf
}

// encryptConfiguration protects the output with password. A document that
// opens without a password keeps doing so: it only gets a random owner
// password, which pdfcpu requires for encryption.
func encryptConfiguration(password string) *model.Configuration {
	ownerPW := password
	if ownerPW == "" {
		ownerPW = uuid.NewString()
	}
	return model.NewAESConfiguration(password, ownerPW, AESKeyLength)
}

func isPasswordError(err error) bool {
	return errors.Is(err, pdfcpu.ErrWrongPassword)
}
