package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pdfPkg "pdf_extract/pdf"
)

type parsePagesRequest struct {
	Pages interface{} `json:"pages"`
}

// HandleParsePages parses a page specification without touching any document.
// The pages field may hold any JSON value; only strings are accepted.
func (h *Handler) HandleParsePages(c *gin.Context) {
	var req parsePagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	pages, err := pdfPkg.ParsePageArgMax(req.Pages, h.config.MaxPages)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pages":     pages.Sorted(),
		"count":     len(pages),
		"canonical": pages.String(),
	})
}

// HandleExtractPages extracts the pages named by the "pages" form field from
// the uploaded "pdf" file. "password" and "suffix" are optional.
func (h *Handler) HandleExtractPages(c *gin.Context) {
	pagesParam := c.PostForm("pages")
	if pagesParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pages specified"})
		return
	}

	// Reject malformed or oversized specifications before the upload is
	// written to disk. Ranges are expanded once, by the extractor.
	if err := pdfPkg.CheckPageSpecifier(pagesParam, h.config.MaxPages); err != nil {
		h.respondError(c, err)
		return
	}

	suffix := c.PostForm("suffix")
	if suffix == "" {
		suffix = pagesParam
	}

	h.handlePDFFile(c, pdfPkg.Request{
		Pages:    pagesParam,
		Suffix:   stagedOutputSuffix,
		Password: c.PostForm("password"),
		MaxPage:  h.config.MaxPages,
	}, suffix)
}

func (h *Handler) handlePDFFile(c *gin.Context, req pdfPkg.Request, suffix string) {
	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return
	}
	defer file.Close()

	// Validate PDF file
	if err := validatePDFFile(file, header, h.config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Create temp input file
	if err := ensureTempDir(h.config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}

	inFile := filepath.Join(h.config.TempDir, "input_"+generateUniqueID()+".pdf")
	defer os.Remove(inFile)

	out, err := os.Create(inFile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp file"})
		return
	}

	_, err = out.ReadFrom(file)
	out.Close()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save input file"})
		return
	}

	req.Path = inFile
	res, err := h.extractor.Extract(c.Request.Context(), req)
	if err != nil {
		h.logger.Warnw("PDF operation error", "error", err, "pages", req.Pages)
		h.respondError(c, err)
		return
	}
	defer os.Remove(res.OutFile)

	filename := pdfPkg.OutputPath("document.pdf", suffix)
	if header != nil && header.Filename != "" {
		filename = pdfPkg.OutputPath(sanitizeFilename(header.Filename), suffix)
	}
	filename = sanitizeFilename(filename)

	pages := make([]string, len(res.Pages))
	for i, p := range res.Pages {
		pages[i] = fmt.Sprint(p)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header(HeaderPages, strings.Join(pages, ","))
	c.Header(HeaderOutputSize, humanize.Bytes(uint64(res.Size)))

	// c.File returns once the body has been written, so the deferred removals are safe.
	c.File(res.OutFile)
}

// respondError maps extraction errors to status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := ""
	var pdfErr *pdfPkg.Error
	switch {
	case errors.As(err, &pdfErr) && pdfErr.Kind == pdfPkg.CredentialKind:
		status = http.StatusUnauthorized
		kind = pdfErr.Kind.String()
	case errors.As(err, &pdfErr):
		status = http.StatusBadRequest
		kind = pdfErr.Kind.String()
	case errors.Is(err, pdfPkg.ErrNoPages):
		status = http.StatusBadRequest
	case errors.Is(err, pdfPkg.ErrPageRange):
		status = http.StatusUnprocessableEntity
	}

	body := gin.H{"error": truncateError(err.Error())}
	if kind != "" {
		body["kind"] = kind
	}
	c.JSON(status, body)
}

func truncateError(msg string) string {
	if msg == "" {
		return "PDF operation failed"
	}
	if len(msg) > MaxErrorMessageLength {
		return msg[:MaxErrorMessageLength] + "..."
	}
	return msg
}

// ensureTempDir creates the temp directory if it doesn't exist
func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	// Remove directory separators and path traversal attempts
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")

	filename = filepath.Base(filename)
	filename = strings.TrimSpace(filename)

	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	return filename
}

// generateUniqueID generates a unique identifier for temp files
func generateUniqueID() string {
	return uuid.NewString()
}

// validatePDFFile checks if the file is a valid PDF by reading the header
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %s exceeds maximum allowed %s",
			humanize.Bytes(uint64(header.Size)), humanize.Bytes(uint64(maxSize)))
	}

	// Read first 4 bytes to check PDF header
	buffer := make([]byte, 4)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %w", err)
	}

	if n < 4 || string(buffer[:4]) != "%PDF" {
		return fmt.Errorf("invalid PDF file: header does not match")
	}

	// Seek back to beginning for subsequent reads
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %w", err)
	}

	return nil
}
