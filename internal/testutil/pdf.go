// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"
)

// BuildPDF returns a document with n empty pages. Page i is 100+i points wide
// so that tests can tell pages apart after extraction.
func BuildPDF(n int) []byte {
	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")
	kids := ""
	for i := 0; i < n; i++ {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, n))
	for i := 1; i <= n; i++ {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d 200] /Resources << >> >>", 100+i))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// WritePDF writes BuildPDF(n) to path.
func WritePDF(t testing.TB, path string, n int) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, BuildPDF(n), 0o644))
}

// WriteEncryptedPDF writes an n page document protected with password.
func WriteEncryptedPDF(t testing.TB, path string, n int, password string) {
	t.Helper()
	writeEncrypted(t, path, n, password, password)
}

// WriteOwnerProtectedPDF writes an n page document that opens without a
// password but is encrypted with ownerPW.
func WriteOwnerProtectedPDF(t testing.TB, path string, n int, ownerPW string) {
	t.Helper()
	writeEncrypted(t, path, n, "", ownerPW)
}

func writeEncrypted(t testing.TB, path string, n int, userPW, ownerPW string) {
	t.Helper()
	plain := path + ".plain"
	WritePDF(t, plain, n)
	defer os.Remove(plain)
	require.NoError(t, api.EncryptFile(plain, path, model.NewAESConfiguration(userPW, ownerPW, 256)))
}

// PageWidths returns the MediaBox width of every page in path.
func PageWidths(t testing.TB, path string) []int {
	t.Helper()
	dims, err := api.PageDimsFile(path)
	require.NoError(t, err)
	widths := make([]int, len(dims))
	for i, d := range dims {
		widths[i] = int(d.Width)
	}
	return widths
}
