package pdf

import (
	"path/filepath"
	"strings"
)

// OutputPath returns the path of the extracted document, written alongside
// path as <stem>_<suffix><ext>. A leading dot of the file name is not
// treated as an extension separator.
func OutputPath(path, suffix string) string {
	ext := filepath.Ext(path)
	if !strings.Contains(strings.TrimLeft(filepath.Base(path), "."), ".") {
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + "_" + suffix + ext
}
