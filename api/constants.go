package api

const (
	// DefaultFilePermissions for temp directory creation
	DefaultFilePermissions = 0755

	// MaxErrorMessageLength truncates error strings returned to clients
	MaxErrorMessageLength = 200

	// stagedOutputSuffix names extraction output inside the temp directory
	stagedOutputSuffix = "extracted"

	// Response headers describing an extraction
	HeaderPages      = "X-Pages"
	HeaderOutputSize = "X-Output-Size"
)
