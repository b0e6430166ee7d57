package pdf

const (
	// AESKeyLength is the key length in bits used when re-encrypting output
	AESKeyLength = 256

	// StagingDirPattern names the temp directory created next to the output file
	StagingDirPattern = ".pdf_extract-*"

	// OutputFilePermissions is applied to the final output file
	OutputFilePermissions = 0644

	// stagedMergedName and stagedEncryptedName are file names inside the staging directory
	stagedMergedName    = "merged.pdf"
	stagedEncryptedName = "encrypted.pdf"
)
