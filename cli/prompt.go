package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"pdf_extract/pdf"
)

// PasswordPromptText is shown before reading the password of an encrypted document.
const PasswordPromptText = "This PDF is encrypted. Please enter a password to decrypt: "

// NewPasswordPrompt reads the password from in. When in is a terminal the
// input is not echoed; otherwise a single line is read.
func NewPasswordPrompt(in io.Reader, out io.Writer) pdf.PasswordPrompt {
	return func(string) (string, error) {
		fmt.Fprint(out, PasswordPromptText)

		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return "", fmt.Errorf("failed to read password: %w", err)
			}
			return string(b), nil
		}

		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}
