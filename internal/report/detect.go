package report

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ColorEnabled reports whether styled output should be written to w.
//
// Returns false if:
//   - MARKUID_NO_COLOR=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (https://no-color.org)
//   - w is not a terminal (redirected to a file or pipe)
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("MARKUID_NO_COLOR") == "1" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
