// Package clipboard copies text to the system clipboard and can simulate a
// Cmd+V keystroke on macOS so transcripts land directly in the frontmost app.
package clipboard

import (
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/atotto/clipboard"

	"github.com/culstrup/fireflies-raycast/internal/logging"
)

const pasteScript = `tell application "System Events" to keystroke "v" using command down`

// Copy places content on the system clipboard. A short delay afterwards
// gives the clipboard time to settle before any paste keystroke.
func Copy(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

// Paste simulates Cmd+V via AppleScript. It returns false when the keystroke
// could not be delivered; the content stays on the clipboard either way, so
// callers should tell the user to paste manually rather than fail.
func Paste(logger *slog.Logger) bool {
	out, err := exec.Command("osascript", "-e", pasteScript).CombinedOutput()
	if err != nil {
		logger.Warn("paste keystroke failed",
			logging.Service("clipboard"),
			slog.String("output", string(out)),
			logging.Err(err))
		return false
	}
	return true
}

// CopyAndPaste copies content to the clipboard and attempts to paste it.
// The returned bool reports whether the paste keystroke succeeded.
func CopyAndPaste(content string, logger *slog.Logger) (bool, error) {
	if err := Copy(content); err != nil {
		return false, err
	}
	return Paste(logger), nil
}
