// Package chrome discovers Fireflies meeting URLs in open Google Chrome tabs
// via AppleScript. macOS only.
package chrome

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/culstrup/fireflies-raycast/internal/logging"
)

const tabListScript = `
tell application "Google Chrome"
    set tabList to {}
    set windowList to every window
    repeat with theWindow in windowList
        set tabList to tabList & (every tab of theWindow whose URL contains "fireflies.ai/view/")
    end repeat
    set urlList to {}
    repeat with theTab in tabList
        set the end of urlList to URL of theTab
    end repeat
    return urlList
end tell
`

// transcriptIDPattern matches both the old URL format with a title::id
// segment and the current plain-id format. A valid ID contains at least one
// digit, which filters out title-only URL segments.
var transcriptIDPattern = regexp.MustCompile(`fireflies\.ai/view/(?:.*::)?([A-Za-z0-9]*[0-9]+[A-Za-z0-9]*)/?$`)

// runner executes an AppleScript and returns its stdout. Replaced in tests.
type runner func(script string) (string, error)

func osascript(script string) (string, error) {
	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("failed to access Chrome tabs: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("failed to access Chrome tabs: %w", err)
	}
	return string(out), nil
}

// Tabs lists Fireflies URLs open in Chrome.
type Tabs struct {
	run runner
	log logging.Logger
}

// TabsOption customizes a Tabs helper.
type TabsOption func(*Tabs)

// WithLogger overrides the logger.
func WithLogger(log logging.Logger) TabsOption {
	return func(t *Tabs) {
		t.log = log
	}
}

// NewTabs creates a Tabs helper backed by osascript.
func NewTabs(opts ...TabsOption) *Tabs {
	t := &Tabs{run: osascript, log: logging.DefaultLogger()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FirefliesURLs returns the URLs of all open Chrome tabs showing a
// Fireflies meeting view.
func (t *Tabs) FirefliesURLs() ([]string, error) {
	t.log.Debug("listing Chrome tabs with Fireflies views")
	out, err := t.run(tabListScript)
	if err != nil {
		t.log.Error("Chrome tab listing failed", "error", err)
		return nil, err
	}

	var urls []string
	for _, url := range strings.Split(strings.TrimSpace(out), ", ") {
		if url != "" {
			urls = append(urls, url)
		}
	}
	t.log.Debug("found Fireflies tabs", "count", len(urls))
	return urls, nil
}

// ExtractTranscriptIDs pulls transcript IDs out of Fireflies view URLs.
// URLs without a recognizable ID are skipped.
func ExtractTranscriptIDs(urls []string) []string {
	var ids []string
	for _, url := range urls {
		if m := transcriptIDPattern.FindStringSubmatch(url); m != nil {
			ids = append(ids, m[1])
		}
	}
	return ids
}
