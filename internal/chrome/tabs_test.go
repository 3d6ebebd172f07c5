package chrome

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culstrup/fireflies-raycast/internal/logging"
)

func TestExtractTranscriptIDs(t *testing.T) {
	tests := []struct {
		name     string
		urls     []string
		expected []string
	}{
		{
			name:     "plain id format",
			urls:     []string{"https://app.fireflies.ai/view/ABC123xyz"},
			expected: []string{"ABC123xyz"},
		},
		{
			name:     "legacy title::id format",
			urls:     []string{"https://app.fireflies.ai/view/Weekly-Sync::XYZ789"},
			expected: []string{"XYZ789"},
		},
		{
			name:     "trailing slash",
			urls:     []string{"https://app.fireflies.ai/view/ABC123/"},
			expected: []string{"ABC123"},
		},
		{
			name:     "id without digits rejected",
			urls:     []string{"https://app.fireflies.ai/view/sometitle"},
			expected: nil,
		},
		{
			name:     "non fireflies url skipped",
			urls:     []string{"https://example.com/view/ABC123"},
			expected: nil,
		},
		{
			name: "mixed",
			urls: []string{
				"https://app.fireflies.ai/view/Meeting-One::AAA111",
				"https://app.fireflies.ai/view/onlyletters",
				"https://app.fireflies.ai/view/BBB222",
			},
			expected: []string{"AAA111", "BBB222"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractTranscriptIDs(tt.urls))
		})
	}
}

func TestFirefliesURLs(t *testing.T) {
	tabs := &Tabs{run: func(script string) (string, error) {
		return "https://app.fireflies.ai/view/ABC123, https://app.fireflies.ai/view/DEF456\n", nil
	}, log: logging.DefaultLogger()}

	urls, err := tabs.FirefliesURLs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://app.fireflies.ai/view/ABC123",
		"https://app.fireflies.ai/view/DEF456",
	}, urls)
}

func TestFirefliesURLsEmpty(t *testing.T) {
	tabs := &Tabs{run: func(script string) (string, error) {
		return "\n", nil
	}, log: logging.DefaultLogger()}

	urls, err := tabs.FirefliesURLs()
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestFirefliesURLsError(t *testing.T) {
	tabs := &Tabs{run: func(script string) (string, error) {
		return "", errors.New("failed to access Chrome tabs: Chrome is not running")
	}, log: logging.DefaultLogger()}

	_, err := tabs.FirefliesURLs()
	assert.Error(t, err)
}

func TestNewTabsWithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	tabs := NewTabs(WithLogger(log))
	tabs.run = func(script string) (string, error) {
		return "https://app.fireflies.ai/view/ABC123\n", nil
	}

	urls, err := tabs.FirefliesURLs()
	require.NoError(t, err)
	assert.Len(t, urls, 1)
	assert.Contains(t, buf.String(), "found Fireflies tabs")
	assert.Contains(t, buf.String(), "count=1")
}
