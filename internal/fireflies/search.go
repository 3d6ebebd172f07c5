package fireflies

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/culstrup/fireflies-raycast/internal/logging"
)

// ParticipantEmails collects every email address attached to a transcript,
// lowercased and deduplicated. Fireflies spreads participant identity across
// several inconsistently populated fields, so all of them are consulted.
func ParticipantEmails(t *Transcript) []string {
	seen := make(map[string]bool)
	var emails []string

	add := func(raw string) {
		for _, token := range strings.Split(raw, ",") {
			email := strings.ToLower(strings.TrimSpace(token))
			if email == "" || !strings.Contains(email, "@") {
				continue
			}
			if !seen[email] {
				seen[email] = true
				emails = append(emails, email)
			}
		}
	}

	for _, p := range t.Participants {
		add(p)
	}
	for _, a := range t.MeetingAttendees {
		add(a.Email)
	}
	add(t.HostEmail)
	add(t.OrganizerEmail)
	for _, u := range t.FirefliesUsers {
		add(u)
	}

	return emails
}

// HasDomainParticipant reports whether any participant email belongs to the
// given organization domain.
func HasDomainParticipant(t *Transcript, domain string) bool {
	suffix := "@" + strings.ToLower(strings.TrimPrefix(domain, "@"))
	for _, email := range ParticipantEmails(t) {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}

// SpeakerNames returns the distinct speaker names in a transcript, in order
// of first appearance.
func SpeakerNames(t *Transcript) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range t.Sentences {
		name := s.Speaker()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// HasSpeaker reports whether any speaker name contains the given name,
// case-insensitively.
func HasSpeaker(t *Transcript, name string) bool {
	needle := strings.ToLower(name)
	for _, s := range t.Sentences {
		if strings.Contains(strings.ToLower(s.Speaker()), needle) {
			return true
		}
	}
	return false
}

// Filter selects transcripts during a Search. Exactly one of Domain or
// SpeakerName should be set.
type Filter struct {
	Domain      string
	SpeakerName string
	DaysBack    int
	PageSize    int
	MaxScan     int
	MaxMatches  int
}

func (f *Filter) matches(t *Transcript) bool {
	if f.Domain != "" {
		return HasDomainParticipant(t, f.Domain)
	}
	if f.SpeakerName != "" {
		return HasSpeaker(t, f.SpeakerName)
	}
	return false
}

// ProgressFunc receives user-facing progress messages during a search.
type ProgressFunc func(message string)

// Search pages through the caller's transcript history, newest first,
// collecting transcripts that match the filter. The scan stops at the first
// transcript older than the cutoff, after a short page, or once MaxScan
// transcripts have been examined or MaxMatches collected. Results are
// returned oldest first.
func (c *Client) Search(ctx context.Context, filter Filter, progress ProgressFunc) ([]*Transcript, error) {
	if filter.Domain == "" && filter.SpeakerName == "" {
		return nil, fmt.Errorf("search filter requires a domain or speaker name")
	}
	if filter.DaysBack <= 0 {
		filter.DaysBack = 180
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	if filter.MaxScan <= 0 {
		filter.MaxScan = 600
	}
	if filter.MaxMatches <= 0 {
		filter.MaxMatches = 20
	}
	if progress == nil {
		progress = func(string) {}
	}

	cutoff := time.Now().AddDate(0, 0, -filter.DaysBack)
	var matches []*Transcript
	scanned := 0
	skip := 0

	progress(fmt.Sprintf("Searching meetings from the last %d days...", filter.DaysBack))

scan:
	for scanned < filter.MaxScan && len(matches) < filter.MaxMatches {
		page, err := c.SearchPage(ctx, filter.PageSize, skip)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, t := range page {
			scanned++

			// Transcripts arrive date-descending, so the first one older
			// than the cutoff ends the whole search. Unparsable dates are
			// kept rather than silently dropped.
			if date := t.Date(); !date.IsZero() && date.Before(cutoff) {
				break scan
			}

			if filter.matches(t) {
				matches = append(matches, t)
				progress(fmt.Sprintf("Found matching meeting: %s (%s)", t.Title, t.DateString))
				if len(matches) >= filter.MaxMatches {
					break scan
				}
			}

			if scanned >= filter.MaxScan {
				break scan
			}
		}

		if len(page) < filter.PageSize {
			break
		}
		skip += filter.PageSize
		progress(fmt.Sprintf("Batch covers %s to %s, found %d matches so far...",
			dateLabel(page[0]), dateLabel(page[len(page)-1]), len(matches)))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date().Before(matches[j].Date())
	})

	c.logger.Info("transcript search complete",
		logging.Service("fireflies"),
		slog.Int("scanned", scanned),
		slog.Int("matches", len(matches)))
	return matches, nil
}

// dateLabel renders a transcript's date for progress messages, trimmed to
// the day. Pages are date-descending, so the first and last entries bound
// the page's date range.
func dateLabel(t *Transcript) string {
	if t.DateString == "" {
		return "Unknown"
	}
	if len(t.DateString) > 10 {
		return t.DateString[:10]
	}
	return t.DateString
}
