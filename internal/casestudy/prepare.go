package casestudy

import (
	"fmt"
	"strings"
	"time"

	"github.com/culstrup/fireflies-raycast/internal/fireflies"
)

// DefaultCharBudget caps the transcript context passed to the model,
// leaving room for the prompt and the response.
const DefaultCharBudget = 1_500_000

const (
	maxExcerptSentences   = 200
	maxExcerptsPerMeeting = 10
	minExcerptLen         = 50

	maxPointSentences   = 100
	maxPointsPerMeeting = 10
)

// discussionKeywords marks sentences worth surfacing as discussion points.
var discussionKeywords = []string{
	"challenge", "solution", "implement", "result", "success", "problem",
}

// Metadata describes the prepared transcript context.
type Metadata struct {
	Subject      string
	MeetingCount int
	StartDate    string
	EndDate      string
	TotalChars   int
	Truncated    bool
}

func meetingDate(t *fireflies.Transcript) string {
	date := t.Date()
	if date.IsZero() {
		date = time.Now()
	}
	return date.Format("January 2, 2006")
}

// PrepareFull formats transcripts with their complete sentence lists,
// accumulating until the character budget would be exceeded. Meetings past
// the budget are replaced with a single truncation note.
func PrepareFull(transcripts []*fireflies.Transcript, subject string, charBudget int) (string, Metadata) {
	if charBudget <= 0 {
		charBudget = DefaultCharBudget
	}

	meta := Metadata{
		Subject:      subject,
		MeetingCount: len(transcripts),
	}
	if len(transcripts) == 0 {
		return "", meta
	}

	minDate, maxDate := transcripts[0].Date(), transcripts[0].Date()
	for _, t := range transcripts[1:] {
		if d := t.Date(); !d.IsZero() {
			if minDate.IsZero() || d.Before(minDate) {
				minDate = d
			}
			if d.After(maxDate) {
				maxDate = d
			}
		}
	}
	if minDate.IsZero() {
		minDate, maxDate = time.Now(), time.Now()
	}
	meta.StartDate = minDate.Format("January 2, 2006")
	meta.EndDate = maxDate.Format("January 2, 2006")

	var out strings.Builder
	for i, t := range transcripts {
		title := t.Title
		if title == "" {
			title = fmt.Sprintf("Meeting %d", i+1)
		}
		url := t.TranscriptURL
		if url == "" {
			url = "N/A"
		}

		var meeting strings.Builder
		fmt.Fprintf(&meeting, "\n%s\n", strings.Repeat("=", 80))
		fmt.Fprintf(&meeting, "MEETING %d: %s\n", i+1, title)
		fmt.Fprintf(&meeting, "Date: %s\n", meetingDate(t))
		fmt.Fprintf(&meeting, "URL: %s\n", url)

		if t.Summary != nil && t.Summary.Overview != "" {
			fmt.Fprintf(&meeting, "\nSummary: %s\n", t.Summary.Overview)
		}

		fmt.Fprintf(&meeting, "\nTranscript:\n%s\n", strings.Repeat("-", 40))
		if len(t.Sentences) == 0 {
			meeting.WriteString("[No transcript content available]\n")
		} else {
			for _, s := range t.Sentences {
				if text := s.Content(); text != "" {
					fmt.Fprintf(&meeting, "%s: %s\n", s.Speaker(), text)
				}
			}
		}

		if meta.TotalChars+meeting.Len() > charBudget {
			fmt.Fprintf(&out, "\n[Remaining %d meetings truncated due to length limits]\n", len(transcripts)-i)
			meta.Truncated = true
			break
		}

		out.WriteString(meeting.String())
		meta.TotalChars += meeting.Len()
	}

	return out.String(), meta
}

// PrepareDiscussionPoints formats transcripts as compact meeting notes,
// surfacing only sentences that touch on challenges, solutions or outcomes.
// Used with the known-participant search, where full transcripts from many
// speaker matches would swamp the prompt.
func PrepareDiscussionPoints(transcripts []*fireflies.Transcript) string {
	var content []string

	for _, t := range transcripts {
		title := t.Title
		if title == "" {
			title = "Untitled"
		}
		dateStr := t.DateString
		if dateStr == "" {
			dateStr = "Unknown"
		}
		content = append(content, "Meeting: "+title)
		content = append(content, "Date: "+dateStr)

		if t.Summary != nil && t.Summary.Overview != "" {
			content = append(content, "Summary: "+t.Summary.Overview)
		}

		sentences := t.Sentences
		if len(sentences) > maxPointSentences {
			sentences = sentences[:maxPointSentences]
		}
		var points []string
		for _, s := range sentences {
			if s.Text == "" {
				continue
			}
			lower := strings.ToLower(s.Text)
			for _, keyword := range discussionKeywords {
				if strings.Contains(lower, keyword) {
					points = append(points, s.Text)
					break
				}
			}
			if len(points) >= maxPointsPerMeeting {
				break
			}
		}
		if len(points) > 0 {
			content = append(content, "Key Discussion Points:")
			for _, point := range points {
				content = append(content, "- "+point)
			}
		}

		content = append(content, "\n"+strings.Repeat("=", 50)+"\n")
	}

	return strings.Join(content, "\n")
}

// PrepareExcerpts formats transcripts compactly, sampling substantive
// statements from each meeting instead of including full transcripts.
// The domain is used to call out which participants belong to the client.
func PrepareExcerpts(transcripts []*fireflies.Transcript, domain string) string {
	var parts []string

	for _, t := range transcripts {
		title := t.Title
		if title == "" {
			title = "Untitled"
		}
		dateStr := t.DateString
		if dateStr == "" {
			dateStr = "Unknown date"
		}
		url := t.TranscriptURL
		if url == "" {
			url = "No URL"
		}

		lines := []string{
			"MEETING: " + title,
			"DATE: " + dateStr,
			"URL: " + url,
		}

		if domain != "" {
			suffix := "@" + strings.ToLower(strings.TrimPrefix(domain, "@"))
			var domainEmails []string
			for _, email := range fireflies.ParticipantEmails(t) {
				if strings.HasSuffix(email, suffix) {
					domainEmails = append(domainEmails, email)
				}
			}
			if len(domainEmails) > 0 {
				lines = append(lines, "DOMAIN PARTICIPANTS: "+strings.Join(domainEmails, ", "))
			}
		}

		if t.Summary != nil && t.Summary.Overview != "" {
			lines = append(lines, "\nSUMMARY:\n"+t.Summary.Overview)
		}

		sentences := t.Sentences
		if len(sentences) > maxExcerptSentences {
			sentences = sentences[:maxExcerptSentences]
		}
		if len(sentences) > 0 {
			type segment struct {
				speaker string
				texts   []string
			}
			var order []string
			segments := make(map[string]*segment)
			for _, s := range sentences {
				if s.Text == "" {
					continue
				}
				speaker := s.Speaker()
				seg, ok := segments[speaker]
				if !ok {
					seg = &segment{speaker: speaker}
					segments[speaker] = seg
					order = append(order, speaker)
				}
				seg.texts = append(seg.texts, s.Text)
			}

			lines = append(lines, "\nKEY DISCUSSION EXCERPTS:")
			excerpts := 0
			for _, speaker := range order {
				if excerpts >= maxExcerptsPerMeeting {
					break
				}
				for _, text := range segments[speaker].texts {
					if len(text) > minExcerptLen && excerpts < maxExcerptsPerMeeting {
						lines = append(lines, fmt.Sprintf("- %s: %s", speaker, text))
						excerpts++
					}
				}
			}
		}

		parts = append(parts, strings.Join(lines, "\n"))
		parts = append(parts, "\n"+strings.Repeat("=", 80)+"\n")
	}

	return strings.Join(parts, "\n")
}
