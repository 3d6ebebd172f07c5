package fireflies

import (
	"time"
)

// Transcript represents a meeting record returned by the Fireflies API.
// Any field may be missing or null; consumers must tolerate zero values.
type Transcript struct {
	// ID is the Fireflies transcript identifier
	ID string `json:"id"`

	// Title is the meeting title
	Title string `json:"title"`

	// DateString is the meeting date as an ISO 8601 string
	DateString string `json:"dateString"`

	// DateMillis is the meeting date as epoch milliseconds
	DateMillis float64 `json:"date"`

	// TranscriptURL links to the meeting in the Fireflies web app
	TranscriptURL string `json:"transcript_url"`

	// HostEmail is the meeting host's email, when known
	HostEmail string `json:"host_email"`

	// OrganizerEmail is the calendar organizer's email, when known
	OrganizerEmail string `json:"organizer_email"`

	// Participants holds participant emails. A single entry may contain a
	// comma-separated list of addresses.
	Participants []string `json:"participants"`

	// FirefliesUsers holds emails of Fireflies users attached to the meeting
	FirefliesUsers []string `json:"fireflies_users"`

	// MeetingAttendees holds structured attendee records
	MeetingAttendees []MeetingAttendee `json:"meeting_attendees"`

	// Summary is the AI-generated meeting summary, when available
	Summary *Summary `json:"summary"`

	// Sentences is the spoken transcript. Empty while the meeting is still
	// being processed.
	Sentences []Sentence `json:"sentences"`
}

// MeetingAttendee is a structured attendee record.
type MeetingAttendee struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Summary holds the AI-generated meeting summary.
type Summary struct {
	Overview string `json:"overview"`
}

// Sentence is a single spoken line in a transcript.
type Sentence struct {
	Text        string `json:"text"`
	RawText     string `json:"raw_text"`
	SpeakerName string `json:"speaker_name"`
}

// Content returns the sentence text, falling back to the raw ASR text when
// the cleaned text is empty.
func (s Sentence) Content() string {
	if s.Text != "" {
		return s.Text
	}
	return s.RawText
}

// Speaker returns the speaker name, or "Unknown" when it is missing.
func (s Sentence) Speaker() string {
	if s.SpeakerName != "" {
		return s.SpeakerName
	}
	return "Unknown"
}

// Date returns the meeting time. It prefers DateString and falls back to the
// epoch-millisecond date field. The zero time is returned when neither parses;
// callers must not exclude meetings with unparsable dates.
func (t *Transcript) Date() time.Time {
	if t.DateString != "" {
		if parsed, err := parseISODate(t.DateString); err == nil {
			return parsed
		}
	}
	if t.DateMillis > 0 {
		return time.UnixMilli(int64(t.DateMillis))
	}
	return time.Time{}
}

// parseISODate parses the date formats the API has been observed to emit.
func parseISODate(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
