package casestudy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culstrup/fireflies-raycast/internal/fireflies"
)

type stubSearcher struct {
	transcripts []*fireflies.Transcript
	err         error
	gotFilter   fireflies.Filter
}

func (s *stubSearcher) Search(ctx context.Context, filter fireflies.Filter, progress fireflies.ProgressFunc) ([]*fireflies.Transcript, error) {
	s.gotFilter = filter
	return s.transcripts, s.err
}

type stubModel struct {
	output    string
	err       error
	gotPrompt string
}

func (m *stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.gotPrompt = prompt
	return m.output, m.err
}

func sampleTranscripts() []*fireflies.Transcript {
	return []*fireflies.Transcript{
		{
			ID:            "t1",
			Title:         "Kickoff",
			DateString:    "2025-01-10T10:00:00Z",
			TranscriptURL: "https://fireflies.ai/view/t1",
			Participants:  []string{"alice@acme.com"},
			Summary:       &fireflies.Summary{Overview: "Project kickoff."},
			Sentences: []fireflies.Sentence{
				{SpeakerName: "Alice", Text: "We want to automate our reporting pipeline end to end."},
				{SpeakerName: "Bob", Text: "Sure."},
			},
		},
		{
			ID:            "t2",
			Title:         "Wrap Up",
			DateString:    "2025-02-20T10:00:00Z",
			TranscriptURL: "https://fireflies.ai/view/t2",
			Participants:  []string{"alice@acme.com"},
			Sentences: []fireflies.Sentence{
				{SpeakerName: "Alice", Text: "The new system saved us around ten hours every single week."},
			},
		},
	}
}

func TestPrepareFull(t *testing.T) {
	content, meta := PrepareFull(sampleTranscripts(), "acme.com", 0)

	assert.Contains(t, content, strings.Repeat("=", 80))
	assert.Contains(t, content, "MEETING 1: Kickoff")
	assert.Contains(t, content, "MEETING 2: Wrap Up")
	assert.Contains(t, content, "Date: January 10, 2025")
	assert.Contains(t, content, "URL: https://fireflies.ai/view/t1")
	assert.Contains(t, content, "Summary: Project kickoff.")
	assert.Contains(t, content, strings.Repeat("-", 40))
	assert.Contains(t, content, "Alice: We want to automate our reporting pipeline end to end.")

	assert.Equal(t, "acme.com", meta.Subject)
	assert.Equal(t, 2, meta.MeetingCount)
	assert.Equal(t, "January 10, 2025", meta.StartDate)
	assert.Equal(t, "February 20, 2025", meta.EndDate)
	assert.False(t, meta.Truncated)
	assert.Positive(t, meta.TotalChars)
}

func TestPrepareFullNoSentences(t *testing.T) {
	content, _ := PrepareFull([]*fireflies.Transcript{
		{Title: "Empty", DateString: "2025-01-10T10:00:00Z"},
	}, "acme.com", 0)

	assert.Contains(t, content, "[No transcript content available]")
}

func TestPrepareFullTruncation(t *testing.T) {
	long := strings.Repeat("a", 400)
	var transcripts []*fireflies.Transcript
	for i := 0; i < 5; i++ {
		transcripts = append(transcripts, &fireflies.Transcript{
			Title:      fmt.Sprintf("Meeting %c", 'A'+i),
			DateString: "2025-01-10T10:00:00Z",
			Sentences:  []fireflies.Sentence{{SpeakerName: "Alice", Text: long}},
		})
	}

	content, meta := PrepareFull(transcripts, "acme.com", 1200)

	assert.True(t, meta.Truncated)
	assert.Contains(t, content, "meetings truncated due to length limits]")
	assert.Contains(t, content, "MEETING 1:")
	assert.NotContains(t, content, "MEETING 5:")
}

func TestPrepareExcerpts(t *testing.T) {
	content := PrepareExcerpts(sampleTranscripts(), "acme.com")

	assert.Contains(t, content, "MEETING: Kickoff")
	assert.Contains(t, content, "DATE: 2025-01-10T10:00:00Z")
	assert.Contains(t, content, "DOMAIN PARTICIPANTS: alice@acme.com")
	assert.Contains(t, content, "SUMMARY:\nProject kickoff.")
	assert.Contains(t, content, "KEY DISCUSSION EXCERPTS:")
	assert.Contains(t, content, "- Alice: We want to automate our reporting pipeline end to end.")
	assert.NotContains(t, content, "- Bob: Sure.", "short statements should be excluded")
}

func TestPrepareExcerptsLimit(t *testing.T) {
	long := strings.Repeat("x", 60)
	var sentences []fireflies.Sentence
	for i := 0; i < 30; i++ {
		sentences = append(sentences, fireflies.Sentence{SpeakerName: "Alice", Text: long})
	}

	content := PrepareExcerpts([]*fireflies.Transcript{
		{Title: "Long", Sentences: sentences},
	}, "")

	assert.Equal(t, maxExcerptsPerMeeting, strings.Count(content, "- Alice: "))
}

func TestGenerate(t *testing.T) {
	searcher := &stubSearcher{transcripts: sampleTranscripts()}
	model := &stubModel{output: "# Case Study\n\nGreat results."}
	g := NewGenerator(searcher, model)

	result, err := g.Generate(context.Background(), Request{Domain: "acme.com", DaysBack: 90})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "# Case Study\n\nGreat results.", result.CaseStudy)
	assert.Equal(t, 2, result.MeetingCount)
	assert.Equal(t, "acme.com", searcher.gotFilter.Domain)
	assert.Equal(t, 90, searcher.gotFilter.DaysBack)
	assert.Contains(t, model.gotPrompt, "Client Domain: acme.com")
	assert.Contains(t, model.gotPrompt, "Number of Meetings: 2")
	assert.Contains(t, model.gotPrompt, "MEETING 1: Kickoff")
}

func TestGenerateExcerpts(t *testing.T) {
	searcher := &stubSearcher{transcripts: sampleTranscripts()}
	model := &stubModel{output: "case study"}
	g := NewGenerator(searcher, model)

	result, err := g.Generate(context.Background(), Request{Domain: "acme.com", Excerpts: true})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Contains(t, model.gotPrompt, "CLIENT DOMAIN: acme.com")
	assert.Contains(t, model.gotPrompt, "KEY DISCUSSION EXCERPTS:")
	assert.NotContains(t, model.gotPrompt, "Number of Meetings:")
}

func TestGenerateByParticipantName(t *testing.T) {
	searcher := &stubSearcher{transcripts: sampleTranscripts()}
	model := &stubModel{output: "case study"}
	g := NewGenerator(searcher, model)

	result, err := g.Generate(context.Background(), Request{ParticipantName: "Alice"})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Alice", searcher.gotFilter.SpeakerName)
	assert.Contains(t, model.gotPrompt, "Client Domain: Alice")
}

func TestGenerateNoMeetings(t *testing.T) {
	searcher := &stubSearcher{}
	model := &stubModel{output: "should not be called"}
	g := NewGenerator(searcher, model)

	result, err := g.Generate(context.Background(), Request{Domain: "acme.com"})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Empty(t, model.gotPrompt, "model should not be called without meetings")
}

func TestGenerateSearchError(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("api down")}
	g := NewGenerator(searcher, &stubModel{})

	_, err := g.Generate(context.Background(), Request{Domain: "acme.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api down")
}

func TestGenerateModelError(t *testing.T) {
	searcher := &stubSearcher{transcripts: sampleTranscripts()}
	model := &stubModel{err: errors.New("quota exceeded")}
	g := NewGenerator(searcher, model)

	_, err := g.Generate(context.Background(), Request{Domain: "acme.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateRequiresFilter(t *testing.T) {
	g := NewGenerator(&stubSearcher{}, &stubModel{})

	_, err := g.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNoFilter)
}

func TestPrepareDiscussionPoints(t *testing.T) {
	content := PrepareDiscussionPoints([]*fireflies.Transcript{
		{
			Title:      "Kickoff",
			DateString: "2025-01-10T10:00:00Z",
			Summary:    &fireflies.Summary{Overview: "Project kickoff."},
			Sentences: []fireflies.Sentence{
				{SpeakerName: "Alice", Text: "Our biggest challenge is the reporting backlog."},
				{SpeakerName: "Bob", Text: "Nice weather today."},
				{SpeakerName: "Alice", Text: "We should implement the pipeline in stages."},
			},
		},
		{
			Sentences: []fireflies.Sentence{
				{SpeakerName: "Alice", Text: "The result exceeded everyone's expectations."},
			},
		},
	})

	assert.Contains(t, content, "Meeting: Kickoff")
	assert.Contains(t, content, "Date: 2025-01-10T10:00:00Z")
	assert.Contains(t, content, "Summary: Project kickoff.")
	assert.Contains(t, content, "Key Discussion Points:")
	assert.Contains(t, content, "- Our biggest challenge is the reporting backlog.")
	assert.Contains(t, content, "- We should implement the pipeline in stages.")
	assert.NotContains(t, content, "Nice weather today.", "sentences without keywords should be dropped")

	assert.Contains(t, content, "Meeting: Untitled")
	assert.Contains(t, content, "Date: Unknown")
	assert.Contains(t, content, "- The result exceeded everyone's expectations.")

	assert.Equal(t, 2, strings.Count(content, strings.Repeat("=", 50)))
}

func TestPrepareDiscussionPointsLimits(t *testing.T) {
	var sentences []fireflies.Sentence
	for i := 0; i < maxPointSentences; i++ {
		sentences = append(sentences, fireflies.Sentence{Text: fmt.Sprintf("A solution, number %d.", i)})
	}
	sentences = append(sentences, fireflies.Sentence{Text: "A solution beyond the scan window."})

	content := PrepareDiscussionPoints([]*fireflies.Transcript{
		{Title: "Marathon", Sentences: sentences},
	})

	assert.Equal(t, maxPointsPerMeeting, strings.Count(content, "- A solution"))
	assert.NotContains(t, content, "beyond the scan window")
}

// namedSearcher serves different transcripts per speaker name and records
// every filter it was asked for.
type namedSearcher struct {
	bySpeaker map[string][]*fireflies.Transcript
	filters   []fireflies.Filter
}

func (s *namedSearcher) Search(ctx context.Context, filter fireflies.Filter, progress fireflies.ProgressFunc) ([]*fireflies.Transcript, error) {
	s.filters = append(s.filters, filter)
	return s.bySpeaker[filter.SpeakerName], nil
}

func TestGenerateKnownParticipants(t *testing.T) {
	kickoff := &fireflies.Transcript{
		ID:         "t1",
		Title:      "Kickoff",
		DateString: "2025-01-10T10:00:00Z",
		Sentences: []fireflies.Sentence{
			{SpeakerName: "Jane", Text: "Our challenge is the reporting backlog."},
		},
	}
	wrapUp := &fireflies.Transcript{
		ID:         "t2",
		Title:      "Wrap Up",
		DateString: "2025-02-20T10:00:00Z",
		Sentences: []fireflies.Sentence{
			{SpeakerName: "Jane", Text: "The result saved us ten hours a week."},
		},
	}
	searcher := &namedSearcher{bySpeaker: map[string][]*fireflies.Transcript{
		"Jane Smith": {wrapUp},
		"John Doe":   {kickoff, wrapUp},
	}}
	model := &stubModel{output: "case study"}
	g := NewGenerator(searcher, model)

	result, err := g.Generate(context.Background(), Request{
		Domain:            "acme.com",
		KnownParticipants: []string{"Jane Smith", "John Doe"},
		DaysBack:          365,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, searcher.filters, 2)
	assert.Equal(t, "Jane Smith", searcher.filters[0].SpeakerName)
	assert.Equal(t, "John Doe", searcher.filters[1].SpeakerName)
	assert.Empty(t, searcher.filters[0].Domain, "speaker searches should not also filter by domain")
	assert.Equal(t, 365, searcher.filters[0].DaysBack)

	assert.Equal(t, 2, result.MeetingCount, "duplicate meetings should be merged")

	assert.Contains(t, model.gotPrompt, "meeting transcripts with acme.com participants")
	assert.Contains(t, model.gotPrompt, "CLIENT DOMAIN: acme.com")
	assert.Contains(t, model.gotPrompt, "Key Discussion Points:")
	assert.Contains(t, model.gotPrompt, "- Our challenge is the reporting backlog.")
	first := strings.Index(model.gotPrompt, "Meeting: Kickoff")
	second := strings.Index(model.gotPrompt, "Meeting: Wrap Up")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second, "merged meetings should read oldest first")
}
