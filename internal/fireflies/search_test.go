package fireflies

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipantEmails(t *testing.T) {
	tests := []struct {
		name       string
		transcript Transcript
		expected   []string
	}{
		{
			name: "all sources merged and deduplicated",
			transcript: Transcript{
				Participants:   []string{"Alice@Example.com, bob@example.com"},
				HostEmail:      "alice@example.com",
				OrganizerEmail: "carol@other.org",
				FirefliesUsers: []string{"dave@example.com"},
				MeetingAttendees: []MeetingAttendee{
					{Email: "Bob@example.com", Name: "Bob"},
					{Email: "", Name: "No Email"},
				},
			},
			expected: []string{"alice@example.com", "bob@example.com", "carol@other.org", "dave@example.com"},
		},
		{
			name: "non-email participant tokens dropped",
			transcript: Transcript{
				Participants: []string{"Alice Smith, alice@example.com", "Room 4"},
			},
			expected: []string{"alice@example.com"},
		},
		{
			name:       "no sources",
			transcript: Transcript{},
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParticipantEmails(&tt.transcript))
		})
	}
}

func TestHasDomainParticipant(t *testing.T) {
	transcript := &Transcript{
		Participants: []string{"alice@acme.com, bob@other.org"},
	}

	assert.True(t, HasDomainParticipant(transcript, "acme.com"))
	assert.True(t, HasDomainParticipant(transcript, "@acme.com"))
	assert.True(t, HasDomainParticipant(transcript, "ACME.com"))
	assert.False(t, HasDomainParticipant(transcript, "cme.com"),
		"domain must match the full suffix after @")
	assert.False(t, HasDomainParticipant(transcript, "example.com"))
}

func TestSpeakerNames(t *testing.T) {
	transcript := &Transcript{
		Sentences: []Sentence{
			{SpeakerName: "Alice", Text: "hi"},
			{SpeakerName: "Bob", Text: "hello"},
			{SpeakerName: "Alice", Text: "how are you"},
			{Text: "who is this"},
		},
	}

	assert.Equal(t, []string{"Alice", "Bob", "Unknown"}, SpeakerNames(transcript))
}

func TestHasSpeaker(t *testing.T) {
	transcript := &Transcript{
		Sentences: []Sentence{
			{SpeakerName: "Alice Johnson", Text: "hi"},
		},
	}

	assert.True(t, HasSpeaker(transcript, "alice"))
	assert.True(t, HasSpeaker(transcript, "Johnson"))
	assert.False(t, HasSpeaker(transcript, "Bob"))
}

// searchServer serves transcript pages for Search tests. Pages are keyed by
// skip offset.
func searchServer(t *testing.T, pages map[int][]*Transcript) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		skip := 0
		if v, ok := req.Variables["skip"].(float64); ok {
			skip = int(v)
		}
		page := pages[skip]
		if page == nil {
			page = []*Transcript{}
		}
		resp := map[string]any{"data": map[string]any{"transcripts": page}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestSearchByDomain(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -2).UTC().Format(time.RFC3339)
	older := time.Now().AddDate(0, 0, -5).UTC().Format(time.RFC3339)

	pages := map[int][]*Transcript{
		0: {
			{ID: "t1", Title: "Sync", DateString: recent, Participants: []string{"alice@acme.com"}},
			{ID: "t2", Title: "Other", DateString: recent, Participants: []string{"bob@other.org"}},
			{ID: "t3", Title: "Review", DateString: older, Participants: []string{"carol@acme.com"}},
		},
	}

	srv := searchServer(t, pages)
	defer srv.Close()

	client, err := NewClient("test-key", WithEndpoint(srv.URL))
	require.NoError(t, err)

	var progress []string
	matches, err := client.Search(context.Background(), Filter{Domain: "acme.com", DaysBack: 30},
		func(msg string) { progress = append(progress, msg) })
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "t3", matches[0].ID, "results should be oldest first")
	assert.Equal(t, "t1", matches[1].ID)
	assert.NotEmpty(t, progress)
}

func TestSearchProgressReportsPageDateRange(t *testing.T) {
	newest := time.Now().AddDate(0, 0, -1).UTC()
	var first []*Transcript
	for i := 0; i < 10; i++ {
		first = append(first, &Transcript{
			ID:           fmt.Sprintf("t%d", i),
			DateString:   newest.AddDate(0, 0, -i).Format(time.RFC3339),
			Participants: []string{"someone@other.org"},
		})
	}
	pages := map[int][]*Transcript{
		0:  first,
		10: {{ID: "last", DateString: newest.AddDate(0, 0, -11).Format(time.RFC3339)}},
	}

	srv := searchServer(t, pages)
	defer srv.Close()

	client, err := NewClient("test-key", WithEndpoint(srv.URL))
	require.NoError(t, err)

	var progress []string
	_, err = client.Search(context.Background(), Filter{Domain: "acme.com", DaysBack: 30},
		func(msg string) { progress = append(progress, msg) })
	require.NoError(t, err)

	want := fmt.Sprintf("Batch covers %s to %s, found 0 matches so far...",
		first[0].DateString[:10], first[9].DateString[:10])
	assert.Contains(t, progress, want)
}

func TestSearchStopsAtCutoff(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -1).UTC().Format(time.RFC3339)
	ancient := time.Now().AddDate(0, 0, -400).UTC().Format(time.RFC3339)

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := []*Transcript{
			{ID: "t1", DateString: recent, Participants: []string{"a@acme.com"}},
			{ID: "t2", DateString: ancient, Participants: []string{"b@acme.com"}},
		}
		// Advertise a full page so only the cutoff can stop the scan.
		for len(page) < 10 {
			page = append(page, &Transcript{ID: fmt.Sprintf("pad%d", len(page)), DateString: ancient})
		}
		resp := map[string]any{"data": map[string]any{"transcripts": page}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", WithEndpoint(srv.URL))
	require.NoError(t, err)

	matches, err := client.Search(context.Background(), Filter{Domain: "acme.com", DaysBack: 180}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "first transcript past the cutoff should end the search")
	require.Len(t, matches, 1)
	assert.Equal(t, "t1", matches[0].ID)
}

func TestSearchUnparsableDatesKept(t *testing.T) {
	pages := map[int][]*Transcript{
		0: {
			{ID: "t1", DateString: "not a date", Participants: []string{"a@acme.com"}},
		},
	}

	srv := searchServer(t, pages)
	defer srv.Close()

	client, err := NewClient("test-key", WithEndpoint(srv.URL))
	require.NoError(t, err)

	matches, err := client.Search(context.Background(), Filter{Domain: "acme.com"}, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "t1", matches[0].ID)
}

func TestSearchMaxMatches(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -1).UTC().Format(time.RFC3339)
	var page []*Transcript
	for i := 0; i < 10; i++ {
		page = append(page, &Transcript{
			ID:           fmt.Sprintf("t%d", i),
			DateString:   recent,
			Participants: []string{"a@acme.com"},
		})
	}

	srv := searchServer(t, map[int][]*Transcript{0: page})
	defer srv.Close()

	client, err := NewClient("test-key", WithEndpoint(srv.URL))
	require.NoError(t, err)

	matches, err := client.Search(context.Background(), Filter{Domain: "acme.com", MaxMatches: 3}, nil)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestSearchMaxMatchesDefault(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -1).UTC().Format(time.RFC3339)
	pages := make(map[int][]*Transcript)
	for skip := 0; skip < 30; skip += 10 {
		var page []*Transcript
		for i := 0; i < 10; i++ {
			page = append(page, &Transcript{
				ID:           fmt.Sprintf("t%d", skip+i),
				DateString:   recent,
				Participants: []string{"a@acme.com"},
			})
		}
		pages[skip] = page
	}

	srv := searchServer(t, pages)
	defer srv.Close()

	client, err := NewClient("test-key", WithEndpoint(srv.URL))
	require.NoError(t, err)

	// Zero and negative values fall back to the default limit of 20.
	for _, maxMatches := range []int{0, -1} {
		matches, err := client.Search(context.Background(), Filter{Domain: "acme.com", MaxMatches: maxMatches}, nil)
		require.NoError(t, err)
		assert.Len(t, matches, 20)
	}
}

func TestSearchBySpeaker(t *testing.T) {
	recent := time.Now().AddDate(0, 0, -1).UTC().Format(time.RFC3339)
	pages := map[int][]*Transcript{
		0: {
			{ID: "t1", DateString: recent, Sentences: []Sentence{{SpeakerName: "Alice Johnson", Text: "hi"}}},
			{ID: "t2", DateString: recent, Sentences: []Sentence{{SpeakerName: "Bob", Text: "hello"}}},
		},
	}

	srv := searchServer(t, pages)
	defer srv.Close()

	client, err := NewClient("test-key", WithEndpoint(srv.URL))
	require.NoError(t, err)

	matches, err := client.Search(context.Background(), Filter{SpeakerName: "alice"}, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "t1", matches[0].ID)
}

func TestSearchRequiresFilter(t *testing.T) {
	client, err := NewClient("test-key")
	require.NoError(t, err)

	_, err = client.Search(context.Background(), Filter{}, nil)
	assert.Error(t, err)
}
