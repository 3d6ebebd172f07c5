package casestudy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/culstrup/fireflies-raycast/internal/fireflies"
	"github.com/culstrup/fireflies-raycast/internal/logging"
)

// ErrNoFilter is returned when a request names neither a domain nor a
// participant.
var ErrNoFilter = errors.New("case study request requires a domain or participant name")

// TextGenerator produces text from a prompt. Satisfied by the Gemini client.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Searcher finds matching transcripts. Satisfied by the Fireflies client.
type Searcher interface {
	Search(ctx context.Context, filter fireflies.Filter, progress fireflies.ProgressFunc) ([]*fireflies.Transcript, error)
}

// Request describes what to build a case study from. Exactly one of Domain
// or ParticipantName must be set. KnownParticipants lists speaker names
// known to belong to the domain; when present they drive the search instead
// of the domain's participant emails.
type Request struct {
	Domain            string
	ParticipantName   string
	KnownParticipants []string
	DaysBack          int
	Excerpts          bool
}

func (r Request) subject() string {
	if r.Domain != "" {
		return r.Domain
	}
	return r.ParticipantName
}

// Result is the outcome of a generation run.
type Result struct {
	CaseStudy    string
	MeetingCount int
	Metadata     Metadata
	Duration     time.Duration
}

// Generator drives the search, preparation and generation pipeline.
type Generator struct {
	searcher   Searcher
	model      TextGenerator
	charBudget int
	logger     *slog.Logger
	progress   fireflies.ProgressFunc
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithCharBudget overrides the transcript character budget.
func WithCharBudget(budget int) GeneratorOption {
	return func(g *Generator) {
		g.charBudget = budget
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithProgress sets a callback for user-facing progress messages.
func WithProgress(progress fireflies.ProgressFunc) GeneratorOption {
	return func(g *Generator) {
		g.progress = progress
	}
}

// NewGenerator creates a case study generator.
func NewGenerator(searcher Searcher, model TextGenerator, opts ...GeneratorOption) *Generator {
	g := &Generator{
		searcher:   searcher,
		model:      model,
		charBudget: DefaultCharBudget,
		logger:     slog.Default(),
		progress:   func(string) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the full pipeline. A search with no matches returns a nil
// result without calling the model; the caller decides how to report it.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Domain == "" && req.ParticipantName == "" {
		return nil, ErrNoFilter
	}

	var meetings []*fireflies.Transcript
	var err error
	if len(req.KnownParticipants) > 0 {
		meetings, err = g.searchKnownParticipants(ctx, req)
	} else {
		meetings, err = g.searcher.Search(ctx, fireflies.Filter{
			Domain:      req.Domain,
			SpeakerName: req.ParticipantName,
			DaysBack:    req.DaysBack,
		}, g.progress)
	}
	if err != nil {
		return nil, fmt.Errorf("searching meetings: %w", err)
	}

	if len(meetings) == 0 {
		g.logger.Info("no meetings matched",
			logging.Operation("casestudy_generate"),
			slog.String("subject", req.subject()))
		return nil, nil
	}

	g.progress(fmt.Sprintf("Preparing transcript context for %d meetings...", len(meetings)))

	var prompt string
	var meta Metadata
	switch {
	case len(req.KnownParticipants) > 0:
		content := PrepareDiscussionPoints(meetings)
		meta = Metadata{Subject: req.subject(), MeetingCount: len(meetings), TotalChars: len(content)}
		prompt = BuildEnhancedPrompt(req.Domain, content)
	case req.Excerpts:
		content := PrepareExcerpts(meetings, req.Domain)
		meta = Metadata{Subject: req.subject(), MeetingCount: len(meetings), TotalChars: len(content)}
		prompt = BuildExcerptPrompt(req.subject(), content)
	default:
		var content string
		content, meta = PrepareFull(meetings, req.subject(), g.charBudget)
		prompt = BuildFullPrompt(meta, content)
	}

	g.progress("Generating case study...")
	start := time.Now()
	text, err := g.model.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating case study: %w", err)
	}
	duration := time.Since(start)

	g.logger.Info("case study generated",
		logging.Operation("casestudy_generate"),
		slog.String("subject", req.subject()),
		slog.Int("meetings", len(meetings)),
		slog.Bool("truncated", meta.Truncated),
		logging.Duration(duration))

	return &Result{
		CaseStudy:    text,
		MeetingCount: len(meetings),
		Metadata:     meta,
		Duration:     duration,
	}, nil
}

// searchKnownParticipants runs one speaker search per known participant
// name, merges the results and drops duplicates. Merged meetings are
// ordered oldest first so the prepared context reads chronologically.
func (g *Generator) searchKnownParticipants(ctx context.Context, req Request) ([]*fireflies.Transcript, error) {
	seen := make(map[string]bool)
	var merged []*fireflies.Transcript
	for _, name := range req.KnownParticipants {
		g.progress(fmt.Sprintf("Searching for meetings with %s...", name))
		meetings, err := g.searcher.Search(ctx, fireflies.Filter{
			SpeakerName: name,
			DaysBack:    req.DaysBack,
		}, nil)
		if err != nil {
			return nil, fmt.Errorf("searching meetings with %s: %w", name, err)
		}
		for _, t := range meetings {
			if !seen[t.ID] {
				seen[t.ID] = true
				merged = append(merged, t)
			}
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date().Before(merged[j].Date())
	})
	return merged, nil
}
