// Package casestudy turns a set of meeting transcripts into a marketing
// case study. It prepares transcript context for the model (full transcripts
// under a character budget, or compact per-meeting excerpts) and drives the
// search plus generation pipeline.
package casestudy
