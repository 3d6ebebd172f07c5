// Package fireflies provides a client for the Fireflies.ai GraphQL API.
//
// This package covers the read-only surface the flycast commands need:
// listing recent transcripts, fetching individual transcripts by ID
// (including bounded parallel batch fetches), paging through the
// transcript history, and filtering meetings by participant email
// domain or speaker name.
//
// The API reports participant identities across several inconsistent
// fields (participants strings that may hold comma-separated lists,
// structured meeting_attendees, host_email, organizer_email and
// fireflies_users). ParticipantEmails normalizes all of them into a
// deduplicated, lowercased list so callers only ever deal with one shape.
//
// Authentication uses a static bearer API key (FIREFLIES_API_KEY).
package fireflies
