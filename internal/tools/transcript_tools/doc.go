// Package transcript_tools provides MCP tools for reading Fireflies.ai
// meeting transcripts.
//
// This package registers tools that allow MCP clients to list, fetch and
// search meeting transcripts through the Fireflies GraphQL API:
//
// Transcript Access:
//   - fireflies_list_recent - List the most recent meeting transcripts
//   - fireflies_get_transcript - Fetch one transcript as formatted text
//   - fireflies_batch_get_transcripts - Fetch several transcripts in parallel
//
// Search:
//   - fireflies_search_domain - Find meetings with a participant from an
//     email domain (e.g. all meetings with a client organization)
//   - fireflies_search_speaker - Find meetings where a named person spoke
//
// All tools are read-only. The Fireflies client is shared through the
// server context and authenticated with a static API key.
//
// Example usage:
//
//	# Last five meetings
//	fireflies_list_recent(limit=5)
//
//	# All meetings with acme.com in the last 90 days
//	fireflies_search_domain(domain="acme.com", days_back=90)
//
//	# Fetch two transcripts at once
//	fireflies_batch_get_transcripts(ids=["abc123", "def456"])
package transcript_tools
