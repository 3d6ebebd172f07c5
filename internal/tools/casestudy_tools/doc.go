// Package casestudy_tools provides the MCP tool for generating marketing
// case studies from Fireflies.ai meeting transcripts.
//
// Available tools:
//   - fireflies_case_study - Search meetings by client domain or participant
//     name, prepare the transcripts and generate a case study draft with
//     Gemini
//
// The tool requires a configured Gemini API key. Without one it is still
// registered but returns a configuration error, so clients discover the
// capability and learn what is missing.
package casestudy_tools
