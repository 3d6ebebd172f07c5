package common

// GetSubjectFromArgs extracts the audit subject from request arguments.
// The subject is the client a tool call is about: the org domain for
// domain searches, or the participant name for speaker searches.
// Returns an empty string when the request names neither.
func GetSubjectFromArgs(args map[string]interface{}) string {
	if domain, ok := args["domain"].(string); ok && domain != "" {
		return domain
	}
	if name, ok := args["name"].(string); ok && name != "" {
		return name
	}
	return ""
}
