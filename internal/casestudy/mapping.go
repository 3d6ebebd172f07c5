package casestudy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultMappingFile is the conventional name of the domain-to-participants
// mapping file, looked up in the working directory.
const DefaultMappingFile = "domain_participants.json"

// DomainParticipants maps a client email domain to the names of known
// participants from that client. Meetings where Fireflies recorded no
// participant emails can still be found by searching for these speakers.
type DomainParticipants map[string][]string

// ForDomain returns the known participant names for a domain, or nil when
// the domain has no entry. Lookup is case-insensitive.
func (m DomainParticipants) ForDomain(domain string) []string {
	return m[strings.ToLower(strings.TrimSpace(domain))]
}

// LoadDomainParticipants reads a JSON mapping of domains to participant
// names, e.g. {"acme.com": ["Jane Smith"]}. A missing file is not an error;
// it yields an empty mapping. Domain keys are lowercased.
func LoadDomainParticipants(path string) (DomainParticipants, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DomainParticipants{}, nil
		}
		return nil, fmt.Errorf("reading participant mapping: %w", err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing participant mapping %s: %w", path, err)
	}

	mapping := make(DomainParticipants, len(raw))
	for domain, names := range raw {
		mapping[strings.ToLower(strings.TrimSpace(domain))] = names
	}
	return mapping, nil
}
