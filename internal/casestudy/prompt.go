package casestudy

import "fmt"

const fullPromptTemplate = `
You are creating a professional case study from client meeting transcripts.

Client Domain: %s
Number of Meetings: %d
Date Range: %s to %s

Transcripts are provided in chronological order below.

Create a compelling case study that includes:
1. Executive Summary
2. Client Challenge/Problem Statement
3. Solution Journey (based on meeting progression)
4. Key Milestones and Decisions
5. Results and Outcomes
6. Client Testimonials (extract actual quotes when available)
7. Lessons Learned

Important guidelines:
- Use actual quotes from the transcripts when possible
- Highlight the progression and evolution across meetings
- Focus on business value and outcomes
- Keep the tone professional but engaging
- Format as markdown suitable for publication

MEETING TRANSCRIPTS:
%s
`

const excerptPromptTemplate = `You are a professional case study writer. Based on the following meeting transcripts with %s participants, create a compelling and professional case study.

Structure the case study as follows:

1. **Executive Summary** (2-3 sentences)
2. **Client Background** (Brief overview of the client)
3. **Challenge** (What problems were they facing?)
4. **Solution** (What approach and solutions were implemented?)
5. **Implementation Process** (Key steps and milestones)
6. **Results & Impact** (Concrete outcomes and benefits)
7. **Key Takeaways** (Lessons learned and best practices)

Use specific examples and quotes from the meetings where relevant. Keep the tone professional but engaging.

CLIENT DOMAIN: %s

MEETING TRANSCRIPTS:
%s
`

// BuildFullPrompt interpolates the full-transcript prompt template.
func BuildFullPrompt(meta Metadata, transcripts string) string {
	return fmt.Sprintf(fullPromptTemplate,
		meta.Subject, meta.MeetingCount, meta.StartDate, meta.EndDate, transcripts)
}

// BuildExcerptPrompt interpolates the excerpt prompt template.
func BuildExcerptPrompt(subject, transcripts string) string {
	return fmt.Sprintf(excerptPromptTemplate, subject, subject, transcripts)
}

const enhancedPromptTemplate = `Based on the following meeting transcripts with %s participants,
create a compelling case study that showcases our work together.

Focus on:
1. The client's challenges and needs
2. Our approach and solutions
3. Key outcomes and successes
4. Specific examples and quotes where relevant

Make it professional, engaging, and suitable for marketing purposes.

CLIENT DOMAIN: %s

MEETING TRANSCRIPTS:
%s`

// BuildEnhancedPrompt interpolates the prompt used with the
// known-participant search and discussion-point notes.
func BuildEnhancedPrompt(domain, content string) string {
	return fmt.Sprintf(enhancedPromptTemplate, domain, domain, content)
}
