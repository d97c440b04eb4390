package generator

import (
	"fmt"
	"strings"
)

const systemInstruction = "You are a social media expert who writes engaging, authentic posts."

// Prompt is the message pair sent to the LLM.
type Prompt struct {
	System string
	User   string
}

// BuildPostPrompt builds the single instruction prompt for one post.
func BuildPostPrompt(req PostRequest) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a %s social media post about %q optimized for %s.\n\n", req.Tone, req.Topic, req.Platform))
	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Tone: %s voice\n", req.Tone))
	sb.WriteString(fmt.Sprintf("- Length: %s\n", LengthConstraint(req.Platform)))
	sb.WriteString("- Make it engaging and authentic\n")
	sb.WriteString("- Include relevant emoji if appropriate for the tone\n")
	sb.WriteString("- No hashtags\n")
	sb.WriteString("- Write in first person when appropriate\n\n")
	sb.WriteString("Just return the post text, nothing else.")

	return Prompt{
		System: systemInstruction,
		User:   sb.String(),
	}
}

// LengthConstraint returns the length rule for a platform. Matching is exact,
// the way platform names are sent by clients.
func LengthConstraint(platform string) string {
	switch platform {
	case "Twitter":
		return "Under 280 characters"
	case "LinkedIn":
		return "100-300 characters"
	default:
		return "100-200 characters"
	}
}
