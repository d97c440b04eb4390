package generator

import "fmt"

var templates = map[string]string{
	"professional":  "Exploring the importance of %s in today's professional landscape. What are your thoughts on this?",
	"casual":        "Just thinking about %s today. Anyone else find this fascinating?",
	"humorous":      "%s is like that friend who always shows up uninvited but somehow makes everything better 😄",
	"informative":   "Key insight about %s: Understanding its impact can transform how we approach our daily challenges.",
	"inspirational": "%s reminds us that every challenge is an opportunity for growth. Keep pushing forward! 💪",
}

// FromTemplate renders the fixed template for tone. Unknown tones use the
// professional template. It performs no I/O and cannot fail.
func FromTemplate(req PostRequest) GeneratedPost {
	tmpl, ok := templates[req.Tone]
	if !ok {
		tmpl = templates[DefaultTone]
	}
	return GeneratedPost{
		Text:   fmt.Sprintf(tmpl, req.Topic),
		Source: SourceTemplate,
	}
}

// KnownTone reports whether tone has its own template.
func KnownTone(tone string) bool {
	_, ok := templates[tone]
	return ok
}
