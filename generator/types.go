package generator

import "strings"

const (
	DefaultTone     = "professional"
	DefaultPlatform = "LinkedIn"
)

// PostRequest describes the post to write.
type PostRequest struct {
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	Platform string `json:"platform"`
}

// WithDefaults fills in the default tone and platform when they are blank.
func (r PostRequest) WithDefaults() PostRequest {
	if strings.TrimSpace(r.Tone) == "" {
		r.Tone = DefaultTone
	}
	if strings.TrimSpace(r.Platform) == "" {
		r.Platform = DefaultPlatform
	}
	return r
}

// Source tells where the post text came from.
type Source string

const (
	SourceAI       Source = "AI"
	SourceTemplate Source = "TEMPLATE"
)

// GeneratedPost is the text produced for a single request.
type GeneratedPost struct {
	Text   string
	Source Source
}

// AIPowered reports whether the text came from the generation service.
func (p GeneratedPost) AIPowered() bool { return p.Source == SourceAI }
