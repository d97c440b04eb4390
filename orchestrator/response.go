package orchestrator

import (
	"time"

	"postgen/generator"
)

const (
	NotSaved = "not-saved"

	MsgAISaved    = "✅ Post generated with AI and saved to Airtable!"
	MsgAINotSaved = "⚠️ Post generated with AI (Airtable not configured)"
	MsgTemplate   = "⚠️ Post generated (template mode)"

	// timestampLayout is ISO-8601 in UTC with millisecond precision.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// PersistenceOutcome reflects the single persistence attempt of a request.
type PersistenceOutcome struct {
	Attempted bool
	Succeeded bool
	RecordID  string
}

type Preferences struct {
	Topic    string `json:"topic"`
	Tone     string `json:"tone"`
	Platform string `json:"platform"`
}

// Response is the success reply.
type Response struct {
	Success         bool        `json:"success"`
	Post            string      `json:"post"`
	RecordID        string      `json:"recordId"`
	Preferences     Preferences `json:"preferences"`
	GeneratedAt     string      `json:"generated_at"`
	AIPowered       bool        `json:"ai_powered"`
	SavedToAirtable bool        `json:"saved_to_airtable"`
	Message         string      `json:"message"`
}

// Assemble combines the generated post and the persistence outcome.
func Assemble(req generator.PostRequest, post generator.GeneratedPost, outcome PersistenceOutcome, now time.Time) *Response {
	recordID := NotSaved
	if outcome.Succeeded && outcome.RecordID != "" {
		recordID = outcome.RecordID
	}
	saved := recordID != NotSaved
	return &Response{
		Success:  true,
		Post:     post.Text,
		RecordID: recordID,
		Preferences: Preferences{
			Topic:    req.Topic,
			Tone:     req.Tone,
			Platform: req.Platform,
		},
		GeneratedAt:     now.UTC().Format(timestampLayout),
		AIPowered:       post.AIPowered(),
		SavedToAirtable: saved,
		Message:         summary(post.AIPowered(), saved),
	}
}

func summary(aiPowered, saved bool) string {
	switch {
	case aiPowered && saved:
		return MsgAISaved
	case aiPowered:
		return MsgAINotSaved
	default:
		return MsgTemplate
	}
}
