// Package recordstore persists generated posts to an external tabular store.
package recordstore

import (
	"context"
	"errors"
	"time"

	"postgen/generator"
)

const (
	StatusDraft = "draft"
	dateLayout  = "2006-01-02"
)

// ErrUnconfigured means no store credentials are present and persistence is skipped.
var ErrUnconfigured = errors.New("recordstore: not configured")

// Fields is one post record as the store sees it.
type Fields struct {
	Content     string `json:"Content"`
	Topic       string `json:"Topic"`
	Tone        string `json:"Tone"`
	Platform    string `json:"Platform"`
	Status      string `json:"Status"`
	CreatedDate string `json:"CreatedDate"`
}

// NewFields builds the draft record for post. Only the UTC calendar date of now is kept.
func NewFields(post generator.GeneratedPost, req generator.PostRequest, now time.Time) Fields {
	return Fields{
		Content:     post.Text,
		Topic:       req.Topic,
		Tone:        req.Tone,
		Platform:    req.Platform,
		Status:      StatusDraft,
		CreatedDate: now.UTC().Format(dateLayout),
	}
}

// RecordStore creates one record per call and returns its identifier.
type RecordStore interface {
	CreateRecord(ctx context.Context, fields Fields) (string, error)
}

// Unconfigured is the RecordStore used when credentials are missing.
type Unconfigured struct{}

func (Unconfigured) CreateRecord(context.Context, Fields) (string, error) {
	return "", ErrUnconfigured
}

// Failing always fails with Err.
type Failing struct {
	Err error
}

func (f Failing) CreateRecord(context.Context, Fields) (string, error) {
	if f.Err == nil {
		return "", errors.New("recordstore: failing")
	}
	return "", f.Err
}
