// Package orchestrator runs one post request end to end: validate, generate
// (AI or template), persist on a best-effort basis and assemble the reply.
//
// The two downstream calls run strictly one after the other. A failure in
// either is logged and degrades the reply; it never changes its status.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"postgen/generator"
	"postgen/logging"
	"postgen/recordstore"
	"postgen/tracing"
)

type Orchestrator struct {
	gen   generator.TextGenerator
	store recordstore.RecordStore
	now   func() time.Time
}

type Option func(*Orchestrator)

// WithClock overrides time.Now for timestamps and record dates.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func New(gen generator.TextGenerator, store recordstore.RecordStore, opts ...Option) (*Orchestrator, error) {
	if gen == nil {
		return nil, errors.New("text generator is required")
	}
	if store == nil {
		return nil, errors.New("record store is required")
	}
	o := &Orchestrator{gen: gen, store: store, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Handle processes one request. The returned error is either a
// *ValidationError or an *UnexpectedError.
func (o *Orchestrator) Handle(ctx context.Context, raw generator.PostRequest) (resp *Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp, err = nil, unexpected(fmt.Errorf("panic: %v", r))
		}
	}()

	req, err := Validate(raw)
	if err != nil {
		return nil, err
	}

	post := o.generate(ctx, req)
	outcome := o.persist(ctx, post, req)
	return Assemble(req, post, outcome, o.now()), nil
}

func (o *Orchestrator) generate(ctx context.Context, req generator.PostRequest) generator.GeneratedPost {
	log := logging.FromContext(ctx)
	ctx, span := tracing.StartSpan(ctx, "generate", "CLIENT")

	text, err := o.gen.Generate(ctx, req)
	if err == nil {
		if text = strings.TrimSpace(text); text == "" {
			err = generator.ErrEmptyCompletion
		}
	}
	switch {
	case err == nil:
		span.SetBool("ai_powered", true)
		tracing.EndSpan(span, nil)
		log.InfoContext(ctx, "Post generated with AI", "tone", req.Tone, "platform", req.Platform)
		return generator.GeneratedPost{Text: text, Source: generator.SourceAI}
	case errors.Is(err, generator.ErrUnconfigured):
		span.SetBool("ai_powered", false)
		tracing.EndSpan(span, nil)
		log.InfoContext(ctx, "No generation key configured, using templates", "tone", req.Tone)
	default:
		genErr := &GenerationError{Err: err}
		tracing.EndSpan(span, genErr)
		log.WarnContext(ctx, "AI generation failed, using templates", "error", genErr, "tone", req.Tone)
	}
	if !generator.KnownTone(req.Tone) {
		log.DebugContext(ctx, "Unknown tone, using the professional template", "tone", req.Tone)
	}
	return generator.FromTemplate(req)
}

func (o *Orchestrator) persist(ctx context.Context, post generator.GeneratedPost, req generator.PostRequest) PersistenceOutcome {
	log := logging.FromContext(ctx)
	ctx, span := tracing.StartSpan(ctx, "persist", "CLIENT")

	id, err := o.store.CreateRecord(ctx, recordstore.NewFields(post, req, o.now()))
	switch {
	case err == nil && id != "":
		tracing.EndSpan(span, nil)
		log.InfoContext(ctx, "Saved post record", "record_id", id)
		return PersistenceOutcome{Attempted: true, Succeeded: true, RecordID: id}
	case errors.Is(err, recordstore.ErrUnconfigured):
		tracing.EndSpan(span, nil)
		log.InfoContext(ctx, "Record store credentials not configured")
		return PersistenceOutcome{}
	default:
		if err == nil {
			err = errors.New("empty record id")
		}
		persistErr := &PersistenceError{Err: err}
		tracing.EndSpan(span, persistErr)
		log.ErrorContext(ctx, "Record save failed", "error", persistErr)
		return PersistenceOutcome{Attempted: true}
	}
}
