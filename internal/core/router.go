// Package core routes utterances to the item, schedule or chat branch.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/notekeeper/internal/config"
	"github.com/agenthands/notekeeper/internal/core/extraction"
	"github.com/agenthands/notekeeper/internal/core/intent"
	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/llm"
	"github.com/agenthands/notekeeper/internal/observability"
	"github.com/agenthands/notekeeper/internal/store"
	"github.com/agenthands/notekeeper/internal/timenorm"
)

type IntentClassifier interface {
	IsItemRecord(ctx context.Context, text string) (bool, error)
	IsSchedule(ctx context.Context, text string) (bool, error)
}

type FieldExtractor interface {
	ExtractItem(ctx context.Context, text string) (model.ItemFields, error)
	ExtractSchedule(ctx context.Context, text string) (model.ScheduleFields, error)
	ClassifyPlace(ctx context.Context, location string) (string, error)
}

type TimeNormalizer interface {
	Normalize(expr string, ref time.Time) *string
}

// Replier answers anything that is neither an item nor a schedule. It never fails.
type Replier interface {
	Reply(ctx context.Context, text string) string
}

// Router decides what an utterance is and acts on it. Every model failure is
// absorbed into a fallback; only storage errors leave Route.
type Router struct {
	Classifier   IntentClassifier
	Extractor    FieldExtractor
	Normalizer   TimeNormalizer
	Store        store.Store
	Conversation Replier
	Now          func() time.Time
	NewID        func() string
	Logger       *slog.Logger
	Metrics      *observability.Metrics
}

func NewRouter(llmClient llm.LLMClient, prompts config.PromptConfig, st store.Store, conv Replier, logger *slog.Logger, metrics *observability.Metrics) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		Classifier:   intent.NewClassifier(llmClient, prompts),
		Extractor:    extraction.NewExtractor(llmClient, prompts),
		Normalizer:   timenorm.New(),
		Store:        st,
		Conversation: conv,
		Now:          time.Now,
		NewID:        func() string { return uuid.New().String() },
		Logger:       logger,
		Metrics:      metrics,
	}
}

func (r *Router) Route(ctx context.Context, utterance string) (model.Outcome, error) {
	text := strings.TrimSpace(utterance)

	outcome, err := r.route(ctx, text)
	if err != nil {
		return model.Outcome{}, err
	}
	r.Metrics.ObserveOutcome(string(outcome.Kind))
	r.Logger.Info("utterance routed", "intent", outcome.Intent, "outcome", outcome.Kind)
	return outcome, nil
}

func (r *Router) route(ctx context.Context, text string) (model.Outcome, error) {
	isItem, err := r.Classifier.IsItemRecord(ctx, text)
	r.Metrics.ObserveModelCall("item_intent", err)
	if err != nil {
		r.Logger.Warn("item intent check failed, treating as no", "error", err)
	}
	if isItem {
		return r.recordItem(ctx, text)
	}

	isSchedule, err := r.Classifier.IsSchedule(ctx, text)
	r.Metrics.ObserveModelCall("schedule_intent", err)
	if err != nil {
		r.Logger.Warn("schedule intent check failed, treating as no", "error", err)
	}
	if isSchedule {
		return r.recordSchedule(ctx, text)
	}

	return model.Outcome{
		Kind:   model.OutcomeChatReply,
		Intent: model.IntentChat,
		Reply:  r.Conversation.Reply(ctx, text),
	}, nil
}

func (r *Router) recordItem(ctx context.Context, text string) (model.Outcome, error) {
	failed := model.Outcome{Kind: model.OutcomeExtractionFailed, Intent: model.IntentRecord}

	fields, err := r.Extractor.ExtractItem(ctx, text)
	r.Metrics.ObserveModelCall("item_extraction", err)
	if err != nil {
		r.Logger.Warn("item extraction failed", "error", err)
		return failed, nil
	}
	if !fields.Complete() {
		r.Logger.Warn("item extraction incomplete", "item", fields.Item, "location", fields.Location)
		return failed, nil
	}

	owner := fields.Owner
	if owner == "" {
		owner = model.DefaultOwner
	}
	rec := &model.ItemRecord{
		ID:            r.NewID(),
		Item:          fields.Item,
		Location:      fields.Location,
		PlaceCategory: r.placeOf(ctx, fields.Location),
		Owner:         owner,
		RawText:       text,
		CreatedAt:     r.Now().Truncate(time.Second),
	}
	if err := r.Store.Append(ctx, rec); err != nil {
		return model.Outcome{}, fmt.Errorf("save item record: %w", err)
	}
	return model.Outcome{Kind: model.OutcomeRecorded, Intent: model.IntentRecord, Item: rec}, nil
}

func (r *Router) recordSchedule(ctx context.Context, text string) (model.Outcome, error) {
	failed := model.Outcome{Kind: model.OutcomeExtractionFailed, Intent: model.IntentSchedule}

	fields, err := r.Extractor.ExtractSchedule(ctx, text)
	r.Metrics.ObserveModelCall("schedule_extraction", err)
	if err != nil {
		r.Logger.Warn("schedule extraction failed", "error", err)
		return failed, nil
	}
	if !fields.Complete() {
		r.Logger.Warn("schedule extraction incomplete", "task", fields.Task, "time", fields.Time)
		return failed, nil
	}

	place := fields.Place
	if place == "" && fields.Location != "" {
		place = r.placeOf(ctx, fields.Location)
	}
	if place == "" {
		place = model.UnknownPlace
	}
	person := fields.Person
	if person == "" {
		person = model.DefaultOwner
	}

	now := r.Now()
	resolved := r.Normalizer.Normalize(fields.Time, now)
	if resolved == nil {
		r.Logger.Info("time expression left unresolved", "time", fields.Time)
	}

	rec := &model.ScheduleRecord{
		ID:             r.NewID(),
		Task:           fields.Task,
		Location:       fields.Location,
		PlaceCategory:  place,
		TimeExpression: fields.Time,
		ResolvedDate:   resolved,
		Person:         person,
		RawText:        text,
		CreatedAt:      now.Truncate(time.Second),
	}
	if err := r.Store.Append(ctx, rec); err != nil {
		return model.Outcome{}, fmt.Errorf("save schedule record: %w", err)
	}
	return model.Outcome{Kind: model.OutcomeRecorded, Intent: model.IntentSchedule, Schedule: rec}, nil
}

// placeOf never fails; an unanswerable location is filed under UnknownPlace.
func (r *Router) placeOf(ctx context.Context, location string) string {
	place, err := r.Extractor.ClassifyPlace(ctx, location)
	r.Metrics.ObserveModelCall("place_category", err)
	if err != nil {
		r.Logger.Warn("place classification failed", "location", location, "error", err)
		return model.UnknownPlace
	}
	return place
}
