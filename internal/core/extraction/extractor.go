package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/notekeeper/internal/config"
	"github.com/agenthands/notekeeper/internal/core/common"
	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/llm"
)

// ErrMalformedResponse is returned when the model reply is not the JSON object
// the prompt asked for.
var ErrMalformedResponse = errors.New("malformed extraction response")

// ErrEmptyResponse is returned when the model answers with nothing usable.
var ErrEmptyResponse = errors.New("empty model response")

type Extractor struct {
	LLM     llm.LLMClient
	Prompts config.PromptConfig
}

func NewExtractor(llmClient llm.LLMClient, prompts config.PromptConfig) *Extractor {
	return &Extractor{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

// ExtractItem pulls {item, location, owner} out of an item-location statement.
func (e *Extractor) ExtractItem(ctx context.Context, text string) (model.ItemFields, error) {
	fields, err := extract[model.ItemFields](ctx, e.LLM, fmt.Sprintf(e.Prompts.ItemExtraction, text))
	if err != nil {
		return model.ItemFields{}, err
	}

	fields.Item = strings.TrimSpace(fields.Item)
	fields.Location = strings.TrimSpace(fields.Location)
	fields.Owner = strings.TrimSpace(fields.Owner)
	return fields, nil
}

// ExtractSchedule pulls {task, location, place, time, person} out of a schedule
// statement. A missing location falls back to the place the model named.
func (e *Extractor) ExtractSchedule(ctx context.Context, text string) (model.ScheduleFields, error) {
	fields, err := extract[model.ScheduleFields](ctx, e.LLM, fmt.Sprintf(e.Prompts.ScheduleExtraction, text))
	if err != nil {
		return model.ScheduleFields{}, err
	}

	fields.Task = strings.TrimSpace(fields.Task)
	fields.Location = strings.TrimSpace(fields.Location)
	fields.Place = strings.TrimSpace(fields.Place)
	fields.Time = strings.TrimSpace(fields.Time)
	fields.Person = strings.TrimSpace(fields.Person)
	if fields.Location == "" {
		fields.Location = fields.Place
	}
	return fields, nil
}

// ClassifyPlace maps a free-text location to a coarse place category. The label
// space is whatever the model answers.
func (e *Extractor) ClassifyPlace(ctx context.Context, location string) (string, error) {
	response, err := e.LLM.Generate(ctx, fmt.Sprintf(e.Prompts.PlaceCategory, location))
	if err != nil {
		return "", fmt.Errorf("failed to classify place: %w", err)
	}

	place := strings.Trim(common.StripFence(response), " \t\r\n「」\"'。.")
	if place == "" {
		return "", ErrEmptyResponse
	}
	return place, nil
}

func extract[T any](ctx context.Context, client llm.LLMClient, prompt string) (T, error) {
	var zero T
	response, err := client.Generate(ctx, prompt)
	if err != nil {
		return zero, fmt.Errorf("failed to generate extraction: %w", err)
	}

	result, err := common.ParseJSON[T](response)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return result, nil
}
