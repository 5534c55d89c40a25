package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/notekeeper/internal/config"
)

func TestIsAffirmative(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"A", true},
		{" a\n", true},
		{"A（如果是在記錄物品放置）", true},
		{"A.", true},
		{"**A**", true},
		{"```\nA\n```", true},
		{"B", false},
		{"", false},
		{"Answer: A", false},
		{"Absolutely not", false},
		{"我不確定", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAffirmative(tt.answer))
		})
	}
}

func TestIsItemRecord(t *testing.T) {
	mockLLM := &MockLLMClient{Response: "A"}
	prompts := config.PromptConfig{ItemIntent: "item? %s", ScheduleIntent: "schedule? %s"}
	c := NewClassifier(mockLLM, prompts)

	ok, err := c.IsItemRecord(context.Background(), "鑰匙放在玄關")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"item? 鑰匙放在玄關"}, mockLLM.Prompts)
}

func TestIsSchedule_ModelFailure(t *testing.T) {
	mockLLM := &MockLLMClient{Err: errors.New("connection refused")}
	c := NewClassifier(mockLLM, config.PromptConfig{ScheduleIntent: "%s"})

	ok, err := c.IsSchedule(context.Background(), "明天去看醫生")

	assert.Error(t, err)
	assert.False(t, ok)
}
