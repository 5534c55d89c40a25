//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/notekeeper/internal/config"
	"github.com/agenthands/notekeeper/internal/core"
	"github.com/agenthands/notekeeper/internal/core/conversation"
	"github.com/agenthands/notekeeper/internal/core/model"
	"github.com/agenthands/notekeeper/internal/llm"
	"github.com/agenthands/notekeeper/internal/query"
	"github.com/agenthands/notekeeper/internal/store"
)

// TestRouterAgainstLiveModel needs a reachable model, e.g. a local Ollama
// serving the fine-tuned intent model.
func TestRouterAgainstLiveModel(t *testing.T) {
	_ = godotenv.Load("../../.env")

	if os.Getenv("LLM_PROVIDER") == "" {
		t.Skip("Skipping integration test: LLM_PROVIDER not set")
	}

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())
	cfg.Storage.DataDir = t.TempDir()

	ctx := context.Background()
	client, err := llm.NewClient(ctx, cfg.LLM, cfg.LLM.Model, nil)
	require.NoError(t, err)
	retrying := llm.NewRetryingClient(client, cfg.RetryDelay(), cfg.Retry.MaxRetries, nil, nil)

	st, err := store.NewJSONStore(cfg.Storage.DataDir, nil, nil)
	require.NoError(t, err)
	conv := conversation.New(retrying, nil, nil, nil)
	router := core.NewRouter(retrying, cfg.Prompts, st, conv, nil, nil)

	out, err := router.Route(ctx, "我把鑰匙放在玄關")
	require.NoError(t, err)
	t.Logf("item outcome: %+v", out)
	if out.Kind == model.OutcomeRecorded {
		require.NotNil(t, out.Item)
		assert.NotEmpty(t, out.Item.PlaceCategory)
	}

	out, err = router.Route(ctx, "下禮拜三早上要去醫院看醫生")
	require.NoError(t, err)
	t.Logf("schedule outcome: %+v", out)

	out, err = router.Route(ctx, "今天天氣真好，心情不錯")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Kind)

	seq, err := query.NewService(st, nil).Items(ctx, query.Filter{TodayOnly: true})
	require.NoError(t, err)
	for rec := range seq {
		assert.Equal(t, "我把鑰匙放在玄關", rec.RawText)
	}
}
