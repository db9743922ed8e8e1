package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/solobuddy/hub/internal/models"
)

func TestBuildSystemPrompt(t *testing.T) {
	data := models.Context{
		Projects: []models.Project{
			{Name: "SPHERE", Path: "/dev/sphere", GithubURL: "https://github.com/u/sphere"},
		},
		BacklogItems: []models.BacklogItem{
			{ID: 1, Title: "Live orb for UI", Priority: models.PriorityLow},
		},
		GitActivity: []models.GitActivityStat{
			{ProjectName: "SPHERE", DaysSilent: 2},
		},
	}

	prompt := buildSystemPrompt(data)

	assert.Contains(t, prompt, "SPHERE")
	assert.Contains(t, prompt, "https://github.com/u/sphere")
	assert.Contains(t, prompt, "Live orb for UI")
	assert.Contains(t, prompt, "2 days since last commit")
}

func TestBuildSystemPromptEmptyContext(t *testing.T) {
	prompt := buildSystemPrompt(models.Context{})
	assert.Contains(t, prompt, "No projects configured yet")
	assert.NotContains(t, prompt, "Recent ideas in backlog")
}

func TestRespondMapsBuddyRole(t *testing.T) {
	var gotBody struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"привет!"}}]}`))
	}))
	defer ts.Close()

	r := NewResponder("test-key", ts.URL+"/v1", "test-model", 256, 0.7, zap.NewNop())
	reply, err := r.Respond(context.Background(), []Message{
		{Role: "buddy", Content: "я рядом"},
		{Role: "user", Content: "привет"},
	}, models.Context{})

	require.NoError(t, err)
	assert.Equal(t, "привет!", reply)
	require.Len(t, gotBody.Messages, 3)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "assistant", gotBody.Messages[1].Role, "buddy history turns go out as assistant")
	assert.Equal(t, "user", gotBody.Messages[2].Role)
}

func TestRespondWithoutAPIKey(t *testing.T) {
	r := NewResponder("", "", "test-model", 256, 0.7, zap.NewNop())
	_, err := r.Respond(context.Background(), nil, models.Context{})
	assert.Error(t, err)
}
