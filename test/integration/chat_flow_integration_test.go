// FILE: test/integration/chat_flow_integration_test.go
// PURPOSE: End-to-end chat + approval flow against a running server.
// Requires API_BASE_URL and TEST_USER_TOKEN; skips otherwise.

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func apiRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, *apiEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, os.Getenv("API_BASE_URL")+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(raw, &envelope), "unexpected body: %s", string(raw))
	return resp, &envelope
}

func TestChatApprovalFlow(t *testing.T) {
	if os.Getenv("API_BASE_URL") == "" || os.Getenv("TEST_USER_TOKEN") == "" {
		t.Skip("Skipping integration test: API_BASE_URL or TEST_USER_TOKEN not set")
	}
	token := os.Getenv("TEST_USER_TOKEN")

	// 1. Send a personal-mode message that should yield a schedule proposal
	resp, envelope := apiRequest(t, "POST", "/chat", token, map[string]interface{}{
		"message": "I have a Linear Algebra exam Friday, plan my study week",
		"mode":    "personal",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chat struct {
		ConversationId   string `json:"conversation_id"`
		Reply            string `json:"reply"`
		Mode             string `json:"mode"`
		RequiresApproval bool   `json:"requires_approval"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &chat))
	assert.NotEmpty(t, chat.Reply)
	assert.Equal(t, "personal", chat.Mode)
	require.NotEmpty(t, chat.ConversationId)

	// 2. History should contain both sides of the exchange
	resp, envelope = apiRequest(t, "GET", "/chat/"+chat.ConversationId+"/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &history))
	require.GreaterOrEqual(t, len(history), 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)

	// 3. If the pipeline gated on approval, approve it
	if chat.RequiresApproval {
		resp, envelope = apiRequest(t, "POST", "/chat/"+chat.ConversationId+"/approve", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var decision struct {
			ApprovalStatus string `json:"approval_status"`
		}
		require.NoError(t, json.Unmarshal(envelope.Data, &decision))
		assert.Equal(t, "approved", decision.ApprovalStatus)

		// A second decision on the same run must fail
		resp, _ = apiRequest(t, "POST", "/chat/"+chat.ConversationId+"/approve", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	// 4. Cleanup: delete the conversation
	resp, _ = apiRequest(t, "DELETE", "/conversations/"+chat.ConversationId, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
