package assist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Model      string `json:"model"`
	ToolChoice struct {
		Type string `json:"type"`
		Name string `json:"name"`
	} `json:"tool_choice"`
	Tools []struct {
		Name string `json:"name"`
	} `json:"tools"`
	Messages []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func toolServer(t *testing.T, tool string, input any, got *recorded) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if got != nil {
			require.NoError(t, json.Unmarshal(body, got))
		}

		rawInput, err := json.Marshal(input)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "msg_1",
			"type":  "message",
			"role":  "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": []map[string]any{{
				"type":  "tool_use",
				"id":    "toolu_1",
				"name":  tool,
				"input": json.RawMessage(rawInput),
			}},
			"stop_reason":   "tool_use",
			"stop_sequence": nil,
			"usage":         map[string]int{"input_tokens": 10, "output_tokens": 5},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(ClientOptions{APIKey: "test-key", BaseURL: url, Model: "claude-sonnet-4-20250514"})
	require.NoError(t, err)
	return c
}

func TestCompleteForcesTool(t *testing.T) {
	var got recorded
	server := toolServer(t, completionTool, CompletionInput{Completion: "42;"}, &got)

	out, err := newTestClient(t, server.URL).Complete(context.Background(), "const answer = ", "javascript")
	require.NoError(t, err)
	assert.Equal(t, "42;", out)

	assert.Equal(t, "claude-sonnet-4-20250514", got.Model)
	assert.Equal(t, "tool", got.ToolChoice.Type)
	assert.Equal(t, completionTool, got.ToolChoice.Name)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, completionTool, got.Tools[0].Name)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "const answer = ", got.Messages[0].Content[0].Text)
}

func TestFormat(t *testing.T) {
	server := toolServer(t, formatTool, FormatInput{Code: "a {\n  color: red;\n}\n"}, nil)

	out, err := newTestClient(t, server.URL).Format(context.Background(), "a{color:red}", "css")
	require.NoError(t, err)
	assert.Equal(t, "a {\n  color: red;\n}\n", out)
}

func TestWrongToolIsAnError(t *testing.T) {
	server := toolServer(t, "something_else", map[string]string{}, nil)

	_, err := newTestClient(t, server.URL).Complete(context.Background(), "x", "javascript")
	assert.ErrorContains(t, err, "no tool call")
}

func TestServerErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Format(context.Background(), "x", "css")
	assert.Error(t, err)
}

func TestNewClientNeedsKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewClient(ClientOptions{})
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("abc", 10))
	assert.Equal(t, "bc", tail("abc", 2))
	assert.Equal(t, "x", tail("éx", 2))
	assert.True(t, strings.HasSuffix(tail(strings.Repeat("a", 5000), maxContext), "a"))
	assert.Len(t, tail(strings.Repeat("a", 5000), maxContext), maxContext)
}

type fakeFormatter struct {
	out string
	err error
}

func (f fakeFormatter) Format(context.Context, string, string) (string, error) {
	return f.out, f.err
}

func TestFormatOrOriginal(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "new", FormatOrOriginal(ctx, fakeFormatter{out: "new"}, "old", "css"))
	assert.Equal(t, "old", FormatOrOriginal(ctx, fakeFormatter{err: errors.New("boom")}, "old", "css"))
	assert.Equal(t, "old", FormatOrOriginal(ctx, fakeFormatter{}, "old", "css"))
	assert.Equal(t, "old", FormatOrOriginal(ctx, nil, "old", "css"))
}
