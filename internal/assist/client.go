package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"codepad/internal/logger"
	"codepad/internal/schema"
)

const (
	// maxContext bounds how much text before the cursor is sent.
	maxContext = 4000

	completionTool = "insert_completion"
	formatTool     = "format_source"
)

// CompletionInput is what the model returns for a completion.
type CompletionInput struct {
	Completion string `json:"completion" jsonschema:"description=Text to insert at the cursor. Empty when nothing useful can be added."`
}

// FormatInput is what the model returns for a format request.
type FormatInput struct {
	Code string `json:"code" jsonschema:"description=The complete reformatted source file"`
}

// ClientOptions configures the Anthropic-backed client.
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxTokens  int64
	MaxRetries int
	Timeout    time.Duration
}

// Client implements Completer and Formatter with forced tool use, so the
// model's answer always arrives as structured tool input.
type Client struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewClient creates a client. The API key falls back to ANTHROPIC_API_KEY.
func NewClient(opts ClientOptions) (*Client, error) {
	key := opts.APIKey
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	if key == "" {
		return nil, ErrNoCredentials
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaude4Sonnet20250514
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}
	return &Client{
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete asks for a short continuation of textBefore.
func (c *Client) Complete(ctx context.Context, textBefore, language string) (string, error) {
	system := fmt.Sprintf("You complete %s source code in an editor. "+
		"Continue exactly at the end of the user's text: return only the characters to insert, "+
		"without repeating what is already there and without explanations. "+
		"Keep it short, at most a few lines.", language)

	var out CompletionInput
	tool := schema.Tool[CompletionInput](completionTool, "Insert a completion at the cursor")
	if err := c.callTool(ctx, tool, system, tail(textBefore, maxContext), &out); err != nil {
		return "", err
	}
	return out.Completion, nil
}

// Format asks for code reformatted in the usual style for language.
func (c *Client) Format(ctx context.Context, code, language string) (string, error) {
	system := fmt.Sprintf("You format %s source code. Return the whole file reformatted with %s conventions "+
		"and consistent indentation. Do not change behavior, rename anything or add comments.", language, language)

	var out FormatInput
	tool := schema.Tool[FormatInput](formatTool, "Return the formatted source file")
	if err := c.callTool(ctx, tool, system, code, &out); err != nil {
		return "", err
	}
	return out.Code, nil
}

func (c *Client) callTool(ctx context.Context, tool anthropic.ToolUnionParam, system, prompt string, out any) error {
	name := tool.OfTool.Name
	logger.Assist("REQUEST", map[string]any{
		"model":  c.model,
		"tool":   name,
		"prompt": prompt,
	})

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		System: []anthropic.TextBlockParam{{Type: "text", Text: system}},
		Tools:  []anthropic.ToolUnionParam{tool},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: name},
		},
	})
	if err != nil {
		logger.Assist("ERROR", map[string]any{"tool": name, "error": err.Error()})
		return fmt.Errorf("%s request failed: %w", name, err)
	}
	logger.Assist("RESPONSE", message)

	for _, block := range message.Content {
		if block.Type != "tool_use" || block.Name != name {
			continue
		}
		if err := json.Unmarshal(block.Input, out); err != nil {
			return fmt.Errorf("failed to decode %s input: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("%s: response contained no tool call", name)
}

// tail returns at most n bytes from the end of s, starting on a rune.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	for len(s) > 0 && !utf8.RuneStart(s[0]) {
		s = s[1:]
	}
	return s
}
