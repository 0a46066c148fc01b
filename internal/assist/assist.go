// Package assist connects the editor to a language model for inline
// completion and source formatting.
package assist

import (
	"context"
	"errors"

	"codepad/internal/logger"
)

// ErrNoCredentials means no API key was found in the config, the credential
// store or the environment.
var ErrNoCredentials = errors.New("no API key configured: set completion.api_key, run 'codepad login' or export ANTHROPIC_API_KEY")

// Completer suggests text to insert at the cursor.
type Completer interface {
	Complete(ctx context.Context, textBefore, language string) (string, error)
}

// Formatter reformats a whole source file.
type Formatter interface {
	Format(ctx context.Context, code, language string) (string, error)
}

// FormatOrOriginal formats code with f and falls back to code unchanged on
// any failure, including an empty result.
func FormatOrOriginal(ctx context.Context, f Formatter, code, language string) string {
	if f == nil {
		return code
	}
	formatted, err := f.Format(ctx, code, language)
	if err != nil {
		logger.Debug("format failed, keeping original", "language", language, "error", err)
		return code
	}
	if formatted == "" && code != "" {
		return code
	}
	return formatted
}
