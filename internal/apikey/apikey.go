// Package apikey resolves the completion-service credential from an explicit
// value, the environment, or an interactive terminal prompt, in that order.
package apikey

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ashwell/codecards/internal/apperr"
)

// EnvVar is the environment variable consulted when no explicit key is given.
const EnvVar = "OPENAI_API_KEY"

// PromptFunc asks the user for a key and returns what was typed. It is only
// invoked when both the explicit value and the environment are empty.
type PromptFunc func() (string, error)

// Resolve returns the first non-empty credential from the precedence chain
// explicit -> getenv(EnvVar) -> prompt. When every source is empty it returns
// apperr.ErrNoAPIKey. A nil prompt skips the interactive source.
func Resolve(explicit string, getenv func(string) string, prompt PromptFunc) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(getenv(EnvVar)); key != "" {
		return key, nil
	}
	if prompt != nil {
		key, err := prompt()
		if err != nil {
			return "", fmt.Errorf("apikey: prompt: %w", err)
		}
		if key = strings.TrimSpace(key); key != "" {
			return key, nil
		}
	}
	return "", apperr.ErrNoAPIKey
}

// TerminalPrompt reads a key from stdin without echo. It returns ErrNoAPIKey
// when stdin is not a terminal, so non-interactive runs fail fast instead of
// hanging.
func TerminalPrompt() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", apperr.ErrNoAPIKey
	}
	fmt.Fprint(os.Stderr, "Enter your OpenAI API key: ")
	key, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read key: %w", err)
	}
	return string(key), nil
}
