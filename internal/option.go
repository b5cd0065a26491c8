package internal

import (
	"github.com/ashwell/codecards/internal/apikey"
	"github.com/ashwell/codecards/internal/llm"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	client    llm.Client
	keyPrompt apikey.PromptFunc
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithClient overrides the completion client. When set, no credential is
// resolved. Used by tests.
func WithClient(c llm.Client) Option {
	return func(a *application) {
		a.client = c
	}
}

// WithKeyPrompt overrides the interactive credential prompt.
func WithKeyPrompt(p apikey.PromptFunc) Option {
	return func(a *application) {
		a.keyPrompt = p
	}
}
