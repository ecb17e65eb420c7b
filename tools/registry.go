// Package tools holds the capability registry and the six search/lookup
// capabilities the model may invoke instead of replying directly.
package tools

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

// Handler executes one capability. Failures are returned as descriptive
// strings, never as errors: the orchestration loop forwards whatever comes
// back to the model as a tool result.
type Handler func(ctx context.Context, args json.RawMessage) string

// Registry is a closed dispatch table from capability name to handler,
// resolved once at startup. Lookup is case-insensitive.
type Registry struct {
	handlers map[string]Handler
	logger   *zap.Logger
}

func newRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

func (r *Registry) register(name string, h Handler) {
	r.handlers[strings.ToLower(name)] = h
}

// Execute dispatches one capability request. The second return is false
// when the name is unknown; the caller decides how to surface the skip. A
// hallucinated capability name must not abort the round.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (string, bool) {
	h, ok := r.handlers[strings.ToLower(name)]
	if !ok {
		r.logger.Warn("Skipping unknown capability", zap.String("capability", name))
		return "", false
	}
	return h(ctx, args), true
}

// Names returns the registered capability names, for logging.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
