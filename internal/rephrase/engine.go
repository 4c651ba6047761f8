// Package rephrase produces replacement text for flagged content through
// two interchangeable strategies: a remote generative rewrite and a
// deterministic rule engine. The engine prefers the remote strategy when
// one is configured and falls back to the rules on any failure, so a
// Rephrase call never fails outward.
package rephrase

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/textshield/textshield/internal/models"
)

// RemoteStrategy is a generative rewrite backed by an external service.
type RemoteStrategy interface {
	Rewrite(ctx context.Context, text string, verdictType models.VerdictType) (string, error)
}

// Engine selects between the remote strategy and the rule engine.
// A nil remote strategy means rule-based only.
type Engine struct {
	remote  RemoteStrategy
	healthy *atomic.Bool
}

func NewEngine(remote RemoteStrategy) *Engine {
	return &Engine{remote: remote}
}

// WithHealthGate attaches a health flag maintained by a background
// monitor. While the flag reads false the remote strategy is skipped
// without being called, saving the doomed round trip.
func (e *Engine) WithHealthGate(healthy *atomic.Bool) *Engine {
	e.healthy = healthy
	return e
}

func (e *Engine) remoteUsable() bool {
	if e.remote == nil {
		return false
	}
	return e.healthy == nil || e.healthy.Load()
}

// Rephrase returns replacement text for the given verdict type. Remote
// failures are logged and recovered by the rule engine; they are never
// surfaced to the caller, and the fallback is not retried.
func (e *Engine) Rephrase(ctx context.Context, text string, verdictType models.VerdictType) models.RephraseResult {
	if e.remoteUsable() {
		rewritten, err := e.remote.Rewrite(ctx, text, verdictType)
		if err == nil && strings.TrimSpace(rewritten) != "" {
			return models.RephraseResult{
				Original:  text,
				Rephrased: rewritten,
				Type:      verdictType,
			}
		}
		if err != nil {
			slog.Warn("[RephraseEngine] Remote rewrite failed, using rule-based fallback",
				slog.String("type", string(verdictType)),
				slog.String("error", err.Error()))
		}
	}

	return RuleBased(text, verdictType)
}
