// Package planner turns travel preferences into a trip plan. It asks an
// OpenAI-compatible chat model for a strict JSON plan and falls back to a
// deterministic template whenever the model cannot deliver one.
package planner

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkordes/voyage/backend/internal/domain"
)

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 60 * time.Second

// Completer is a chat model that answers a system + user prompt pair with
// raw text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Planner produces plans. A nil Completer means the model is not configured
// and every plan comes from the template.
type Planner struct {
	llm      Completer
	currency Currency
	timeout  time.Duration
	log      *slog.Logger
}

// New constructs a Planner. timeout <= 0 uses DefaultTimeout.
func New(llm Completer, currency Currency, timeout time.Duration, log *slog.Logger) *Planner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Planner{llm: llm, currency: currency, timeout: timeout, log: log}
}

// Plan returns a plan for prefs and whether it came from the fallback
// template. It never fails: model errors, timeouts, empty or unparsable
// answers all end in the template.
// prefs must already be validated.
func (p *Planner) Plan(ctx context.Context, prefs domain.Preferences) (plan domain.Plan, isDemo bool) {
	if p.llm == nil {
		return Fallback(prefs.Destination, prefs.Duration), true
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.llm.Complete(callCtx, systemPrompt, BuildPrompt(prefs, p.currency))
	if err != nil {
		p.log.WarnContext(ctx, "llm call failed, using template itinerary", "error", err)
		return Fallback(prefs.Destination, prefs.Duration), true
	}

	plan, err = ParsePlan(raw, prefs.Duration)
	if err != nil {
		p.log.WarnContext(ctx, "llm answer rejected, using template itinerary", "error", err)
		return Fallback(prefs.Destination, prefs.Duration), true
	}
	return plan, false
}
