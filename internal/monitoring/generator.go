package monitoring

import (
	"context"

	"pizzabot/internal/generation"
)

type instrumentedGenerator struct {
	next    generation.Generator
	metrics *Metrics
}

// InstrumentGenerator counts the outcome of every call to g.
func InstrumentGenerator(g generation.Generator, m *Metrics) generation.Generator {
	return &instrumentedGenerator{next: g, metrics: m}
}

func (g *instrumentedGenerator) Generate(ctx context.Context, prompt, language string) generation.Result {
	res := g.next.Generate(ctx, prompt, language)
	g.metrics.ObserveGeneration(string(res.Outcome))
	return res
}
