package mafia

import (
	"context"
	"fmt"
	"slices"

	"github.com/mcoot/mafiagame-go/internal/model"
)

// NextPhase advances one step through the phase cycle. Moving past the
// last phase, or advancing from a phase that is not in the cycle, starts
// the next day at the first phase.
func (g *Game) NextPhase(ctx context.Context) (*Game, error) {
	idx := slices.Index(g.data.Phases, g.data.Phase)
	if idx < 0 || idx+1 >= len(g.data.Phases) {
		g.data.Day++
		g.data.Phase = g.data.Phases[0]
	} else {
		g.data.Phase = g.data.Phases[idx+1]
	}

	if err := g.save(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// NewDay starts the next day at the first phase regardless of the
// current position in the cycle
func (g *Game) NewDay(ctx context.Context) (*Game, error) {
	g.data.Day++
	g.data.Phase = g.data.Phases[0]

	if err := g.save(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// SetPhase jumps to a named phase within the current day
func (g *Game) SetPhase(ctx context.Context, phase string) (*Game, error) {
	if !slices.Contains(g.data.Phases, phase) {
		return nil, fmt.Errorf("%q: %w", phase, model.ErrInvalidTargetPhase)
	}
	g.data.Phase = phase

	if err := g.save(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// IsFirstPhase reports whether the game is in the opening phase of a day
func (g *Game) IsFirstPhase() bool {
	return len(g.data.Phases) > 0 && g.data.Phase == g.data.Phases[0]
}
