package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/colere/internal/game/plants"
)

// SetPlants installs a rule table and expands it with the configured
// iteration count. The plants are still drawn as prisms; the expansion is
// kept for the overlay and for shape generation once it exists.
func (g *Game) SetPlants(rules *plants.Config) error {
	iterations := g.cfg.Plants.Iterations
	if iterations <= 0 {
		iterations = plants.DefaultIterations
	}
	symbols, err := rules.Expand(iterations, plantExpansionLimit)
	if err != nil {
		return err
	}
	g.plantRules = rules
	g.plantSymbols = symbols
	g.log.Info("plant rules loaded",
		zap.String("initial", rules.Initial),
		zap.Int("rules", len(rules.Rules)),
		zap.Int("iterations", iterations),
		zap.Int("symbols", len(symbols)))
	return nil
}

// WatchPlants makes the frame loop pick up reloaded rule tables.
func (g *Game) WatchPlants(updates <-chan *plants.Config) {
	g.plantUpdates = updates
}

// PlantSymbols returns the current L-system expansion.
func (g *Game) PlantSymbols() string {
	return g.plantSymbols
}

// pollPlants takes at most one pending reload without blocking.
func (g *Game) pollPlants() {
	if g.plantUpdates == nil {
		return
	}
	select {
	case rules, ok := <-g.plantUpdates:
		if !ok {
			g.plantUpdates = nil
			return
		}
		if err := g.SetPlants(rules); err != nil {
			g.log.Warn("plant rules rejected", zap.Error(err))
		}
	default:
	}
}
