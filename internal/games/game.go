package games

import (
	"sort"

	"github.com/tradege/stek-sub013/internal/engine"
)

// Game is a pure outcome mapper: identical seeds, nonce and config
// always produce the identical Result.
type Game interface {
	// Spec returns static metadata about the game.
	Spec() GameSpec

	// FloatCount reports how many floats one round consumes for the
	// given config. Evaluation never draws beyond this budget, so a
	// verifier can recompute a round byte-for-byte.
	FloatCount(cfg Config) int

	// Evaluate maps the seed tuple onto a fully specified round outcome.
	// cfg is read-only; it is normalized internally, never mutated.
	Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error)
}

// GameSpec describes a game for listings and UI.
type GameSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MetricLabel string `json:"metric_label"`
}

// Result is a computed round outcome. Metric is the single scalar that
// summarizes the round (roll, crash point, bucket multiplier, ...);
// Details carries the full game-specific structure.
type Result struct {
	Metric      engine.Metric  `json:"metric"`
	MetricLabel string         `json:"metric_label"`
	Details     map[string]any `json:"details,omitempty"`
}

var registry = make(map[string]Game)

// Register adds a game to the registry, keyed by its spec ID.
func Register(game Game) {
	registry[game.Spec().ID] = game
}

// Get retrieves a game by ID.
func Get(id string) (Game, bool) {
	game, exists := registry[id]
	return game, exists
}

// List returns the specs of all registered games, sorted by ID.
func List() []GameSpec {
	specs := make([]GameSpec, 0, len(registry))
	for _, game := range registry {
		specs = append(specs, game.Spec())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].ID < specs[j].ID })
	return specs
}

func init() {
	Register(&DiceGame{})
	Register(&CrashGame{})
	Register(&LimboGame{})
	Register(&MinesGame{})
	Register(&PlinkoGame{})
	Register(&SlotsGame{})
	Register(&OlympusGame{})
	Register(&CardRushGame{})
}
