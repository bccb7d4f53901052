package games

import (
	"fmt"

	"github.com/tradege/stek-sub013/internal/engine"
)

// House edge bounds. Values are decimal fractions; producers must
// normalize percentage inputs before they reach this package.
const (
	MinHouseEdge = 0.01
	MaxHouseEdge = 0.10

	DefaultHouseEdge = 0.04
)

// Config carries the house edge plus the shape parameters of every
// game. Zero values mean "use the game's default"; Normalize resolves
// them and rejects anything out of bounds. Mappers receive the
// normalized copy and treat it as immutable.
type Config struct {
	// HouseEdge is the operator margin as a decimal fraction in
	// [MinHouseEdge, MaxHouseEdge]. Zero selects DefaultHouseEdge.
	HouseEdge float64 `json:"house_edge,omitempty"`

	// Crash: probability of an instant bust at 1.00.
	InstantBust float64 `json:"instant_bust,omitempty"`

	// Mines.
	GridSize  int `json:"grid_size,omitempty"`
	MineCount int `json:"mine_count,omitempty"`

	// Plinko.
	Rows int    `json:"rows,omitempty"`
	Risk string `json:"risk,omitempty"`

	// Slots.
	Reels       int         `json:"reels,omitempty"`
	SymbolCount int         `json:"symbol_count,omitempty"`
	Paytable    [][]float64 `json:"paytable,omitempty"`

	// Card rush.
	CardsPerHand int `json:"cards_per_hand,omitempty"`
}

const (
	defaultInstantBust = 0.02
	maxInstantBust     = 0.10

	defaultGridSize  = 25
	minGridSize      = 4
	maxGridSize      = 100
	defaultMineCount = 3

	plinkoMinRows     = 8
	plinkoMaxRows     = 16
	plinkoDefaultRows = 16
	plinkoDefaultRisk = "medium"

	defaultReels      = 3
	minReels          = 3
	maxReels          = 5
	defaultSymbols    = 7
	minSymbols        = 3
	maxSymbols        = 12
	olympusReels      = 5
	olympusSymbols    = 9

	defaultCardsPerHand = 3
	maxCardsPerHand     = 5
)

// Normalize validates cfg for the named game and returns a copy with
// defaults applied. This is the single entry point for configuration
// checking; evaluation and payout code only ever see normalized
// configs. The receiver is never modified.
func (c Config) Normalize(gameID string) (Config, error) {
	if c.HouseEdge == 0 {
		c.HouseEdge = DefaultHouseEdge
	}
	if c.HouseEdge < MinHouseEdge || c.HouseEdge > MaxHouseEdge {
		return Config{}, fmt.Errorf("%w: house edge %.4f outside [%.2f, %.2f]",
			engine.ErrConfiguration, c.HouseEdge, MinHouseEdge, MaxHouseEdge)
	}

	switch gameID {
	case "dice", "limbo":
		// House edge is the only knob.

	case "crash":
		if c.InstantBust == 0 {
			c.InstantBust = defaultInstantBust
		}
		if c.InstantBust < 0 || c.InstantBust > maxInstantBust {
			return Config{}, fmt.Errorf("%w: instant bust %.4f outside [0, %.2f]",
				engine.ErrConfiguration, c.InstantBust, maxInstantBust)
		}

	case "mines":
		if c.GridSize == 0 {
			c.GridSize = defaultGridSize
		}
		if c.GridSize < minGridSize || c.GridSize > maxGridSize {
			return Config{}, fmt.Errorf("%w: grid size %d outside [%d, %d]",
				engine.ErrConfiguration, c.GridSize, minGridSize, maxGridSize)
		}
		if c.MineCount == 0 {
			c.MineCount = defaultMineCount
		}
		if c.MineCount < 1 || c.MineCount > c.GridSize-1 {
			return Config{}, fmt.Errorf("%w: mine count %d outside [1, %d]",
				engine.ErrConfiguration, c.MineCount, c.GridSize-1)
		}

	case "plinko":
		if c.Rows == 0 {
			c.Rows = plinkoDefaultRows
		}
		if c.Rows < plinkoMinRows || c.Rows > plinkoMaxRows {
			return Config{}, fmt.Errorf("%w: plinko rows %d outside [%d, %d]",
				engine.ErrConfiguration, c.Rows, plinkoMinRows, plinkoMaxRows)
		}
		if c.Risk == "" {
			c.Risk = plinkoDefaultRisk
		}
		switch c.Risk {
		case "low", "medium", "high":
		default:
			return Config{}, fmt.Errorf("%w: plinko risk %q (want low, medium or high)",
				engine.ErrConfiguration, c.Risk)
		}

	case "slots", "olympus":
		if c.Reels == 0 {
			if gameID == "olympus" {
				c.Reels = olympusReels
			} else {
				c.Reels = defaultReels
			}
		}
		if c.Reels < minReels || c.Reels > maxReels {
			return Config{}, fmt.Errorf("%w: reels %d outside [%d, %d]",
				engine.ErrConfiguration, c.Reels, minReels, maxReels)
		}
		if c.SymbolCount == 0 {
			if gameID == "olympus" {
				c.SymbolCount = olympusSymbols
			} else {
				c.SymbolCount = defaultSymbols
			}
		}
		if c.SymbolCount < minSymbols || c.SymbolCount > maxSymbols {
			return Config{}, fmt.Errorf("%w: symbol count %d outside [%d, %d]",
				engine.ErrConfiguration, c.SymbolCount, minSymbols, maxSymbols)
		}
		normalized, err := normalizedPaytable(c)
		if err != nil {
			return Config{}, err
		}
		c.Paytable = normalized

	case "cardrush":
		if c.CardsPerHand == 0 {
			c.CardsPerHand = defaultCardsPerHand
		}
		if c.CardsPerHand < 1 || c.CardsPerHand > maxCardsPerHand {
			return Config{}, fmt.Errorf("%w: cards per hand %d outside [1, %d]",
				engine.ErrConfiguration, c.CardsPerHand, maxCardsPerHand)
		}

	default:
		return Config{}, fmt.Errorf("%w: unknown game %q", engine.ErrConfiguration, gameID)
	}

	return c, nil
}
