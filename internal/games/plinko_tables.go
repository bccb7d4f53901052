package games

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/tradege/stek-sub013/internal/engine"
)

//go:embed plinko_tables.json
var plinkoTablesJSON []byte

// Base bucket multipliers per risk tier and row count. The base tables
// carry the payout shape only; plinkoTable rescales them so the
// binomial-weighted expected value equals exactly 1-houseEdge.
var plinkoBaseTables = loadPlinkoTables()

func loadPlinkoTables() map[string]map[int][]float64 {
	raw := map[string]map[string][]float64{}
	if err := json.Unmarshal(plinkoTablesJSON, &raw); err != nil {
		panic(fmt.Sprintf("failed to parse plinko payout tables: %v", err))
	}

	result := make(map[string]map[int][]float64, len(raw))
	for risk, rows := range raw {
		result[risk] = make(map[int][]float64, len(rows))
		for rowsKey, multipliers := range rows {
			rowCount, err := strconv.Atoi(rowsKey)
			if err != nil {
				panic(fmt.Sprintf("invalid row key %q for risk %q: %v", rowsKey, risk, err))
			}

			if len(multipliers) != rowCount+1 {
				panic(fmt.Sprintf("plinko table mismatch for risk %q rows %d: expected %d entries, got %d",
					risk, rowCount, rowCount+1, len(multipliers)))
			}

			copied := make([]float64, len(multipliers))
			copy(copied, multipliers)
			result[risk][rowCount] = copied
		}
	}

	return result
}

// binomialWeight returns C(rows, bucket) / 2^rows, the probability of
// an unbiased path terminating in the bucket.
func binomialWeight(rows, bucket int) float64 {
	c := 1.0
	for i := 0; i < bucket; i++ {
		c = c * float64(rows-i) / float64(i+1)
	}
	return c / math.Exp2(float64(rows))
}

// plinkoTable returns the bucket multipliers for the given risk and
// row count, scaled so the expected value over binomial bucket
// probabilities is exactly 1-houseEdge. The returned slice is a fresh
// copy; callers may not see shared state.
func plinkoTable(risk string, rows int, houseEdge float64) ([]float64, error) {
	riskTables, ok := plinkoBaseTables[risk]
	if !ok {
		return nil, fmt.Errorf("%w: no plinko table for risk %q", engine.ErrConfiguration, risk)
	}

	base, ok := riskTables[rows]
	if !ok {
		return nil, fmt.Errorf("%w: no plinko table for risk %q rows %d", engine.ErrConfiguration, risk, rows)
	}

	baseEV := 0.0
	for bucket, mult := range base {
		baseEV += mult * binomialWeight(rows, bucket)
	}
	if baseEV <= 0 {
		return nil, fmt.Errorf("%w: degenerate plinko table for risk %q rows %d", engine.ErrConfiguration, risk, rows)
	}

	scale := (1.0 - houseEdge) / baseEV
	table := make([]float64, len(base))
	for bucket, mult := range base {
		table[bucket] = mult * scale
	}

	return table, nil
}
