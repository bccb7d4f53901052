package engine

// Seeds carries the two seed strings a round is derived from.
type Seeds struct {
	Server string // ASCII; do NOT hex-decode
	Client string
}

type Metric = float64
