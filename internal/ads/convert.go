package ads

import (
	"math"

	"github.com/patrickwarner/fbads-mcp/internal/graph"
)

// toMinor converts a major-unit amount to the minor units the platform stores.
func toMinor(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// majorField reads a minor-unit money field as major units; nil when absent.
func majorField(n graph.Node, key string) *float64 {
	v, ok := n.Float(key)
	if !ok {
		return nil
	}
	major := v / 100
	return &major
}

// floatOrZero parses key as a float, treating absent or non-numeric values as 0.
func floatOrZero(n graph.Node, key string) float64 {
	v, _ := n.Float(key)
	return v
}

// intOrZero parses key as an integer, truncating fractions and treating
// absent or non-numeric values as 0.
func intOrZero(n graph.Node, key string) int64 {
	v, _ := n.Int(key)
	return v
}

// passThrough returns a raw field value unchanged, nil when absent.
func passThrough(n graph.Node, key string) any {
	return n[key]
}
