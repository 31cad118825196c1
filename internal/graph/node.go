package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Params are the parameters of a Graph API request. String values are sent
// as-is; everything else is JSON-encoded.
type Params map[string]any

// Node is one decoded Graph API object. Numbers are kept as json.Number so
// callers decide how to interpret them.
type Node map[string]any

// ID returns the node's "id" field.
func (n Node) ID() string {
	return n.String("id")
}

// Has reports whether key is present with a non-null value.
func (n Node) Has(key string) bool {
	v, ok := n[key]
	return ok && v != nil
}

// String returns key as a string. Numbers are formatted; absent and
// non-scalar values yield "".
func (n Node) String(key string) string {
	switch v := n[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Float returns key as a float64. Numeric strings are parsed; ok is false
// when the field is absent or not numeric.
func (n Node) Float(key string) (float64, bool) {
	switch v := n[key].(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int returns key as an int64, truncating fractional values.
func (n Node) Int(key string) (int64, bool) {
	if v, ok := n[key].(json.Number); ok {
		if i, err := v.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := n.Float(key)
	return int64(f), ok
}

// Strings returns key as a string slice. Non-string elements are formatted.
func (n Node) Strings(key string) []string {
	items, ok := n[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

// Nodes returns key as a list of nodes, skipping non-object elements.
func (n Node) Nodes(key string) []Node {
	items, ok := n[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Node, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Node(m))
		}
	}
	return out
}

// AccountID normalizes an ad account id to the act_ form the Graph API expects.
func AccountID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "act_") {
		return id
	}
	return "act_" + id
}
