package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_Accessors(t *testing.T) {
	n := Node{
		"id":         json.Number("7"),
		"budget":     "1250",
		"count":      json.Number("12.9"),
		"spend":      12.5,
		"categories": []any{"HOUSING", "EMPLOYMENT"},
		"actions": []any{
			map[string]any{"action_type": "link_click", "value": "3"},
			"garbage",
		},
		"nothing": nil,
	}

	assert.Equal(t, "7", n.ID())
	assert.True(t, n.Has("budget"))
	assert.False(t, n.Has("nothing"))
	assert.False(t, n.Has("missing"))

	f, ok := n.Float("budget")
	assert.True(t, ok)
	assert.Equal(t, 1250.0, f)

	i, ok := n.Int("count")
	assert.True(t, ok)
	assert.Equal(t, int64(12), i)

	assert.Equal(t, "12.5", n.String("spend"))
	assert.Equal(t, []string{"HOUSING", "EMPLOYMENT"}, n.Strings("categories"))

	actions := n.Nodes("actions")
	assert.Len(t, actions, 1)
	assert.Equal(t, "link_click", actions[0].String("action_type"))

	_, ok = n.Float("missing")
	assert.False(t, ok)
}

func TestAccountID(t *testing.T) {
	assert.Equal(t, "act_123", AccountID("123"))
	assert.Equal(t, "act_123", AccountID("act_123"))
	assert.Equal(t, "act_9", AccountID(" 9 "))
	assert.Equal(t, "", AccountID(""))
}
