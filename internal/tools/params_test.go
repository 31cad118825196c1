package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumber(t *testing.T) {
	tests := []struct {
		in    string
		set   bool
		value float64
		bad   bool
	}{
		{`"1000.50"`, true, 1000.5, false},
		{`1000.5`, true, 1000.5, false},
		{`" 25 "`, true, 25, false},
		{`null`, false, 0, false},
		{`""`, false, 0, false},
		{`"abc"`, true, 0, true},
		{`"NaN"`, true, 0, true},
		{`"Inf"`, true, 0, true},
		{`"-Infinity"`, true, 0, true},
		{`"1e300"`, true, 0, true},
		{`1e13`, true, 0, true},
		{`1e12`, true, 1e12, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var n FlexNumber
			require.NoError(t, json.Unmarshal([]byte(tt.in), &n))
			assert.Equal(t, tt.set, n.IsSet())
			v, err := n.Float("dailyBudget")
			if tt.bad {
				assert.ErrorIs(t, err, ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestFlexNumberInStruct(t *testing.T) {
	var args GetCampaignsArgs
	require.NoError(t, json.Unmarshal([]byte(`{"limit":"7","status":"ACTIVE"}`), &args))
	limit, err := args.Limit.Int("limit")
	require.NoError(t, err)
	assert.Equal(t, 7, limit)
}

func TestSplitMetrics(t *testing.T) {
	assert.Equal(t, []string{"clicks", "spend"}, splitMetrics(" clicks, ,spend,"))
	assert.Empty(t, splitMetrics(""))
}

func TestRequireParams(t *testing.T) {
	assert.NoError(t, requireParams("a", "x"))
	assert.EqualError(t, requireParams("campaignId", " "), "Chybí povinný parametr campaignId.")
	assert.EqualError(t, requireParams("a", "", "b", "y", "c", ""), "Chybí povinné parametry: a, c.")
}

func TestStringVariables(t *testing.T) {
	got := stringVariables(map[string]any{"a": "x", "b": float64(1000), "c": nil, "d": true})
	assert.Equal(t, map[string]string{"a": "x", "b": "1000", "c": "", "d": "true"}, got)
}
