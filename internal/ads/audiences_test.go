package ads

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/patrickwarner/fbads-mcp/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCustomAudience_DefaultsSubtype(t *testing.T) {
	api := newFakeAPI()
	api.posted = graph.Node{"id": "a1"}
	svc := NewAudiences(api, "1", zap.NewNop())

	r := svc.CreateCustomAudience(context.Background(), "VIP", "popis", "USER_PROVIDED_ONLY", "")

	id, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, "a1", id)
	calls := api.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "act_1", calls[0].ID)
	assert.Equal(t, "customaudiences", calls[0].Edge)
	assert.Equal(t, SubtypeCustom, calls[0].Params["subtype"])
	assert.Equal(t, "USER_PROVIDED_ONLY", calls[0].Params["customer_file_source"])
}

func TestGetCustomAudiences_PassesThroughCounts(t *testing.T) {
	api := newFakeAPI()
	api.edges["act_1/customaudiences"] = []graph.Node{
		{"id": "a1", "name": "VIP", "approximate_count": "1500", "subtype": "CUSTOM"},
	}
	svc := NewAudiences(api, "1", zap.NewNop())

	r := svc.GetCustomAudiences(context.Background(), 0)

	list, ok := r.Value()
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "1500", list[0].ApproximateCount)
	assert.Nil(t, list[0].Rule)
	assert.Equal(t, DefaultListLimit, api.Calls()[0].Params["limit"])
}

func TestGetCustomAudienceDetails_ExtendedFields(t *testing.T) {
	api := newFakeAPI()
	api.objects["a1"] = graph.Node{"id": "a1", "operation_status": map[string]any{"code": 200}}
	svc := NewAudiences(api, "1", zap.NewNop())

	r := svc.GetCustomAudienceDetails(context.Background(), "a1")

	a, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"code": 200}, a.OperationStatus)
	assert.Contains(t, api.Calls()[0].Fields, "permission_for_actions")
}

func TestUpdateCustomAudience_SkipsEmptyFields(t *testing.T) {
	api := newFakeAPI()
	svc := NewAudiences(api, "1", zap.NewNop())

	r := svc.UpdateCustomAudience(context.Background(), "a1", "", "nový popis")

	require.True(t, r.OK())
	assert.Equal(t, graph.Params{"description": "nový popis"}, api.Calls()[0].Params)
}

func TestDeleteCustomAudience_Failure(t *testing.T) {
	api := newFakeAPI()
	api.err = errors.New("denied")
	svc := NewAudiences(api, "1", zap.NewNop())

	r := svc.DeleteCustomAudience(context.Background(), "a1")

	assert.False(t, r.OK())
	assert.Equal(t, "Chyba při odstraňování vlastního publika: denied", r.Message())
}

func TestCreateLookalikeAudience_RatioOutOfRange(t *testing.T) {
	for _, ratio := range []float64{0, 0.005, 0.25, -1, math.NaN(), math.Inf(1)} {
		api := newFakeAPI()
		svc := NewAudiences(api, "1", zap.NewNop())

		r := svc.CreateLookalikeAudience(context.Background(), LookalikeInput{
			SourceAudienceID: "a1", Name: "LAL", Country: "CZ", Ratio: ratio,
		})

		assert.False(t, r.OK(), "ratio %v", ratio)
		assert.Equal(t, invalidRatioMessage, r.Message())
		assert.Empty(t, api.Calls(), "no remote call for ratio %v", ratio)
	}
}

func TestCreateLookalikeAudience_LookalikePayload(t *testing.T) {
	api := newFakeAPI()
	api.posted = graph.Node{"id": "lal1"}
	svc := NewAudiences(api, "1", zap.NewNop())

	r := svc.CreateLookalikeAudience(context.Background(), LookalikeInput{
		SourceAudienceID: "a1", Name: "LAL", Country: "CZ", Ratio: 0.2,
	})

	id, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, "lal1", id)
	p := api.Calls()[0].Params
	assert.Equal(t, SubtypeLookalike, p["subtype"])
	assert.Equal(t, "a1", p["origin_audience_id"])
	assert.JSONEq(t, `{"country":"CZ","ratio":0.2,"type":"CUSTOM_AUDIENCE"}`, p["lookalike_spec"].(string))
}

func TestValidateRatio(t *testing.T) {
	assert.NoError(t, ValidateRatio(0.01))
	assert.NoError(t, ValidateRatio(0.2))
	assert.ErrorIs(t, ValidateRatio(0.21), ErrInvalidRatio)
	assert.ErrorIs(t, ValidateRatio(math.NaN()), ErrInvalidRatio)
	assert.ErrorIs(t, ValidateRatio(math.Inf(1)), ErrInvalidRatio)
}

func TestAddUsersToCustomAudience_Payload(t *testing.T) {
	api := newFakeAPI()
	svc := NewAudiences(api, "1", zap.NewNop())

	r := svc.AddUsersToCustomAudience(context.Background(), "a1", []AudienceUser{
		{Data: []string{"h1"}},
		{Data: []string{"h2", "h3"}},
	}, "")

	require.True(t, r.OK())
	c := api.Calls()[0]
	assert.Equal(t, "a1", c.ID)
	assert.Equal(t, "users", c.Edge)
	assert.Equal(t, usersPayload{Schema: "email", Data: [][]string{{"h1"}, {"h2", "h3"}}}, c.Params["payload"])
}
