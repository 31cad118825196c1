package ads

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/patrickwarner/fbads-mcp/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCampaign_ConvertsBudgetToMinorUnits(t *testing.T) {
	api := newFakeAPI()
	api.posted = graph.Node{"id": "c1"}
	svc := NewCampaigns(api, "123", zap.NewNop())

	r := svc.CreateCampaign(context.Background(), CreateCampaignInput{
		Name:        "Jaro",
		Objective:   "OUTCOME_TRAFFIC",
		Status:      "PAUSED",
		DailyBudget: 12.345,
	})

	require.True(t, r.OK())
	id, _ := r.Value()
	assert.Equal(t, "c1", id)
	assert.Equal(t, "Kampaň byla úspěšně vytvořena", r.Message())

	calls := api.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "act_123", calls[0].ID)
	assert.Equal(t, "campaigns", calls[0].Edge)
	assert.Equal(t, int64(1235), calls[0].Params["daily_budget"])
	assert.Equal(t, []string{}, calls[0].Params["special_ad_categories"])
	assert.NotContains(t, calls[0].Params, "start_time")
	assert.NotContains(t, calls[0].Params, "end_time")
}

func TestCreateCampaign_OmitsZeroBudget(t *testing.T) {
	api := newFakeAPI()
	svc := NewCampaigns(api, "act_1", zap.NewNop())

	svc.CreateCampaign(context.Background(), CreateCampaignInput{Name: "n", Objective: "o", Status: "ACTIVE", StartTime: "2024-01-01"})

	calls := api.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "act_1", calls[0].ID)
	assert.NotContains(t, calls[0].Params, "daily_budget")
	assert.Equal(t, "2024-01-01", calls[0].Params["start_time"])
}

func TestCreateCampaign_Failure(t *testing.T) {
	api := newFakeAPI()
	api.err = &graph.Error{Message: "Invalid parameter", Code: 100}
	svc := NewCampaigns(api, "1", zap.NewNop())

	r := svc.CreateCampaign(context.Background(), CreateCampaignInput{Name: "n"})

	assert.False(t, r.OK())
	assert.Equal(t, "Chyba při vytváření kampaně: Invalid parameter (code 100)", r.Message())
}

func TestGetCampaigns_FilterAndBudgets(t *testing.T) {
	api := newFakeAPI()
	api.edges["act_1/campaigns"] = []graph.Node{
		{"id": "c1", "name": "A", "status": "ACTIVE", "daily_budget": "50000"},
		{"id": "c2", "name": "B", "status": "ACTIVE", "lifetime_budget": json.Number("1999")},
	}
	svc := NewCampaigns(api, "1", zap.NewNop())

	r := svc.GetCampaigns(context.Background(), 5, "ACTIVE")

	require.True(t, r.OK())
	campaigns, ok := r.Value()
	require.True(t, ok)
	require.Len(t, campaigns, 2)
	require.NotNil(t, campaigns[0].DailyBudget)
	assert.Equal(t, 500.0, *campaigns[0].DailyBudget)
	assert.Nil(t, campaigns[0].LifetimeBudget)
	assert.Nil(t, campaigns[1].DailyBudget)
	assert.InDelta(t, 19.99, *campaigns[1].LifetimeBudget, 1e-9)

	calls := api.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 5, calls[0].Params["limit"])
	assert.Equal(t, []Filter{{Field: "status", Operator: "EQUAL", Value: "ACTIVE"}}, calls[0].Params["filtering"])
}

func TestGetCampaigns_DefaultLimitNoFilter(t *testing.T) {
	api := newFakeAPI()
	svc := NewCampaigns(api, "1", zap.NewNop())

	r := svc.GetCampaigns(context.Background(), 0, "")

	require.True(t, r.OK())
	campaigns, ok := r.Value()
	require.True(t, ok)
	assert.Empty(t, campaigns)
	calls := api.Calls()
	assert.Equal(t, DefaultListLimit, calls[0].Params["limit"])
	assert.NotContains(t, calls[0].Params, "filtering")
}

func TestUpdateCampaign_SendsOnlySetFields(t *testing.T) {
	api := newFakeAPI()
	svc := NewCampaigns(api, "1", zap.NewNop())

	r := svc.UpdateCampaign(context.Background(), "c1", CampaignUpdate{Status: "PAUSED", DailyBudget: 25})

	require.True(t, r.OK())
	_, hasData := r.Value()
	assert.False(t, hasData)
	assert.Equal(t, "Kampaň byla úspěšně aktualizována", r.Message())

	calls := api.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "c1", calls[0].ID)
	assert.Equal(t, "", calls[0].Edge)
	assert.Equal(t, graph.Params{"status": "PAUSED", "daily_budget": int64(2500)}, calls[0].Params)
}

func TestCampaignUpdate_IsEmpty(t *testing.T) {
	assert.True(t, CampaignUpdate{}.IsEmpty())
	assert.False(t, CampaignUpdate{EndTime: "2024-12-31"}.IsEmpty())
	assert.False(t, CampaignUpdate{DailyBudget: 1}.IsEmpty())
}

func TestGetCampaignDetails(t *testing.T) {
	api := newFakeAPI()
	api.objects["c1"] = graph.Node{
		"id": "c1", "name": "A", "spend_cap": "10000", "budget_remaining": "2550",
		"buying_type": "AUCTION", "special_ad_categories": []any{"HOUSING"},
	}
	svc := NewCampaigns(api, "1", zap.NewNop())

	r := svc.GetCampaignDetails(context.Background(), "c1")

	c, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, 100.0, *c.SpendCap)
	assert.Equal(t, 25.5, *c.BudgetRemaining)
	assert.Equal(t, []string{"HOUSING"}, c.SpecialAdCategories)
	assert.Contains(t, api.Calls()[0].Fields, "spend_cap")
}

func TestDeleteCampaign(t *testing.T) {
	api := newFakeAPI()
	svc := NewCampaigns(api, "1", zap.NewNop())

	r := svc.DeleteCampaign(context.Background(), "c9")
	require.True(t, r.OK())
	assert.Equal(t, "Kampaň byla úspěšně odstraněna", r.Message())
	assert.Equal(t, "DELETE", api.Calls()[0].Method)

	api.errFor["c9"] = errors.New("gone")
	r = svc.DeleteCampaign(context.Background(), "c9")
	assert.False(t, r.OK())
	assert.Equal(t, "Chyba při odstraňování kampaně: gone", r.Message())
}
