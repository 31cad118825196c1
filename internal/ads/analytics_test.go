package ads

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/patrickwarner/fbads-mcp/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = func() time.Time { return time.Date(2024, 3, 31, 22, 0, 0, 0, time.UTC) }

func newAnalytics(api graph.API) *Analytics {
	a := NewAnalytics(api, "1", zap.NewNop())
	a.SetClock(fixedNow)
	return a
}

func TestGetCampaignInsights_DefaultRangeAndSpend(t *testing.T) {
	api := newFakeAPI()
	api.edges["c1/insights"] = []graph.Node{
		{"date_start": "2024-03-02", "date_stop": "2024-03-31", "impressions": "1000", "spend": "12.50"},
	}
	svc := newAnalytics(api)

	r := svc.GetCampaignInsights(context.Background(), "c1", TimeRange{}, nil)

	rows, ok := r.Value()
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, 12.5, rows[0].Metrics["spend"])
	assert.Equal(t, "1000", rows[0].Metrics["impressions"])
	assert.NotContains(t, rows[0].Metrics, "cpc")

	c := api.Calls()[0]
	assert.Equal(t, TimeRange{Since: "2024-03-02", Until: "2024-03-31"}, c.Params["time_range"])
	assert.Equal(t, "campaign", c.Params["level"])
	assert.Equal(t, DefaultInsightMetrics, c.Fields)

	b, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"date_start":"2024-03-02","date_stop":"2024-03-31","impressions":"1000","spend":12.5}`, string(b))
}

func TestGetCampaignInsights_NoRows(t *testing.T) {
	api := newFakeAPI()
	svc := newAnalytics(api)

	r := svc.GetCampaignInsights(context.Background(), "c1", TimeRange{Since: "2024-01-01", Until: "2024-01-31"}, []string{"clicks"})

	require.True(t, r.OK())
	_, ok := r.Value()
	assert.False(t, ok)
	assert.Equal(t, "Žádná analytická data nejsou k dispozici pro zadané období", r.Message())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Žádná analytická data nejsou k dispozici pro zadané období","data":null}`, string(b))
}

func TestGetAccountInsights_TimeIncrement(t *testing.T) {
	cases := map[string]int{"day": 1, "week": 7, "month": 30, "quarter": 1, "": 1}
	for groupBy, want := range cases {
		api := newFakeAPI()
		svc := newAnalytics(api)

		svc.GetAccountInsights(context.Background(), TimeRange{}, nil, groupBy)

		c := api.Calls()[0]
		assert.Equal(t, "act_1", c.ID)
		assert.Equal(t, "account", c.Params["level"])
		assert.Equal(t, want, c.Params["time_increment"], "groupBy %q", groupBy)
	}
}

func TestGetAccountInsights_Failure(t *testing.T) {
	api := newFakeAPI()
	api.err = errors.New("rate limited")
	svc := newAnalytics(api)

	r := svc.GetAccountInsights(context.Background(), TimeRange{}, nil, "day")

	assert.False(t, r.OK())
	assert.Equal(t, "Chyba při získávání analytických dat účtu: rate limited", r.Message())
}

func TestCompareCampaigns_EmptyList(t *testing.T) {
	api := newFakeAPI()
	svc := newAnalytics(api)

	r := svc.CompareCampaigns(context.Background(), nil, TimeRange{}, nil)

	assert.False(t, r.OK())
	assert.Equal(t, "Není zadána žádná kampaň pro porovnání", r.Message())
	assert.Empty(t, api.Calls())
}

func TestCompareCampaigns_PreservesOrderAndSums(t *testing.T) {
	api := newFakeAPI()
	api.objects["c1"] = graph.Node{"id": "c1", "name": "První"}
	api.objects["c2"] = graph.Node{"id": "c2", "name": "Druhá"}
	api.objects["c3"] = graph.Node{"id": "c3", "name": "Třetí"}
	api.edges["c1/insights"] = []graph.Node{
		{"clicks": "10", "spend": "1.5"},
		{"clicks": "5", "spend": "2.25"},
	}
	api.edges["c2/insights"] = []graph.Node{{"clicks": "7"}}
	// c1 finishes last, c3 first.
	api.delay["c1/insights"] = 60 * time.Millisecond
	api.delay["c2/insights"] = 20 * time.Millisecond
	svc := newAnalytics(api)

	r := svc.CompareCampaigns(context.Background(), []string{"c1", "c2", "c3"}, TimeRange{}, []string{"clicks", "spend"})

	out, ok := r.Value()
	require.True(t, ok)
	require.Len(t, out, 3)
	assert.Equal(t, "c1", out[0].ID)
	assert.Equal(t, "První", out[0].Name)
	assert.Equal(t, map[string]float64{"clicks": 15, "spend": 3.75}, out[0].Insights)
	assert.Equal(t, "c2", out[1].ID)
	assert.Equal(t, map[string]float64{"clicks": 7, "spend": 0}, out[1].Insights)
	assert.Equal(t, "c3", out[2].ID)
	assert.Empty(t, out[2].Insights)
}

func TestCompareCampaigns_AnyFailureFailsAll(t *testing.T) {
	api := newFakeAPI()
	api.errFor["c2/insights"] = errors.New("no access")
	svc := newAnalytics(api)

	r := svc.CompareCampaigns(context.Background(), []string{"c1", "c2"}, TimeRange{}, nil)

	assert.False(t, r.OK())
	assert.Equal(t, "Chyba při porovnávání kampaní: no access", r.Message())
}

func TestGetCampaignDemographics_Aggregates(t *testing.T) {
	api := newFakeAPI()
	api.edges["c1/insights"] = []graph.Node{
		{"age": "18-24", "gender": "female", "impressions": "100", "clicks": "4", "spend": "1.25", "reach": "80"},
		{"age": "18-24", "gender": "male", "impressions": "50", "clicks": "1", "spend": "0.75", "reach": "40"},
		{"age": "25-34", "gender": "female", "impressions": "10", "clicks": "0", "spend": "0.10", "reach": "9"},
	}
	svc := newAnalytics(api)

	r := svc.GetCampaignDemographics(context.Background(), "c1", TimeRange{})

	d, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, DemographicMetrics{Impressions: 150, Clicks: 5, Spend: 2, Reach: 120}, d.Age["18-24"])
	assert.Equal(t, int64(110), d.Gender["female"].Impressions)
	assert.Equal(t, int64(50), d.AgeGender["male_18-24"].Impressions)
	assert.Len(t, d.AgeGender, 3)
	assert.Equal(t, []string{"age", "gender"}, api.Calls()[0].Params["breakdowns"])
}

func TestGetCampaignDemographics_DuplicateKeyAsymmetry(t *testing.T) {
	api := newFakeAPI()
	api.edges["c1/insights"] = []graph.Node{
		{"age": "18-24", "gender": "female", "impressions": "100"},
		{"age": "18-24", "gender": "female", "impressions": "30"},
	}
	svc := newAnalytics(api)

	r := svc.GetCampaignDemographics(context.Background(), "c1", TimeRange{})

	d, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, int64(130), d.Age["18-24"].Impressions)
	assert.Equal(t, int64(130), d.Gender["female"].Impressions)
	assert.Equal(t, int64(30), d.AgeGender["female_18-24"].Impressions)
}

func TestGetCampaignDemographics_NoRows(t *testing.T) {
	svc := newAnalytics(newFakeAPI())

	r := svc.GetCampaignDemographics(context.Background(), "c1", TimeRange{})

	require.True(t, r.OK())
	_, ok := r.Value()
	assert.False(t, ok)
	assert.Equal(t, "Žádná demografická data nejsou k dispozici pro zadané období", r.Message())
}
