package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/fbads-mcp/internal/ads"
	"go.uber.org/zap"
)

// campaignInsightMetrics are requested by get_campaign_insights when the
// caller names none.
var campaignInsightMetrics = []string{"impressions", "clicks", "spend", "cpc", "ctr", "reach", "frequency", "actions"}

// CampaignInsightsArgs are the get_campaign_insights parameters.
type CampaignInsightsArgs struct {
	CampaignID string `json:"campaignId"`
	Since      string `json:"since"`
	Until      string `json:"until"`
	Metrics    string `json:"metrics,omitempty"`
}

// AccountInsightsArgs are the get_account_insights parameters.
type AccountInsightsArgs struct {
	Since   string `json:"since"`
	Until   string `json:"until"`
	Metrics string `json:"metrics,omitempty"`
	GroupBy string `json:"groupBy,omitempty"`
}

// CompareCampaignsArgs are the compare_campaigns parameters.
type CompareCampaignsArgs struct {
	CampaignIDs []string `json:"campaignIds"`
	Since       string   `json:"since"`
	Until       string   `json:"until"`
	Metrics     string   `json:"metrics,omitempty"`
}

// DemographicsArgs are the get_campaign_demographics parameters.
type DemographicsArgs struct {
	CampaignID string `json:"campaignId"`
	Since      string `json:"since"`
	Until      string `json:"until"`
}

func (s *Server) registerAnalyticsTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_campaign_insights",
		Description: "Získá analytická data o výkonu reklamní kampaně",
		InputSchema: objectSchema(map[string]interface{}{
			"campaignId": stringProp("ID kampaně"),
			"since":      stringProp("Datum začátku ve formátu YYYY-MM-DD"),
			"until":      stringProp("Datum konce ve formátu YYYY-MM-DD"),
			"metrics": stringProp("Volitelný seznam metrik oddělených čárkou (např. impressions,clicks,spend). Výchozí: " +
				strings.Join(campaignInsightMetrics, ", ")),
		}, false, "campaignId", "since", "until"),
	}, instrument(s, "get_campaign_insights", s.getCampaignInsights))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_account_insights",
		Description: "Získá analytická data o výkonu celého reklamního účtu",
		InputSchema: objectSchema(map[string]interface{}{
			"since": stringProp("Datum začátku ve formátu YYYY-MM-DD"),
			"until": stringProp("Datum konce ve formátu YYYY-MM-DD"),
			"metrics": stringProp("Volitelný seznam metrik oddělených čárkou. Výchozí: " +
				strings.Join(ads.DefaultInsightMetrics, ", ")),
			"groupBy": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"day", "week", "month"},
				"description": "Seskupení dat (day, week, month). Výchozí: day",
			},
		}, false, "since", "until"),
	}, instrument(s, "get_account_insights", s.getAccountInsights))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_campaigns",
		Description: "Porovná výkon více reklamních kampaní za stejné období",
		InputSchema: objectSchema(map[string]interface{}{
			"campaignIds": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Seznam ID kampaní k porovnání",
			},
			"since": stringProp("Datum začátku ve formátu YYYY-MM-DD"),
			"until": stringProp("Datum konce ve formátu YYYY-MM-DD"),
			"metrics": stringProp("Volitelný seznam metrik oddělených čárkou. Výchozí: " +
				strings.Join(ads.DefaultCompareMetrics, ", ")),
		}, false, "campaignIds", "since", "until"),
	}, instrument(s, "compare_campaigns", s.compareCampaigns))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_campaign_demographics",
		Description: "Získá demografické rozložení výkonu kampaně podle věku a pohlaví",
		InputSchema: objectSchema(map[string]interface{}{
			"campaignId": stringProp("ID kampaně"),
			"since":      stringProp("Datum začátku ve formátu YYYY-MM-DD"),
			"until":      stringProp("Datum konce ve formátu YYYY-MM-DD"),
		}, false, "campaignId", "since", "until"),
	}, instrument(s, "get_campaign_demographics", s.getCampaignDemographics))
}

func (s *Server) getCampaignInsights(ctx context.Context, log *zap.Logger, in CampaignInsightsArgs) (string, bool, error) {
	if err := requireParams("campaignId", in.CampaignID, "since", in.Since, "until", in.Until); err != nil {
		return "", false, err
	}
	metrics := splitMetrics(in.Metrics)
	if len(metrics) == 0 {
		metrics = campaignInsightMetrics
	}
	tr := ads.TimeRange{Since: in.Since, Until: in.Until}
	r := s.analytics.GetCampaignInsights(ctx, in.CampaignID, tr, metrics)
	return formatInsights("kampaň "+in.CampaignID, tr, metrics, r), !r.OK(), nil
}

func (s *Server) getAccountInsights(ctx context.Context, log *zap.Logger, in AccountInsightsArgs) (string, bool, error) {
	if err := requireParams("since", in.Since, "until", in.Until); err != nil {
		return "", false, err
	}
	metrics := splitMetrics(in.Metrics)
	if len(metrics) == 0 {
		metrics = ads.DefaultInsightMetrics
	}
	tr := ads.TimeRange{Since: in.Since, Until: in.Until}
	r := s.analytics.GetAccountInsights(ctx, tr, metrics, in.GroupBy)
	return formatInsights("reklamní účet", tr, metrics, r), !r.OK(), nil
}

func (s *Server) compareCampaigns(ctx context.Context, log *zap.Logger, in CompareCampaignsArgs) (string, bool, error) {
	var ids []string
	for _, id := range in.CampaignIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if err := requireParams("campaignIds", strings.Join(ids, ","), "since", in.Since, "until", in.Until); err != nil {
		return "", false, err
	}
	metrics := splitMetrics(in.Metrics)
	if len(metrics) == 0 {
		metrics = ads.DefaultCompareMetrics
	}
	tr := ads.TimeRange{Since: in.Since, Until: in.Until}
	log.Debug("comparing campaigns", zap.Int("count", len(ids)))
	r := s.analytics.CompareCampaigns(ctx, ids, tr, metrics)
	return formatComparison(tr, metrics, r), !r.OK(), nil
}

func (s *Server) getCampaignDemographics(ctx context.Context, log *zap.Logger, in DemographicsArgs) (string, bool, error) {
	if err := requireParams("campaignId", in.CampaignID, "since", in.Since, "until", in.Until); err != nil {
		return "", false, err
	}
	tr := ads.TimeRange{Since: in.Since, Until: in.Until}
	r := s.analytics.GetCampaignDemographics(ctx, in.CampaignID, tr)
	return formatDemographics(in.CampaignID, tr, r), !r.OK(), nil
}
