package ads

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/patrickwarner/fbads-mcp/internal/graph"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoCampaigns is returned when a comparison names no campaigns.
var ErrNoCampaigns = errors.New("no campaigns to compare")

const (
	dateLayout        = "2006-01-02"
	defaultRangeDays  = 30
	noInsightsMessage = "Žádná analytická data nejsou k dispozici pro zadané období"
	noDemoMessage     = "Žádná demografická data nejsou k dispozici pro zadané období"
	noCampaignsMsg    = "Není zadána žádná kampaň pro porovnání"
)

var (
	// DefaultInsightMetrics are requested by campaign and account insights.
	DefaultInsightMetrics = []string{"impressions", "clicks", "spend", "cpc", "ctr", "reach", "frequency"}
	// DefaultCompareMetrics are summed by CompareCampaigns.
	DefaultCompareMetrics = []string{"impressions", "clicks", "spend", "cpc", "ctr", "reach"}

	demographicMetrics = []string{"impressions", "clicks", "spend", "reach"}
)

// TimeRange is an inclusive date window in YYYY-MM-DD form.
type TimeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

// IsZero reports whether neither bound is set.
func (tr TimeRange) IsZero() bool {
	return tr.Since == "" && tr.Until == ""
}

// InsightRow is one insight record: its date window plus the requested
// metrics. Spend is a float64; other metrics are kept as the platform sent them.
type InsightRow struct {
	DateStart string
	DateStop  string
	Metrics   map[string]any
}

// MarshalJSON flattens the row into {"date_start":...,"date_stop":...,<metric>:...}.
func (r InsightRow) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Metrics)+2)
	for k, v := range r.Metrics {
		flat[k] = v
	}
	flat["date_start"] = r.DateStart
	flat["date_stop"] = r.DateStop
	return json.Marshal(flat)
}

// CampaignComparison is the per-campaign sum of each requested metric.
// Insights is empty when the campaign had no rows in range.
type CampaignComparison struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Insights map[string]float64 `json:"insights"`
}

// DemographicMetrics holds the counters tracked per demographic segment.
type DemographicMetrics struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Spend       float64 `json:"spend"`
	Reach       int64   `json:"reach"`
}

func (m DemographicMetrics) add(o DemographicMetrics) DemographicMetrics {
	return DemographicMetrics{
		Impressions: m.Impressions + o.Impressions,
		Clicks:      m.Clicks + o.Clicks,
		Spend:       m.Spend + o.Spend,
		Reach:       m.Reach + o.Reach,
	}
}

// Demographics groups insight rows by age, by gender, and by "gender_age".
// Age and Gender accumulate across rows; AgeGender keeps the last row seen
// for each key.
type Demographics struct {
	Age       map[string]DemographicMetrics `json:"age"`
	Gender    map[string]DemographicMetrics `json:"gender"`
	AgeGender map[string]DemographicMetrics `json:"ageGender"`
}

// Analytics reads performance data for campaigns and the ad account.
type Analytics struct {
	api     graph.API
	account string
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalytics creates the analytics operations for accountID.
func NewAnalytics(api graph.API, accountID string, logger *zap.Logger) *Analytics {
	return &Analytics{api: api, account: graph.AccountID(accountID), logger: logger, now: time.Now}
}

// SetClock replaces the clock used for default time ranges (for testing).
func (a *Analytics) SetClock(now func() time.Time) {
	a.now = now
}

// resolve fills a zero range with the 30 days ending today (UTC).
func (a *Analytics) resolve(tr TimeRange) TimeRange {
	if !tr.IsZero() {
		return tr
	}
	today := a.now().UTC()
	return TimeRange{
		Since: today.AddDate(0, 0, -(defaultRangeDays - 1)).Format(dateLayout),
		Until: today.Format(dateLayout),
	}
}

// TimeIncrement maps a grouping name to the platform's time_increment in days.
// A month is approximated as 30 days; unknown names group by day.
func TimeIncrement(groupBy string) int {
	switch groupBy {
	case "week":
		return 7
	case "month":
		return 30
	default:
		return 1
	}
}

// GetCampaignInsights reads campaign-level insights for the range.
func (a *Analytics) GetCampaignInsights(ctx context.Context, campaignID string, tr TimeRange, metrics []string) Result[[]InsightRow] {
	if len(metrics) == 0 {
		metrics = DefaultInsightMetrics
	}
	tr = a.resolve(tr)
	nodes, err := a.api.Edge(ctx, campaignID, "insights", metrics, graph.Params{
		"time_range": tr,
		"level":      "campaign",
	})
	if err != nil {
		return failure[[]InsightRow](a.logger, "získávání analytických dat kampaně", err, zap.String("campaign_id", campaignID))
	}
	if len(nodes) == 0 {
		return SucceedEmpty[[]InsightRow](noInsightsMessage)
	}
	return Succeed(insightRows(nodes, metrics), "")
}

// GetAccountInsights reads account-level insights grouped by day, week or month.
func (a *Analytics) GetAccountInsights(ctx context.Context, tr TimeRange, metrics []string, groupBy string) Result[[]InsightRow] {
	if len(metrics) == 0 {
		metrics = DefaultInsightMetrics
	}
	tr = a.resolve(tr)
	nodes, err := a.api.Edge(ctx, a.account, "insights", metrics, graph.Params{
		"time_range":     tr,
		"level":          "account",
		"time_increment": TimeIncrement(groupBy),
	})
	if err != nil {
		return failure[[]InsightRow](a.logger, "získávání analytických dat účtu", err)
	}
	if len(nodes) == 0 {
		return SucceedEmpty[[]InsightRow](noInsightsMessage)
	}
	return Succeed(insightRows(nodes, metrics), "")
}

func insightRows(nodes []graph.Node, metrics []string) []InsightRow {
	rows := make([]InsightRow, 0, len(nodes))
	for _, n := range nodes {
		row := InsightRow{
			DateStart: n.String("date_start"),
			DateStop:  n.String("date_stop"),
			Metrics:   make(map[string]any, len(metrics)),
		}
		for _, m := range metrics {
			v, ok := n[m]
			if !ok {
				continue
			}
			if m == "spend" {
				row.Metrics[m] = floatOrZero(n, m)
				continue
			}
			row.Metrics[m] = v
		}
		rows = append(rows, row)
	}
	return rows
}

// CompareCampaigns sums each metric per campaign. Campaigns are fetched
// concurrently; the output keeps the order of campaignIDs.
func (a *Analytics) CompareCampaigns(ctx context.Context, campaignIDs []string, tr TimeRange, metrics []string) Result[[]CampaignComparison] {
	if len(campaignIDs) == 0 {
		a.logger.Warn("compare called without campaigns", zap.Error(ErrNoCampaigns))
		return Fail[[]CampaignComparison](noCampaignsMsg)
	}
	if len(metrics) == 0 {
		metrics = DefaultCompareMetrics
	}
	tr = a.resolve(tr)

	out := make([]CampaignComparison, len(campaignIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range campaignIDs {
		g.Go(func() error {
			cmp, err := a.compareOne(gctx, id, tr, metrics)
			if err != nil {
				return err
			}
			out[i] = cmp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return failure[[]CampaignComparison](a.logger, "porovnávání kampaní", err, zap.Strings("campaign_ids", campaignIDs))
	}
	return Succeed(out, "")
}

func (a *Analytics) compareOne(ctx context.Context, campaignID string, tr TimeRange, metrics []string) (CampaignComparison, error) {
	identity, err := a.api.Get(ctx, campaignID, []string{"id", "name"})
	if err != nil {
		return CampaignComparison{}, err
	}
	nodes, err := a.api.Edge(ctx, campaignID, "insights", metrics, graph.Params{"time_range": tr})
	if err != nil {
		return CampaignComparison{}, err
	}

	sums := make(map[string]float64, len(metrics))
	if len(nodes) > 0 {
		for _, m := range metrics {
			var total float64
			for _, n := range nodes {
				total += floatOrZero(n, m)
			}
			sums[m] = total
		}
	}
	return CampaignComparison{ID: identity.ID(), Name: identity.String("name"), Insights: sums}, nil
}

// GetCampaignDemographics breaks campaign delivery down by age and gender.
func (a *Analytics) GetCampaignDemographics(ctx context.Context, campaignID string, tr TimeRange) Result[Demographics] {
	tr = a.resolve(tr)
	nodes, err := a.api.Edge(ctx, campaignID, "insights", demographicMetrics, graph.Params{
		"time_range": tr,
		"breakdowns": []string{"age", "gender"},
	})
	if err != nil {
		return failure[Demographics](a.logger, "získávání demografických údajů", err, zap.String("campaign_id", campaignID))
	}
	if len(nodes) == 0 {
		return SucceedEmpty[Demographics](noDemoMessage)
	}
	return Succeed(aggregateDemographics(nodes), "")
}

func aggregateDemographics(nodes []graph.Node) Demographics {
	d := Demographics{
		Age:       map[string]DemographicMetrics{},
		Gender:    map[string]DemographicMetrics{},
		AgeGender: map[string]DemographicMetrics{},
	}
	for _, n := range nodes {
		age, gender := n.String("age"), n.String("gender")
		row := DemographicMetrics{
			Impressions: intOrZero(n, "impressions"),
			Clicks:      intOrZero(n, "clicks"),
			Spend:       floatOrZero(n, "spend"),
			Reach:       intOrZero(n, "reach"),
		}
		d.Age[age] = d.Age[age].add(row)
		d.Gender[gender] = d.Gender[gender].add(row)
		d.AgeGender[gender+"_"+age] = row
	}
	return d
}
