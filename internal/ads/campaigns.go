package ads

import (
	"context"

	"github.com/patrickwarner/fbads-mcp/internal/graph"
	"go.uber.org/zap"
)

// DefaultListLimit is the page size used when a caller gives no limit.
const DefaultListLimit = 10

var (
	campaignListFields = []string{
		"id", "name", "objective", "status", "created_time",
		"start_time", "stop_time", "daily_budget", "lifetime_budget",
	}
	campaignDetailFields = []string{
		"id", "name", "objective", "status", "created_time",
		"start_time", "stop_time", "daily_budget", "lifetime_budget",
		"spend_cap", "budget_remaining", "buying_type", "special_ad_categories",
	}
)

// Campaign is a campaign as exposed to callers. Money fields are in major
// currency units and nil when the platform did not report them.
type Campaign struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Objective           string   `json:"objective,omitempty"`
	Status              string   `json:"status,omitempty"`
	CreatedTime         string   `json:"createdTime,omitempty"`
	StartTime           string   `json:"startTime,omitempty"`
	StopTime            string   `json:"stopTime,omitempty"`
	DailyBudget         *float64 `json:"dailyBudget"`
	LifetimeBudget      *float64 `json:"lifetimeBudget"`
	SpendCap            *float64 `json:"spendCap,omitempty"`
	BudgetRemaining     *float64 `json:"budgetRemaining,omitempty"`
	BuyingType          string   `json:"buyingType,omitempty"`
	SpecialAdCategories []string `json:"specialAdCategories,omitempty"`
}

// campaignFromNode maps a Graph campaign object.
func campaignFromNode(n graph.Node) Campaign {
	return Campaign{
		ID:                  n.ID(),
		Name:                n.String("name"),
		Objective:           n.String("objective"),
		Status:              n.String("status"),
		CreatedTime:         n.String("created_time"),
		StartTime:           n.String("start_time"),
		StopTime:            n.String("stop_time"),
		DailyBudget:         majorField(n, "daily_budget"),
		LifetimeBudget:      majorField(n, "lifetime_budget"),
		SpendCap:            majorField(n, "spend_cap"),
		BudgetRemaining:     majorField(n, "budget_remaining"),
		BuyingType:          n.String("buying_type"),
		SpecialAdCategories: n.Strings("special_ad_categories"),
	}
}

// CreateCampaignInput describes a new campaign. Zero-valued optional fields
// are left out of the request.
type CreateCampaignInput struct {
	Name                string
	Objective           string
	Status              string
	DailyBudget         float64
	StartTime           string
	EndTime             string
	SpecialAdCategories []string
}

// CampaignUpdate is a sparse update. Empty strings and a zero budget mean
// "leave unchanged".
type CampaignUpdate struct {
	Name        string
	Status      string
	DailyBudget float64
	EndTime     string
}

// IsEmpty reports whether the update would change nothing.
func (u CampaignUpdate) IsEmpty() bool {
	return u.Name == "" && u.Status == "" && u.DailyBudget == 0 && u.EndTime == ""
}

func (u CampaignUpdate) params() graph.Params {
	p := graph.Params{}
	if u.Name != "" {
		p["name"] = u.Name
	}
	if u.Status != "" {
		p["status"] = u.Status
	}
	if u.DailyBudget != 0 {
		p["daily_budget"] = toMinor(u.DailyBudget)
	}
	if u.EndTime != "" {
		p["end_time"] = u.EndTime
	}
	return p
}

// Campaigns manages campaigns of one ad account.
type Campaigns struct {
	api     graph.API
	account string
	logger  *zap.Logger
}

// NewCampaigns creates the campaign operations for accountID.
func NewCampaigns(api graph.API, accountID string, logger *zap.Logger) *Campaigns {
	return &Campaigns{api: api, account: graph.AccountID(accountID), logger: logger}
}

// CreateCampaign creates a campaign and returns its id.
func (c *Campaigns) CreateCampaign(ctx context.Context, in CreateCampaignInput) Result[string] {
	params := graph.Params{
		"name":      in.Name,
		"objective": in.Objective,
		"status":    in.Status,
	}
	categories := in.SpecialAdCategories
	if categories == nil {
		categories = []string{}
	}
	params["special_ad_categories"] = categories
	if in.DailyBudget != 0 {
		params["daily_budget"] = toMinor(in.DailyBudget)
	}
	if in.StartTime != "" {
		params["start_time"] = in.StartTime
	}
	if in.EndTime != "" {
		params["end_time"] = in.EndTime
	}

	node, err := c.api.Post(ctx, c.account, "campaigns", params)
	if err != nil {
		return failure[string](c.logger, "vytváření kampaně", err, zap.String("name", in.Name))
	}
	c.logger.Info("campaign created", zap.String("campaign_id", node.ID()))
	return Succeed(node.ID(), "Kampaň byla úspěšně vytvořena")
}

// GetCampaigns lists up to limit campaigns, optionally only those with status.
func (c *Campaigns) GetCampaigns(ctx context.Context, limit int, status string) Result[[]Campaign] {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	params := graph.Params{"limit": limit}
	if status != "" {
		params["filtering"] = []Filter{{Field: "status", Operator: "EQUAL", Value: status}}
	}

	nodes, err := c.api.Edge(ctx, c.account, "campaigns", campaignListFields, params)
	if err != nil {
		return failure[[]Campaign](c.logger, "získávání kampaní", err)
	}
	campaigns := make([]Campaign, 0, len(nodes))
	for _, n := range nodes {
		campaigns = append(campaigns, campaignFromNode(n))
	}
	return Succeed(campaigns, "")
}

// UpdateCampaign applies a sparse update.
func (c *Campaigns) UpdateCampaign(ctx context.Context, campaignID string, u CampaignUpdate) Result[struct{}] {
	if _, err := c.api.Post(ctx, campaignID, "", u.params()); err != nil {
		return failure[struct{}](c.logger, "aktualizaci kampaně", err, zap.String("campaign_id", campaignID))
	}
	return SucceedEmpty[struct{}]("Kampaň byla úspěšně aktualizována")
}

// GetCampaignDetails reads the extended field set of one campaign.
func (c *Campaigns) GetCampaignDetails(ctx context.Context, campaignID string) Result[Campaign] {
	node, err := c.api.Get(ctx, campaignID, campaignDetailFields)
	if err != nil {
		return failure[Campaign](c.logger, "získávání detailů kampaně", err, zap.String("campaign_id", campaignID))
	}
	return Succeed(campaignFromNode(node), "")
}

// DeleteCampaign deletes a campaign. The platform keeps it as deleted.
func (c *Campaigns) DeleteCampaign(ctx context.Context, campaignID string) Result[struct{}] {
	if err := c.api.Delete(ctx, campaignID); err != nil {
		return failure[struct{}](c.logger, "odstraňování kampaně", err, zap.String("campaign_id", campaignID))
	}
	c.logger.Info("campaign deleted", zap.String("campaign_id", campaignID))
	return SucceedEmpty[struct{}]("Kampaň byla úspěšně odstraněna")
}

// Filter is one entry of a Graph filtering parameter.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}
