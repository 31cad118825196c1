package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/fbads-mcp/internal/ads"
	"go.uber.org/zap"
)

// CreateCampaignArgs are the create_campaign parameters.
type CreateCampaignArgs struct {
	Name        string     `json:"name"`
	Objective   string     `json:"objective"`
	Status      string     `json:"status"`
	DailyBudget FlexNumber `json:"dailyBudget,omitempty"`
	StartTime   string     `json:"startTime,omitempty"`
	EndTime     string     `json:"endTime,omitempty"`
}

// GetCampaignsArgs are the get_campaigns parameters.
type GetCampaignsArgs struct {
	Limit  FlexNumber `json:"limit,omitempty"`
	Status string     `json:"status,omitempty"`
}

// CampaignIDArgs identify one campaign.
type CampaignIDArgs struct {
	CampaignID string `json:"campaignId"`
}

// UpdateCampaignArgs are the update_campaign parameters.
type UpdateCampaignArgs struct {
	CampaignID  string     `json:"campaignId"`
	Name        string     `json:"name,omitempty"`
	Status      string     `json:"status,omitempty"`
	DailyBudget FlexNumber `json:"dailyBudget,omitempty"`
	EndTime     string     `json:"endTime,omitempty"`
}

func (s *Server) registerCampaignTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_campaign",
		Description: "Vytvoří novou reklamní kampaň na Facebooku",
		InputSchema: objectSchema(map[string]interface{}{
			"name":        stringProp("Název kampaně"),
			"objective":   stringProp("Cíl kampaně (např. REACH, LINK_CLICKS, CONVERSIONS)"),
			"status":      stringProp("Status kampaně (ACTIVE, PAUSED)"),
			"dailyBudget": numberProp("Denní rozpočet v měně účtu (např. \"1000.50\")"),
			"startTime":   stringProp("Čas začátku kampaně ve formátu ISO (YYYY-MM-DDTHH:MM:SS+0000)"),
			"endTime":     stringProp("Čas konce kampaně ve formátu ISO (YYYY-MM-DDTHH:MM:SS+0000)"),
		}, true, "name", "objective", "status"),
	}, instrument(s, "create_campaign", s.createCampaign))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_campaigns",
		Description: "Získá seznam reklamních kampaní",
		InputSchema: objectSchema(map[string]interface{}{
			"limit":  numberProp("Maximální počet kampaní k zobrazení (číslo)"),
			"status": stringProp("Filtrování podle statusu (ACTIVE, PAUSED, ARCHIVED)"),
		}, false),
	}, instrument(s, "get_campaigns", s.getCampaigns))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_campaign_details",
		Description: "Získá detailní informace o konkrétní kampani",
		InputSchema: objectSchema(map[string]interface{}{
			"campaignId": stringProp("ID kampaně"),
		}, false, "campaignId"),
	}, instrument(s, "get_campaign_details", s.getCampaignDetails))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_campaign",
		Description: "Aktualizuje existující reklamní kampaň",
		InputSchema: objectSchema(map[string]interface{}{
			"campaignId":  stringProp("ID kampaně k aktualizaci"),
			"name":        stringProp("Nový název kampaně"),
			"status":      stringProp("Nový status kampaně (ACTIVE, PAUSED)"),
			"dailyBudget": numberProp("Nový denní rozpočet v měně účtu (např. \"1500.00\")"),
			"endTime":     stringProp("Nový čas konce kampaně ve formátu ISO (YYYY-MM-DDTHH:MM:SS+0000)"),
		}, false, "campaignId"),
	}, instrument(s, "update_campaign", s.updateCampaign))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_campaign",
		Description: "Odstraní reklamní kampaň",
		InputSchema: objectSchema(map[string]interface{}{
			"campaignId": stringProp("ID kampaně k odstranění"),
		}, false, "campaignId"),
	}, instrument(s, "delete_campaign", s.deleteCampaign))
}

func (s *Server) createCampaign(ctx context.Context, log *zap.Logger, in CreateCampaignArgs) (string, bool, error) {
	if err := requireParams("name", in.Name, "objective", in.Objective, "status", in.Status); err != nil {
		return "", false, err
	}
	budget, err := in.DailyBudget.Float("dailyBudget")
	if err != nil {
		return "", false, err
	}
	r := s.campaigns.CreateCampaign(ctx, ads.CreateCampaignInput{
		Name:        in.Name,
		Objective:   in.Objective,
		Status:      in.Status,
		DailyBudget: budget,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	})
	return formatCreateCampaign(r), !r.OK(), nil
}

func (s *Server) getCampaigns(ctx context.Context, log *zap.Logger, in GetCampaignsArgs) (string, bool, error) {
	limit, err := in.Limit.Int("limit")
	if err != nil {
		return "", false, err
	}
	r := s.campaigns.GetCampaigns(ctx, limit, in.Status)
	return formatCampaignList(r), !r.OK(), nil
}

func (s *Server) getCampaignDetails(ctx context.Context, log *zap.Logger, in CampaignIDArgs) (string, bool, error) {
	if err := requireParams("campaignId", in.CampaignID); err != nil {
		return "", false, err
	}
	r := s.campaigns.GetCampaignDetails(ctx, in.CampaignID)
	return formatCampaignDetails(r), !r.OK(), nil
}

func (s *Server) updateCampaign(ctx context.Context, log *zap.Logger, in UpdateCampaignArgs) (string, bool, error) {
	if err := requireParams("campaignId", in.CampaignID); err != nil {
		return "", false, err
	}
	budget, err := in.DailyBudget.Float("dailyBudget")
	if err != nil {
		return "", false, err
	}
	update := ads.CampaignUpdate{
		Name:        in.Name,
		Status:      in.Status,
		DailyBudget: budget,
		EndTime:     in.EndTime,
	}
	if update.IsEmpty() {
		return "", false, invalidParams("Musí být poskytnut alespoň jeden parametr k aktualizaci (name, status, dailyBudget, endTime).")
	}
	log.Debug("updating campaign", zap.String("campaign_id", in.CampaignID))
	r := s.campaigns.UpdateCampaign(ctx, in.CampaignID, update)
	return formatUpdateCampaign(in.CampaignID, r), !r.OK(), nil
}

func (s *Server) deleteCampaign(ctx context.Context, log *zap.Logger, in CampaignIDArgs) (string, bool, error) {
	if err := requireParams("campaignId", in.CampaignID); err != nil {
		return "", false, err
	}
	r := s.campaigns.DeleteCampaign(ctx, in.CampaignID)
	return formatDeleteCampaign(in.CampaignID, r), !r.OK(), nil
}
