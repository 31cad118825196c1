package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/fbads-mcp/internal/ads"
	"go.uber.org/zap"
)

// CreateAudienceArgs are the create_custom_audience parameters. Rule is
// accepted for WEBSITE and ENGAGEMENT subtypes but not forwarded.
type CreateAudienceArgs struct {
	Name               string         `json:"name"`
	Subtype            string         `json:"subtype"`
	Description        string         `json:"description,omitempty"`
	CustomerFileSource string         `json:"customer_file_source,omitempty"`
	Rule               map[string]any `json:"rule,omitempty"`
}

// GetAudiencesArgs are the get_audiences parameters.
type GetAudiencesArgs struct {
	Limit FlexNumber `json:"limit,omitempty"`
}

// AudienceIDArgs identify one audience.
type AudienceIDArgs struct {
	AudienceID string `json:"audienceId"`
}

// UpdateAudienceArgs are the update_custom_audience parameters.
type UpdateAudienceArgs struct {
	AudienceID  string `json:"audienceId"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// LookalikeArgs are the create_lookalike_audience parameters.
type LookalikeArgs struct {
	SourceAudienceID string     `json:"sourceAudienceId"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	Country          string     `json:"country"`
	Ratio            FlexNumber `json:"ratio,omitempty"`
}

// AddUsersArgs are the add_users_to_audience parameters.
type AddUsersArgs struct {
	AudienceID string             `json:"audienceId"`
	Users      []ads.AudienceUser `json:"users"`
	UserType   string             `json:"userType,omitempty"`
}

func (s *Server) registerAudienceTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_custom_audience",
		Description: "Vytvoří vlastní publikum na základě nahraných dat nebo jiných zdrojů",
		InputSchema: objectSchema(map[string]interface{}{
			"name":                 stringProp("Název publika"),
			"subtype":              stringProp("Podtyp publika (např. CUSTOM, WEBSITE, ENGAGEMENT, LOOKALIKE)"),
			"description":          stringProp("Popis publika"),
			"customer_file_source": stringProp("Zdroj dat pro CUSTOM subtype (např. USER_PROVIDED_ONLY, PARTNER_PROVIDED_ONLY)"),
			"rule": map[string]interface{}{
				"type":        "object",
				"description": "Pravidlo pro WEBSITE nebo ENGAGEMENT subtype (JSON objekt dle FB API)",
			},
		}, true, "name", "subtype"),
	}, instrument(s, "create_custom_audience", s.createCustomAudience))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_audiences",
		Description: "Získá seznam dostupných vlastních publik",
		InputSchema: objectSchema(map[string]interface{}{
			"limit": numberProp("Maximální počet publik k zobrazení (číslo)"),
		}, false),
	}, instrument(s, "get_audiences", s.getAudiences))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_audience_details",
		Description: "Získá detailní informace o vlastním publiku",
		InputSchema: objectSchema(map[string]interface{}{
			"audienceId": stringProp("ID publika"),
		}, false, "audienceId"),
	}, instrument(s, "get_audience_details", s.getAudienceDetails))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_custom_audience",
		Description: "Aktualizuje název nebo popis vlastního publika",
		InputSchema: objectSchema(map[string]interface{}{
			"audienceId":  stringProp("ID publika k aktualizaci"),
			"name":        stringProp("Nový název publika"),
			"description": stringProp("Nový popis publika"),
		}, false, "audienceId"),
	}, instrument(s, "update_custom_audience", s.updateCustomAudience))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_custom_audience",
		Description: "Odstraní vlastní publikum",
		InputSchema: objectSchema(map[string]interface{}{
			"audienceId": stringProp("ID publika k odstranění"),
		}, false, "audienceId"),
	}, instrument(s, "delete_custom_audience", s.deleteCustomAudience))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_lookalike_audience",
		Description: "Vytvoří lookalike publikum podobné existujícímu vlastnímu publiku",
		InputSchema: objectSchema(map[string]interface{}{
			"sourceAudienceId": stringProp("ID zdrojového publika"),
			"name":             stringProp("Název nového publika"),
			"description":      stringProp("Popis nového publika"),
			"country":          stringProp("Kód země (např. CZ)"),
			"ratio":            numberProp("Velikost publika jako podíl populace, 0.01 až 0.2. Výchozí: 0.01"),
		}, false, "sourceAudienceId", "name", "country"),
	}, instrument(s, "create_lookalike_audience", s.createLookalikeAudience))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_users_to_audience",
		Description: "Přidá uživatele (hashované identifikátory) do vlastního publika",
		InputSchema: objectSchema(map[string]interface{}{
			"audienceId": stringProp("ID publika"),
			"users": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"schema": stringProp("Schéma záznamu"),
						"data": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "string"},
						},
					},
					"required": []string{"data"},
				},
				"description": "Záznamy uživatelů, každý se seznamem hashovaných hodnot",
			},
			"userType": stringProp("Typ identifikátorů (např. EMAIL, PHONE). Výchozí: EMAIL"),
		}, false, "audienceId", "users"),
	}, instrument(s, "add_users_to_audience", s.addUsersToAudience))
}

func (s *Server) createCustomAudience(ctx context.Context, log *zap.Logger, in CreateAudienceArgs) (string, bool, error) {
	if err := requireParams("name", in.Name, "subtype", in.Subtype); err != nil {
		return "", false, err
	}
	if in.Description == "" || in.CustomerFileSource == "" {
		return "", false, invalidParams("Parametry description a customer_file_source jsou povinné pro CUSTOM subtype.")
	}
	if in.Rule != nil {
		log.Debug("audience rule ignored", zap.String("subtype", in.Subtype))
	}
	r := s.audiences.CreateCustomAudience(ctx, in.Name, in.Description, in.CustomerFileSource, in.Subtype)
	return formatCreateAudience(in.Name, in.Subtype, r), !r.OK(), nil
}

func (s *Server) getAudiences(ctx context.Context, log *zap.Logger, in GetAudiencesArgs) (string, bool, error) {
	limit, err := in.Limit.Int("limit")
	if err != nil {
		return "", false, err
	}
	r := s.audiences.GetCustomAudiences(ctx, limit)
	return formatAudienceList(r), !r.OK(), nil
}

func (s *Server) getAudienceDetails(ctx context.Context, log *zap.Logger, in AudienceIDArgs) (string, bool, error) {
	if err := requireParams("audienceId", in.AudienceID); err != nil {
		return "", false, err
	}
	r := s.audiences.GetCustomAudienceDetails(ctx, in.AudienceID)
	return formatAudienceDetails(r), !r.OK(), nil
}

func (s *Server) updateCustomAudience(ctx context.Context, log *zap.Logger, in UpdateAudienceArgs) (string, bool, error) {
	if err := requireParams("audienceId", in.AudienceID); err != nil {
		return "", false, err
	}
	if in.Name == "" && in.Description == "" {
		return "", false, invalidParams("Musí být poskytnut alespoň jeden parametr k aktualizaci (name, description).")
	}
	r := s.audiences.UpdateCustomAudience(ctx, in.AudienceID, in.Name, in.Description)
	return formatAudienceChange(in.AudienceID, r), !r.OK(), nil
}

func (s *Server) deleteCustomAudience(ctx context.Context, log *zap.Logger, in AudienceIDArgs) (string, bool, error) {
	if err := requireParams("audienceId", in.AudienceID); err != nil {
		return "", false, err
	}
	r := s.audiences.DeleteCustomAudience(ctx, in.AudienceID)
	return formatAudienceChange(in.AudienceID, r), !r.OK(), nil
}

func (s *Server) createLookalikeAudience(ctx context.Context, log *zap.Logger, in LookalikeArgs) (string, bool, error) {
	if err := requireParams("sourceAudienceId", in.SourceAudienceID, "name", in.Name, "country", in.Country); err != nil {
		return "", false, err
	}
	ratio := ads.DefaultLookalikeRatio
	if in.Ratio.IsSet() {
		var err error
		if ratio, err = in.Ratio.Float("ratio"); err != nil {
			return "", false, err
		}
	}
	if err := ads.ValidateRatio(ratio); err != nil {
		return "", false, invalidParams("Poměr lookalike audience musí být mezi 0.01 a 0.2 (1%% až 20%%), obdrženo %g.", ratio)
	}
	lookalike := ads.LookalikeInput{
		SourceAudienceID: in.SourceAudienceID,
		Name:             in.Name,
		Description:      in.Description,
		Country:          in.Country,
		Ratio:            ratio,
	}
	r := s.audiences.CreateLookalikeAudience(ctx, lookalike)
	return formatCreateLookalike(lookalike, r), !r.OK(), nil
}

func (s *Server) addUsersToAudience(ctx context.Context, log *zap.Logger, in AddUsersArgs) (string, bool, error) {
	if err := requireParams("audienceId", in.AudienceID); err != nil {
		return "", false, err
	}
	if len(in.Users) == 0 {
		return "", false, invalidParams("Chybí povinný parametr users.")
	}
	userType := in.UserType
	if userType == "" {
		userType = ads.DefaultUserSchema
	}
	r := s.audiences.AddUsersToCustomAudience(ctx, in.AudienceID, in.Users, userType)
	return formatAudienceChange(in.AudienceID, r), !r.OK(), nil
}
