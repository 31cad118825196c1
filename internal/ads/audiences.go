package ads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/patrickwarner/fbads-mcp/internal/graph"
	"go.uber.org/zap"
)

// Audience subtypes accepted by the platform.
const (
	SubtypeCustom     = "CUSTOM"
	SubtypeLookalike  = "LOOKALIKE"
	SubtypeWebsite    = "WEBSITE"
	SubtypeEngagement = "ENGAGEMENT"
)

// Lookalike ratio bounds and default.
const (
	MinLookalikeRatio     = 0.01
	MaxLookalikeRatio     = 0.20
	DefaultLookalikeRatio = 0.01
)

// DefaultUserSchema is the member schema used when none is given.
const DefaultUserSchema = "EMAIL"

// ErrInvalidRatio is returned when a lookalike ratio is outside [0.01, 0.20].
var ErrInvalidRatio = errors.New("lookalike ratio out of range")

const invalidRatioMessage = "Poměr lookalike audience musí být mezi 0.01 a 0.2 (1% až 20%)"

// ValidateRatio checks a lookalike ratio against the platform bounds.
func ValidateRatio(ratio float64) error {
	if !(ratio >= MinLookalikeRatio && ratio <= MaxLookalikeRatio) {
		return fmt.Errorf("%w: %g", ErrInvalidRatio, ratio)
	}
	return nil
}

var (
	audienceListFields = []string{
		"id", "name", "description", "subtype", "approximate_count",
		"time_created", "time_updated", "customer_file_source", "data_source", "rule",
	}
	audienceDetailFields = append(append([]string{}, audienceListFields...),
		"operation_status", "permission_for_actions")
)

// Audience is a custom audience as exposed to callers. Counts and timestamps
// are passed through exactly as the platform reported them.
type Audience struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Subtype              string `json:"subtype,omitempty"`
	ApproximateCount     any    `json:"approximateCount,omitempty"`
	TimeCreated          any    `json:"timeCreated,omitempty"`
	TimeUpdated          any    `json:"timeUpdated,omitempty"`
	CustomerFileSource   string `json:"customerFileSource,omitempty"`
	DataSource           any    `json:"dataSource,omitempty"`
	Rule                 any    `json:"rule,omitempty"`
	OperationStatus      any    `json:"operationStatus,omitempty"`
	PermissionForActions any    `json:"permissionForActions,omitempty"`
}

// audienceFromNode maps a Graph custom audience object.
func audienceFromNode(n graph.Node) Audience {
	return Audience{
		ID:                   n.ID(),
		Name:                 n.String("name"),
		Description:          n.String("description"),
		Subtype:              n.String("subtype"),
		ApproximateCount:     passThrough(n, "approximate_count"),
		TimeCreated:          passThrough(n, "time_created"),
		TimeUpdated:          passThrough(n, "time_updated"),
		CustomerFileSource:   n.String("customer_file_source"),
		DataSource:           passThrough(n, "data_source"),
		Rule:                 passThrough(n, "rule"),
		OperationStatus:      passThrough(n, "operation_status"),
		PermissionForActions: passThrough(n, "permission_for_actions"),
	}
}

// LookalikeInput describes a lookalike audience derived from SourceAudienceID.
type LookalikeInput struct {
	SourceAudienceID string
	Name             string
	Description      string
	Country          string
	Ratio            float64
}

type lookalikeSpec struct {
	Country string  `json:"country"`
	Ratio   float64 `json:"ratio"`
	Type    string  `json:"type"`
}

// AudienceUser is one member record. Data must already be normalized and
// hashed the way the platform expects; this layer sends it verbatim.
type AudienceUser struct {
	Schema string   `json:"schema,omitempty"`
	Data   []string `json:"data"`
}

type usersPayload struct {
	Schema string     `json:"schema"`
	Data   [][]string `json:"data"`
}

// Audiences manages custom audiences of one ad account.
type Audiences struct {
	api     graph.API
	account string
	logger  *zap.Logger
}

// NewAudiences creates the audience operations for accountID.
func NewAudiences(api graph.API, accountID string, logger *zap.Logger) *Audiences {
	return &Audiences{api: api, account: graph.AccountID(accountID), logger: logger}
}

// CreateCustomAudience creates a custom audience and returns its id.
func (a *Audiences) CreateCustomAudience(ctx context.Context, name, description, customerFileSource, subtype string) Result[string] {
	if subtype == "" {
		subtype = SubtypeCustom
	}
	node, err := a.api.Post(ctx, a.account, "customaudiences", graph.Params{
		"name":                 name,
		"description":          description,
		"customer_file_source": customerFileSource,
		"subtype":              subtype,
	})
	if err != nil {
		return failure[string](a.logger, "vytváření vlastního publika", err, zap.String("name", name))
	}
	a.logger.Info("custom audience created", zap.String("audience_id", node.ID()), zap.String("subtype", subtype))
	return Succeed(node.ID(), "Vlastní publikum bylo úspěšně vytvořeno")
}

// GetCustomAudiences lists up to limit custom audiences.
func (a *Audiences) GetCustomAudiences(ctx context.Context, limit int) Result[[]Audience] {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	nodes, err := a.api.Edge(ctx, a.account, "customaudiences", audienceListFields, graph.Params{"limit": limit})
	if err != nil {
		return failure[[]Audience](a.logger, "získávání vlastních publik", err)
	}
	audiences := make([]Audience, 0, len(nodes))
	for _, n := range nodes {
		audiences = append(audiences, audienceFromNode(n))
	}
	return Succeed(audiences, "")
}

// GetCustomAudienceDetails reads the extended field set of one audience.
func (a *Audiences) GetCustomAudienceDetails(ctx context.Context, audienceID string) Result[Audience] {
	node, err := a.api.Get(ctx, audienceID, audienceDetailFields)
	if err != nil {
		return failure[Audience](a.logger, "získávání detailů vlastního publika", err, zap.String("audience_id", audienceID))
	}
	return Succeed(audienceFromNode(node), "")
}

// UpdateCustomAudience changes name and/or description; empty values are left alone.
func (a *Audiences) UpdateCustomAudience(ctx context.Context, audienceID, name, description string) Result[struct{}] {
	params := graph.Params{}
	if name != "" {
		params["name"] = name
	}
	if description != "" {
		params["description"] = description
	}
	if _, err := a.api.Post(ctx, audienceID, "", params); err != nil {
		return failure[struct{}](a.logger, "aktualizaci vlastního publika", err, zap.String("audience_id", audienceID))
	}
	return SucceedEmpty[struct{}]("Vlastní publikum bylo úspěšně aktualizováno")
}

// DeleteCustomAudience deletes an audience.
func (a *Audiences) DeleteCustomAudience(ctx context.Context, audienceID string) Result[struct{}] {
	if err := a.api.Delete(ctx, audienceID); err != nil {
		return failure[struct{}](a.logger, "odstraňování vlastního publika", err, zap.String("audience_id", audienceID))
	}
	a.logger.Info("custom audience deleted", zap.String("audience_id", audienceID))
	return SucceedEmpty[struct{}]("Vlastní publikum bylo úspěšně odstraněno")
}

// CreateLookalikeAudience creates a lookalike of in.SourceAudienceID. The ratio
// is checked before anything is sent.
func (a *Audiences) CreateLookalikeAudience(ctx context.Context, in LookalikeInput) Result[string] {
	if err := ValidateRatio(in.Ratio); err != nil {
		a.logger.Warn("lookalike ratio rejected", zap.Float64("ratio", in.Ratio))
		return Fail[string](invalidRatioMessage)
	}

	spec, err := json.Marshal(lookalikeSpec{Country: in.Country, Ratio: in.Ratio, Type: "CUSTOM_AUDIENCE"})
	if err != nil {
		return failure[string](a.logger, "vytváření lookalike audience", err)
	}
	node, err := a.api.Post(ctx, a.account, "customaudiences", graph.Params{
		"name":               in.Name,
		"description":        in.Description,
		"origin_audience_id": in.SourceAudienceID,
		"subtype":            SubtypeLookalike,
		"lookalike_spec":     string(spec),
	})
	if err != nil {
		return failure[string](a.logger, "vytváření lookalike audience", err,
			zap.String("origin_audience_id", in.SourceAudienceID))
	}
	a.logger.Info("lookalike audience created",
		zap.String("audience_id", node.ID()),
		zap.String("origin_audience_id", in.SourceAudienceID),
		zap.Float64("ratio", in.Ratio))
	return Succeed(node.ID(), "Lookalike audience bylo úspěšně vytvořeno")
}

// AddUsersToCustomAudience uploads member records. Each user's data becomes
// one row of the payload under the lower-cased schema userType.
func (a *Audiences) AddUsersToCustomAudience(ctx context.Context, audienceID string, users []AudienceUser, userType string) Result[struct{}] {
	if userType == "" {
		userType = DefaultUserSchema
	}
	payload := usersPayload{Schema: strings.ToLower(userType), Data: make([][]string, 0, len(users))}
	for _, u := range users {
		payload.Data = append(payload.Data, u.Data)
	}

	if _, err := a.api.Post(ctx, audienceID, "users", graph.Params{"payload": payload}); err != nil {
		return failure[struct{}](a.logger, "přidávání uživatelů do vlastního publika", err, zap.String("audience_id", audienceID))
	}
	a.logger.Info("users added to audience", zap.String("audience_id", audienceID), zap.Int("users", len(users)))
	return SucceedEmpty[struct{}]("Uživatelé byli úspěšně přidáni do vlastního publika")
}
