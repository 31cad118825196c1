package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/patrickwarner/fbads-mcp/internal/prompts"
	"go.uber.org/zap"
)

// Prompt fill outcomes recorded in metrics.
const (
	fillOK          = "ok"
	fillNotFound    = "not_found"
	fillMissingArgs = "missing_args"
)

// GeneratePromptArgs are the generate_campaign_prompt parameters.
type GeneratePromptArgs struct {
	TemplateName string         `json:"templateName"`
	Variables    map[string]any `json:"variables"`
}

func (s *Server) registerPromptTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_campaign_prompt",
		Description: "Vygeneruje prompt pro Claude AI pro vytvoření kampaně na základě šablony",
		InputSchema: objectSchema(map[string]interface{}{
			"templateName": stringProp("Název šablony promptu. Dostupné šablony: " + strings.Join(prompts.Names(), ", ")),
			"variables": map[string]interface{}{
				"type":                 "object",
				"description":          "Objekt s proměnnými pro vyplnění šablony (např. {\"product\": \"XYZ\", \"budget\": \"1000\"})",
				"additionalProperties": map[string]interface{}{"type": []string{"string", "number", "boolean", "null"}},
			},
		}, false, "templateName", "variables"),
	}, instrument(s, "generate_campaign_prompt", s.generateCampaignPrompt))
}

func (s *Server) generateCampaignPrompt(ctx context.Context, log *zap.Logger, in GeneratePromptArgs) (string, bool, error) {
	if in.TemplateName == "" || in.Variables == nil {
		return "", false, invalidParams("Chybí povinné parametry: templateName, variables.")
	}
	messages, err := s.fill(in.TemplateName, stringVariables(in.Variables))
	if err != nil {
		log.Error("prompt generation failed", zap.String("template", in.TemplateName), zap.Error(err))
		return "❌ Chyba při generování promptu: " + promptErrorText(err), true, nil
	}
	return fmt.Sprintf("📝 Vygenerovaný prompt pro šablonu \"%s\":\n\n%s", in.TemplateName, prompts.Text(messages)), false, nil
}

// fill renders a template and records the outcome.
func (s *Server) fill(key string, args map[string]string) ([]prompts.Message, error) {
	messages, err := prompts.Fill(key, args)
	var missing *prompts.MissingArgumentsError
	switch {
	case err == nil:
		s.metrics.IncrementPromptFills(key, fillOK)
	case errors.As(err, &missing):
		s.metrics.IncrementPromptFills(key, fillMissingArgs)
	default:
		s.metrics.IncrementPromptFills(key, fillNotFound)
	}
	return messages, err
}

// promptErrorText drops the English sentinel prefix from a not-found error.
func promptErrorText(err error) string {
	if errors.Is(err, prompts.ErrTemplateNotFound) {
		if _, detail, ok := strings.Cut(err.Error(), ": "); ok {
			return detail
		}
	}
	return err.Error()
}

// registerPrompts publishes every template as an MCP prompt under its
// snake_case name.
func (s *Server) registerPrompts(server *mcp.Server) {
	for _, key := range prompts.Names() {
		tpl, _ := prompts.Lookup(key)
		args := make([]*mcp.PromptArgument, 0, len(tpl.Arguments))
		for _, a := range tpl.Arguments {
			args = append(args, &mcp.PromptArgument{Name: a.Name, Description: a.Description, Required: a.Required})
		}
		server.AddPrompt(&mcp.Prompt{
			Name:        tpl.Name,
			Description: tpl.Description,
			Arguments:   args,
		}, s.promptHandler(key, tpl.Description))
	}
}

func (s *Server) promptHandler(key, description string) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var args map[string]string
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		messages, err := s.fill(key, args)
		if err != nil {
			s.logger.Warn("prompt request rejected", zap.String("template", key), zap.Error(err))
			return nil, err
		}
		out := make([]*mcp.PromptMessage, 0, len(messages))
		for _, m := range messages {
			out = append(out, &mcp.PromptMessage{Role: mcp.Role(m.Role), Content: &mcp.TextContent{Text: m.Text}})
		}
		return &mcp.GetPromptResult{Description: description, Messages: out}, nil
	}
}
