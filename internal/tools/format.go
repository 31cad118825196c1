package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/patrickwarner/fbads-mcp/internal/ads"
	"github.com/patrickwarner/fbads-mcp/internal/graph"
)

const notAvailable = "N/A"

// graphTimeLayouts are the timestamp forms the platform returns.
var graphTimeLayouts = []string{"2006-01-02T15:04:05-0700", time.RFC3339, "2006-01-02"}

func parseGraphTime(s string) (time.Time, bool) {
	for _, layout := range graphTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders a platform timestamp as a Czech date, or the raw value
// when it does not parse.
func formatDate(s string) string {
	if s == "" {
		return notAvailable
	}
	t, ok := parseGraphTime(s)
	if !ok {
		return s
	}
	return t.Format("2. 1. 2006")
}

// formatDateTime is formatDate with the time of day.
func formatDateTime(s string) string {
	if s == "" {
		return notAvailable
	}
	t, ok := parseGraphTime(s)
	if !ok {
		return s
	}
	return t.Format("2. 1. 2006 15:04:05")
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// amountSet reports whether a money field is present and non-zero.
func amountSet(v *float64) bool {
	return v != nil && *v != 0
}

// metricValue renders a raw metric value as the platform sent it.
func metricValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return formatAmount(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// metricFloat parses a metric value; anything non-numeric is 0.
func metricFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case json.Number:
		f, _ := val.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f
	default:
		return 0
	}
}

// formatCreateCampaign renders the create_campaign outcome.
func formatCreateCampaign(r ads.Result[string]) string {
	if !r.OK() {
		return "❌ Chyba při vytváření kampaně: " + r.Message()
	}
	id, _ := r.Value()
	return fmt.Sprintf("✅ Kampaň byla úspěšně vytvořena!\n\nID kampaně: %s\n\n%s", id, r.Message())
}

// formatCampaignList renders the get_campaigns outcome.
func formatCampaignList(r ads.Result[[]ads.Campaign]) string {
	if !r.OK() {
		return "❌ Chyba při získávání kampaní: " + r.Message()
	}
	campaigns, _ := r.Value()
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Seznam reklamních kampaní (celkem %d):\n\n", len(campaigns))
	if len(campaigns) == 0 {
		b.WriteString("Nebyly nalezeny žádné kampaně odpovídající zadaným kritériím.")
		return b.String()
	}
	for i, c := range campaigns {
		budget := "Není nastaven"
		if amountSet(c.DailyBudget) {
			budget = formatAmount(*c.DailyBudget)
		}
		fmt.Fprintf(&b, "%d. **%s** (ID: %s)\n", i+1, c.Name, c.ID)
		fmt.Fprintf(&b, "   - Cíl: %s\n", orNA(c.Objective))
		fmt.Fprintf(&b, "   - Status: %s\n", orNA(c.Status))
		fmt.Fprintf(&b, "   - Denní rozpočet: %s\n", budget)
		fmt.Fprintf(&b, "   - Vytvořeno: %s\n\n", formatDate(c.CreatedTime))
	}
	return b.String()
}

// formatCampaignDetails renders the get_campaign_details outcome.
func formatCampaignDetails(r ads.Result[ads.Campaign]) string {
	c, ok := r.Value()
	if !ok {
		return "❌ Chyba při získávání detailů kampaně: " + r.Message()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Detaily kampaně \"%s\" (ID: %s):\n\n", c.Name, c.ID)

	b.WriteString("- **Základní informace:**\n")
	fmt.Fprintf(&b, "  - Cíl: %s\n", orNA(c.Objective))
	fmt.Fprintf(&b, "  - Status: %s\n", orNA(c.Status))
	fmt.Fprintf(&b, "  - Typ nákupu: %s\n", orNA(c.BuyingType))

	b.WriteString("\n- **Rozpočet a finance:**\n")
	budgets := []struct {
		label string
		value *float64
	}{
		{"Denní rozpočet", c.DailyBudget},
		{"Celoživotní rozpočet", c.LifetimeBudget},
		{"Limit výdajů", c.SpendCap},
		{"Zbývající rozpočet", c.BudgetRemaining},
	}
	anyBudget := false
	for _, bud := range budgets {
		if amountSet(bud.value) {
			anyBudget = true
			fmt.Fprintf(&b, "  - %s: %s\n", bud.label, formatAmount(*bud.value))
		}
	}
	if !anyBudget {
		b.WriteString("  (Žádné informace o rozpočtu)\n")
	}

	b.WriteString("\n- **Časové údaje:**\n")
	fmt.Fprintf(&b, "  - Vytvořeno: %s\n", formatDateTime(c.CreatedTime))
	if c.StartTime != "" {
		fmt.Fprintf(&b, "  - Začátek: %s\n", formatDateTime(c.StartTime))
	}
	if c.StopTime != "" {
		fmt.Fprintf(&b, "  - Konec: %s\n", formatDateTime(c.StopTime))
	}
	if c.StartTime == "" && c.StopTime == "" {
		b.WriteString("  (Žádné informace o časech)\n")
	}

	if len(c.SpecialAdCategories) > 0 {
		fmt.Fprintf(&b, "\n- **Speciální kategorie reklam:** %s\n", strings.Join(c.SpecialAdCategories, ", "))
	}
	return b.String()
}

// formatUpdateCampaign renders the update_campaign outcome.
func formatUpdateCampaign(campaignID string, r ads.Result[struct{}]) string {
	if !r.OK() {
		return fmt.Sprintf("❌ Chyba při aktualizaci kampaně (ID: %s): %s", campaignID, r.Message())
	}
	return fmt.Sprintf("✅ Kampaň (ID: %s) byla úspěšně aktualizována!\n\n%s", campaignID, r.Message())
}

// formatDeleteCampaign renders the delete_campaign outcome.
func formatDeleteCampaign(campaignID string, r ads.Result[struct{}]) string {
	if !r.OK() {
		return fmt.Sprintf("❌ Chyba při odstraňování kampaně (ID: %s): %s", campaignID, r.Message())
	}
	return fmt.Sprintf("✅ Kampaň (ID: %s) byla úspěšně odstraněna!\n\n%s", campaignID, r.Message())
}

// formatInsights renders campaign or account insights. The first row is
// shown as the summary with derived CPC, CTR and CPM; further rows are
// listed one by one.
func formatInsights(subject string, tr ads.TimeRange, metrics []string, r ads.Result[[]ads.InsightRow]) string {
	if !r.OK() {
		return "❌ Chyba při získávání analytických dat: " + r.Message()
	}
	rows, ok := r.Value()
	if !ok || len(rows) == 0 {
		return strings.TrimSpace(fmt.Sprintf("ℹ️ Nebyla nalezena žádná analytická data pro %s v období %s - %s. %s",
			subject, tr.Since, tr.Until, r.Message()))
	}

	summary := rows[0]
	since, until := summary.DateStart, summary.DateStop
	if since == "" {
		since = tr.Since
	}
	if until == "" {
		until = tr.Until
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 Analytická data pro %s za období %s - %s:\n\n", subject, since, until)
	b.WriteString("**Souhrn:**\n")
	writeMetrics(&b, summary, metrics, "- ", "    ")

	impressions := int64(metricFloat(summary.Metrics["impressions"]))
	clicks := int64(metricFloat(summary.Metrics["clicks"]))
	spend := metricFloat(summary.Metrics["spend"])
	if clicks > 0 {
		fmt.Fprintf(&b, "- calculated_cpc: %.2f\n", spend/float64(clicks))
	}
	if impressions > 0 {
		fmt.Fprintf(&b, "- calculated_ctr: %.2f%%\n", float64(clicks)/float64(impressions)*100)
		fmt.Fprintf(&b, "- calculated_cpm: %.2f\n", spend/float64(impressions)*1000)
	}

	if len(rows) > 1 {
		b.WriteString("\n**Detailní přehled (po dnech/rozpadech):**\n")
		for i, row := range rows {
			fmt.Fprintf(&b, "\n* Záznam %d (%s - %s):\n", i+1, row.DateStart, row.DateStop)
			writeMetrics(&b, row, metrics, "  - ", "      ")
		}
	}
	return b.String()
}

// writeMetrics lists the metrics present in row in the requested order.
// The actions metric is expanded into one line per action type.
func writeMetrics(b *strings.Builder, row ads.InsightRow, metrics []string, prefix, actionPrefix string) {
	node := graph.Node(row.Metrics)
	for _, m := range metrics {
		if !node.Has(m) {
			continue
		}
		if actions := node.Nodes(m); m == "actions" && actions != nil {
			fmt.Fprintf(b, "%s%s:\n", prefix, m)
			for _, action := range actions {
				fmt.Fprintf(b, "%s- %s: %s\n", actionPrefix, action.String("action_type"), action.String("value"))
			}
			continue
		}
		fmt.Fprintf(b, "%s%s: %s\n", prefix, m, metricValue(node[m]))
	}
}

// formatComparison renders compare_campaigns as one block per campaign in
// input order.
func formatComparison(tr ads.TimeRange, metrics []string, r ads.Result[[]ads.CampaignComparison]) string {
	if !r.OK() {
		return "❌ Chyba při porovnávání kampaní: " + r.Message()
	}
	list, _ := r.Value()
	var b strings.Builder
	fmt.Fprintf(&b, "⚖️ Porovnání kampaní za období %s - %s (celkem %d):\n", tr.Since, tr.Until, len(list))
	for i, c := range list {
		fmt.Fprintf(&b, "\n%d. **%s** (ID: %s)\n", i+1, c.Name, c.ID)
		if len(c.Insights) == 0 {
			b.WriteString("   (Žádná data za zvolené období)\n")
			continue
		}
		for _, m := range metrics {
			if v, ok := c.Insights[m]; ok {
				fmt.Fprintf(&b, "   - %s: %s\n", m, formatAmount(v))
			}
		}
	}
	return b.String()
}

// formatDemographics renders get_campaign_demographics.
func formatDemographics(campaignID string, tr ads.TimeRange, r ads.Result[ads.Demographics]) string {
	if !r.OK() {
		return "❌ Chyba při získávání demografických údajů: " + r.Message()
	}
	d, ok := r.Value()
	if !ok {
		return strings.TrimSpace(fmt.Sprintf("ℹ️ Nebyla nalezena žádná demografická data pro kampaň %s v období %s - %s. %s",
			campaignID, tr.Since, tr.Until, r.Message()))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "👥 Demografické údaje kampaně (ID: %s) za období %s - %s:\n", campaignID, tr.Since, tr.Until)
	writeSegments(&b, "Podle věku", d.Age)
	writeSegments(&b, "Podle pohlaví", d.Gender)
	writeSegments(&b, "Podle pohlaví a věku", d.AgeGender)
	return b.String()
}

func writeSegments(b *strings.Builder, title string, segments map[string]ads.DemographicMetrics) {
	fmt.Fprintf(b, "\n**%s:**\n", title)
	keys := make([]string, 0, len(segments))
	for k := range segments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m := segments[k]
		fmt.Fprintf(b, "- %s: zobrazení %d, kliknutí %d, útrata %.2f, dosah %d\n", k, m.Impressions, m.Clicks, m.Spend, m.Reach)
	}
}

// formatCreateAudience renders create_custom_audience.
func formatCreateAudience(name, subtype string, r ads.Result[string]) string {
	if !r.OK() {
		return "❌ Chyba: " + r.Message()
	}
	id, _ := r.Value()
	return strings.TrimSpace(fmt.Sprintf("✅ Vlastní publikum \"%s\" (typ: %s) vytvořeno (ID: %s). %s", name, subtype, id, r.Message()))
}

// formatAudienceList renders get_audiences.
func formatAudienceList(r ads.Result[[]ads.Audience]) string {
	if !r.OK() {
		return "❌ Chyba při získávání publik: " + r.Message()
	}
	audiences, _ := r.Value()
	var b strings.Builder
	fmt.Fprintf(&b, "👥 Seznam dostupných vlastních publik (celkem %d):\n\n", len(audiences))
	if len(audiences) == 0 {
		b.WriteString("Nebyly nalezeny žádná publika.")
		return b.String()
	}
	for i, a := range audiences {
		size := metricValue(a.ApproximateCount)
		if size == "" || size == "0" {
			size = notAvailable
		}
		description := a.Description
		if description == "" {
			description = "-"
		}
		fmt.Fprintf(&b, "%d. **%s** (ID: %s)\n", i+1, a.Name, a.ID)
		fmt.Fprintf(&b, "   - Typ: %s\n", orNA(a.Subtype))
		fmt.Fprintf(&b, "   - Přibližná velikost: %s\n", size)
		fmt.Fprintf(&b, "   - Popis: %s\n\n", description)
	}
	return b.String()
}

// formatAudienceDetails renders get_audience_details.
func formatAudienceDetails(r ads.Result[ads.Audience]) string {
	a, ok := r.Value()
	if !ok {
		return "❌ Chyba při získávání detailů publika: " + r.Message()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "👥 Detaily publika \"%s\" (ID: %s):\n\n", a.Name, a.ID)
	fmt.Fprintf(&b, "- Typ: %s\n", orNA(a.Subtype))
	fmt.Fprintf(&b, "- Popis: %s\n", orNA(a.Description))
	fmt.Fprintf(&b, "- Přibližná velikost: %s\n", orNA(metricValue(a.ApproximateCount)))
	fmt.Fprintf(&b, "- Zdroj dat zákazníků: %s\n", orNA(a.CustomerFileSource))
	fmt.Fprintf(&b, "- Vytvořeno: %s\n", orNA(metricValue(a.TimeCreated)))
	fmt.Fprintf(&b, "- Aktualizováno: %s\n", orNA(metricValue(a.TimeUpdated)))
	if a.OperationStatus != nil {
		fmt.Fprintf(&b, "- Stav: %s\n", metricValue(a.OperationStatus))
	}
	if a.Rule != nil {
		fmt.Fprintf(&b, "- Pravidlo: %s\n", metricValue(a.Rule))
	}
	return b.String()
}

// formatAudienceChange renders update, delete and add-users outcomes.
func formatAudienceChange(audienceID string, r ads.Result[struct{}]) string {
	if !r.OK() {
		return fmt.Sprintf("❌ %s (ID: %s)", r.Message(), audienceID)
	}
	return fmt.Sprintf("✅ %s (ID: %s)", r.Message(), audienceID)
}

// formatCreateLookalike renders create_lookalike_audience.
func formatCreateLookalike(in ads.LookalikeInput, r ads.Result[string]) string {
	if !r.OK() {
		return "❌ Chyba při vytváření lookalike audience: " + r.Message()
	}
	id, _ := r.Value()
	return fmt.Sprintf("✅ Lookalike publikum \"%s\" vytvořeno (ID: %s)\n\n- Zdrojové publikum: %s\n- Země: %s\n- Poměr: %s %%\n\n%s",
		in.Name, id, in.SourceAudienceID, in.Country, formatAmount(math.Round(in.Ratio*10000)/100), r.Message())
}
