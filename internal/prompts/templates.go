// Package prompts holds the prompt templates offered to assistants: campaign
// creation, analysis, optimization, reporting and audience design. Filling a
// template is pure string interpolation.
package prompts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrTemplateNotFound is returned by Fill for an unknown template name.
var ErrTemplateNotFound = errors.New("prompt template not found")

// MissingArgumentsError lists the required arguments absent from a Fill call.
type MissingArgumentsError struct {
	Template string
	Missing  []string
}

func (e *MissingArgumentsError) Error() string {
	return "Chybí povinné argumenty: " + strings.Join(e.Missing, ", ")
}

// Argument describes one template argument.
type Argument struct {
	Name        string
	Description string
	Required    bool
}

// Message is one generated prompt message.
type Message struct {
	Role string
	Text string
}

// Template is a named prompt with declared arguments.
type Template struct {
	// Name is the published prompt name, e.g. "campaign_creation".
	Name        string
	Description string
	Arguments   []Argument
	render      func(args map[string]string) []Message
}

// Messages renders the template without checking required arguments.
func (t *Template) Messages(args map[string]string) []Message {
	return t.render(args)
}

func assistant(text string) []Message {
	return []Message{{Role: "assistant", Text: text}}
}

// registry is keyed by the template key used in Fill, e.g. "campaignCreation".
var registry = map[string]*Template{
	"campaignCreation": {
		Name:        "campaign_creation",
		Description: "Šablona pro vytvoření nové reklamní kampaně na Facebooku",
		Arguments: []Argument{
			{"product", "Název produktu nebo služby", true},
			{"target_audience", "Cílová skupina pro kampaň", true},
			{"budget", "Rozpočet pro kampaň", true},
			{"goal", "Cíl kampaně (konverze, návštěvnost, povědomí)", true},
		},
		render: func(a map[string]string) []Message {
			return assistant(fmt.Sprintf(`Jsem připraven pomoci vám vytvořit novou reklamní kampaň na Facebooku pro produkt "%s" s následujícími parametry:

Cílová skupina: %s
Rozpočet: %s
Cíl kampaně: %s

Pro vytvoření efektivní kampaně potřebuji získat několik detailů:

1. Jaký je hlavní cíl kampaně? (zvýšení prodejů, generování leadů, zvýšení návštěvnosti webu)
2. Jaká je cílová demografická skupina? (věk, pohlaví, zájmy)
3. Jaký je plánovaný denní rozpočet?
4. Jak dlouho by měla kampaň běžet?
5. Jaké jsou klíčové výhody vašeho produktu, které byste chtěli v reklamě zdůraznit?

Po zodpovězení těchto otázek vám mohu pomoci vytvořit kampaň, nastavit cílení a doporučit optimální strategii pro dosažení vašich marketingových cílů.`,
				a["product"], a["target_audience"], a["budget"], a["goal"]))
		},
	},
	"campaignAnalysis": {
		Name:        "campaign_analysis",
		Description: "Šablona pro analýzu výkonu reklamní kampaně",
		Arguments: []Argument{
			{"campaign_id", "ID kampaně pro analýzu", true},
			{"time_period", "Časové období pro analýzu (např. posledních 7 dní, posledních 30 dní)", true},
		},
		render: func(a map[string]string) []Message {
			return assistant(fmt.Sprintf(`Připravuji analýzu výkonu vaší reklamní kampaně s ID %s za období %s.

Pro kompletní analýzu budu sledovat tyto metriky:

1. Celkový dosah a dojem kampaně
2. Míru kliknutí (CTR) a náklady na kliknutí (CPC)
3. Konverze a náklady na konverzi
4. Návratnost investic (ROI)
5. Demografické údaje o publiku, které nejvíce reaguje
6. Výkon podle umístění reklamy (News Feed, Instagram, atd.)

Analýza vám poskytne přehled o tom, jak kampaň funguje, jaké jsou nejúčinnější aspekty a kde je prostor pro optimalizaci pro dosažení lepších výsledků.`,
				a["campaign_id"], a["time_period"]))
		},
	},
	"campaignOptimization": {
		Name:        "campaign_optimization",
		Description: "Šablona pro optimalizaci existující reklamní kampaně",
		Arguments: []Argument{
			{"campaign_id", "ID kampaně pro optimalizaci", true},
			{"current_performance", "Aktuální výkon kampaně (např. nízký CTR, vysoké CPC)", true},
			{"optimization_goal", "Cíl optimalizace (např. snížit CPC, zvýšit konverze)", true},
		},
		render: func(a map[string]string) []Message {
			return assistant(fmt.Sprintf(`Připravuji optimalizační strategii pro vaši reklamní kampaň s ID %s.

Aktuální výkon: %s
Cíl optimalizace: %s

Pro optimalizaci vaší kampaně provedu následující kroky:

1. Analýza současného nastavení a výkonu kampaně
2. Identifikace problematických oblastí na základě aktuálního výkonu
3. Navržení konkrétních optimalizačních kroků pro dosažení vašeho cíle optimalizace
4. Vytvoření plánu pro implementaci změn a monitorování výsledků

Optimalizace se může týkat různých aspektů kampaně, včetně:
- Úpravy cílení publika
- Přepracování kreativního obsahu
- Změny rozpočtu nebo nabídkové strategie
- Úpravy plánu a harmonogramu kampaně
- Změny umístění reklam

Implementací těchto optimalizací by mělo dojít ke zlepšení výkonu kampaně a dosažení vašeho cíle optimalizace.`,
				a["campaign_id"], a["current_performance"], a["optimization_goal"]))
		},
	},
	"campaignReporting": {
		Name:        "campaign_reporting",
		Description: "Šablona pro vytvoření reportu o výkonu reklamních kampaní",
		Arguments: []Argument{
			{"time_period", "Časové období pro report (např. minulý měsíc, poslední čtvrtletí)", true},
			{"campaigns", "Seznam kampaní pro zahrnutí do reportu (ID kampaní oddělené čárkami)", false},
			{"report_format", "Požadovaný formát reportu (stručný přehled, detailní analýza)", false},
		},
		render: func(a map[string]string) []Message {
			scope := "Report bude zahrnovat všechny aktivní kampaně."
			if a["campaigns"] != "" {
				scope = "Zahrnuté kampaně: " + a["campaigns"]
			}
			format := a["report_format"]
			if format == "" {
				format = "detailní analýza"
			}
			return assistant(fmt.Sprintf(`Připravuji report o výkonu vašich reklamních kampaní za období %s.
%s
Formát reportu: %s

Report bude obsahovat:

1. Přehled klíčových metrik pro celé reklamní účty
   - Celkový dosah, imprese a výdaje
   - Průměrné CTR, CPC a konverzní sazba
   - ROI a návratnost reklamních výdajů (ROAS)

2. Porovnání výkonu jednotlivých kampaní
   - Nejvýkonnější a nejméně výkonné kampaně
   - Trendy výkonu v průběhu času

3. Analýza publika
   - Demografické údaje o nejúspěšnějších segmentech
   - Zájmy a chování publika s nejvyšší mírou konverze

4. Doporučení pro optimalizaci
   - Konkrétní kroky pro zlepšení výkonu kampaní
   - Strategická doporučení pro budoucí kampaně

Tento report vám poskytne komplexní přehled o výkonu vašich reklamních aktivit a pomůže identifikovat příležitosti pro zlepšení v dalším období.`,
				a["time_period"], scope, format))
		},
	},
	"audienceCreation": {
		Name:        "audience_creation",
		Description: "Šablona pro vytvoření nové cílové skupiny pro Facebook reklamy",
		Arguments: []Argument{
			{"audience_type", "Typ publika (vlastní, lookalike, uložené)", true},
			{"target_characteristics", "Charakteristiky cílové skupiny", true},
		},
		render: func(a map[string]string) []Message {
			return assistant(fmt.Sprintf(`Připravuji návrh pro vytvoření nové cílové skupiny typu "%s" pro vaše Facebook reklamy.

Požadované charakteristiky cílové skupiny: %s

Pro vytvoření efektivní cílové skupiny potřebuji následující informace:

1. Jaký je hlavní účel této cílové skupiny? (retargeting, akvizice nových zákazníků, apod.)
2. Máte existující data o zákaznících, která můžeme použít? (e-maily, telefonní čísla)
3. Jaké jsou demografické charakteristiky vaší ideální cílové skupiny? (věk, pohlaví, lokalita)
4. Jaké zájmy a chování by měla cílová skupina vykazovat?
5. Máte preferovanou velikost cílové skupiny?

Na základě těchto informací vám mohu pomoci vytvořit optimální cílovou skupinu pro vaše reklamní kampaně, která osloví ty správné uživatele a maximalizuje efektivitu vašich reklamních výdajů.`,
				a["audience_type"], a["target_characteristics"]))
		},
	},
}

// Lookup returns the template registered under key.
func Lookup(key string) (*Template, bool) {
	t, ok := registry[key]
	return t, ok
}

// Names returns the registered template keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Fill renders the template registered under key. Every required argument
// must be present and non-empty; all missing names are reported together.
func Fill(key string, args map[string]string) ([]Message, error) {
	t, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: Šablona s názvem %q neexistuje", ErrTemplateNotFound, key)
	}
	var missing []string
	for _, arg := range t.Arguments {
		if arg.Required && args[arg.Name] == "" {
			missing = append(missing, arg.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingArgumentsError{Template: key, Missing: missing}
	}
	return t.Messages(args), nil
}

// Text joins the text of messages with blank lines.
func Text(messages []Message) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.Text)
	}
	return strings.Join(parts, "\n\n")
}
