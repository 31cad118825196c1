package prompts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillCampaignCreation(t *testing.T) {
	msgs, err := Fill("campaignCreation", map[string]string{
		"product": "X", "target_audience": "Y", "budget": "Z", "goal": "W",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "assistant", msgs[0].Role)
	for _, s := range []string{`"X"`, "Cílová skupina: Y", "Rozpočet: Z", "Cíl kampaně: W"} {
		assert.Contains(t, msgs[0].Text, s)
	}
}

func TestFillMissingArguments(t *testing.T) {
	_, err := Fill("campaignCreation", map[string]string{
		"product": "X", "target_audience": "Y", "budget": "Z",
	})
	var missing *MissingArgumentsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"goal"}, missing.Missing)
	assert.Contains(t, err.Error(), "goal")

	_, err = Fill("campaignAnalysis", map[string]string{"campaign_id": ""})
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Chybí povinné argumenty: campaign_id, time_period", err.Error())
}

func TestFillUnknownTemplate(t *testing.T) {
	_, err := Fill("lead_generation", nil)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Contains(t, err.Error(), `"lead_generation"`)
}

func TestFillReportingOptionalArguments(t *testing.T) {
	msgs, err := Fill("campaignReporting", map[string]string{"time_period": "Q1"})
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Text, "Report bude zahrnovat všechny aktivní kampaně.")
	assert.Contains(t, msgs[0].Text, "Formát reportu: detailní analýza")

	msgs, err = Fill("campaignReporting", map[string]string{
		"time_period": "Q1", "campaigns": "1,2", "report_format": "stručný přehled",
	})
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Text, "Zahrnuté kampaně: 1,2")
	assert.Contains(t, msgs[0].Text, "Formát reportu: stručný přehled")
}

func TestNamesAndLookup(t *testing.T) {
	assert.Equal(t, []string{
		"audienceCreation", "campaignAnalysis", "campaignCreation",
		"campaignOptimization", "campaignReporting",
	}, Names())

	tpl, ok := Lookup("audienceCreation")
	require.True(t, ok)
	assert.Equal(t, "audience_creation", tpl.Name)
	assert.Len(t, tpl.Arguments, 2)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	assert.Equal(t, "a\n\nb", Text([]Message{{Text: "a"}, {Text: "b"}}))
}
