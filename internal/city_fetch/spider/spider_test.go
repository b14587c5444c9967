package spider

import (
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"city-fetch/internal/city_fetch/model"
)

func TestNewFromConfigValidation(t *testing.T) {
	client := resty.New()
	log := zap.NewNop()

	_, err := NewFromConfig(model.SourceInfo{}, client, log)
	require.Error(t, err)
	require.Contains(t, err.Error(), "name")
	require.Contains(t, err.Error(), "agency")
	require.Contains(t, err.Error(), "type")

	_, err = NewFromConfig(model.SourceInfo{
		Name:   "x",
		Agency: "X",
		Type:   model.TypeLegistar,
		Legistar: &model.LegistarConfig{
			CalendarURL: "https://example.org/Calendar.aspx",
		},
	}, client, log)
	require.Error(t, err)
	require.Contains(t, err.Error(), "legistar.start_year")

	_, err = NewFromConfig(model.SourceInfo{
		Name:       "x",
		Agency:     "X",
		Type:       model.TypeCivicClerk,
		CivicClerk: &model.CivicClerkConfig{},
	}, client, log)
	require.Error(t, err)
	require.Contains(t, err.Error(), "civicclerk.api_base_url")
	require.Contains(t, err.Error(), "civicclerk.portal_base_url")
	require.Contains(t, err.Error(), "civicclerk.category_ids")

	_, err = NewFromConfig(model.SourceInfo{
		Name:     "x",
		Agency:   "X",
		Type:     "granicus",
		Highbond: &model.HighbondConfig{BaseURL: "https://example.org"},
	}, client, log)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown type")

	_, err = NewFromConfig(model.SourceInfo{
		Name:     "x",
		Agency:   "X",
		Type:     model.TypeHighbond,
		Timezone: "Mars/Olympus",
		Highbond: &model.HighbondConfig{BaseURL: "https://example.org"},
	}, client, log)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid timezone")
}

func TestNewFromConfigBuildsEachType(t *testing.T) {
	client := resty.New()
	log := zap.NewNop()

	for _, cfg := range model.DefaultSources() {
		sp, err := NewFromConfig(cfg, client, log)
		require.NoError(t, err, "source %q", cfg.Name)
		require.Equal(t, cfg.Name, sp.Name())
	}
}
