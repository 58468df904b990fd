package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributionURLNilYieldsAbsentFields(t *testing.T) {
	t.Parallel()

	parsed := ParseAttributionURL(nil)

	assert.Nil(t, parsed.RouteHost)
	assert.Nil(t, parsed.RoutePath)
	assert.Equal(t, 0, parsed.Query.Len())
	assert.True(t, parsed.Marketing.IsEmpty())
	assert.Empty(t, parsed.Custom)
}

func TestParseAttributionURLExtractsRouteQueryAndMarketing(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://x.io/product/123?utm_source=email&utm_campaign=summer&ref=abc&color=red")
	require.NoError(t, err)

	parsed := ParseAttributionURL(u)

	require.NotNil(t, parsed.RouteHost)
	require.NotNil(t, parsed.RoutePath)
	assert.Equal(t, "x.io", *parsed.RouteHost)
	assert.Equal(t, "/product/123", *parsed.RoutePath)
	assert.Equal(t, []string{"utm_source", "utm_campaign", "ref", "color"}, parsed.Query.Keys())
	assert.Equal(t, Marketing{
		MarketingSource:   "email",
		MarketingCampaign: "summer",
		MarketingReferrer: "abc",
	}, parsed.Marketing)
	assert.Equal(t, map[string]any{"color": "red"}, parsed.Custom)
}

func TestParseAttributionURLRecognizesEveryMarketingKey(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("app://open?utm_source=s&utm_medium=m&utm_campaign=c&utm_term=t&utm_content=ct&ref=r&campaign_id=42")
	require.NoError(t, err)

	parsed := ParseAttributionURL(u)

	assert.Equal(t, Marketing{
		MarketingSource:             "s",
		MarketingMedium:             "m",
		MarketingCampaign:           "c",
		MarketingTerm:               "t",
		MarketingContent:            "ct",
		MarketingReferrer:           "r",
		MarketingCampaignIdentifier: "42",
	}, parsed.Marketing)
	assert.Empty(t, parsed.Custom)
	assert.Equal(t, 7, parsed.Query.Len())
}

func TestParseAttributionURLQueryHandling(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		raw      string
		wantKeys []string
		wantMap  map[string]string
	}{
		{
			name:     "percent decoded once",
			raw:      "https://x.io/?q=a%2520b&name=J%C3%BCrgen",
			wantKeys: []string{"q", "name"},
			wantMap:  map[string]string{"q": "a%20b", "name": "Jürgen"},
		},
		{
			name:     "duplicate key keeps first position and last value",
			raw:      "https://x.io/?a=1&b=2&a=3",
			wantKeys: []string{"a", "b"},
			wantMap:  map[string]string{"a": "3", "b": "2"},
		},
		{
			name:     "keys are case sensitive",
			raw:      "https://x.io/?UTM_SOURCE=x&utm_source=y",
			wantKeys: []string{"UTM_SOURCE", "utm_source"},
			wantMap:  map[string]string{"UTM_SOURCE": "x", "utm_source": "y"},
		},
		{
			name:     "key without value",
			raw:      "https://x.io/?flag&k=v",
			wantKeys: []string{"flag", "k"},
			wantMap:  map[string]string{"flag": "", "k": "v"},
		},
		{
			name:     "malformed escapes are skipped",
			raw:      "https://x.io/?bad=%zz&ok=1",
			wantKeys: []string{"ok"},
			wantMap:  map[string]string{"ok": "1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, err := url.Parse(tc.raw)
			require.NoError(t, err)

			parsed := ParseAttributionURL(u)
			assert.Equal(t, tc.wantKeys, parsed.Query.Keys())
			assert.Equal(t, tc.wantMap, parsed.Query.Map())
		})
	}
}

func TestParseAttributionURLUppercaseMarketingKeyStaysCustom(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://x.io/?UTM_SOURCE=x")
	require.NoError(t, err)

	parsed := ParseAttributionURL(u)
	assert.True(t, parsed.Marketing.IsEmpty())
	assert.Equal(t, map[string]any{"UTM_SOURCE": "x"}, parsed.Custom)
}

func TestParseAttributionURLCustomSchemeRoute(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("myapp://product/123?ref=abc")
	require.NoError(t, err)

	parsed := ParseAttributionURL(u)
	require.NotNil(t, parsed.RouteHost)
	require.NotNil(t, parsed.RoutePath)
	assert.Equal(t, "product", *parsed.RouteHost)
	assert.Equal(t, "/123", *parsed.RoutePath)
}

func TestParseAttributionString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
		ok   bool
	}{
		{name: "empty", raw: "", ok: false},
		{name: "whitespace", raw: "   ", ok: false},
		{name: "no scheme or host", raw: "just some words", ok: false},
		{name: "bad escape", raw: "https://x.io/%zz", ok: false},
		{name: "control character", raw: "https://x.io/\x7f", ok: false},
		{name: "https", raw: "https://x.io/product/123", ok: true},
		{name: "custom scheme", raw: "myapp://open", ok: true},
		{name: "surrounding whitespace", raw: "  https://x.io/a  ", ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, ok := ParseAttributionString(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.NotNil(t, u)
			} else {
				assert.Nil(t, u)
			}
		})
	}
}
