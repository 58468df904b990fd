package domain

import (
	"net/url"
	"strings"
)

// ParsedURL is the route and query decomposition of an attribution URL.
// Nil route fields mean the URL carried no such component.
type ParsedURL struct {
	RouteHost *string
	RoutePath *string
	Query     QueryParameters
	Marketing Marketing
	Custom    map[string]any
}

// ParseAttributionURL never fails; a nil URL yields an empty result.
func ParseAttributionURL(u *url.URL) ParsedURL {
	parsed := ParsedURL{
		Marketing: Marketing{},
		Custom:    map[string]any{},
	}
	if u == nil {
		return parsed
	}

	if host := u.Hostname(); host != "" {
		parsed.RouteHost = &host
	}
	if path := u.Path; path != "" {
		parsed.RoutePath = &path
	}

	parsed.Query = parseQuery(u.RawQuery)
	for key, value := range parsed.Query.All() {
		if field, ok := MarketingFieldForQueryKey(key); ok {
			parsed.Marketing[field] = value
			continue
		}
		parsed.Custom[key] = value
	}

	return parsed
}

// ParseAttributionString parses raw into a URL usable for attribution. It
// reports false for empty input, unparseable input, or a string that carries
// neither a scheme nor a host.
func ParseAttributionString(raw string) (*url.URL, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, false
	}
	if !IsAttributable(u) {
		return nil, false
	}

	return u, true
}

func IsAttributable(u *url.URL) bool {
	return u != nil && (u.Scheme != "" || u.Host != "")
}
