package domain

import (
	"encoding/json"
	"net/url"
	"time"
)

type RecordSource string

const (
	SourceDirect   RecordSource = "direct"
	SourceDeferred RecordSource = "deferred"
	SourceManual   RecordSource = "manual"
	SourceLaunch   RecordSource = "launch"
)

type RecordInput struct {
	URL            *url.URL
	IsFirstSession bool
	Source         RecordSource
	CapturedAt     time.Time
}

// AttributionRecord is an immutable snapshot of one attribution event.
// Accessors hand out copies.
type AttributionRecord struct {
	originURL      *string
	routeHost      *string
	routePath      *string
	isFirstSession bool
	query          QueryParameters
	marketing      Marketing
	custom         map[string]any
	source         RecordSource
	capturedAt     time.Time
}

func NewAttributionRecord(in RecordInput) AttributionRecord {
	parsed := ParseAttributionURL(in.URL)

	record := AttributionRecord{
		routeHost:      parsed.RouteHost,
		routePath:      parsed.RoutePath,
		isFirstSession: in.IsFirstSession,
		query:          parsed.Query,
		marketing:      parsed.Marketing,
		custom:         parsed.Custom,
		source:         in.Source,
		capturedAt:     in.CapturedAt,
	}
	if in.URL != nil {
		origin := in.URL.String()
		record.originURL = &origin
	}

	return record
}

func (r AttributionRecord) OriginURL() (string, bool) {
	return optional(r.originURL)
}

func (r AttributionRecord) RouteHost() (string, bool) {
	return optional(r.routeHost)
}

func (r AttributionRecord) RoutePath() (string, bool) {
	return optional(r.routePath)
}

func (r AttributionRecord) IsFirstSession() bool {
	return r.isFirstSession
}

func (r AttributionRecord) QueryParameters() QueryParameters {
	return r.query.Clone()
}

func (r AttributionRecord) Marketing() Marketing {
	return r.marketing.Clone()
}

func (r AttributionRecord) CustomParameters() map[string]any {
	custom := make(map[string]any, len(r.custom))
	for key, value := range r.custom {
		custom[key] = value
	}
	return custom
}

func (r AttributionRecord) Source() RecordSource {
	return r.source
}

func (r AttributionRecord) CapturedAt() time.Time {
	return r.capturedAt
}

type recordJSON struct {
	OriginURL        *string         `json:"originUrl,omitempty"`
	RouteHost        *string         `json:"routeHost,omitempty"`
	RoutePath        *string         `json:"routePath,omitempty"`
	IsFirstSession   bool            `json:"isFirstSession"`
	QueryParameters  QueryParameters `json:"queryParameters"`
	Marketing        Marketing       `json:"marketing"`
	CustomParameters map[string]any  `json:"customParameters"`
	Source           RecordSource    `json:"source,omitempty"`
	CapturedAt       *time.Time      `json:"capturedAt,omitempty"`
}

func (r AttributionRecord) MarshalJSON() ([]byte, error) {
	view := recordJSON{
		OriginURL:        r.originURL,
		RouteHost:        r.routeHost,
		RoutePath:        r.routePath,
		IsFirstSession:   r.isFirstSession,
		QueryParameters:  r.query,
		Marketing:        r.Marketing(),
		CustomParameters: r.CustomParameters(),
		Source:           r.source,
	}
	if !r.capturedAt.IsZero() {
		capturedAt := r.capturedAt
		view.CapturedAt = &capturedAt
	}

	return json.Marshal(view)
}

func optional(value *string) (string, bool) {
	if value == nil {
		return "", false
	}
	return *value, true
}
