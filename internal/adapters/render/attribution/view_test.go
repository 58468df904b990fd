package attribution

import (
	"net/url"
	"testing"
	"time"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSingleRecord(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	u, err := url.Parse("https://x.io/product/123?utm_source=email&utm_campaign=summer&ref=abc&color=red")
	require.NoError(t, err)

	first := true
	output, err := Render(Report{
		Title: "Launch",
		Records: []domain.AttributionRecord{
			domain.NewAttributionRecord(domain.RecordInput{
				URL:            u,
				IsFirstSession: true,
				Source:         domain.SourceDirect,
				CapturedAt:     now.Add(-5 * time.Minute),
			}),
		},
		FirstSession: &first,
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "Launch")
	assert.Contains(t, output, "first session pending: true")
	assert.Contains(t, output, "records: 1")
	assert.Contains(t, output, "direct")
	assert.Contains(t, output, "first session")
	assert.Contains(t, output, "5 minutes ago")
	assert.Contains(t, output, "path: /product/123")
	assert.Contains(t, output, "host: x.io")
	assert.Contains(t, output, "source: email")
	assert.Contains(t, output, "campaign: summer")
	assert.Contains(t, output, "referrer: abc")
	assert.Contains(t, output, "param color: red")
}

func TestRenderRecordWithoutLink(t *testing.T) {
	output, err := Render(Report{
		Records: []domain.AttributionRecord{
			domain.NewAttributionRecord(domain.RecordInput{Source: domain.SourceDeferred}),
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Attribution")
	assert.Contains(t, output, "deferred")
	assert.Contains(t, output, "returning")
	assert.Contains(t, output, "no link")
	assert.NotContains(t, output, "first session pending")
}

func TestRenderEmptyReport(t *testing.T) {
	output, err := Render(Report{Title: "History"}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "records: 0")
	assert.Contains(t, output, "No attribution records.")
}

func TestFormatCaptured(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, "", formatCaptured(time.Time{}, now))
	assert.Equal(t, "just now", formatCaptured(now.Add(-10*time.Second), now))
	assert.Equal(t, "1 minute ago", formatCaptured(now.Add(-time.Minute), now))
	assert.Equal(t, "3 hours ago", formatCaptured(now.Add(-3*time.Hour), now))
	assert.Equal(t, "11:00 on 12 Feb", formatCaptured(now.Add(-48*time.Hour), now))
	assert.Equal(t, "2026-02-14T11:00:00Z", formatCaptured(now, time.Time{}))
}
