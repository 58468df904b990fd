package domain

const (
	MarketingSource             = "source"
	MarketingMedium             = "medium"
	MarketingCampaign           = "campaign"
	MarketingTerm               = "term"
	MarketingContent            = "content"
	MarketingReferrer           = "referrer"
	MarketingCampaignIdentifier = "campaignIdentifier"
)

var marketingQueryKeys = map[string]string{
	"utm_source":   MarketingSource,
	"utm_medium":   MarketingMedium,
	"utm_campaign": MarketingCampaign,
	"utm_term":     MarketingTerm,
	"utm_content":  MarketingContent,
	"ref":          MarketingReferrer,
	"campaign_id":  MarketingCampaignIdentifier,
}

// Marketing holds the recognized campaign fields of an attribution event.
type Marketing map[string]string

func MarketingFieldForQueryKey(key string) (string, bool) {
	field, ok := marketingQueryKeys[key]
	return field, ok
}

func (m Marketing) Get(field string) (string, bool) {
	value, ok := m[field]
	return value, ok
}

func (m Marketing) IsEmpty() bool {
	return len(m) == 0
}

func (m Marketing) Clone() Marketing {
	cloned := make(Marketing, len(m))
	for field, value := range m {
		cloned[field] = value
	}
	return cloned
}
