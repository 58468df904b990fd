package domain

// VerifyResult is what the attribution service reports for a device lookup.
// IsFirstSession is nil when the service did not say.
type VerifyResult struct {
	IsFirstSession *bool
	Link           string
	Data           map[string]any
}

func (r VerifyResult) HasLink() bool {
	_, ok := ParseAttributionString(r.Link)
	return ok
}
