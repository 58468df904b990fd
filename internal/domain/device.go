package domain

// DeviceContext carries what the host already knows about the device. Empty
// fields are filled in by the fingerprint collector.
type DeviceContext struct {
	OS       string
	Model    string
	DeviceID string
	Locale   string
}

type DeviceFingerprint struct {
	OS           string `json:"os"`
	Model        string `json:"model"`
	DeviceID     string `json:"deviceId"`
	LanguageCode string `json:"languageCode"`
}

func (f DeviceFingerprint) Map() map[string]string {
	return map[string]string{
		"os":           f.OS,
		"model":        f.Model,
		"deviceId":     f.DeviceID,
		"languageCode": f.LanguageCode,
	}
}
