package domain

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var linkValidate *validator.Validate

func init() {
	linkValidate = validator.New()
	linkValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
}

// LinkRequest accumulates the parameters of an outbound trackable link.
type LinkRequest struct {
	DestinationPath    string         `json:"destinationPath" validate:"required"`
	LinkIdentifier     string         `json:"linkIdentifier" validate:"required"`
	Description        string         `json:"description"`
	PreviewTitle       string         `json:"previewTitle"`
	PreviewDescription string         `json:"previewDescription"`
	PreviewImageURL    string         `json:"previewImageUrl"`
	UTMSource          string         `json:"utmSource"`
	UTMMedium          string         `json:"utmMedium"`
	UTMCampaign        string         `json:"utmCampaign"`
	UTMTerm            string         `json:"utmTerm"`
	UTMContent         string         `json:"utmContent"`
	CustomParameters   map[string]any `json:"customParameters"`
}

func NewLinkRequest(destinationPath, linkIdentifier string) *LinkRequest {
	return &LinkRequest{
		DestinationPath:  destinationPath,
		LinkIdentifier:   linkIdentifier,
		CustomParameters: map[string]any{},
	}
}

func (r *LinkRequest) WithDescription(description string) *LinkRequest {
	r.Description = description
	return r
}

func (r *LinkRequest) WithPreviewTitle(title string) *LinkRequest {
	r.PreviewTitle = title
	return r
}

func (r *LinkRequest) WithPreviewDescription(description string) *LinkRequest {
	r.PreviewDescription = description
	return r
}

func (r *LinkRequest) WithPreviewImageURL(imageURL string) *LinkRequest {
	r.PreviewImageURL = imageURL
	return r
}

func (r *LinkRequest) WithUTMSource(source string) *LinkRequest {
	r.UTMSource = source
	return r
}

func (r *LinkRequest) WithUTMMedium(medium string) *LinkRequest {
	r.UTMMedium = medium
	return r
}

func (r *LinkRequest) WithUTMCampaign(campaign string) *LinkRequest {
	r.UTMCampaign = campaign
	return r
}

func (r *LinkRequest) WithUTMTerm(term string) *LinkRequest {
	r.UTMTerm = term
	return r
}

func (r *LinkRequest) WithUTMContent(content string) *LinkRequest {
	r.UTMContent = content
	return r
}

func (r *LinkRequest) WithCustomParameter(key string, value any) *LinkRequest {
	if r.CustomParameters == nil {
		r.CustomParameters = map[string]any{}
	}
	r.CustomParameters[key] = value
	return r
}

func (r *LinkRequest) WithCustomParameters(params map[string]any) *LinkRequest {
	for key, value := range params {
		r.WithCustomParameter(key, value)
	}
	return r
}

// Build validates the request and assembles its parameter map. Custom
// parameters are merged last and override any built-in key.
func (r *LinkRequest) Build() (LinkParameters, error) {
	if r == nil {
		return LinkParameters{}, fmt.Errorf("%w: link request is nil", ErrInvalidConfiguration)
	}

	if err := linkValidate.Struct(r); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fieldErr.Field())
			}
			return LinkParameters{}, fmt.Errorf("%w: %s required", ErrInvalidConfiguration, strings.Join(fields, ", "))
		}
		return LinkParameters{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	var params LinkParameters
	params.entries.set("path", r.DestinationPath)
	params.entries.set("name", r.LinkIdentifier)

	optionalFields := []struct {
		key   string
		value string
	}{
		{"description", r.Description},
		{"previewTitle", r.PreviewTitle},
		{"previewDescription", r.PreviewDescription},
		{"previewImageUrl", r.PreviewImageURL},
		{"utmSource", r.UTMSource},
		{"utmMedium", r.UTMMedium},
		{"utmCampaign", r.UTMCampaign},
		{"utmTerm", r.UTMTerm},
		{"utmContent", r.UTMContent},
	}
	for _, field := range optionalFields {
		if field.value != "" {
			params.entries.set(field.key, field.value)
		}
	}

	customKeys := make([]string, 0, len(r.CustomParameters))
	for key := range r.CustomParameters {
		customKeys = append(customKeys, key)
	}
	slices.Sort(customKeys)
	for _, key := range customKeys {
		params.entries.set(key, detachValue(r.CustomParameters[key]))
	}

	return params, nil
}

// LinkParameters is the validated, detached parameter map produced by
// LinkRequest.Build.
type LinkParameters struct {
	entries orderedMap[any]
}

func (p LinkParameters) Get(key string) (any, bool) {
	value, ok := p.entries.get(key)
	return detachValue(value), ok
}

func (p LinkParameters) Len() int {
	return p.entries.len()
}

func (p LinkParameters) Keys() []string {
	return p.entries.keyList()
}

func (p LinkParameters) All() iter.Seq2[string, any] {
	return p.entries.all()
}

func (p LinkParameters) Map() map[string]any {
	result := p.entries.toMap()
	for key, value := range result {
		result[key] = detachValue(value)
	}
	return result
}

func (p LinkParameters) MarshalJSON() ([]byte, error) {
	return p.entries.marshalJSON()
}

// detachValue deep-copies the JSON-shaped composites a custom parameter can
// hold. Other values are returned as is.
func detachValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		cloned := make(map[string]any, len(v))
		for key, item := range v {
			cloned[key] = detachValue(item)
		}
		return cloned
	case []any:
		cloned := make([]any, len(v))
		for i, item := range v {
			cloned[i] = detachValue(item)
		}
		return cloned
	case map[string]string:
		cloned := make(map[string]string, len(v))
		for key, item := range v {
			cloned[key] = item
		}
		return cloned
	case []string:
		return slices.Clone(v)
	default:
		return value
	}
}
