package application

import (
	"fmt"
	"strings"

	"github.com/deeponelabs/deepone-go/internal/domain"
)

type Credentials struct {
	LiveKey string
	TestKey string
}

// APIKey resolves the key for the mode. Development mode never falls back to
// the live key.
func (c Credentials) APIKey(developmentMode bool) (string, error) {
	key, mode := c.LiveKey, "live"
	if developmentMode {
		key, mode = c.TestKey, "test"
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: no %s api key configured", domain.ErrMissingCredentials, mode)
	}

	return key, nil
}
