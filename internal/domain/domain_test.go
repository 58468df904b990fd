package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributionFailedErrorMatchesSentinelAndCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewAttributionFailedError("verify", cause)

	assert.ErrorIs(t, err, ErrAttributionFailed)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "attribution failed: verify: connection reset")

	var failed *AttributionFailedError
	assert.True(t, errors.As(err, &failed))
	assert.Equal(t, "verify", failed.Op)
}

func TestAttributionFailedErrorAlwaysCarriesCause(t *testing.T) {
	t.Parallel()

	err := NewAttributionFailedError("", nil)
	assert.NotNil(t, err.Cause)
	assert.EqualError(t, err, "attribution failed: unknown cause")
}

func TestLaunchTokenNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, InitialLaunch, LaunchToken("").Normalize())
	assert.Equal(t, InitialLaunch, LaunchToken("  ").Normalize())
	assert.Equal(t, LaunchToken("abc"), LaunchToken(" abc ").Normalize())
}

func TestResultHelpers(t *testing.T) {
	t.Parallel()

	ok := Success("https://x.io/l/1")
	value, err := ok.Unwrap()
	assert.True(t, ok.Ok())
	assert.NoError(t, err)
	assert.Equal(t, "https://x.io/l/1", value)

	failed := Failure[string](ErrNotConfigured)
	assert.False(t, failed.Ok())
	assert.ErrorIs(t, failed.Err, ErrNotConfigured)
}

func TestQueryParametersSetKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	q := NewQueryParameters([2]string{"a", "1"}, [2]string{"b", "2"})
	q.Set("a", "3")

	var seen [][2]string
	for key, value := range q.All() {
		seen = append(seen, [2]string{key, value})
	}
	assert.Equal(t, [][2]string{{"a", "3"}, {"b", "2"}}, seen)
}
