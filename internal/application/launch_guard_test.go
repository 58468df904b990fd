package application

import (
	"testing"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLaunchCaptureGuardProcessesEachTokenOnce(t *testing.T) {
	guard := NewLaunchCaptureGuard()

	assert.True(t, guard.ShouldProcess("launch-1"))
	assert.False(t, guard.ShouldProcess("launch-1"))
	assert.True(t, guard.ShouldProcess("launch-2"))
}

func TestLaunchCaptureGuardMarkProcessedBlocksLaterCapture(t *testing.T) {
	guard := NewLaunchCaptureGuard()

	token := guard.MarkProcessed("  ")
	assert.Equal(t, domain.InitialLaunch, token)
	assert.False(t, guard.ShouldProcess(""))
	assert.False(t, guard.ShouldProcess(domain.InitialLaunch))
}

func TestLaunchCaptureGuardNormalizesTokens(t *testing.T) {
	guard := NewLaunchCaptureGuard()

	assert.True(t, guard.ShouldProcess(" launch-1 "))
	assert.False(t, guard.ShouldProcess("launch-1"))
}
