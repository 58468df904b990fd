package application

import (
	"sync"

	"github.com/deeponelabs/deepone-go/internal/domain"
)

// LaunchCaptureGuard lets each launch through automatic capture at most once,
// however many lifecycle signals the host emits for it. The engine claims the
// configure-time launch here too, so both paths share one flag per launch.
type LaunchCaptureGuard struct {
	mu        sync.Mutex
	processed map[domain.LaunchToken]struct{}
}

func NewLaunchCaptureGuard() *LaunchCaptureGuard {
	return &LaunchCaptureGuard{processed: map[domain.LaunchToken]struct{}{}}
}

func (g *LaunchCaptureGuard) ShouldProcess(token domain.LaunchToken) bool {
	token = token.Normalize()

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.processed[token]; ok {
		return false
	}
	g.processed[token] = struct{}{}
	return true
}

func (g *LaunchCaptureGuard) MarkProcessed(token domain.LaunchToken) domain.LaunchToken {
	token = token.Normalize()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.processed[token] = struct{}{}
	return token
}
