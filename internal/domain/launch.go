package domain

import "strings"

// LaunchToken identifies one OS-level launch. It only lives for the process.
type LaunchToken string

// InitialLaunch stands in for launches whose host supplied no token.
const InitialLaunch LaunchToken = "initial"

func (t LaunchToken) Normalize() LaunchToken {
	trimmed := LaunchToken(strings.TrimSpace(string(t)))
	if trimmed == "" {
		return InitialLaunch
	}
	return trimmed
}

type LaunchPayload struct {
	Token LaunchToken
	URL   string
}

type LaunchSignalKind string

const (
	LaunchSignalCreate LaunchSignalKind = "create"
	LaunchSignalStart  LaunchSignalKind = "start"
	LaunchSignalResume LaunchSignalKind = "resume"
)

type LaunchSignal struct {
	Kind    LaunchSignalKind
	Payload LaunchPayload
}
