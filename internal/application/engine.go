package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/deeponelabs/deepone-go/internal/domain"
	"github.com/deeponelabs/deepone-go/internal/ports"
)

// Handler receives exactly one result per processing attempt: a record or an
// error, never both.
type Handler func(domain.Result[domain.AttributionRecord])

type ConfigureOptions struct {
	Device          domain.DeviceContext
	Launch          domain.LaunchPayload
	DevelopmentMode bool
	Handler         Handler
	// SkipDeferredLookup disables the server-side lookup when the launch
	// carries no URL.
	SkipDeferredLookup bool
}

type EngineConfig struct {
	Service      ports.AttributionService
	Sessions     *FirstSessionStore
	Fingerprints ports.DeviceFingerprinter
	Credentials  Credentials
	Executor     ports.Executor
	Journal      ports.RecordJournal
	Clock        ports.Clock
	Logger       *slog.Logger
}

type engineState int

const (
	stateUnconfigured engineState = iota
	stateConfiguring
	stateReady
)

func (s engineState) String() string {
	switch s {
	case stateUnconfigured:
		return "unconfigured"
	case stateConfiguring:
		return "configuring"
	case stateReady:
		return "ready"
	default:
		return fmt.Sprintf("engineState(%d)", int(s))
	}
}

// Engine turns launch URLs, manual calls and deferred lookups into
// attribution records. Every path funnels through processAttribution.
type Engine struct {
	service      ports.AttributionService
	sessions     *FirstSessionStore
	fingerprints ports.DeviceFingerprinter
	credentials  Credentials
	executor     ports.Executor
	journal      ports.RecordJournal
	clock        ports.Clock
	logger       *slog.Logger
	guard        *LaunchCaptureGuard

	mu              sync.Mutex
	state           engineState
	handler         Handler
	developmentMode bool

	inflight sync.WaitGroup
}

func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Executor == nil {
		cfg.Executor = ports.InlineExecutor{}
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Engine{
		service:      cfg.Service,
		sessions:     cfg.Sessions,
		fingerprints: cfg.Fingerprints,
		credentials:  cfg.Credentials,
		executor:     cfg.Executor,
		journal:      cfg.Journal,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
		guard:        NewLaunchCaptureGuard(),
	}
}

// Configure stores the handler and mode, then resolves the launch: a URL in
// the launch payload is processed synchronously and the deferred lookup is
// skipped; otherwise the attribution service is asked for a matched link.
// A deferred signal is dropped whenever the app was opened by a direct link.
func (e *Engine) Configure(ctx context.Context, opts ConfigureOptions) error {
	if opts.Handler == nil {
		return fmt.Errorf("%w: handler is required", domain.ErrInvalidConfiguration)
	}

	e.mu.Lock()
	if e.state != stateUnconfigured {
		e.mu.Unlock()
		return domain.ErrAlreadyConfigured
	}
	e.state = stateConfiguring
	e.handler = opts.Handler
	e.developmentMode = opts.DevelopmentMode
	e.mu.Unlock()

	token := e.guard.MarkProcessed(opts.Launch.Token)
	e.logger.Debug("attribution engine configuring",
		"launch_token", token,
		"development_mode", opts.DevelopmentMode,
	)

	if u, ok := domain.ParseAttributionString(opts.Launch.URL); ok {
		e.processAttribution(ctx, u, domain.SourceDirect)
		e.setState(stateReady)
		return nil
	}

	e.setState(stateReady)
	if opts.SkipDeferredLookup {
		e.logger.Debug("deferred attribution lookup skipped", "launch_token", token)
		return nil
	}

	e.lookupDeferred(ctx, opts.Device)
	return nil
}

// Track processes a URL on behalf of the host. It reports false, without
// touching first-session state, when raw is empty or not a usable URL.
func (e *Engine) Track(ctx context.Context, raw string) (bool, error) {
	if !e.configured() {
		return false, domain.ErrNotConfigured
	}

	u, ok := domain.ParseAttributionString(raw)
	if !ok {
		e.logger.Debug("track ignored unusable url", "input_length", len(raw))
		return false, nil
	}

	e.processAttribution(ctx, u, domain.SourceManual)
	return true, nil
}

func (e *Engine) TrackURL(ctx context.Context, u *url.URL) (bool, error) {
	if !e.configured() {
		return false, domain.ErrNotConfigured
	}
	if !domain.IsAttributable(u) {
		return false, nil
	}

	e.processAttribution(ctx, u, domain.SourceManual)
	return true, nil
}

// ProcessIncomingLaunch is the automatic capture path. A launch is processed
// at most once per token, and never when Configure already consumed it.
func (e *Engine) ProcessIncomingLaunch(ctx context.Context, payload domain.LaunchPayload) (bool, error) {
	if !e.configured() {
		return false, domain.ErrNotConfigured
	}

	u, ok := domain.ParseAttributionString(payload.URL)
	if !ok {
		return false, nil
	}

	if !e.guard.ShouldProcess(payload.Token) {
		e.logger.Debug("launch already processed, skipping", "launch_token", payload.Token.Normalize())
		return false, nil
	}

	e.processAttribution(ctx, u, domain.SourceLaunch)
	return true, nil
}

func (e *Engine) OnLaunchSignal(ctx context.Context, signal domain.LaunchSignal) bool {
	processed, err := e.ProcessIncomingLaunch(ctx, signal.Payload)
	if err != nil {
		e.logger.Debug("launch signal ignored",
			"kind", signal.Kind,
			"launch_token", signal.Payload.Token.Normalize(),
			"error", err,
		)
		return false
	}

	return processed
}

// ListenForLaunches feeds launch signals to OnLaunchSignal until signals is
// closed or ctx is done.
func (e *Engine) ListenForLaunches(ctx context.Context, signals <-chan domain.LaunchSignal) {
	for {
		select {
		case <-ctx.Done():
			return
		case signal, ok := <-signals:
			if !ok {
				return
			}
			e.OnLaunchSignal(ctx, signal)
		}
	}
}

// CreateLink validates request and asks the attribution service for a link.
// Validation, credential and configuration failures complete synchronously
// without a network call; service results arrive through the executor.
func (e *Engine) CreateLink(ctx context.Context, request *domain.LinkRequest, completion func(domain.Result[string])) {
	if completion == nil {
		completion = func(domain.Result[string]) {}
	}

	if !e.configured() {
		completion(domain.Failure[string](domain.ErrNotConfigured))
		return
	}

	params, err := request.Build()
	if err != nil {
		completion(domain.Failure[string](err))
		return
	}

	apiKey, err := e.credentials.APIKey(e.isDevelopment())
	if err != nil {
		completion(domain.Failure[string](err))
		return
	}

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		link, err := e.service.CreateLink(ctx, params, apiKey)
		result := domain.Success(link)
		if err != nil {
			e.logger.Warn("create link failed", "error", err)
			result = domain.Failure[string](domain.NewAttributionFailedError("create link", err))
		}

		e.executor.Execute(func() { completion(result) })
	}()
}

// CreateLinkAwait blocks until CreateLink completes or ctx is done. It must
// not be called from the executor's own context when that executor queues.
func (e *Engine) CreateLinkAwait(ctx context.Context, request *domain.LinkRequest) (string, error) {
	done := make(chan domain.Result[string], 1)
	e.CreateLink(ctx, request, func(result domain.Result[string]) {
		done <- result
	})

	select {
	case result := <-done:
		return result.Unwrap()
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (e *Engine) Clear(ctx context.Context) error {
	if err := e.sessions.Reset(ctx); err != nil {
		return fmt.Errorf("reset first session state: %w", err)
	}

	e.logger.Info("first session state reset")
	return nil
}

func (e *Engine) FirstSession(ctx context.Context) (bool, error) {
	return e.sessions.Read(ctx)
}

// Wait blocks until asynchronous lookups and link requests have delivered
// their results to the executor.
func (e *Engine) Wait() {
	e.inflight.Wait()
}

func (e *Engine) lookupDeferred(ctx context.Context, device domain.DeviceContext) {
	apiKey, err := e.credentials.APIKey(e.isDevelopment())
	if err != nil {
		e.logger.Warn("deferred attribution lookup unavailable", "error", err)
		e.dispatch(domain.Failure[domain.AttributionRecord](err))
		return
	}

	fingerprint := e.collectFingerprint(ctx, device)

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		result, err := e.service.Verify(ctx, fingerprint, apiKey)
		if err != nil {
			e.logger.Warn("deferred attribution lookup failed", "error", err)
			e.dispatch(domain.Failure[domain.AttributionRecord](domain.NewAttributionFailedError("verify", err)))
			return
		}

		if result.IsFirstSession != nil {
			e.logger.Debug("attribution service reported first session", "first_session", *result.IsFirstSession)
		}

		u, _ := domain.ParseAttributionString(result.Link)
		e.processAttribution(ctx, u, domain.SourceDeferred)
	}()
}

func (e *Engine) collectFingerprint(ctx context.Context, device domain.DeviceContext) domain.DeviceFingerprint {
	fallback := domain.DeviceFingerprint{
		OS:           device.OS,
		Model:        device.Model,
		DeviceID:     device.DeviceID,
		LanguageCode: device.Locale,
	}
	if e.fingerprints == nil {
		return fallback
	}

	fingerprint, err := e.fingerprints.Collect(ctx, device)
	if err != nil {
		e.logger.Warn("device fingerprint unavailable, using host context", "error", err)
		return fallback
	}

	return fingerprint
}

// processAttribution consumes the first-session flag, builds the record and
// hands it to the handler. u may be nil for a deferred lookup without a link.
func (e *Engine) processAttribution(ctx context.Context, u *url.URL, source domain.RecordSource) {
	first, err := e.sessions.ConsumeFirst(ctx)
	if err != nil {
		e.logger.Warn("first session state unavailable", "error", err)
		first = false
	}

	record := domain.NewAttributionRecord(domain.RecordInput{
		URL:            u,
		IsFirstSession: first,
		Source:         source,
		CapturedAt:     e.clock.Now(),
	})

	if e.journal != nil {
		if err := e.journal.Append(ctx, record); err != nil {
			e.logger.Warn("append attribution journal", "error", err)
		}
	}

	routePath, _ := record.RoutePath()
	e.logger.Info("attribution processed",
		"source", source,
		"first_session", first,
		"route_path", routePath,
		"marketing_fields", len(record.Marketing()),
	)

	e.dispatch(domain.Success(record))
}

func (e *Engine) dispatch(result domain.Result[domain.AttributionRecord]) {
	e.mu.Lock()
	handler := e.handler
	e.mu.Unlock()

	if handler == nil {
		return
	}

	e.executor.Execute(func() { handler(result) })
}

func (e *Engine) configured() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state != stateUnconfigured
}

func (e *Engine) isDevelopment() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.developmentMode
}

func (e *Engine) setState(state engineState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = state
}
