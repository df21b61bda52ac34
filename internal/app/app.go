// Package app wires all brandvoice subsystems into a running application.
//
// The App struct owns the full lifecycle: New creates and connects all
// subsystems, Run serves the HTTP health and metrics endpoints, and Shutdown
// tears everything down in order.
//
// For testing, inject mock implementations via functional options
// (WithProfileStore, WithTemplateStore, etc.). When an option is not
// provided, New creates real implementations from the config.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pbdna/brandvoice/internal/config"
	"github.com/pbdna/brandvoice/internal/content"
	"github.com/pbdna/brandvoice/internal/health"
	"github.com/pbdna/brandvoice/internal/observe"
	"github.com/pbdna/brandvoice/internal/store"
	"github.com/pbdna/brandvoice/internal/store/postgres"
	"github.com/pbdna/brandvoice/internal/transcribe"
	"github.com/pbdna/brandvoice/internal/voice"
	"github.com/pbdna/brandvoice/internal/voice/aiestimate"
	"github.com/pbdna/brandvoice/internal/voice/extract"
	"github.com/pbdna/brandvoice/pkg/provider/llm"
	"github.com/pbdna/brandvoice/pkg/provider/stt"
)

// shutdownReadTimeout bounds header reads on the admin HTTP server.
const shutdownReadTimeout = 10 * time.Second

// Providers holds one interface value per provider slot. Nil means the
// provider is not configured. Populated by main.go via the config registry.
type Providers struct {
	LLM llm.Provider
	STT stt.Provider
}

// App owns all subsystem lifetimes and exposes the pipeline operations:
// voice analysis, profile persistence and comparison, template selection,
// content generation, and audio transcription.
type App struct {
	cfg       *config.Config
	providers *Providers

	// Subsystems — initialised in New, torn down in Shutdown.
	analyzer    *voice.Analyzer
	selector    *content.Selector
	generator   *content.Generator
	transcriber *transcribe.Service
	profiles    store.ProfileStore
	templates   store.TemplateStore
	metrics     *observe.Metrics

	httpServer *http.Server

	// closers are called in order during Shutdown.
	closers []func() error

	// stopOnce guards the Shutdown path.
	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithProfileStore injects a profile store instead of creating one from config.
func WithProfileStore(s store.ProfileStore) Option {
	return func(a *App) { a.profiles = s }
}

// WithTemplateStore injects a template store instead of creating one from config.
func WithTemplateStore(s store.TemplateStore) Option {
	return func(a *App) { a.templates = s }
}

// WithMetrics injects a metrics instance instead of using the global default.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// ─── New ─────────────────────────────────────────────────────────────────────

// New creates an App by wiring all subsystems together. The providers struct
// comes from main.go (populated via the config registry). Use Option functions
// to inject test doubles for any subsystem.
//
// New performs all initialisation synchronously: storage connection and
// migration, analyzer assembly, template selector, content generator, and
// the transcription service.
func New(ctx context.Context, cfg *config.Config, providers *Providers, opts ...Option) (*App, error) {
	a := &App{
		cfg:       cfg,
		providers: providers,
	}
	for _, o := range opts {
		o(a)
	}

	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}

	// ── 1. Storage ───────────────────────────────────────────────────────
	if err := a.initStorage(ctx); err != nil {
		return nil, fmt.Errorf("app: init storage: %w", err)
	}

	// ── 2. Analyzer ──────────────────────────────────────────────────────
	a.initAnalyzer()

	// ── 3. Selector + generator ──────────────────────────────────────────
	a.initContent()

	// ── 4. Transcription service ─────────────────────────────────────────
	if providers.STT != nil {
		a.transcriber = transcribe.New(providers.STT)
	}

	return a, nil
}

// ─── Init helpers ────────────────────────────────────────────────────────────

// initStorage connects to PostgreSQL and runs migrations, unless stores were
// injected or no DSN is configured. Without a DSN, profile operations are
// unavailable and templates fall back to the built-in set.
func (a *App) initStorage(ctx context.Context) error {
	if a.profiles != nil && a.templates != nil {
		return nil // both injected
	}

	dsn := a.cfg.Storage.PostgresDSN
	if dsn == "" {
		return nil
	}

	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return err
	}

	if a.profiles == nil {
		a.profiles = postgres.NewProfileStore(pool)
	}
	if a.templates == nil {
		a.templates = postgres.NewTemplateStore(pool)
	}

	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})
	return nil
}

// initAnalyzer assembles the heuristic extractors and, when enabled, the
// LLM-backed estimator.
func (a *App) initAnalyzer() {
	extractors := []voice.Extractor{
		extract.NewStylistic(),
		extract.NewEmotional(),
		extract.NewLinguistic(slog.Default()),
	}

	var analyzerOpts []voice.AnalyzerOption
	if a.cfg.Analysis.MinInputLength > 0 {
		analyzerOpts = append(analyzerOpts, voice.WithMinInputLength(a.cfg.Analysis.MinInputLength))
	}
	if a.cfg.Analysis.AIEstimation && a.providers.LLM != nil {
		analyzerOpts = append(analyzerOpts, voice.WithEstimator(aiestimate.New(a.providers.LLM)))
	}

	a.analyzer = voice.NewAnalyzer(extractors, analyzerOpts...)
}

// initContent builds the template selector and, when an LLM provider is
// available, the content generator.
func (a *App) initContent() {
	var source content.TemplateSource
	if a.templates != nil {
		source = a.templates
	}
	a.selector = content.NewSelector(source)

	if a.providers.LLM != nil {
		a.generator = content.NewGenerator(a.providers.LLM)
	}
}

// ─── Voice analysis ──────────────────────────────────────────────────────────

// AnalyzeVoice runs voice-signature analysis over the conversation turns and
// applies industry adjustments when industry is non-empty.
func (a *App) AnalyzeVoice(ctx context.Context, turns []voice.ConversationTurn, industry string) (*voice.Analysis, error) {
	start := time.Now()

	analysis, err := a.analyzer.Analyze(ctx, turns)
	if err != nil {
		return nil, err
	}
	if industry != "" {
		analysis.Signature = voice.ApplyIndustryAdjustments(analysis.Signature, industry)
	}

	a.metrics.AnalysisDuration.Record(ctx, time.Since(start).Seconds())
	a.metrics.AnalysisConfidence.Record(ctx, analysis.Confidence)
	return analysis, nil
}

// CompareProfiles compares two signatures dimension by dimension.
func (a *App) CompareProfiles(sigA, sigB voice.Signature) voice.Comparison {
	return voice.Compare(sigA, sigB)
}

// ─── Profile persistence ─────────────────────────────────────────────────────

// errNoProfileStore is returned by profile operations when persistence is not
// configured.
var errNoProfileStore = errors.New("app: no profile store configured")

// SaveProfile persists a completed analysis as a new voice profile for userID.
func (a *App) SaveProfile(ctx context.Context, userID string, analysis *voice.Analysis) (*store.Profile, error) {
	if a.profiles == nil {
		return nil, errNoProfileStore
	}
	p := &store.Profile{
		UserID:     userID,
		Signature:  analysis.Signature,
		Confidence: analysis.Confidence,
	}
	if err := a.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfile returns the most recent voice profile for userID.
func (a *App) GetProfile(ctx context.Context, userID string) (*store.Profile, error) {
	if a.profiles == nil {
		return nil, errNoProfileStore
	}
	return a.profiles.Get(ctx, userID)
}

// UpdateProfile merges new dimension scores into a stored profile.
func (a *App) UpdateProfile(ctx context.Context, id string, scores map[voice.Dimension]float64, confidence float64) (*store.Profile, error) {
	if a.profiles == nil {
		return nil, errNoProfileStore
	}
	return a.profiles.UpdateSignature(ctx, id, scores, confidence)
}

// SimilarProfiles returns stored profiles closest to sig, most similar first.
func (a *App) SimilarProfiles(ctx context.Context, sig voice.Signature, limit int) ([]store.Profile, error) {
	if a.profiles == nil {
		return nil, errNoProfileStore
	}
	return a.profiles.Similar(ctx, sig, limit)
}

// ─── Content generation ──────────────────────────────────────────────────────

// SelectTemplate picks the best-fitting template for the signature and
// content type.
func (a *App) SelectTemplate(ctx context.Context, sig voice.Signature, contentType content.ContentType) content.Template {
	return a.selector.Select(ctx, sig, contentType)
}

// GenerateContent runs one content-generation job. When the request carries
// no template, the selector picks one first.
func (a *App) GenerateContent(ctx context.Context, req content.Request) (*content.Result, error) {
	if a.generator == nil {
		return nil, errors.New("app: no LLM provider configured")
	}

	start := time.Now()
	a.fillTemplate(ctx, &req)

	result, err := a.generator.Generate(ctx, req)
	if err != nil {
		a.metrics.RecordProviderError(ctx, a.cfg.Providers.LLM.Name, "llm")
		return nil, err
	}

	a.metrics.GenerationDuration.Record(ctx, time.Since(start).Seconds())
	a.metrics.RecordProviderRequest(ctx, a.cfg.Providers.LLM.Name, "llm", "ok")
	a.metrics.RecordGeneratedContent(ctx, string(req.ContentType), result.VoiceMatchScore)
	return result, nil
}

// BatchGenerate runs up to the batch limit of generation jobs concurrently,
// selecting templates for any request that carries none.
func (a *App) BatchGenerate(ctx context.Context, reqs []content.Request) (*content.BatchResult, error) {
	if a.generator == nil {
		return nil, errors.New("app: no LLM provider configured")
	}

	start := time.Now()
	for i := range reqs {
		a.fillTemplate(ctx, &reqs[i])
	}

	result, err := a.generator.BatchGenerate(ctx, reqs)
	if err != nil {
		return nil, err
	}

	a.metrics.GenerationDuration.Record(ctx, time.Since(start).Seconds())
	for _, item := range result.Successful {
		a.metrics.RecordGeneratedContent(ctx, string(reqs[item.RequestIndex].ContentType), item.Result.VoiceMatchScore)
	}
	return result, nil
}

// fillTemplate selects a template for requests that carry none.
func (a *App) fillTemplate(ctx context.Context, req *content.Request) {
	if req.Template != nil {
		return
	}
	t := a.selector.Select(ctx, req.Signature, req.ContentType)
	req.Template = &t
}

// ─── Transcription ───────────────────────────────────────────────────────────

// errNoSTTProvider is returned by transcription operations when no STT
// provider is configured.
var errNoSTTProvider = errors.New("app: no STT provider configured")

// Transcribe transcribes a single recording.
func (a *App) Transcribe(ctx context.Context, rec transcribe.Recording) (*transcribe.Transcription, error) {
	if a.transcriber == nil {
		return nil, errNoSTTProvider
	}
	start := time.Now()
	t, err := a.transcriber.Transcribe(ctx, rec)
	if err != nil {
		a.metrics.RecordProviderError(ctx, a.cfg.Providers.STT.Name, "stt")
		return nil, err
	}
	a.metrics.TranscriptionDuration.Record(ctx, time.Since(start).Seconds())
	a.metrics.RecordProviderRequest(ctx, a.cfg.Providers.STT.Name, "stt", "ok")
	return t, nil
}

// BatchTranscribe transcribes up to the batch limit of recordings
// concurrently.
func (a *App) BatchTranscribe(ctx context.Context, recordings []transcribe.Recording) (*transcribe.BatchResult, error) {
	if a.transcriber == nil {
		return nil, errNoSTTProvider
	}
	start := time.Now()
	result, err := a.transcriber.BatchTranscribe(ctx, recordings)
	if err != nil {
		return nil, err
	}
	a.metrics.TranscriptionDuration.Record(ctx, time.Since(start).Seconds())
	return result, nil
}

// ─── Run ─────────────────────────────────────────────────────────────────────

// Run serves the admin HTTP endpoints (/healthz, /readyz, /metrics) on the
// configured listen address and blocks until ctx is cancelled or the server
// fails. With no listen address configured, Run blocks until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Server.ListenAddr == "" {
		slog.Info("no listen address configured; skipping admin HTTP server")
		<-ctx.Done()
		return ctx.Err()
	}

	mux := http.NewServeMux()
	a.healthHandler().Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	a.httpServer = &http.Server{
		Addr:              a.cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: shutdownReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("admin HTTP server listening", "addr", a.cfg.Server.ListenAddr)
		var err error
		if tls := a.cfg.Server.TLS; tls != nil {
			err = a.httpServer.ListenAndServeTLS(tls.CertFile, tls.KeyFile)
		} else {
			err = a.httpServer.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("app: http server: %w", err)
	}
}

// healthHandler builds the health handler with checks for configured
// dependencies.
func (a *App) healthHandler() *health.Handler {
	var checkers []health.Checker

	if a.cfg.Storage.PostgresDSN != "" && a.profiles != nil {
		checkers = append(checkers, health.Checker{
			Name: "database",
			Check: func(ctx context.Context) error {
				_, err := a.profiles.Similar(ctx, voice.Signature{}, 1)
				return err
			},
		})
	}
	if a.providers.LLM != nil {
		checkers = append(checkers, health.Checker{
			Name: "llm",
			Check: func(context.Context) error {
				_, err := a.providers.LLM.CountTokens(nil)
				return err
			},
		})
	}

	return health.New(checkers...)
}

// ─── Shutdown ────────────────────────────────────────────────────────────────

// Shutdown tears down all subsystems in reverse-init order. It respects the
// context deadline: if ctx expires before all closers finish, remaining
// closers are skipped and the context error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		slog.Info("shutting down", "closers", len(a.closers))

		// Stop serving first.
		if a.httpServer != nil {
			if err := a.httpServer.Shutdown(ctx); err != nil {
				slog.Warn("http server shutdown error", "err", err)
			}
		}

		// Run closers in order.
		for i, closer := range a.closers {
			select {
			case <-ctx.Done():
				slog.Warn("shutdown deadline exceeded", "remaining", len(a.closers)-i)
				shutdownErr = ctx.Err()
				return
			default:
			}
			if err := closer(); err != nil {
				slog.Warn("closer error", "index", i, "err", err)
			}
		}

		slog.Info("shutdown complete")
	})
	return shutdownErr
}
