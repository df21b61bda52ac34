package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrInsufficientInput is returned by [Analyzer.Analyze] when the combined
// transcript is shorter than the configured minimum. Analysis refuses to
// proceed rather than producing a signature from noise.
var ErrInsufficientInput = errors.New("voice: insufficient input for analysis")

// defaultMinInputLength is the minimum combined transcript length (in bytes)
// required before analysis runs.
const defaultMinInputLength = 50

// ConversationTurn is one question/answer pair from a recorded conversation.
// Turns are owned by the caller; the analyzer only reads them.
type ConversationTurn struct {
	// QuestionID identifies the question this turn answers.
	QuestionID string

	// Transcription is the transcribed answer text.
	Transcription string

	// Metadata carries caller-defined annotations (conversation ID, audio
	// source). Opaque to the analyzer.
	Metadata map[string]string
}

// Extractor turns raw text into a partial dimension mapping. Implementations
// must be pure and stateless: same text, same scores, no side effects. A
// partial mapping is expected — extractors score only the dimensions their
// signals cover. On internal failure an extractor returns an empty mapping
// instead of an error; analysis degrades, it never aborts.
type Extractor interface {
	Extract(text string) map[Dimension]float64
}

// Estimator supplements heuristic extraction with model-derived dimension
// scores. Best-effort by contract: any transport or parse failure yields an
// empty mapping, never an error.
type Estimator interface {
	Estimate(ctx context.Context, text string, turns int) map[Dimension]float64
}

// Diagnostics describes how an analysis run went. Returned alongside the
// signature for observability and confidence auditing.
type Diagnostics struct {
	// TextLength is the length in bytes of the combined transcript.
	TextLength int

	// ConversationTurns is the number of non-empty turns analyzed.
	ConversationTurns int

	// AnalysisDimensions is the number of dimensions in the fused signature.
	AnalysisDimensions int

	// ProcessingTime is the wall-clock duration of the analysis.
	ProcessingTime time.Duration
}

// Analysis is the complete result of one voice analysis run.
type Analysis struct {
	Signature   Signature
	Confidence  float64
	Diagnostics Diagnostics
}

// Analyzer fuses the output of several signal extractors and an optional
// AI estimator into a voice signature with an attached confidence score.
// Safe for concurrent use; the analyzer itself holds no per-request state.
type Analyzer struct {
	extractors []Extractor
	estimator  Estimator
	minLength  int
	logger     *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithEstimator attaches an AI-assisted estimator whose scores are fused
// after (and therefore override) the heuristic extractors'.
func WithEstimator(e Estimator) AnalyzerOption {
	return func(a *Analyzer) {
		a.estimator = e
	}
}

// WithMinInputLength overrides the minimum combined transcript length below
// which Analyze returns [ErrInsufficientInput]. Defaults to 50.
func WithMinInputLength(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.minLength = n
	}
}

// WithLogger sets the logger used for degraded-signal reporting. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// NewAnalyzer creates an Analyzer over the given extractors. Extractor order
// matters: later extractors overwrite earlier ones for overlapping
// dimensions during fusion, and the estimator (if any) is fused last.
func NewAnalyzer(extractors []Extractor, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		extractors: extractors,
		minLength:  defaultMinInputLength,
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Analyze combines the turns' transcriptions, runs all extractors and the
// estimator concurrently, fuses their partial mappings into a complete
// signature, and scores its confidence.
//
// Returns [ErrInsufficientInput] when the combined transcript is shorter
// than the configured minimum. Individual extractor or estimator failures
// never surface: they contribute empty mappings and the fuser fills
// defaults, which the confidence score's completeness factor then reflects.
func (a *Analyzer) Analyze(ctx context.Context, turns []ConversationTurn) (*Analysis, error) {
	start := time.Now()

	text := combineTranscriptions(turns)
	if len(text) < a.minLength {
		return nil, fmt.Errorf("%w: %d characters, need at least %d",
			ErrInsufficientInput, len(text), a.minLength)
	}

	partials := make([]map[Dimension]float64, len(a.extractors)+1)

	var g errgroup.Group
	var mu sync.Mutex

	for i, ext := range a.extractors {
		g.Go(func() error {
			scores := ext.Extract(text)
			mu.Lock()
			partials[i] = scores
			mu.Unlock()
			return nil
		})
	}

	if a.estimator != nil {
		g.Go(func() error {
			scores := a.estimator.Estimate(ctx, text, len(turns))
			mu.Lock()
			partials[len(a.extractors)] = scores
			mu.Unlock()
			return nil
		})
	}

	// Extractors and estimator never return errors by contract.
	_ = g.Wait()

	for i, p := range partials[:len(a.extractors)] {
		if len(p) == 0 {
			a.logger.Warn("extractor produced no signals", "extractor_index", i)
		}
	}

	sig := Fuse(partials...)
	confidence := Confidence(sig, len(text), len(turns))

	return &Analysis{
		Signature:  sig,
		Confidence: confidence,
		Diagnostics: Diagnostics{
			TextLength:         len(text),
			ConversationTurns:  len(turns),
			AnalysisDimensions: len(sig),
			ProcessingTime:     time.Since(start),
		},
	}, nil
}

// combineTranscriptions joins all non-empty turn transcriptions with single
// spaces, preserving turn order.
func combineTranscriptions(turns []ConversationTurn) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		if s := strings.TrimSpace(t.Transcription); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
