// Package transcribe wraps an stt.Provider with validation and batch
// fan-out. Transcription is glue in front of voice analysis: callers feed
// the resulting text into the analyzer as conversation turns.
package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pbdna/brandvoice/pkg/provider/stt"
)

const (
	// maxBatchSize caps the number of recordings accepted per batch.
	maxBatchSize = 10

	// maxAudioBytes rejects recordings larger than 50 MiB before they reach
	// the provider.
	maxAudioBytes = 50 << 20
)

// Recording is one audio item submitted for transcription.
type Recording struct {
	// ID is a caller-chosen identifier echoed back in results.
	ID string

	// Audio is the recording payload: raw PCM or a container format the
	// configured provider supports.
	Audio []byte

	// Config carries the audio format and recognition hints.
	Config stt.Config
}

// Transcription is the outcome of one successful transcription.
type Transcription struct {
	// ID echoes the submitted recording's ID.
	ID string

	// Text is the transcript.
	Text string

	// Language is the detected or configured language, if reported.
	Language string

	// Duration is how long the transcription took.
	Duration time.Duration
}

// Failure pairs a failed recording's ID with its error.
type Failure struct {
	ID  string
	Err error
}

// BatchResult partitions a batch's outcomes, each ordered by submission
// order.
type BatchResult struct {
	Successful []Transcription
	Failed     []Failure
}

// Service transcribes recordings through an stt.Provider. Safe for
// concurrent use.
type Service struct {
	stt    stt.Provider
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a transcription Service backed by the given provider.
func New(provider stt.Provider, opts ...Option) *Service {
	s := &Service{
		stt:    provider,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Transcribe validates and transcribes a single recording.
func (s *Service) Transcribe(ctx context.Context, rec Recording) (*Transcription, error) {
	if len(rec.Audio) == 0 {
		return nil, fmt.Errorf("transcribe: recording %q has no audio", rec.ID)
	}
	if len(rec.Audio) > maxAudioBytes {
		return nil, fmt.Errorf("transcribe: recording %q exceeds %d bytes", rec.ID, maxAudioBytes)
	}

	start := time.Now()
	result, err := s.stt.Transcribe(ctx, rec.Audio, rec.Config)
	if err != nil {
		return nil, fmt.Errorf("transcribe: recording %q: %w", rec.ID, err)
	}

	s.logger.Debug("transcription complete",
		"recording_id", rec.ID,
		"text_length", len(result.Text),
		"duration", time.Since(start),
	)

	return &Transcription{
		ID:       rec.ID,
		Text:     result.Text,
		Language: result.Language,
		Duration: time.Since(start),
	}, nil
}

// BatchTranscribe transcribes up to maxBatchSize recordings concurrently.
// One recording's failure never aborts the batch; per-item errors land in
// the Failed partition. The only error BatchTranscribe itself returns is a
// batch-size violation.
func (s *Service) BatchTranscribe(ctx context.Context, recordings []Recording) (*BatchResult, error) {
	if len(recordings) > maxBatchSize {
		return nil, fmt.Errorf("transcribe: batch size %d exceeds maximum of %d", len(recordings), maxBatchSize)
	}

	type indexed struct {
		idx int
		t   *Transcription
		err error
		id  string
	}

	results := make([]indexed, 0, len(recordings))
	var mu sync.Mutex

	var wg errgroup.Group
	for i, rec := range recordings {
		wg.Go(func() error {
			t, err := s.Transcribe(ctx, rec)
			mu.Lock()
			results = append(results, indexed{idx: i, t: t, err: err, id: rec.ID})
			mu.Unlock()
			return nil
		})
	}
	_ = wg.Wait()

	slices.SortFunc(results, func(a, b indexed) int { return a.idx - b.idx })

	out := &BatchResult{}
	for _, r := range results {
		if r.err != nil {
			out.Failed = append(out.Failed, Failure{ID: r.id, Err: r.err})
		} else {
			out.Successful = append(out.Successful, *r.t)
		}
	}
	return out, nil
}
