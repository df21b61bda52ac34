// Package mock provides a test double for the stt.Provider interface.
package mock

import (
	"context"
	"sync"

	"github.com/pbdna/brandvoice/pkg/provider/stt"
)

// TranscribeCall records a single invocation of Transcribe.
type TranscribeCall struct {
	// Audio is the payload passed to Transcribe.
	Audio []byte
	// Cfg is the Config passed to Transcribe.
	Cfg stt.Config
}

// Provider is a mock implementation of stt.Provider. Zero values for the
// response fields cause Transcribe to return nil, nil.
type Provider struct {
	mu sync.Mutex

	// Result is returned by Transcribe. May be nil.
	Result *stt.Result

	// Err, if non-nil, is returned as the error from Transcribe.
	Err error

	// TranscribeFunc, if non-nil, overrides Result/Err and is invoked for
	// every Transcribe call with the call index (0-based). Useful for batch
	// tests that need some recordings to fail.
	TranscribeFunc func(call int, audio []byte, cfg stt.Config) (*stt.Result, error)

	// TranscribeCalls records every invocation of Transcribe in order.
	TranscribeCalls []TranscribeCall
}

// Transcribe records the call and returns the configured result.
func (p *Provider) Transcribe(ctx context.Context, audio []byte, cfg stt.Config) (*stt.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	call := len(p.TranscribeCalls)
	p.TranscribeCalls = append(p.TranscribeCalls, TranscribeCall{Audio: audio, Cfg: cfg})
	if p.TranscribeFunc != nil {
		return p.TranscribeFunc(call, audio, cfg)
	}
	return p.Result, p.Err
}

// Reset clears all recorded calls. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TranscribeCalls = nil
}

// Ensure Provider implements stt.Provider at compile time.
var _ stt.Provider = (*Provider)(nil)
