// Package stt defines the Provider interface for Speech-to-Text backends.
//
// An STT provider wraps a transcription service (e.g., the OpenAI Whisper API
// or a local whisper-server instance) and exposes a uniform batch interface:
// a complete audio recording goes in, a transcript comes out. The voice
// analysis pipeline operates on finished recordings rather than live audio,
// so there is no streaming session abstraction here.
//
// Implementations must be safe for concurrent use. The transcription service
// may run several recordings in parallel against the same Provider.
package stt

import "context"

// Config describes the audio format and recognition hints for a
// transcription request. Zero values let the provider apply its defaults.
type Config struct {
	// SampleRate is the audio sample rate in Hz for raw PCM input. Common
	// values: 16000 (STT-optimised mono), 44100, 48000. Ignored when the
	// audio payload is a self-describing container such as WAV.
	SampleRate int

	// Channels is the number of audio channels for raw PCM input. 1 = mono
	// (preferred by most STT engines). Ignored for container formats.
	Channels int

	// Language is the BCP-47 language tag for recognition (e.g., "en",
	// "de"). An empty string lets the provider auto-detect the language, if
	// supported.
	Language string

	// Prompt is an optional free-text hint passed to providers that support
	// it (e.g., speaker names or domain vocabulary). Providers without
	// prompt support ignore it.
	Prompt string
}

// Result is the outcome of a successful transcription.
type Result struct {
	// Text is the full transcribed text of the recording.
	Text string

	// Language is the language the provider detected or was told to use.
	// May be empty when the provider does not report it.
	Language string

	// DurationSeconds is the length of the source audio as reported by the
	// provider, or 0 when unknown.
	DurationSeconds float64
}

// Provider is the abstraction over any batch STT backend.
//
// Implementations must be safe for concurrent use from multiple goroutines.
type Provider interface {
	// Transcribe submits a complete audio recording and waits for the full
	// transcript. audio holds either raw 16-bit signed little-endian PCM
	// (described by cfg) or a container format the implementation documents
	// as supported.
	//
	// Returns an error if the request fails or if ctx is cancelled before
	// the transcript arrives.
	Transcribe(ctx context.Context, audio []byte, cfg Config) (*Result, error)
}
