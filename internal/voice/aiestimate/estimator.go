// Package aiestimate implements the AI-assisted voice-dimension estimator.
//
// The [Estimator] sends a bounded prefix of the combined transcript to an
// [llm.Provider] and asks for exactly five dimension scores as a JSON
// object: formality_level, technical_depth, communication_pace,
// explanation_style, and industry_jargon — the dimensions that keyword
// heuristics cannot judge reliably.
//
// This stage is an enhancement, never a dependency: any transport failure,
// unparseable response, or out-of-range value degrades to an empty (or
// partial) mapping and the fuser's defaults take over. The estimator never
// returns an error to its caller.
package aiestimate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pbdna/brandvoice/internal/voice"
	"github.com/pbdna/brandvoice/pkg/provider/llm"
)

const (
	// maxInputRunes bounds the transcript prefix sent to the model, keeping
	// requests inside provider input limits.
	maxInputRunes = 2000

	// Low temperature for consistent numeric assessments.
	defaultTemperature = 0.1

	// The response is a single small JSON object; 200 tokens is ample.
	defaultMaxTokens = 200
)

const systemPrompt = "You are an expert in communication style analysis. " +
	"Provide accurate numerical assessments."

const promptTemplate = `Analyze the following professional communication sample and rate each dimension on a scale of 0.0 to 1.0:

Text: %q

Please analyze and provide scores for:
1. formality_level (0.0 = very casual, 1.0 = very formal)
2. technical_depth (0.0 = basic language, 1.0 = highly technical)
3. communication_pace (0.0 = slow/methodical, 1.0 = fast/energetic)
4. explanation_style (0.0 = brief/direct, 1.0 = detailed/thorough)
5. industry_jargon (0.0 = general language, 1.0 = heavy jargon use)

Respond with only a JSON object containing the scores:
{"formality_level": 0.0, "technical_depth": 0.0, "communication_pace": 0.0, "explanation_style": 0.0, "industry_jargon": 0.0}`

// Option is a functional option for configuring an [Estimator].
type Option func(*Estimator)

// WithTemperature sets the sampling temperature. Default: 0.1.
func WithTemperature(temp float64) Option {
	return func(e *Estimator) {
		e.temperature = temp
	}
}

// WithLogger sets the logger used for degraded-signal reporting. Defaults to
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Estimator) {
		e.logger = l
	}
}

// Estimator supplements heuristic voice extraction with model-derived
// dimension scores. It is safe for concurrent use.
type Estimator struct {
	llm         llm.Provider
	temperature float64
	logger      *slog.Logger
}

// Compile-time assertion that Estimator satisfies voice.Estimator.
var _ voice.Estimator = (*Estimator)(nil)

// New returns a new [Estimator] backed by the given [llm.Provider].
func New(provider llm.Provider, opts ...Option) *Estimator {
	e := &Estimator{
		llm:         provider,
		temperature: defaultTemperature,
		logger:      slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Estimate implements voice.Estimator. The transcript is truncated to a
// bounded prefix before being sent; the response is parsed permissively
// (markdown fences stripped, first balanced JSON object extracted), each
// value validated as numeric and clamped to [0, 1], and unusable entries
// dropped silently. Any failure returns an empty mapping.
func (e *Estimator) Estimate(ctx context.Context, text string, turns int) map[voice.Dimension]float64 {
	prompt := fmt.Sprintf(promptTemplate, truncateRunes(text, maxInputRunes))

	resp, err := e.llm.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		Temperature:  e.temperature,
		MaxTokens:    defaultMaxTokens,
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		e.logger.Warn("ai estimation failed", "error", err)
		return map[voice.Dimension]float64{}
	}

	scores, err := parseScores(resp.Content)
	if err != nil {
		e.logger.Warn("ai estimation response unparseable", "error", err)
		return map[voice.Dimension]float64{}
	}
	return scores
}

// parseScores extracts the first balanced JSON object from the model output
// and converts it into a clamped dimension mapping. Non-numeric entries are
// dropped.
func parseScores(content string) (map[voice.Dimension]float64, error) {
	raw := extractJSONObject(stripMarkdown(content))
	if raw == "" {
		return nil, fmt.Errorf("aiestimate: no JSON object in response")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("aiestimate: parse response: %w", err)
	}

	scores := make(map[voice.Dimension]float64, len(parsed))
	for key, value := range parsed {
		num, ok := value.(float64)
		if !ok {
			continue
		}
		if num < 0 {
			num = 0
		}
		if num > 1 {
			num = 1
		}
		scores[voice.Dimension(key)] = num
	}
	return scores, nil
}

// extractJSONObject returns the substring from the first '{' to the last
// '}' inclusive, or "" when no such span exists.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// stripMarkdown removes optional markdown code fences (```json ... ```) that
// some models prepend and append to JSON output.
func stripMarkdown(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"```json", "```"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
			break
		}
	}
	if before, ok := strings.CutSuffix(s, "```"); ok {
		s = before
	}
	return strings.TrimSpace(s)
}

// truncateRunes bounds s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
