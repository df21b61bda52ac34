// Package content implements signature-driven content generation: template
// selection, prompt building, LLM generation with voice-derived sampling
// parameters, deterministic post-processing, and voice-match scoring.
package content

import (
	"fmt"
	"time"

	"github.com/pbdna/brandvoice/internal/voice"
)

// ContentType classifies a piece of generated content. It drives template
// filtering, output length limits, and platform guidelines.
type ContentType string

// The supported content types.
const (
	TypePost              ContentType = "post"
	TypeArticle           ContentType = "article"
	TypeStory             ContentType = "story"
	TypePoll              ContentType = "poll"
	TypeCarousel          ContentType = "carousel"
	TypeThoughtLeadership ContentType = "thought_leadership"
	TypePersonalUpdate    ContentType = "personal_update"
	TypeIndustryInsight   ContentType = "industry_insight"
)

// ContentTypes returns all supported content types.
func ContentTypes() []ContentType {
	return []ContentType{
		TypePost,
		TypeArticle,
		TypeStory,
		TypePoll,
		TypeCarousel,
		TypeThoughtLeadership,
		TypePersonalUpdate,
		TypeIndustryInsight,
	}
}

// Valid reports whether ct is one of the supported content types.
func (ct ContentType) Valid() bool {
	for _, t := range ContentTypes() {
		if ct == t {
			return true
		}
	}
	return false
}

// Template is a parameterized text skeleton with named {{placeholders}}.
// Templates are read-only inputs to the generator; their persistence
// lifecycle belongs to the store layer.
type Template struct {
	// ID uniquely identifies the template.
	ID string

	// Name is the human-readable template name. Selector name-keyword
	// bonuses match against its lowercase form.
	Name string

	// Description summarizes what the template is for.
	Description string

	// ContentType restricts which requests the template can serve.
	ContentType ContentType

	// Structure is the skeleton text containing {{placeholder}} markers.
	Structure string

	// Variables maps each placeholder name to a description of what should
	// fill it.
	Variables map[string]string

	// IndustryTags lists the industries the template suits.
	IndustryTags []string

	// UseCase classifies the template (personal_story, thought_leadership,
	// personal_update, professional_advice, ...) for signature-driven
	// selection.
	UseCase string
}

// UserProfile carries the requesting user's professional context, used in
// prompt building and hashtag selection.
type UserProfile struct {
	UserID   string
	Industry string
	Role     string
	Company  string
}

// Preferences is the per-request generation preference bag.
type Preferences struct {
	// Tone and Style are free-text steering hints.
	Tone  string
	Style string

	// TargetAudience, when set, is named explicitly in the prompt.
	TargetAudience string

	// CallToAction, when set, is a caller-supplied CTA the content must
	// include.
	CallToAction string

	// Urgency — "high" requests urgent, timely framing.
	Urgency string

	// IncludePersonalExperience asks for story elements.
	IncludePersonalExperience bool

	// IncludeEmoji, IncludeStats, and IncludeQuestions toggle the matching
	// stylistic devices.
	IncludeEmoji     bool
	IncludeStats     bool
	IncludeQuestions bool

	// GenerateVariations requests up to MaxVariations alternative takes.
	GenerateVariations bool

	// MaxVariations bounds the variation count; values are clamped to
	// [0, 5]. Zero with GenerateVariations set means the default of 2.
	MaxVariations int
}

// Request describes one content-generation job.
type Request struct {
	// Topic is the subject of the content.
	Topic string

	// ContentType selects output shape and length.
	ContentType ContentType

	// Signature is the voice profile the output must match.
	Signature voice.Signature

	// Profile is the requesting user's professional context.
	Profile UserProfile

	// Template optionally constrains the output structure. Nil means
	// free-form generation.
	Template *Template

	// Preferences carries per-request steering options.
	Preferences Preferences
}

// Result is the outcome of a successful generation.
type Result struct {
	// Content is the post-processed generated text.
	Content string

	// Variations holds alternative takes, in generation order. Failed
	// variation attempts are absent, so the count may be lower than
	// requested.
	Variations []string

	// VoiceMatchScore estimates how well Content reflects the requested
	// signature, in [0, 1].
	VoiceMatchScore float64

	// TemplateID is the template used, or "" for free-form generation.
	TemplateID string

	// Model is the backend model that produced the content.
	Model string

	// Optimizations lists the post-processing steps applied.
	Optimizations []string

	// GenerationTime is the wall-clock duration of the whole request.
	GenerationTime time.Duration
}

// GenerationError wraps a primary-generation failure. It is the only error
// class (besides validation) that GenerateContent surfaces; the underlying
// provider cause is available via Unwrap.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content: generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
