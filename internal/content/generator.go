package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pbdna/brandvoice/internal/voice"
	"github.com/pbdna/brandvoice/pkg/provider/llm"
)

const generatorSystemPrompt = "You are an expert LinkedIn content creator who " +
	"specializes in matching individual communication styles. Create authentic, " +
	"engaging content that drives business outcomes."

const variationSystemPrompt = "Create content variations that maintain voice " +
	"consistency while offering different perspectives."

const (
	// Temperature is derived from the signature's expressiveness and mapped
	// into [minTemperature, maxTemperature].
	minTemperature = 0.3
	maxTemperature = 0.9

	// Repetition penalties applied to every primary generation call.
	frequencyPenalty = 0.3
	presencePenalty  = 0.1

	defaultVariations = 2
	maxVariations     = 5
)

// maxTokensByType caps completion length per content type.
var maxTokensByType = map[ContentType]int{
	TypePost:     500,
	TypeArticle:  2000,
	TypeStory:    600,
	TypePoll:     300,
	TypeCarousel: 400,
}

const defaultMaxTokens = 500

// Generator produces voice-matched content through an [llm.Provider],
// applying deterministic post-processing and voice-match scoring to every
// result. Safe for concurrent use.
type Generator struct {
	llm    llm.Provider
	logger *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithGeneratorLogger sets the logger used for variation-failure reporting.
func WithGeneratorLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator creates a Generator backed by the given provider.
func NewGenerator(provider llm.Provider, opts ...GeneratorOption) *Generator {
	g := &Generator{
		llm:    provider,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate runs one content-generation job end to end: prompt building,
// primary generation, optional variations, post-processing, and voice-match
// scoring.
//
// A primary-generation failure (provider error or empty content) is fatal
// and surfaces as a [*GenerationError]. Variation failures are logged and
// skipped; post-processing never fails.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if req.Topic == "" {
		return nil, fmt.Errorf("content: topic must not be empty")
	}
	if !req.ContentType.Valid() {
		return nil, fmt.Errorf("content: unknown content type %q", req.ContentType)
	}

	prompt := buildPrompt(req)
	temperature := temperatureFor(req.Signature)

	resp, err := g.llm.Complete(ctx, llm.CompletionRequest{
		SystemPrompt:     generatorSystemPrompt,
		Temperature:      temperature,
		MaxTokens:        maxTokensFor(req.ContentType),
		FrequencyPenalty: frequencyPenalty,
		PresencePenalty:  presencePenalty,
		Messages: []llm.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	primary := strings.TrimSpace(resp.Content)
	if primary == "" {
		return nil, &GenerationError{Err: errors.New("provider returned empty content")}
	}

	var variations []string
	if req.Preferences.GenerateVariations {
		variations = g.generateVariations(ctx, primary, temperature, variationCount(req.Preferences))
	}

	optimized, optimizations := Optimize(primary, req.ContentType, req.Profile.Industry)
	score := MatchScore(optimized, req.Signature)

	result := &Result{
		Content:         optimized,
		Variations:      variations,
		VoiceMatchScore: score,
		Model:           resp.Model,
		Optimizations:   optimizations,
		GenerationTime:  time.Since(start),
	}
	if req.Template != nil {
		result.TemplateID = req.Template.ID
	}
	return result, nil
}

// generateVariations requests up to n alternative takes on the primary
// content at slightly elevated temperature. Each failed attempt is skipped.
func (g *Generator) generateVariations(ctx context.Context, primary string, baseTemperature float64, n int) []string {
	if n <= 0 {
		return nil
	}

	temperature := baseTemperature + 0.1
	if temperature > maxTemperature {
		temperature = maxTemperature
	}
	// Proportional to the original so variations stay comparable in length.
	maxTokens := len(strings.Fields(primary)) * 2

	variations := make([]string, 0, n)
	for i := 0; i < n; i++ {
		prompt := fmt.Sprintf(`Based on this original content:
%q

Create a variation that:
- Maintains the same voice and tone
- Covers the same topic with a different angle or approach
- Keeps the same approximate length
- Remains authentic to the communication style

Variation #%d:`, primary, i+1)

		resp, err := g.llm.Complete(ctx, llm.CompletionRequest{
			SystemPrompt: variationSystemPrompt,
			Temperature:  temperature,
			MaxTokens:    maxTokens,
			Messages: []llm.Message{
				{Role: "user", Content: prompt},
			},
		})
		if err != nil {
			g.logger.Warn("variation generation failed", "variation", i+1, "error", err)
			continue
		}
		if v := strings.TrimSpace(resp.Content); v != "" {
			variations = append(variations, v)
		}
	}
	return variations
}

// buildPrompt assembles the generation prompt: topic, voice profile
// description, user context, template structure, preference constraints,
// and platform guidelines.
func buildPrompt(req Request) string {
	var parts []string
	add := func(lines ...string) {
		for _, l := range lines {
			if l != "" {
				parts = append(parts, l)
			}
		}
	}

	add(
		fmt.Sprintf("Generate a professional LinkedIn %s about: %s", req.ContentType, req.Topic),
		"",
		"VOICE PROFILE TO MATCH:",
		req.Signature.Describe(),
	)

	if req.Profile != (UserProfile{}) {
		add("", "USER CONTEXT:")
		add(fmt.Sprintf("Industry: %s", orDefault(req.Profile.Industry, "Business")))
		add(fmt.Sprintf("Role: %s", orDefault(req.Profile.Role, "Professional")))
		if req.Profile.Company != "" {
			add(fmt.Sprintf("Company: %s", req.Profile.Company))
		}
	}

	if req.Template != nil && req.Template.Structure != "" {
		add("", "CONTENT STRUCTURE TO FOLLOW:", req.Template.Structure)
	}

	if constraints := preferenceConstraints(req.Preferences); len(constraints) > 0 {
		add("", "SPECIFIC REQUIREMENTS:")
		add(constraints...)
	}

	add("", "LINKEDIN OPTIMIZATION:")
	add(platformGuidelines(req.ContentType)...)

	add(
		"",
		"IMPORTANT INSTRUCTIONS:",
		"- Match the voice profile characteristics precisely",
		"- Keep the content authentic and genuine",
		"- Focus on providing value to the audience",
		"- Use the specified tone and communication style",
		"- Ensure the content drives engagement and business outcomes",
		"",
		"Generate the content now:",
	)

	return strings.Join(parts, "\n")
}

// preferenceConstraints renders the preference bag as prompt constraints.
func preferenceConstraints(p Preferences) []string {
	var constraints []string
	if p.Urgency == "high" {
		constraints = append(constraints, "Create with urgent, timely relevance")
	}
	if p.IncludePersonalExperience {
		constraints = append(constraints, "Include personal experience or story elements")
	}
	if p.TargetAudience != "" {
		constraints = append(constraints, "Target audience: "+p.TargetAudience)
	}
	if p.CallToAction != "" {
		constraints = append(constraints, "Include this call to action: "+p.CallToAction)
	}
	if p.Tone != "" {
		constraints = append(constraints, "Tone: "+p.Tone)
	}
	if p.Style != "" {
		constraints = append(constraints, "Style: "+p.Style)
	}
	if p.IncludeEmoji {
		constraints = append(constraints, "Use emojis where they fit naturally")
	}
	if p.IncludeStats {
		constraints = append(constraints, "Include relevant statistics or data points")
	}
	if p.IncludeQuestions {
		constraints = append(constraints, "Weave in questions that invite discussion")
	}
	return constraints
}

// platformGuidelines returns the platform optimization guidance appended to
// every prompt, with content-type-specific additions.
func platformGuidelines(ct ContentType) []string {
	guidelines := []string{
		"Start with an engaging hook in the first line",
		"Use line breaks for better readability",
		"Include relevant hashtags (3-5 recommended)",
		"End with a call-to-action or question",
	}
	switch ct {
	case TypePost:
		guidelines = append(guidelines,
			"Keep length between 150-300 words for optimal engagement",
			"Use emojis sparingly and professionally",
			"Consider using bullets or numbered lists",
		)
	case TypeArticle:
		guidelines = append(guidelines,
			"Aim for 1000-2000 words for comprehensive coverage",
			"Include subheadings for structure",
			"Add a compelling conclusion",
		)
	case TypeStory:
		guidelines = append(guidelines,
			"Focus on narrative structure with clear beginning, middle, end",
			"Include emotional elements and lessons learned",
			"Keep between 200-400 words",
		)
	}
	return guidelines
}

// temperatureFor maps the signature's expressiveness into the sampling
// temperature range: more expressive voices get more generation randomness.
func temperatureFor(sig voice.Signature) float64 {
	expressiveness := sig.Get(voice.DimExpressiveness, 0.3)
	humor := sig.Get(voice.DimHumor, 0.1)
	storytelling := sig.Get(voice.DimStorytelling, 0.3)

	creativity := (expressiveness + humor + storytelling) / 3

	temperature := minTemperature + creativity*0.6
	if temperature < minTemperature {
		return minTemperature
	}
	if temperature > maxTemperature {
		return maxTemperature
	}
	return temperature
}

// maxTokensFor returns the completion cap for a content type.
func maxTokensFor(ct ContentType) int {
	if n, ok := maxTokensByType[ct]; ok {
		return n
	}
	return defaultMaxTokens
}

// variationCount bounds the requested variation count to [0, maxVariations],
// defaulting when unset.
func variationCount(p Preferences) int {
	n := p.MaxVariations
	if n == 0 {
		n = defaultVariations
	}
	if n < 0 {
		return 0
	}
	if n > maxVariations {
		return maxVariations
	}
	return n
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
