package content

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pbdna/brandvoice/internal/voice"
)

// templateCacheTTL is how long a fetched template list stays valid before
// the source is consulted again.
const templateCacheTTL = time.Hour

// TemplateSource supplies the template inventory the selector scores.
// Implementations typically wrap a database; [StaticTemplates] adapts an
// in-memory slice.
type TemplateSource interface {
	// Templates returns all available templates. An error or empty result
	// makes the selector fall back to [DefaultTemplates].
	Templates(ctx context.Context) ([]Template, error)
}

// StaticTemplates adapts a fixed slice into a TemplateSource.
type StaticTemplates []Template

// Templates implements TemplateSource.
func (s StaticTemplates) Templates(ctx context.Context) ([]Template, error) {
	return s, nil
}

// Selector picks the template best matching a voice signature and content
// type. It caches the source's template list with a one-hour TTL; the cache
// is a plain expiring value guarded by a mutex, refreshed by whichever
// caller observes the expiry first.
type Selector struct {
	source TemplateSource
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	cached  []Template
	expires time.Time
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithSelectorLogger sets the logger used when the template source fails.
func WithSelectorLogger(l *slog.Logger) SelectorOption {
	return func(s *Selector) {
		s.logger = l
	}
}

// NewSelector creates a Selector over the given source. A nil source means
// the built-in default templates are always used.
func NewSelector(source TemplateSource, opts ...SelectorOption) *Selector {
	s := &Selector{
		source: source,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Select returns the best template for the signature and content type. It
// never fails: when no template matches the content type the first template
// in inventory order is returned as the fallback.
//
// Scoring: templates whose use_case aligns with a sufficiently strong
// signature dimension get a bonus (personal_story +3.0 when
// storytelling > 0.5, thought_leadership +3.0 when authority > 0.5,
// personal_update +2.0 when personal sharing > 0.5, professional_advice
// +2.0 when technical depth > 0.4, otherwise base 1.0), and template names
// containing "story", "insight", or "personal" earn +1.5 each when the
// corresponding dimension exceeds 0.4. Ties resolve to the first-seen
// candidate.
func (s *Selector) Select(ctx context.Context, sig voice.Signature, contentType ContentType) Template {
	templates := s.templates(ctx)

	var candidates []Template
	for _, t := range templates {
		if t.ContentType == contentType {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return templates[0]
	}

	storytelling := sig.Get(voice.DimStorytelling, 0.3)
	authority := sig.Get(voice.DimAuthority, 0.4)
	personal := sig.Get(voice.DimPersonalSharing, 0.4)
	technical := sig.Get(voice.DimTechnicalDepth, 0.3)

	best := candidates[0]
	bestScore := -1.0
	for _, t := range candidates {
		var score float64

		switch {
		case t.UseCase == "personal_story" && storytelling > 0.5:
			score += 3.0
		case t.UseCase == "thought_leadership" && authority > 0.5:
			score += 3.0
		case t.UseCase == "personal_update" && personal > 0.5:
			score += 2.0
		case t.UseCase == "professional_advice" && technical > 0.4:
			score += 2.0
		default:
			score += 1.0
		}

		name := strings.ToLower(t.Name)
		if strings.Contains(name, "story") && storytelling > 0.4 {
			score += 1.5
		}
		if strings.Contains(name, "insight") && authority > 0.4 {
			score += 1.5
		}
		if strings.Contains(name, "personal") && personal > 0.4 {
			score += 1.5
		}

		if score > bestScore {
			best = t
			bestScore = score
		}
	}

	return best
}

// ClearCache drops the cached template list so the next Select consults the
// source again.
func (s *Selector) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.expires = time.Time{}
}

// templates returns the cached template inventory, refreshing from the
// source when the TTL has lapsed. Falls back to [DefaultTemplates] when the
// source is nil, fails, or returns nothing.
func (s *Selector) templates(ctx context.Context) []Template {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Before(s.expires) {
		return s.cached
	}

	templates := s.fetch(ctx)
	s.cached = templates
	s.expires = s.now().Add(templateCacheTTL)
	return templates
}

func (s *Selector) fetch(ctx context.Context) []Template {
	if s.source == nil {
		return DefaultTemplates()
	}
	templates, err := s.source.Templates(ctx)
	if err != nil {
		s.logger.Warn("template source failed, using defaults", "error", err)
		return DefaultTemplates()
	}
	if len(templates) == 0 {
		return DefaultTemplates()
	}
	return templates
}
