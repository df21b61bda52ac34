package content

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

// Post-processing constants. The hook split fires when the opening line
// exceeds hookMaxLineLength and its first sentence alone fits within
// hookMaxSentenceLength.
const (
	minHashtags           = 3
	maxHashtags           = 5
	hookMaxLineLength     = 100
	hookMaxSentenceLength = 80
	sentencesPerParagraph = 2
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	hashtagRe       = regexp.MustCompile(`#\w+`)
	hashtagSpaceRe  = regexp.MustCompile(`(\w)#`)

	// ctaDetectRes match content that already carries a call to action or
	// engagement prompt.
	ctaDetectRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(what do you think|thoughts|share your|comment|let me know)\b`),
		regexp.MustCompile(`\?[^?]*$`),
		regexp.MustCompile(`(?i)\b(agree|disagree|experience)\b[^.]*\?`),
	}
)

// industryHashtags maps lowercase industries to their default hashtag sets.
var industryHashtags = map[string][]string{
	"technology": {"#TechLeadership", "#Innovation", "#DigitalTransformation", "#TechTrends"},
	"finance":    {"#FinTech", "#FinancialServices", "#InvestmentStrategy", "#EconomicInsights"},
	"healthcare": {"#HealthcareInnovation", "#MedicalLeadership", "#PatientCare", "#HealthTech"},
	"marketing":  {"#MarketingStrategy", "#DigitalMarketing", "#BrandBuilding", "#MarketingInsights"},
	"consulting": {"#BusinessStrategy", "#Consulting", "#Leadership", "#BusinessTransformation"},
}

// genericHashtags is the fallback set for industries without a dedicated
// hashtag list.
var genericHashtags = []string{"#Leadership", "#ProfessionalGrowth", "#BusinessInsights"}

// ctaCandidates holds the content-type-specific call-to-action strings one
// of which is appended (chosen at random) when no CTA is detected.
var ctaCandidates = map[ContentType][]string{
	TypePost: {
		"What's your experience with this?",
		"Thoughts?",
		"How do you handle this in your organization?",
		"What would you add to this list?",
	},
	TypeStory: {
		"Have you had a similar experience?",
		"What lessons have you learned in similar situations?",
		"How would you have handled this differently?",
	},
	TypeArticle: {
		"What strategies have worked best for you?",
		"I'd love to hear your perspective on this.",
		"What other factors would you consider important?",
	},
}

// Optimize applies the deterministic post-processing pipeline to generated
// content: paragraph regrouping, hashtag optimization, call-to-action
// insertion, and platform formatting. It returns the optimized content and
// the list of optimization names applied.
func Optimize(text string, ct ContentType, industry string) (string, []string) {
	optimized := addLineBreaks(text)
	optimized = OptimizeHashtags(optimized, industry)
	optimized = EnsureCallToAction(optimized, ct)
	optimized = formatForPlatform(optimized)

	return optimized, []string{
		"LinkedIn formatting",
		"Hashtag optimization",
		"Call-to-action enhancement",
		"Readability improvements",
		string(ct) + "-specific structure",
	}
}

// addLineBreaks regroups the content into short paragraphs separated by
// blank lines. Sentences are paired two to a paragraph; the trailing
// remainder forms its own paragraph.
func addLineBreaks(text string) string {
	sentences := sentenceSplitRe.Split(text, -1)

	var paragraphs []string
	var current []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		current = append(current, s)
		if len(current) >= sentencesPerParagraph {
			paragraphs = append(paragraphs, strings.Join(current, ". ")+".")
			current = nil
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, ". ")+".")
	}

	return strings.Join(paragraphs, "\n\n")
}

// OptimizeHashtags ensures the content carries at least minHashtags
// hashtags, appending industry defaults when fewer exist. Existing tags are
// never duplicated and the total never exceeds maxHashtags. Content that
// already has minHashtags or more tags is returned unchanged, which makes
// the operation idempotent.
func OptimizeHashtags(text, industry string) string {
	existing := hashtagRe.FindAllString(text, -1)
	if len(existing) >= minHashtags {
		return text
	}

	suggested, ok := industryHashtags[strings.ToLower(industry)]
	if !ok {
		suggested = genericHashtags
	}

	present := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		present[h] = struct{}{}
	}

	var added []string
	for _, h := range suggested {
		if len(existing)+len(added) >= maxHashtags {
			break
		}
		if _, dup := present[h]; dup {
			continue
		}
		added = append(added, h)
	}

	if len(added) == 0 {
		return text
	}
	return text + "\n\n" + strings.Join(added, " ")
}

// EnsureCallToAction appends a content-type-appropriate call to action when
// none is detected. Content that already ends with a question or carries an
// engagement phrase is returned unchanged. The appended CTA is chosen at
// random from the content type's candidate list (posts' list is the
// fallback for types without their own).
func EnsureCallToAction(text string, ct ContentType) string {
	for _, re := range ctaDetectRes {
		if re.MatchString(text) {
			return text
		}
	}

	options, ok := ctaCandidates[ct]
	if !ok {
		options = ctaCandidates[TypePost]
	}
	return text + "\n\n" + options[rand.IntN(len(options))]
}

// formatForPlatform applies final platform formatting: splits an overlong
// opening line at its first sentence boundary so the hook stays scannable,
// and fixes missing spaces before hashtags.
func formatForPlatform(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && len(lines[0]) > hookMaxLineLength {
		first, rest, found := strings.Cut(lines[0], ".")
		if found && len(first) < hookMaxSentenceLength {
			lines[0] = first + ".\n\n" + rest
		}
	}

	formatted := strings.Join(lines, "\n")
	formatted = hashtagSpaceRe.ReplaceAllString(formatted, "$1 #")
	return strings.TrimSpace(formatted)
}
