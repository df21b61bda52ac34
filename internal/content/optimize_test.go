package content_test

import (
	"strings"
	"testing"

	"github.com/pbdna/brandvoice/internal/content"
)

var postCTAs = []string{
	"What's your experience with this?",
	"Thoughts?",
	"How do you handle this in your organization?",
	"What would you add to this list?",
}

var storyCTAs = []string{
	"Have you had a similar experience?",
	"What lessons have you learned in similar situations?",
	"How would you have handled this differently?",
}

func TestOptimizeHashtags_AddsIndustryDefaults(t *testing.T) {
	t.Parallel()
	text := "A plain update about quarterly planning."
	got := content.OptimizeHashtags(text, "technology")

	if got == text {
		t.Fatal("content without hashtags was returned unchanged")
	}
	if !strings.Contains(got, "#TechLeadership") {
		t.Errorf("missing industry hashtag in %q", got)
	}
	tags := strings.Count(got, "#")
	if tags < 3 || tags > 5 {
		t.Errorf("got %d hashtags, want between 3 and 5", tags)
	}

	// A second pass must be a no-op now that enough tags exist.
	if again := content.OptimizeHashtags(got, "technology"); again != got {
		t.Error("second optimization pass changed already-tagged content")
	}
}

func TestOptimizeHashtags_EnoughTagsUnchanged(t *testing.T) {
	t.Parallel()
	text := "Planning update. #Planning #Quarterly #Teamwork"
	if got := content.OptimizeHashtags(text, "technology"); got != text {
		t.Errorf("content with 3 hashtags changed: %q", got)
	}
}

func TestOptimizeHashtags_SkipsDuplicates(t *testing.T) {
	t.Parallel()
	text := "Update. #TechLeadership #Innovation"
	got := content.OptimizeHashtags(text, "technology")

	if strings.Count(got, "#TechLeadership") != 1 {
		t.Errorf("duplicate #TechLeadership in %q", got)
	}
	if strings.Count(got, "#Innovation") != 1 {
		t.Errorf("duplicate #Innovation in %q", got)
	}
	if !strings.Contains(got, "#DigitalTransformation") {
		t.Errorf("expected remaining industry tags to be appended, got %q", got)
	}
}

func TestOptimizeHashtags_CapsAtFive(t *testing.T) {
	t.Parallel()
	text := "Update. #One #Two"
	got := content.OptimizeHashtags(text, "technology")
	if tags := strings.Count(got, "#"); tags != 5 {
		t.Errorf("got %d hashtags, want exactly 5 (2 existing + 3 added)", tags)
	}
}

func TestOptimizeHashtags_UnknownIndustryUsesGenericSet(t *testing.T) {
	t.Parallel()
	got := content.OptimizeHashtags("An update.", "aerospace")
	if !strings.Contains(got, "#Leadership") {
		t.Errorf("missing generic hashtag in %q", got)
	}
}

func TestEnsureCallToAction_QuestionEndingUnchanged(t *testing.T) {
	t.Parallel()
	text := "We shipped the release early. What challenges did you face?"
	if got := content.EnsureCallToAction(text, content.TypePost); got != text {
		t.Errorf("question-ending content changed: %q", got)
	}
}

func TestEnsureCallToAction_EngagementPhraseUnchanged(t *testing.T) {
	t.Parallel()
	text := "We shipped early. Let me know how it lands for your team."
	if got := content.EnsureCallToAction(text, content.TypePost); got != text {
		t.Errorf("content with engagement phrase changed: %q", got)
	}
}

func TestEnsureCallToAction_AppendsPostCandidate(t *testing.T) {
	t.Parallel()
	text := "We shipped the release two weeks ahead of schedule."
	got := content.EnsureCallToAction(text, content.TypePost)
	if got == text {
		t.Fatal("plain statement got no call to action")
	}
	assertAppendedCTA(t, text, got, postCTAs)
}

func TestEnsureCallToAction_StoryCandidates(t *testing.T) {
	t.Parallel()
	text := "Last year the migration failed on day one."
	got := content.EnsureCallToAction(text, content.TypeStory)
	assertAppendedCTA(t, text, got, storyCTAs)
}

func TestEnsureCallToAction_UnknownTypeFallsBackToPostSet(t *testing.T) {
	t.Parallel()
	text := "Slide one covers the roadmap."
	got := content.EnsureCallToAction(text, content.TypeCarousel)
	assertAppendedCTA(t, text, got, postCTAs)
}

func assertAppendedCTA(t *testing.T, before, after string, candidates []string) {
	t.Helper()
	suffix := strings.TrimPrefix(after, before+"\n\n")
	for _, c := range candidates {
		if suffix == c {
			return
		}
	}
	t.Errorf("appended CTA %q is not one of the candidates %v", suffix, candidates)
}

func TestAlreadyOptimizedContentUnchanged(t *testing.T) {
	t.Parallel()
	text := "Four takeaways from the launch. #Launch #Shipping #Teamwork #Lessons\n\n" +
		"What would you have done differently?"

	if got := content.OptimizeHashtags(text, "technology"); got != text {
		t.Errorf("hashtag optimization changed well-tagged content:\n%s", got)
	}
	if got := content.EnsureCallToAction(text, content.TypePost); got != text {
		t.Errorf("CTA insertion changed question-ending content:\n%s", got)
	}
}

func TestOptimize_GroupsSentencesIntoParagraphs(t *testing.T) {
	t.Parallel()
	text := "First point made here. Second point made here. Third point made here. Fourth point made here."
	got, applied := content.Optimize(text, content.TypePost, "technology")

	if !strings.Contains(got, "Second point made here.\n\nThird point made here") {
		t.Errorf("sentences not regrouped into two-sentence paragraphs:\n%s", got)
	}
	if len(applied) != 5 {
		t.Fatalf("got %d optimizations, want 5: %v", len(applied), applied)
	}
	want := map[string]bool{"Hashtag optimization": false, "Call-to-action enhancement": false}
	for _, a := range applied {
		if _, ok := want[a]; ok {
			want[a] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("optimization %q not reported", name)
		}
	}
}

func TestOptimize_FixesHashtagSpacing(t *testing.T) {
	t.Parallel()
	text := "Check this#Tag1 now. More detail here#Tag2 follows. Third item#Tag3 ends."
	got, _ := content.Optimize(text, content.TypePost, "")
	if !strings.Contains(got, "this #Tag1") {
		t.Errorf("hashtag not separated from preceding word:\n%s", got)
	}
	if strings.Contains(got, "this#Tag1") {
		t.Errorf("unspaced hashtag survived:\n%s", got)
	}
}

func TestOptimize_SplitsOverlongHook(t *testing.T) {
	t.Parallel()
	text := "This is the short hook. " +
		"It goes on to explain the entire planning process in considerably more depth than anyone ever needs."
	got, _ := content.Optimize(text, content.TypePost, "")
	if !strings.HasPrefix(got, "This is the short hook.\n\n") {
		t.Errorf("overlong opening line not split at the first sentence:\n%s", got)
	}
}
