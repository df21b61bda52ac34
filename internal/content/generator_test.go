package content_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pbdna/brandvoice/internal/content"
	"github.com/pbdna/brandvoice/internal/voice"
	"github.com/pbdna/brandvoice/pkg/provider/llm"
	"github.com/pbdna/brandvoice/pkg/provider/llm/mock"
)

func okProvider(text string) *mock.Provider {
	return &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: text, Model: "mock-model"},
	}
}

func TestGenerate_EmptyTopic(t *testing.T) {
	t.Parallel()
	g := content.NewGenerator(okProvider("hi"))

	_, err := g.Generate(context.Background(), content.Request{
		ContentType: content.TypePost,
	})
	if err == nil {
		t.Fatal("expected an error for an empty topic")
	}
	if !strings.Contains(err.Error(), "topic") {
		t.Errorf("error %q does not mention the topic", err)
	}
}

func TestGenerate_InvalidContentType(t *testing.T) {
	t.Parallel()
	g := content.NewGenerator(okProvider("hi"))

	_, err := g.Generate(context.Background(), content.Request{
		Topic:       "remote work",
		ContentType: content.ContentType("tweet"),
	})
	if err == nil {
		t.Fatal("expected an error for an unknown content type")
	}
	if !strings.Contains(err.Error(), "tweet") {
		t.Errorf("error %q does not name the bad content type", err)
	}
}

func TestGenerate_RequestParameters(t *testing.T) {
	t.Parallel()
	p := okProvider("Generated article body with plenty of substance to work with.")
	g := content.NewGenerator(p)

	sig := voice.Signature{
		voice.DimExpressiveness: 0.9,
		voice.DimHumor:          0.9,
		voice.DimStorytelling:   0.9,
	}
	_, err := g.Generate(context.Background(), content.Request{
		Topic:       "scaling engineering teams",
		ContentType: content.TypeArticle,
		Signature:   sig,
	})
	if err != nil {
		t.Fatal(err)
	}

	req := p.CompleteCalls[0].Req
	if !approxContent(req.Temperature, 0.3+0.9*0.6) {
		t.Errorf("temperature = %v, want 0.84 for a highly expressive signature", req.Temperature)
	}
	if req.MaxTokens != 2000 {
		t.Errorf("max tokens = %d, want 2000 for an article", req.MaxTokens)
	}
	if req.FrequencyPenalty != 0.3 {
		t.Errorf("frequency penalty = %v, want 0.3", req.FrequencyPenalty)
	}
	if req.PresencePenalty != 0.1 {
		t.Errorf("presence penalty = %v, want 0.1", req.PresencePenalty)
	}
	if !strings.Contains(req.SystemPrompt, "LinkedIn content creator") {
		t.Errorf("unexpected system prompt: %q", req.SystemPrompt)
	}
}

func TestGenerate_TemperatureStaysInRange(t *testing.T) {
	t.Parallel()
	p := okProvider("Some generated content.")
	g := content.NewGenerator(p)

	sig := voice.Signature{
		voice.DimExpressiveness: 1.0,
		voice.DimHumor:          1.0,
		voice.DimStorytelling:   1.0,
	}
	if _, err := g.Generate(context.Background(), content.Request{
		Topic:       "anything",
		ContentType: content.TypePost,
		Signature:   sig,
	}); err != nil {
		t.Fatal(err)
	}
	if got := p.CompleteCalls[0].Req.Temperature; !approxContent(got, 0.9) {
		t.Errorf("temperature = %v, want capped at 0.9", got)
	}
}

func TestGenerate_EmptyContentIsGenerationError(t *testing.T) {
	t.Parallel()
	g := content.NewGenerator(okProvider("   "))

	_, err := g.Generate(context.Background(), content.Request{
		Topic:       "remote work",
		ContentType: content.TypePost,
	})
	var genErr *content.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not a *GenerationError", err)
	}
}

func TestGenerate_ProviderErrorWrapped(t *testing.T) {
	t.Parallel()
	cause := errors.New("rate limited")
	g := content.NewGenerator(&mock.Provider{CompleteErr: cause})

	_, err := g.Generate(context.Background(), content.Request{
		Topic:       "remote work",
		ContentType: content.TypePost,
	})
	var genErr *content.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not a *GenerationError", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error %v does not unwrap to the provider cause", err)
	}
}

func TestGenerate_Variations(t *testing.T) {
	t.Parallel()
	primary := "We shipped the feature on time. The team loved it."
	p := &mock.Provider{
		CompleteFunc: func(call int, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			if call == 0 {
				return &llm.CompletionResponse{Content: primary, Model: "mock-model"}, nil
			}
			return &llm.CompletionResponse{Content: "Another take on shipping."}, nil
		},
	}
	g := content.NewGenerator(p)

	result, err := g.Generate(context.Background(), content.Request{
		Topic:       "shipping on time",
		ContentType: content.TypePost,
		Preferences: content.Preferences{GenerateVariations: true, MaxVariations: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Variations) != 3 {
		t.Fatalf("got %d variations, want 3", len(result.Variations))
	}
	if len(p.CompleteCalls) != 4 {
		t.Fatalf("got %d provider calls, want 1 primary + 3 variations", len(p.CompleteCalls))
	}

	varReq := p.CompleteCalls[1].Req
	baseTemp := p.CompleteCalls[0].Req.Temperature
	if !approxContent(varReq.Temperature, baseTemp+0.1) {
		t.Errorf("variation temperature = %v, want base %v + 0.1", varReq.Temperature, baseTemp)
	}
	words := len(strings.Fields(primary))
	if varReq.MaxTokens != words*2 {
		t.Errorf("variation max tokens = %d, want %d (twice the primary word count)", varReq.MaxTokens, words*2)
	}
	if !strings.Contains(varReq.Messages[0].Content, "different angle") {
		t.Errorf("variation prompt missing instructions: %q", varReq.Messages[0].Content)
	}
}

func TestGenerate_DefaultVariationCount(t *testing.T) {
	t.Parallel()
	p := okProvider("Primary content here.")
	g := content.NewGenerator(p)

	result, err := g.Generate(context.Background(), content.Request{
		Topic:       "defaults",
		ContentType: content.TypePost,
		Preferences: content.Preferences{GenerateVariations: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Variations) != 2 {
		t.Errorf("got %d variations, want the default of 2", len(result.Variations))
	}
}

func TestGenerate_VariationCountCapped(t *testing.T) {
	t.Parallel()
	p := okProvider("Primary content here.")
	g := content.NewGenerator(p)

	result, err := g.Generate(context.Background(), content.Request{
		Topic:       "caps",
		ContentType: content.TypePost,
		Preferences: content.Preferences{GenerateVariations: true, MaxVariations: 12},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Variations) != 5 {
		t.Errorf("got %d variations, want capped at 5", len(result.Variations))
	}
}

func TestGenerate_VariationFailureSkipped(t *testing.T) {
	t.Parallel()
	p := &mock.Provider{
		CompleteFunc: func(call int, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			switch call {
			case 0:
				return &llm.CompletionResponse{Content: "Primary content here."}, nil
			case 1:
				return nil, errors.New("timeout")
			default:
				return &llm.CompletionResponse{Content: "Surviving variation."}, nil
			}
		},
	}
	g := content.NewGenerator(p)

	result, err := g.Generate(context.Background(), content.Request{
		Topic:       "resilience",
		ContentType: content.TypePost,
		Preferences: content.Preferences{GenerateVariations: true, MaxVariations: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Variations) != 1 {
		t.Errorf("got %d variations, want 1 (failed attempt skipped)", len(result.Variations))
	}
}

func TestGenerate_PromptContents(t *testing.T) {
	t.Parallel()
	p := okProvider("Generated content.")
	g := content.NewGenerator(p)

	tpl := &content.Template{
		ID:        "personal_story",
		Name:      "Personal Story",
		Structure: "Hook: {{hook}}\nStory: {{story}}",
	}
	result, err := g.Generate(context.Background(), content.Request{
		Topic:       "leading through change",
		ContentType: content.TypePost,
		Signature:   voice.Fuse(),
		Profile: content.UserProfile{
			Industry: "technology",
			Role:     "CTO",
			Company:  "Acme",
		},
		Template: tpl,
		Preferences: content.Preferences{
			CallToAction:   "Subscribe to the newsletter",
			TargetAudience: "engineering leaders",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	prompt := p.CompleteCalls[0].Req.Messages[0].Content
	for _, want := range []string{
		"leading through change",
		"VOICE PROFILE TO MATCH:",
		"Industry: technology",
		"Role: CTO",
		"Company: Acme",
		"CONTENT STRUCTURE TO FOLLOW:",
		"Hook: {{hook}}",
		"Include this call to action: Subscribe to the newsletter",
		"Target audience: engineering leaders",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if result.TemplateID != "personal_story" {
		t.Errorf("template ID = %q, want personal_story", result.TemplateID)
	}
}

func TestGenerate_ResultFields(t *testing.T) {
	t.Parallel()
	g := content.NewGenerator(okProvider("A solid update on the project. It went well overall."))

	result, err := g.Generate(context.Background(), content.Request{
		Topic:       "project update",
		ContentType: content.TypePost,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Content == "" {
		t.Error("result content is empty")
	}
	if result.Model != "mock-model" {
		t.Errorf("model = %q, want mock-model", result.Model)
	}
	if result.VoiceMatchScore < 0 || result.VoiceMatchScore > 1 {
		t.Errorf("voice match score = %v, want in [0, 1]", result.VoiceMatchScore)
	}
	if len(result.Optimizations) == 0 {
		t.Error("no optimizations reported")
	}
	if result.TemplateID != "" {
		t.Errorf("template ID = %q, want empty for free-form generation", result.TemplateID)
	}
}
