package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/pbdna/brandvoice/internal/app"
	"github.com/pbdna/brandvoice/internal/config"
	"github.com/pbdna/brandvoice/internal/content"
	"github.com/pbdna/brandvoice/internal/observe"
	"github.com/pbdna/brandvoice/internal/store"
	"github.com/pbdna/brandvoice/internal/transcribe"
	"github.com/pbdna/brandvoice/internal/voice"
	"github.com/pbdna/brandvoice/pkg/provider/llm"
	llmmock "github.com/pbdna/brandvoice/pkg/provider/llm/mock"
	"github.com/pbdna/brandvoice/pkg/provider/stt"
	sttmock "github.com/pbdna/brandvoice/pkg/provider/stt/mock"
)

// memProfiles is an in-memory ProfileStore.
type memProfiles struct {
	profiles map[string]*store.Profile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: make(map[string]*store.Profile)}
}

func (m *memProfiles) Save(ctx context.Context, p *store.Profile) error {
	p.ID = "profile-" + p.UserID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.profiles[p.ID] = p
	return nil
}

func (m *memProfiles) Get(ctx context.Context, userID string) (*store.Profile, error) {
	for _, p := range m.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memProfiles) UpdateSignature(ctx context.Context, id string, scores map[voice.Dimension]float64, confidence float64) (*store.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for dim, score := range scores {
		p.Signature[dim] = score
	}
	p.Confidence = confidence
	p.UpdatedAt = time.Now()
	return p, nil
}

func (m *memProfiles) Similar(ctx context.Context, sig voice.Signature, limit int) ([]store.Profile, error) {
	var out []store.Profile
	for _, p := range m.profiles {
		out = append(out, *p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// memTemplates is an in-memory TemplateStore.
type memTemplates struct {
	templates []content.Template
}

func (m *memTemplates) Templates(ctx context.Context) ([]content.Template, error) {
	return m.templates, nil
}

func (m *memTemplates) Get(ctx context.Context, id string) (*content.Template, error) {
	for _, t := range m.templates {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memTemplates) Create(ctx context.Context, t *content.Template) error {
	m.templates = append(m.templates, *t)
	return nil
}

func testMetrics(t *testing.T) *observe.Metrics {
	t.Helper()
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func newTestApp(t *testing.T, providers *app.Providers, opts ...app.Option) *app.App {
	t.Helper()
	cfg := &config.Config{}
	cfg.Providers.LLM.Name = "openai"
	cfg.Providers.STT.Name = "whisper"
	opts = append(opts, app.WithMetrics(testMetrics(t)))
	a, err := app.New(context.Background(), cfg, providers, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func analysisTurns() []voice.ConversationTurn {
	return []voice.ConversationTurn{
		{QuestionID: "q1", Transcription: strings.Repeat("I believe our team can understand and deliver great results when we plan carefully. ", 5)},
	}
}

func TestAnalyzeVoice(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})

	analysis, err := a.AnalyzeVoice(context.Background(), analysisTurns(), "")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(analysis.Signature); got != 14 {
		t.Errorf("signature has %d dimensions, want 14", got)
	}
	if analysis.Confidence <= 0 || analysis.Confidence > 1 {
		t.Errorf("confidence = %v, want in (0, 1]", analysis.Confidence)
	}
}

func TestAnalyzeVoice_IndustryAdjustments(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})

	plain, err := a.AnalyzeVoice(context.Background(), analysisTurns(), "")
	if err != nil {
		t.Fatal(err)
	}
	adjusted, err := a.AnalyzeVoice(context.Background(), analysisTurns(), "healthcare")
	if err != nil {
		t.Fatal(err)
	}
	// Healthcare boosts empathy, which no heuristic extractor scores, so the
	// default is guaranteed to move.
	if adjusted.Signature[voice.DimEmpathy] <= plain.Signature[voice.DimEmpathy] {
		t.Errorf("empathy %v not boosted over %v for healthcare",
			adjusted.Signature[voice.DimEmpathy], plain.Signature[voice.DimEmpathy])
	}
}

func TestAnalyzeVoice_InsufficientInput(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})

	_, err := a.AnalyzeVoice(context.Background(), []voice.ConversationTurn{{Transcription: "short"}}, "")
	if !errors.Is(err, voice.ErrInsufficientInput) {
		t.Errorf("error = %v, want ErrInsufficientInput", err)
	}
}

func TestCompareProfiles(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})

	sig := voice.Fuse()
	cmp := a.CompareProfiles(sig, sig)
	if cmp.OverallSimilarity != 1.0 {
		t.Errorf("self-comparison similarity = %v, want 1.0", cmp.OverallSimilarity)
	}
}

func TestGenerateContent_NoLLMProvider(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})

	_, err := a.GenerateContent(context.Background(), content.Request{
		Topic:       "anything",
		ContentType: content.TypePost,
	})
	if err == nil || !strings.Contains(err.Error(), "no LLM provider") {
		t.Errorf("error = %v, want a no-LLM-provider error", err)
	}
}

func TestGenerateContent_FillsTemplate(t *testing.T) {
	t.Parallel()
	p := &llmmock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: "Generated post body."},
	}
	a := newTestApp(t, &app.Providers{LLM: p})

	result, err := a.GenerateContent(context.Background(), content.Request{
		Topic:       "team rituals",
		ContentType: content.TypePost,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.TemplateID == "" {
		t.Error("no template selected for a template-less request")
	}
}

func TestGenerateContent_KeepsProvidedTemplate(t *testing.T) {
	t.Parallel()
	p := &llmmock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: "Generated post body."},
	}
	a := newTestApp(t, &app.Providers{LLM: p})

	tpl := content.Template{ID: "caller_supplied", ContentType: content.TypePost}
	result, err := a.GenerateContent(context.Background(), content.Request{
		Topic:       "team rituals",
		ContentType: content.TypePost,
		Template:    &tpl,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.TemplateID != "caller_supplied" {
		t.Errorf("template ID = %q, want caller_supplied", result.TemplateID)
	}
}

func TestBatchGenerate_FillsAllTemplates(t *testing.T) {
	t.Parallel()
	p := &llmmock.Provider{
		CompleteResponse: &llm.CompletionResponse{Content: "Generated post body."},
	}
	a := newTestApp(t, &app.Providers{LLM: p})

	result, err := a.BatchGenerate(context.Background(), []content.Request{
		{Topic: "one", ContentType: content.TypePost},
		{Topic: "two", ContentType: content.TypeArticle},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Successful) != 2 {
		t.Fatalf("got %d successful items, want 2", len(result.Successful))
	}
	for _, item := range result.Successful {
		if item.Result.TemplateID == "" {
			t.Errorf("request %d generated without a template", item.RequestIndex)
		}
	}
}

func TestProfileOperations_NoStore(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})
	ctx := context.Background()

	if _, err := a.SaveProfile(ctx, "u1", &voice.Analysis{Signature: voice.Fuse()}); err == nil {
		t.Error("SaveProfile succeeded without a profile store")
	}
	if _, err := a.GetProfile(ctx, "u1"); err == nil {
		t.Error("GetProfile succeeded without a profile store")
	}
	if _, err := a.UpdateProfile(ctx, "p1", nil, 0.5); err == nil {
		t.Error("UpdateProfile succeeded without a profile store")
	}
	if _, err := a.SimilarProfiles(ctx, voice.Fuse(), 3); err == nil {
		t.Error("SimilarProfiles succeeded without a profile store")
	}
}

func TestProfileLifecycle(t *testing.T) {
	t.Parallel()
	profiles := newMemProfiles()
	a := newTestApp(t, &app.Providers{},
		app.WithProfileStore(profiles),
		app.WithTemplateStore(&memTemplates{}),
	)
	ctx := context.Background()

	analysis, err := a.AnalyzeVoice(ctx, analysisTurns(), "")
	if err != nil {
		t.Fatal(err)
	}
	saved, err := a.SaveProfile(ctx, "u1", analysis)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" {
		t.Error("saved profile has no ID")
	}

	got, err := a.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", got.UserID)
	}

	updated, err := a.UpdateProfile(ctx, saved.ID, map[voice.Dimension]float64{voice.DimHumor: 0.9}, 0.8)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Signature[voice.DimHumor] != 0.9 {
		t.Errorf("humor = %v after update, want 0.9", updated.Signature[voice.DimHumor])
	}
}

func TestSelectTemplate_UsesInjectedStore(t *testing.T) {
	t.Parallel()
	templates := &memTemplates{templates: []content.Template{
		{ID: "custom", Name: "Custom", ContentType: content.TypePost, UseCase: "general"},
	}}
	a := newTestApp(t, &app.Providers{},
		app.WithProfileStore(newMemProfiles()),
		app.WithTemplateStore(templates),
	)

	got := a.SelectTemplate(context.Background(), voice.Fuse(), content.TypePost)
	if got.ID != "custom" {
		t.Errorf("selected %q, want the injected store's template", got.ID)
	}
}

func TestTranscribe_NoSTTProvider(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})

	_, err := a.Transcribe(context.Background(), transcribe.Recording{ID: "r", Audio: []byte{0x01}})
	if err == nil || !strings.Contains(err.Error(), "no STT provider") {
		t.Errorf("error = %v, want a no-STT-provider error", err)
	}
	if _, err := a.BatchTranscribe(context.Background(), nil); err == nil {
		t.Error("BatchTranscribe succeeded without an STT provider")
	}
}

func TestTranscribe_WithProvider(t *testing.T) {
	t.Parallel()
	p := &sttmock.Provider{Result: &stt.Result{Text: "transcribed words", Language: "en"}}
	a := newTestApp(t, &app.Providers{STT: p})

	got, err := a.Transcribe(context.Background(), transcribe.Recording{ID: "r1", Audio: []byte{0x01}})
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "transcribed words" {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestRun_NoListenAddrBlocksUntilCancel(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, &app.Providers{})

	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
}
