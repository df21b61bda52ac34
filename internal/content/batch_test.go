package content_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pbdna/brandvoice/internal/content"
	"github.com/pbdna/brandvoice/pkg/provider/llm"
	"github.com/pbdna/brandvoice/pkg/provider/llm/mock"
)

func TestBatchGenerate_SizeViolation(t *testing.T) {
	t.Parallel()
	g := content.NewGenerator(okProvider("content"))

	requests := make([]content.Request, 11)
	for i := range requests {
		requests[i] = content.Request{Topic: "t", ContentType: content.TypePost}
	}
	result, err := g.BatchGenerate(context.Background(), requests)
	if err == nil {
		t.Fatal("expected a batch-size error for 11 requests")
	}
	if result != nil {
		t.Error("result should be nil on a batch-size violation")
	}
}

func TestBatchGenerate_PartitionsAndOrdersResults(t *testing.T) {
	t.Parallel()
	// Calls run concurrently, so failures are keyed off the request topic
	// embedded in the prompt rather than the call index.
	p := &mock.Provider{
		CompleteFunc: func(call int, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
			if strings.Contains(req.Messages[0].Content, "broken") {
				return nil, errors.New("backend unavailable")
			}
			return &llm.CompletionResponse{Content: "Generated content here."}, nil
		},
	}
	g := content.NewGenerator(p)

	requests := []content.Request{
		{Topic: "healthy one", ContentType: content.TypePost},
		{Topic: "broken one", ContentType: content.TypePost},
		{Topic: "broken two", ContentType: content.TypePost},
		{Topic: "healthy two", ContentType: content.TypePost},
	}
	result, err := g.BatchGenerate(context.Background(), requests)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(result.Successful); got != 2 {
		t.Fatalf("got %d successful items, want 2", got)
	}
	if got := len(result.Failed); got != 2 {
		t.Fatalf("got %d failed items, want 2", got)
	}
	if result.Successful[0].RequestIndex != 0 || result.Successful[1].RequestIndex != 3 {
		t.Errorf("successful indexes = %d, %d; want 0, 3",
			result.Successful[0].RequestIndex, result.Successful[1].RequestIndex)
	}
	if result.Failed[0].RequestIndex != 1 || result.Failed[1].RequestIndex != 2 {
		t.Errorf("failed indexes = %d, %d; want 1, 2",
			result.Failed[0].RequestIndex, result.Failed[1].RequestIndex)
	}
	for _, item := range result.Successful {
		if item.Result == nil || item.Result.Content == "" {
			t.Errorf("successful item %d carries no content", item.RequestIndex)
		}
	}
	var genErr *content.GenerationError
	if !errors.As(result.Failed[0].Err, &genErr) {
		t.Errorf("failure error %v is not a *GenerationError", result.Failed[0].Err)
	}
}

func TestBatchGenerate_ValidationFailuresAreCollected(t *testing.T) {
	t.Parallel()
	g := content.NewGenerator(okProvider("content"))

	requests := []content.Request{
		{Topic: "fine", ContentType: content.TypePost},
		{Topic: "", ContentType: content.TypePost},
	}
	result, err := g.BatchGenerate(context.Background(), requests)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Successful) != 1 || len(result.Failed) != 1 {
		t.Fatalf("got %d/%d successful/failed, want 1/1", len(result.Successful), len(result.Failed))
	}
	if result.Failed[0].RequestIndex != 1 {
		t.Errorf("failed index = %d, want 1", result.Failed[0].RequestIndex)
	}
}

func TestBatchGenerate_EmptyBatch(t *testing.T) {
	t.Parallel()
	g := content.NewGenerator(okProvider("content"))

	result, err := g.BatchGenerate(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Successful) != 0 || len(result.Failed) != 0 {
		t.Errorf("empty batch produced %d/%d items", len(result.Successful), len(result.Failed))
	}
}
