package voice_test

import (
	"strings"
	"testing"

	"github.com/pbdna/brandvoice/internal/voice"
)

func TestDescribeDimension_FormalityBands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score float64
		want  string
	}{
		{0.9, "Very formal and professional tone"},
		{0.5, "Balanced professional tone"},
		{0.1, "Casual and approachable tone"},
	}
	for _, tc := range tests {
		sig := voice.Signature{voice.DimFormality: tc.score}
		if got := sig.DescribeDimension(voice.DimFormality); got != tc.want {
			t.Errorf("formality %v described as %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestDescribeDimension_ThresholdsAreExclusive(t *testing.T) {
	t.Parallel()
	// A score exactly at a band boundary belongs to the lower band.
	sig := voice.Signature{voice.DimFormality: 0.7}
	if got := sig.DescribeDimension(voice.DimFormality); got != "Balanced professional tone" {
		t.Errorf("formality 0.7 described as %q, want the balanced tier", got)
	}
}

func TestDescribeDimension_UnbandedDimension(t *testing.T) {
	t.Parallel()
	sig := voice.Fuse()
	if got := sig.DescribeDimension(voice.DimHumor); got != "" {
		t.Errorf("humor description = %q, want empty (no banding table)", got)
	}
}

func TestDescribe_RendersBulletPerBandedDimension(t *testing.T) {
	t.Parallel()
	sig := voice.Fuse()
	desc := sig.Describe()

	lines := strings.Split(desc, "\n")
	if len(lines) != 6 {
		t.Fatalf("Describe produced %d lines, want 6:\n%s", len(lines), desc)
	}
	for i, l := range lines {
		if !strings.HasPrefix(l, "- ") {
			t.Errorf("line %d %q does not start with a bullet", i, l)
		}
	}
	if !strings.Contains(desc, "Balanced professional tone") {
		t.Errorf("default signature description missing formality line:\n%s", desc)
	}
}

func TestSignature_Get(t *testing.T) {
	t.Parallel()
	sig := voice.Signature{voice.DimHumor: 0.8}
	if got := sig.Get(voice.DimHumor, 0.1); got != 0.8 {
		t.Errorf("Get present = %v, want 0.8", got)
	}
	if got := sig.Get(voice.DimFormality, 0.5); got != 0.5 {
		t.Errorf("Get absent = %v, want fallback 0.5", got)
	}
}

func TestSignature_Clone(t *testing.T) {
	t.Parallel()
	sig := voice.Signature{voice.DimFormality: 0.7}
	clone := sig.Clone()
	clone[voice.DimFormality] = 0.1
	if sig[voice.DimFormality] != 0.7 {
		t.Error("mutating the clone changed the original")
	}
}
