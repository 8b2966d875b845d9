package model

import (
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader(`{"name":"stub","framework":"tensorflow","output":1}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Name != "stub" || p.Output != 1 {
		t.Errorf("Decode() = %+v", p)
	}
	// the placeholder predictor ignores its input
	if got := p.Predict([]float64{1, 2, 3}); got != 1 {
		t.Errorf("Predict() = %v, want the stored constant", got)
	}
	if got := p.Predict(nil); got != 1 {
		t.Errorf("Predict(nil) = %v, want the stored constant", got)
	}
}

func TestDecodeTruncated(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"name":"stub",`)); err == nil {
		t.Fatal("Decode() = nil error for truncated input")
	}
	if _, err := Decode(strings.NewReader("")); err == nil {
		t.Fatal("Decode() = nil error for empty input")
	}
}
