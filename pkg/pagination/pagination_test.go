package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("expected max limit cap, got %d", got)
	}
	if got := NormalizeLimit(12); got != 12 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := Normalize(Params{Page: 0, Limit: 999})
	if got.Page != 1 || got.Limit != MaxLimit {
		t.Fatalf("unexpected normalization: %+v", got)
	}
}
